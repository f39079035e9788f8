package tool

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

type ServiceAPI interface {
	Register(dto RegisterToolDTO) (*Tool, error)
	Update(id string, dto UpdateToolDTO) (*Tool, error)
	Get(id string) (*Tool, error)
	List(f Filter) ([]*Tool, error)
	CheckOut(toolID string, dto CheckOutDTO) (*LoanRecord, error)
	CheckIn(toolID string) (*LoanRecord, error)
	SendToMaintenance(toolID string, dto MaintenanceDTO) (*MaintenanceRecord, error)
	ReturnFromMaintenance(toolID string) (*Tool, error)
	Decommission(toolID, actorID string, dto DecommissionDTO) (*DecommissionRecord, error)
	AdvanceReplacement(toolID string, target ReplacementStatus) (*DecommissionRecord, error)
	Loans(f LoanFilter) ([]*LoanRecord, error)
	MaintenanceHistory(toolID string) ([]*MaintenanceRecord, error)
	GetDecommission(toolID string) (*DecommissionRecord, error)
	Decommissions() ([]*DecommissionRecord, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) RegisterTool(w http.ResponseWriter, r *http.Request) {
	var dto RegisterToolDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RegisterTool: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	var f Filter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		f.Status = &status
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := ParseCategory(raw)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		f.Category = &category
	}
	f.Search = r.URL.Query().Get("search")

	tools, err := h.Service.List(f)
	if err != nil {
		h.Logger.Error("ListTools: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tools": tools,
		"count": len(tools),
	})
}

func (h *Handler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateToolDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTool: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto CheckOutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CheckOut: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.CheckOut(id, dto)
	if err != nil {
		h.Logger.Error("CheckOut: service error", "error", err, "tool_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Service.CheckIn(id)
	if err != nil {
		h.Logger.Error("CheckIn: service error", "error", err, "tool_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) SendToMaintenance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto MaintenanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SendToMaintenance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.SendToMaintenance(id, dto)
	if err != nil {
		h.Logger.Error("SendToMaintenance: service error", "error", err, "tool_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) ReturnFromMaintenance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.Service.ReturnFromMaintenance(id)
	if err != nil {
		h.Logger.Error("ReturnFromMaintenance: service error", "error", err, "tool_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) Decommission(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("Decommission: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	var dto DecommissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Decommission: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Decommission(id, user.ID, dto)
	if err != nil {
		h.Logger.Error("Decommission: service error", "error", err, "tool_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

type advanceReplacementDTO struct {
	Status string `json:"status"`
}

func (h *Handler) AdvanceReplacement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto advanceReplacementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AdvanceReplacement: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.AdvanceReplacement(id, ReplacementStatus(dto.Status))
	if err != nil {
		h.Logger.Error("AdvanceReplacement: service error", "error", err, "tool_id", id, "status", dto.Status)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	f := LoanFilter{
		ToolID: r.URL.Query().Get("tool_id"),
		UserID: r.URL.Query().Get("user_id"),
	}
	switch r.URL.Query().Get("state") {
	case "open":
		f.OnlyOpen = true
	case "closed":
		f.OnlyClosed = true
	}

	loans, err := h.Service.Loans(f)
	if err != nil {
		h.Logger.Error("ListLoans: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"loans": loans,
		"count": len(loans),
	})
}

func (h *Handler) MaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	records, err := h.Service.MaintenanceHistory(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"maintenance": records,
		"count":       len(records),
	})
}

func (h *Handler) ListDecommissions(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.Decommissions()
	if err != nil {
		h.Logger.Error("ListDecommissions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"decommissions": records,
		"count":         len(records),
	})
}

func (h *Handler) GetDecommission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Service.GetDecommission(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}
