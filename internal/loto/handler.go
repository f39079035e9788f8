package loto

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

type ServiceAPI interface {
	Register(dto RegisterDeviceDTO) (*LockoutDevice, error)
	Update(id string, dto UpdateDeviceDTO) (*LockoutDevice, error)
	Get(id string) (*LockoutDevice, error)
	List(f DeviceFilter) ([]*LockoutDevice, error)
	Delete(id string) error
	StartUsage(deviceID string, dto StartUsageDTO) (*UsageRecord, error)
	EndUsage(recordID string) (*UsageRecord, error)
	Usage(f UsageFilter) ([]*UsageRecord, error)
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

func (h *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDeviceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RegisterDevice: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	var f DeviceFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		f.Status = &status
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		deviceType, err := ParseDeviceType(raw)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		f.Type = &deviceType
	}
	f.Search = r.URL.Query().Get("search")

	devices, err := h.Service.List(f)
	if err != nil {
		h.Logger.Error("ListDevices: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"devices": devices,
		"count":   len(devices),
	})
}

func (h *Handler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateDeviceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDevice: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteDevice: service error", "error", err, "device_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) StartUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto StartUsageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("StartUsage: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.StartUsage(id, dto)
	if err != nil {
		h.Logger.Error("StartUsage: service error", "error", err, "device_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) EndUsage(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	rec, err := h.Service.EndUsage(recordID)
	if err != nil {
		h.Logger.Error("EndUsage: service error", "error", err, "record_id", recordID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) ListUsage(w http.ResponseWriter, r *http.Request) {
	f := UsageFilter{
		DeviceID: r.URL.Query().Get("device_id"),
		UserID:   r.URL.Query().Get("user_id"),
		OnlyOpen: r.URL.Query().Get("state") == "open",
	}

	records, err := h.Service.Usage(f)
	if err != nil {
		h.Logger.Error("ListUsage: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"usage": records,
		"count": len(records),
	})
}
