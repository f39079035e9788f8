package report

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/schedule"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

type ServiceAPI interface {
	Overdue(now time.Time) ([]*OverdueEntry, error)
	CalibrationStatus(now time.Time) ([]*CalibrationEntry, error)
	Shift(day time.Time, shift schedule.Shift) (*ShiftReport, error)
	Activity(typeFilter ActivityType, limit int) ([]*ActivityEntry, error)
	UserActivity() ([]*UserActivity, error)
	Summary() (*InventorySummary, error)
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

func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.Overdue(time.Now())
	if err != nil {
		h.Logger.Error("Overdue: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"overdue": entries,
		"count":   len(entries),
	})
}

func (h *Handler) CalibrationStatus(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.CalibrationStatus(time.Now())
	if err != nil {
		h.Logger.Error("CalibrationStatus: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"calibrations": entries,
		"count":        len(entries),
	})
}

// ShiftReport expects ?date=YYYY-MM-DD&shift=T1|T2|T3. Both default to the
// current moment's day and shift.
func (h *Handler) ShiftReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	day := now
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		day = parsed
	}

	shift := schedule.ShiftFor(now)
	if raw := r.URL.Query().Get("shift"); raw != "" {
		parsed, err := schedule.ParseShift(raw)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		shift = parsed
	}

	rep, err := h.Service.Shift(day, shift)
	if err != nil {
		h.Logger.Error("ShiftReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	typeFilter := ActivityType(r.URL.Query().Get("type"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.Service.Activity(typeFilter, limit)
	if err != nil {
		h.Logger.Error("Activity: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"activity": entries,
		"count":    len(entries),
	})
}

func (h *Handler) UserActivity(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.Service.UserActivity()
	if err != nil {
		h.Logger.Error("UserActivity: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": ranking,
		"count": len(ranking),
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary()
	if err != nil {
		h.Logger.Error("Summary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
