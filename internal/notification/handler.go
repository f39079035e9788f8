package notification

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

type ServiceAPI interface {
	List(unreadOnly bool, limit int) ([]*Notification, error)
	MarkAllRead() (int64, error)
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

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := h.Service.List(unreadOnly, limit)
	if err != nil {
		h.Logger.Error("ListNotifications: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.MarkAllRead()
	if err != nil {
		h.Logger.Error("MarkAllRead: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"marked_read": count,
	})
}
