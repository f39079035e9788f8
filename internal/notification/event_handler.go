package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
)

// EventHandler turns ledger events into notification records. It subscribes
// to every ledger-mutating event; the commands publish synchronously, so the
// log order matches command order.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandleToolCheckedOut(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ToolCheckedOutEvent)
	if !ok {
		return fmt.Errorf("expected ToolCheckedOutEvent, got %T", event)
	}

	message := fmt.Sprintf("%s retiró la herramienta %s (devolución estimada %s)",
		e.UserName, e.ToolName, e.EstimatedReturnAt.Format("02/01/2006 15:04"))
	_, err := h.service.Append(TypeCheckOut, message, &e.ToolID)
	return err
}

func (h *EventHandler) HandleToolCheckedIn(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ToolCheckedInEvent)
	if !ok {
		return fmt.Errorf("expected ToolCheckedInEvent, got %T", event)
	}

	message := fmt.Sprintf("%s devolvió la herramienta %s", e.UserName, e.ToolName)
	_, err := h.service.Append(TypeCheckIn, message, &e.ToolID)
	return err
}

func (h *EventHandler) HandleToolMaintenance(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ToolMaintenanceEvent)
	if !ok {
		return fmt.Errorf("expected ToolMaintenanceEvent, got %T", event)
	}

	var message string
	if e.BackInService {
		message = fmt.Sprintf("La herramienta %s volvió de mantenimiento", e.ToolName)
	} else {
		message = fmt.Sprintf("La herramienta %s entró a mantenimiento %s con %s",
			e.ToolName, e.Maintenance, e.Company)
	}
	_, err := h.service.Append(TypeMaintenance, message, &e.ToolID)
	return err
}

func (h *EventHandler) HandleToolDecommissioned(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ToolDecommissionedEvent)
	if !ok {
		return fmt.Errorf("expected ToolDecommissionedEvent, got %T", event)
	}

	message := fmt.Sprintf("La herramienta %s fue dada de baja: %s", e.ToolName, e.Reason)
	_, err := h.service.Append(TypeDecommission, message, &e.ToolID)
	return err
}

func (h *EventHandler) HandleLoanOverdue(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LoanOverdueEvent)
	if !ok {
		return fmt.Errorf("expected LoanOverdueEvent, got %T", event)
	}

	message := fmt.Sprintf("Préstamo vencido: %s no ha devuelto %s (esperada %s)",
		e.UserName, e.ToolName, e.EstimatedReturnAt.Format("02/01/2006 15:04"))
	_, err := h.service.AppendOverdueOnce(message, e.LoanID)
	return err
}

func (h *EventHandler) HandleLockout(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LockoutEvent)
	if !ok {
		return fmt.Errorf("expected LockoutEvent, got %T", event)
	}

	var message string
	if event.EventType() == events.EventTypeLockoutStarted {
		message = fmt.Sprintf("Bloqueo iniciado con %s en %s", e.DeviceName, e.LockLocation)
	} else {
		message = fmt.Sprintf("Bloqueo finalizado con %s", e.DeviceName)
	}
	_, err := h.service.Append(TypeLockout, message, &e.DeviceID)
	return err
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeToolCheckedOut, h.HandleToolCheckedOut)
	eventBus.Subscribe(events.EventTypeToolCheckedIn, h.HandleToolCheckedIn)
	eventBus.Subscribe(events.EventTypeToolMaintenance, h.HandleToolMaintenance)
	eventBus.Subscribe(events.EventTypeToolBackInService, h.HandleToolMaintenance)
	eventBus.Subscribe(events.EventTypeToolDecommissioned, h.HandleToolDecommissioned)
	eventBus.Subscribe(events.EventTypeLoanOverdue, h.HandleLoanOverdue)
	eventBus.Subscribe(events.EventTypeLockoutStarted, h.HandleLockout)
	eventBus.Subscribe(events.EventTypeLockoutEnded, h.HandleLockout)

	h.logger.Info("notification event handlers registered")
}
