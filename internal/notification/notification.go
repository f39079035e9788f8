package notification

import (
	"time"

	notifDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/notification"
)

type Type string

const (
	TypeCheckOut     Type = "check_out"
	TypeCheckIn      Type = "check_in"
	TypeOverdue      Type = "overdue"
	TypeMaintenance  Type = "maintenance"
	TypeDecommission Type = "decommission"
	TypeLockout      Type = "lockout"
)

// Notification is one entry in the append-only notification log. The only
// mutation after creation is the bulk mark-as-read.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	RefID     *string   `json:"ref_id,omitempty"`
}

func ToDataModel(n *Notification) *notifDatamodel.Notification {
	return &notifDatamodel.Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		Timestamp: n.Timestamp,
		Read:      n.Read,
		RefID:     n.RefID,
	}
}

func FromDataModel(dm *notifDatamodel.Notification) *Notification {
	return &Notification{
		ID:        dm.ID,
		Type:      Type(dm.Type),
		Message:   dm.Message,
		Timestamp: dm.Timestamp,
		Read:      dm.Read,
		RefID:     dm.RefID,
	}
}
