package tool

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	toolDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/tool"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/schedule"
)

// LoanRecord is one entry in the append-only loan ledger. A record is
// immutable once created except for the single terminal write of
// CheckinDate at check-in.
type LoanRecord struct {
	ID           string         `json:"id"`
	ToolID       string         `json:"tool_id"`
	UserID       string         `json:"user_id"`
	CheckoutDate time.Time      `json:"checkout_date"`
	CheckinDate  *time.Time     `json:"checkin_date,omitempty"`
	Shift        schedule.Shift `json:"shift"`
	Notes        string         `json:"notes,omitempty"`
}

func (r *LoanRecord) Open() bool {
	return r.CheckinDate == nil
}

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
)

func ParseMaintenanceType(raw string) (MaintenanceType, error) {
	switch MaintenanceType(raw) {
	case MaintenancePreventive, MaintenanceCorrective:
		return MaintenanceType(raw), nil
	}
	return "", internal.NewValidationError("maintenance type must be preventive or corrective", internal.ErrCodeValidationFailed)
}

type MaintenanceRecord struct {
	ID          string          `json:"id"`
	ToolID      string          `json:"tool_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Type        MaintenanceType `json:"type"`
	Company     string          `json:"company"`
}

func LoanToDataModel(r *LoanRecord) *toolDatamodel.LoanRecord {
	return &toolDatamodel.LoanRecord{
		ID:           r.ID,
		ToolID:       r.ToolID,
		UserID:       r.UserID,
		CheckoutDate: r.CheckoutDate,
		CheckinDate:  r.CheckinDate,
		Shift:        string(r.Shift),
		Notes:        r.Notes,
	}
}

func LoanFromDataModel(dm *toolDatamodel.LoanRecord) *LoanRecord {
	return &LoanRecord{
		ID:           dm.ID,
		ToolID:       dm.ToolID,
		UserID:       dm.UserID,
		CheckoutDate: dm.CheckoutDate,
		CheckinDate:  dm.CheckinDate,
		Shift:        schedule.Shift(dm.Shift),
		Notes:        dm.Notes,
	}
}

func MaintenanceToDataModel(r *MaintenanceRecord) *toolDatamodel.MaintenanceRecord {
	return &toolDatamodel.MaintenanceRecord{
		ID:          r.ID,
		ToolID:      r.ToolID,
		Date:        r.Date,
		Description: r.Description,
		Type:        string(r.Type),
		Company:     r.Company,
	}
}

func MaintenanceFromDataModel(dm *toolDatamodel.MaintenanceRecord) *MaintenanceRecord {
	return &MaintenanceRecord{
		ID:          dm.ID,
		ToolID:      dm.ToolID,
		Date:        dm.Date,
		Description: dm.Description,
		Type:        MaintenanceType(dm.Type),
		Company:     dm.Company,
	}
}
