package loto

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	lotoDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/loto"
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusInUse        Status = "in_use"
	StatusDamaged      Status = "damaged"
	StatusOutOfService Status = "out_of_service"
)

type DeviceType string

const (
	DeviceElectric   DeviceType = "electric"
	DeviceMechanical DeviceType = "mechanical"
)

func ParseDeviceType(raw string) (DeviceType, error) {
	switch DeviceType(raw) {
	case DeviceElectric, DeviceMechanical:
		return DeviceType(raw), nil
	}
	return "", internal.NewValidationError("device type must be electric or mechanical", internal.ErrCodeValidationFailed)
}

// LockoutDevice is a lockout/tagout safety device. CurrentUserID is set iff
// Status == StatusInUse.
type LockoutDevice struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            DeviceType `json:"type"`
	Brand           string     `json:"brand"`
	Color           string     `json:"color"`
	Status          Status     `json:"status"`
	Location        string     `json:"location"`
	AcquisitionDate time.Time  `json:"acquisition_date"`
	Observations    string     `json:"observations"`
	ImageURL        *string    `json:"image_url,omitempty"`
	CurrentUserID   *string    `json:"current_user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StartUse locks the device to a user. Any status other than available,
// including an active lockout, rejects the transition.
func (d *LockoutDevice) StartUse(userID string, at time.Time) error {
	if d.Status != StatusAvailable {
		return internal.ErrDeviceNotAvailable
	}
	d.Status = StatusInUse
	d.CurrentUserID = &userID
	d.UpdatedAt = at
	return nil
}

func (d *LockoutDevice) EndUse(at time.Time) error {
	if d.Status != StatusInUse {
		return internal.ErrUsageAlreadyEnded
	}
	d.Status = StatusAvailable
	d.CurrentUserID = nil
	d.UpdatedAt = at
	return nil
}

// SetCondition moves an idle device between available, damaged and
// out_of_service. A device under an active lockout cannot change condition.
func (d *LockoutDevice) SetCondition(target Status, at time.Time) error {
	if d.Status == StatusInUse {
		return internal.ErrDeviceInUse
	}
	switch target {
	case StatusAvailable, StatusDamaged, StatusOutOfService:
		d.Status = target
		d.UpdatedAt = at
		return nil
	}
	return internal.NewValidationError("condition must be available, damaged or out_of_service", internal.ErrCodeValidationFailed)
}

// UsageRecord is one lockout in the usage ledger. Immutable once created
// except for the terminal write of EndDate.
type UsageRecord struct {
	ID               string     `json:"id"`
	DeviceID         string     `json:"device_id"`
	UserID           string     `json:"user_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	LockLocation     string     `json:"lock_location"`
	LockReason       string     `json:"lock_reason"`
	WorkPermitNumber *string    `json:"work_permit_number,omitempty"`
	PhotoURL         *string    `json:"photo_url,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

func (r *UsageRecord) Open() bool {
	return r.EndDate == nil
}

func DeviceToDataModel(d *LockoutDevice) *lotoDatamodel.LockoutDevice {
	return &lotoDatamodel.LockoutDevice{
		ID:              d.ID,
		Name:            d.Name,
		Type:            string(d.Type),
		Brand:           d.Brand,
		Color:           d.Color,
		Status:          string(d.Status),
		Location:        d.Location,
		AcquisitionDate: d.AcquisitionDate,
		Observations:    d.Observations,
		ImageURL:        d.ImageURL,
		CurrentUserID:   d.CurrentUserID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func DeviceFromDataModel(dm *lotoDatamodel.LockoutDevice) *LockoutDevice {
	return &LockoutDevice{
		ID:              dm.ID,
		Name:            dm.Name,
		Type:            DeviceType(dm.Type),
		Brand:           dm.Brand,
		Color:           dm.Color,
		Status:          Status(dm.Status),
		Location:        dm.Location,
		AcquisitionDate: dm.AcquisitionDate,
		Observations:    dm.Observations,
		ImageURL:        dm.ImageURL,
		CurrentUserID:   dm.CurrentUserID,
		CreatedAt:       dm.CreatedAt,
		UpdatedAt:       dm.UpdatedAt,
	}
}

func UsageToDataModel(r *UsageRecord) *lotoDatamodel.LockoutUsageRecord {
	return &lotoDatamodel.LockoutUsageRecord{
		ID:               r.ID,
		DeviceID:         r.DeviceID,
		UserID:           r.UserID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		LockLocation:     r.LockLocation,
		LockReason:       r.LockReason,
		WorkPermitNumber: r.WorkPermitNumber,
		PhotoURL:         r.PhotoURL,
		Notes:            r.Notes,
	}
}

func UsageFromDataModel(dm *lotoDatamodel.LockoutUsageRecord) *UsageRecord {
	return &UsageRecord{
		ID:               dm.ID,
		DeviceID:         dm.DeviceID,
		UserID:           dm.UserID,
		StartDate:        dm.StartDate,
		EndDate:          dm.EndDate,
		LockLocation:     dm.LockLocation,
		LockReason:       dm.LockReason,
		WorkPermitNumber: dm.WorkPermitNumber,
		PhotoURL:         dm.PhotoURL,
		Notes:            dm.Notes,
	}
}
