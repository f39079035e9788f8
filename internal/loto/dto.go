package loto

import (
	"time"

	errors "github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/common/validation"
)

type RegisterDeviceDTO struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Brand           string    `json:"brand"`
	Color           string    `json:"color"`
	Location        string    `json:"location"`
	AcquisitionDate time.Time `json:"acquisition_date"`
	Observations    string    `json:"observations"`
	ImageURL        *string   `json:"image_url,omitempty"`
}

func (d RegisterDeviceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("type", d.Type).Required().Custom(func(value interface{}) *errors.AppError {
		if raw, ok := value.(string); ok && raw != "" {
			if _, err := ParseDeviceType(raw); err != nil {
				return err.(*errors.AppError)
			}
		}
		return nil
	})
	v.Field("acquisition_date", d.AcquisitionDate).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateDeviceDTO struct {
	Name         *string `json:"name,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Color        *string `json:"color,omitempty"`
	Location     *string `json:"location,omitempty"`
	Observations *string `json:"observations,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	Condition    *string `json:"condition,omitempty"`
}

type StartUsageDTO struct {
	UserID           string  `json:"user_id"`
	LockLocation     string  `json:"lock_location"`
	LockReason       string  `json:"lock_reason"`
	WorkPermitNumber *string `json:"work_permit_number,omitempty"`
	PhotoURL         *string `json:"photo_url,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (d StartUsageDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("lock_location", d.LockLocation).Required().MaxLength(200)
	v.Field("lock_reason", d.LockReason).Required().MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DeviceFilter struct {
	Status *Status
	Type   *DeviceType
	Search string
}

type UsageFilter struct {
	DeviceID string
	UserID   string
	OnlyOpen bool
}
