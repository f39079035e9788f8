package tool

import (
	"time"

	errors "github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/common/validation"
)

type RegisterToolDTO struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Brand           string     `json:"brand"`
	Location        string     `json:"location"`
	AcquisitionDate time.Time  `json:"acquisition_date"`
	LifespanMonths  int        `json:"lifespan_months"`
	Observations    string     `json:"observations"`
	ImageURL        *string    `json:"image_url,omitempty"`
	ProcedureURL    *string    `json:"procedure_url,omitempty"`

	IsMeasuringInstrument bool       `json:"is_measuring_instrument"`
	HasCertification      bool       `json:"has_certification"`
	LastCalibrationDate   *time.Time `json:"last_calibration_date,omitempty"`
	NextCalibrationDate   *time.Time `json:"next_calibration_date,omitempty"`
	CertificateType       *string    `json:"certificate_type,omitempty"`
	CertificateRef        *string    `json:"certificate_ref,omitempty"`
}

func (d RegisterToolDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("category", d.Category).Required().Custom(func(value interface{}) *errors.AppError {
		if raw, ok := value.(string); ok && raw != "" {
			if _, err := ParseCategory(raw); err != nil {
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

// UpdateToolDTO covers the descriptive attributes of a tool. Status and
// custody never change through an update; they move only through the named
// ledger transitions.
type UpdateToolDTO struct {
	Name            *string    `json:"name,omitempty"`
	Brand           *string    `json:"brand,omitempty"`
	Location        *string    `json:"location,omitempty"`
	LifespanMonths  *int       `json:"lifespan_months,omitempty"`
	Observations    *string    `json:"observations,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	ProcedureURL    *string    `json:"procedure_url,omitempty"`

	IsMeasuringInstrument *bool      `json:"is_measuring_instrument,omitempty"`
	HasCertification      *bool      `json:"has_certification,omitempty"`
	LastCalibrationDate   *time.Time `json:"last_calibration_date,omitempty"`
	NextCalibrationDate   *time.Time `json:"next_calibration_date,omitempty"`
	CertificateType       *string    `json:"certificate_type,omitempty"`
	CertificateRef        *string    `json:"certificate_ref,omitempty"`
}

type CheckOutDTO struct {
	UserID            string    `json:"user_id"`
	EstimatedReturnAt time.Time `json:"estimated_return_at"`
	Notes             string    `json:"notes,omitempty"`
}

func (d CheckOutDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("estimated_return_at", d.EstimatedReturnAt).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type MaintenanceDTO struct {
	Company     string `json:"company"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (d MaintenanceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("company", d.Company).Required().MaxLength(200)
	v.Field("description", d.Description).Required().MaxLength(500)
	v.Field("type", d.Type).Required().Custom(func(value interface{}) *errors.AppError {
		if raw, ok := value.(string); ok && raw != "" {
			if _, err := ParseMaintenanceType(raw); err != nil {
				return err.(*errors.AppError)
			}
		}
		return nil
	})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type DecommissionDTO struct {
	Reason            string  `json:"reason"`
	Description       string  `json:"description"`
	ReplacementReason string  `json:"replacement_reason"`
	EvidenceImageURL  *string `json:"evidence_image_url,omitempty"`
}

func (d DecommissionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("reason", d.Reason).Required().MaxLength(200)
	v.Field("description", d.Description).Required().MaxLength(1000)
	v.Field("replacement_reason", d.ReplacementReason).Required().MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type Filter struct {
	Status   *Status
	Category *Category
	Search   string
}

type LoanFilter struct {
	ToolID     string
	UserID     string
	OnlyOpen   bool
	OnlyClosed bool
}
