package tool

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	toolDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/tool"
)

type Status string

const (
	StatusAvailable      Status = "available"
	StatusBorrowed       Status = "borrowed"
	StatusInMaintenance  Status = "in_maintenance"
	StatusDecommissioned Status = "decommissioned"
)

type Category string

const (
	CategoryElectric Category = "electric"
	CategoryMechanic Category = "mechanic"
)

func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryElectric, CategoryMechanic:
		return Category(raw), nil
	}
	return "", internal.NewValidationError("category must be electric or mechanic", internal.ErrCodeInvalidCategory)
}

// HoldingLocation is the warehouse decommissioned tools are moved to.
const HoldingLocation = "Almacén de Bajas"

// Custody is the (user, start, expected end) triple attached to a borrowed
// tool. It exists iff Status == StatusBorrowed.
type Custody struct {
	UserID            string    `json:"user_id"`
	BorrowedAt        time.Time `json:"borrowed_at"`
	EstimatedReturnAt time.Time `json:"estimated_return_at"`
}

type Calibration struct {
	IsMeasuringInstrument bool       `json:"is_measuring_instrument"`
	HasCertification      bool       `json:"has_certification"`
	LastDate              *time.Time `json:"last_calibration_date,omitempty"`
	NextDate              *time.Time `json:"next_calibration_date,omitempty"`
	CertificateType       *string    `json:"certificate_type,omitempty"`
	CertificateRef        *string    `json:"certificate_ref,omitempty"`
}

// Tracked reports whether the tool participates in calibration reporting.
func (c Calibration) Tracked() bool {
	return c.IsMeasuringInstrument && c.HasCertification && c.NextDate != nil
}

type Tool struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Category        Category    `json:"category"`
	Brand           string      `json:"brand"`
	Status          Status      `json:"status"`
	Location        string      `json:"location"`
	AcquisitionDate time.Time   `json:"acquisition_date"`
	LifespanMonths  int         `json:"lifespan_months"`
	Observations    string      `json:"observations"`
	ImageURL        *string     `json:"image_url,omitempty"`
	ProcedureURL    *string     `json:"procedure_url,omitempty"`
	Custody         *Custody    `json:"custody,omitempty"`
	Calibration     Calibration `json:"calibration"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Borrow moves an available tool into custody. Status and the custody triple
// change together; there is no way to set one without the other.
func (t *Tool) Borrow(userID string, at, estimatedReturn time.Time) error {
	if t.Status != StatusAvailable {
		return internal.ErrToolNotAvailable
	}
	t.Status = StatusBorrowed
	t.Custody = &Custody{
		UserID:            userID,
		BorrowedAt:        at,
		EstimatedReturnAt: estimatedReturn,
	}
	t.UpdatedAt = at
	return nil
}

// Return releases custody and makes the tool available again. The released
// custody is returned so callers can reference who held the tool.
func (t *Tool) Return(at time.Time) (Custody, error) {
	if t.Status != StatusBorrowed || t.Custody == nil {
		return Custody{}, internal.ErrToolNotBorrowed
	}
	held := *t.Custody
	t.Status = StatusAvailable
	t.Custody = nil
	t.UpdatedAt = at
	return held, nil
}

// SendToMaintenance transitions any non-decommissioned tool into maintenance.
// Custody, if any, is released: a tool in the shop is in nobody's hands.
func (t *Tool) SendToMaintenance(at time.Time) error {
	if t.Status == StatusDecommissioned {
		return internal.ErrToolDecommissioned
	}
	t.Status = StatusInMaintenance
	t.Custody = nil
	t.UpdatedAt = at
	return nil
}

func (t *Tool) ReturnFromMaintenance(at time.Time) error {
	if t.Status != StatusInMaintenance {
		return internal.ErrToolNotInMaintenance
	}
	t.Status = StatusAvailable
	t.UpdatedAt = at
	return nil
}

// Decommission is terminal: no transition leads out of it. The tool is moved
// to the holding warehouse and custody is released.
func (t *Tool) Decommission(at time.Time) error {
	if t.Status == StatusDecommissioned {
		return internal.ErrToolDecommissioned
	}
	t.Status = StatusDecommissioned
	t.Custody = nil
	t.Location = HoldingLocation
	t.UpdatedAt = at
	return nil
}

func (t *Tool) IsOverdue(now time.Time) bool {
	return t.Status == StatusBorrowed && t.Custody != nil && t.Custody.EstimatedReturnAt.Before(now)
}

// CustodyConsistent verifies the borrowed⇔custody invariant.
func (t *Tool) CustodyConsistent() bool {
	if t.Status == StatusBorrowed {
		return t.Custody != nil && t.Custody.UserID != "" &&
			!t.Custody.BorrowedAt.IsZero() && !t.Custody.EstimatedReturnAt.IsZero()
	}
	return t.Custody == nil
}

func ToDataModel(t *Tool) *toolDatamodel.Tool {
	dm := &toolDatamodel.Tool{
		ID:              t.ID,
		Name:            t.Name,
		Category:        string(t.Category),
		Brand:           t.Brand,
		Status:          string(t.Status),
		Location:        t.Location,
		AcquisitionDate: t.AcquisitionDate,
		LifespanMonths:  t.LifespanMonths,
		Observations:    t.Observations,
		ImageURL:        t.ImageURL,
		ProcedureURL:    t.ProcedureURL,

		IsMeasuringInstrument: t.Calibration.IsMeasuringInstrument,
		HasCertification:      t.Calibration.HasCertification,
		LastCalibrationDate:   t.Calibration.LastDate,
		NextCalibrationDate:   t.Calibration.NextDate,
		CertificateType:       t.Calibration.CertificateType,
		CertificateRef:        t.Calibration.CertificateRef,

		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Custody != nil {
		userID := t.Custody.UserID
		borrowedAt := t.Custody.BorrowedAt
		estimatedReturnAt := t.Custody.EstimatedReturnAt
		dm.CurrentUserID = &userID
		dm.BorrowedAt = &borrowedAt
		dm.EstimatedReturnAt = &estimatedReturnAt
	}
	return dm
}

func FromDataModel(dm *toolDatamodel.Tool) *Tool {
	t := &Tool{
		ID:              dm.ID,
		Name:            dm.Name,
		Category:        Category(dm.Category),
		Brand:           dm.Brand,
		Status:          Status(dm.Status),
		Location:        dm.Location,
		AcquisitionDate: dm.AcquisitionDate,
		LifespanMonths:  dm.LifespanMonths,
		Observations:    dm.Observations,
		ImageURL:        dm.ImageURL,
		ProcedureURL:    dm.ProcedureURL,
		Calibration: Calibration{
			IsMeasuringInstrument: dm.IsMeasuringInstrument,
			HasCertification:      dm.HasCertification,
			LastDate:              dm.LastCalibrationDate,
			NextDate:              dm.NextCalibrationDate,
			CertificateType:       dm.CertificateType,
			CertificateRef:        dm.CertificateRef,
		},
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
	if dm.CurrentUserID != nil && dm.BorrowedAt != nil && dm.EstimatedReturnAt != nil {
		t.Custody = &Custody{
			UserID:            *dm.CurrentUserID,
			BorrowedAt:        *dm.BorrowedAt,
			EstimatedReturnAt: *dm.EstimatedReturnAt,
		}
	}
	return t
}

func FromDataModelSlice(dms []*toolDatamodel.Tool) []*Tool {
	result := make([]*Tool, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
