package tool

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/schedule"
)

// Repository defines the data access methods for tools and their ledgers.
// The command methods (CheckOut, CheckIn, AddMaintenance, Decommission) must
// persist the tool row and the ledger row in one transaction.
type Repository interface {
	CreateTool(t *Tool) error
	GetTool(id string) (*Tool, error)
	ListTools(f Filter) ([]*Tool, error)
	SaveTool(t *Tool) error

	CheckOut(t *Tool, rec *LoanRecord) error
	CheckIn(t *Tool, loanID string, at time.Time) error
	OpenLoan(toolID string) (*LoanRecord, error)
	ListLoans(f LoanFilter) ([]*LoanRecord, error)

	AddMaintenance(t *Tool, rec *MaintenanceRecord) error
	ListMaintenance(toolID string) ([]*MaintenanceRecord, error)
	AllMaintenance() ([]*MaintenanceRecord, error)

	Decommission(t *Tool, rec *DecommissionRecord, closeOpenLoanAt *time.Time) error
	GetDecommission(toolID string) (*DecommissionRecord, error)
	ListDecommissions() ([]*DecommissionRecord, error)
	SaveReplacementStatus(toolID string, status ReplacementStatus) error
}

// UserDirectory resolves user IDs to display names. Implemented by the user
// service; kept as a small interface so the tool package does not depend on it.
type UserDirectory interface {
	Lookup(id string) (name string, err error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// Register creates a new tool in available status. A caller-supplied ID is
// honored so physical asset codes can be kept; otherwise one is generated.
func (s *Service) Register(dto RegisterToolDTO) (*Tool, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("tool validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	category, err := ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(dto.ID)
	if id == "" {
		id = uuid.New().String()
	} else if existing, _ := s.repo.GetTool(id); existing != nil {
		return nil, internal.ErrToolAlreadyRegistered
	}

	now := time.Now()
	t := &Tool{
		ID:              id,
		Name:            dto.Name,
		Category:        category,
		Brand:           dto.Brand,
		Status:          StatusAvailable,
		Location:        dto.Location,
		AcquisitionDate: dto.AcquisitionDate,
		LifespanMonths:  dto.LifespanMonths,
		Observations:    dto.Observations,
		ImageURL:        dto.ImageURL,
		ProcedureURL:    dto.ProcedureURL,
		Calibration: Calibration{
			IsMeasuringInstrument: dto.IsMeasuringInstrument,
			HasCertification:      dto.HasCertification,
			LastDate:              dto.LastCalibrationDate,
			NextDate:              dto.NextCalibrationDate,
			CertificateType:       dto.CertificateType,
			CertificateRef:        dto.CertificateRef,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateTool(t); err != nil {
		s.logger.Error("failed to create tool", "error", err, "tool_id", id)
		return nil, err
	}

	s.logger.Info("tool registered", "tool_id", t.ID, "name", t.Name, "category", t.Category)
	return t, nil
}

// Update changes descriptive attributes only. Status, custody and location of
// a decommissioned tool are out of reach here.
func (s *Service) Update(id string, dto UpdateToolDTO) (*Tool, error) {
	t, err := s.repo.GetTool(id)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Brand != nil {
		t.Brand = *dto.Brand
	}
	if dto.Location != nil && t.Status != StatusDecommissioned {
		t.Location = *dto.Location
	}
	if dto.LifespanMonths != nil {
		t.LifespanMonths = *dto.LifespanMonths
	}
	if dto.Observations != nil {
		t.Observations = *dto.Observations
	}
	if dto.ImageURL != nil {
		t.ImageURL = dto.ImageURL
	}
	if dto.ProcedureURL != nil {
		t.ProcedureURL = dto.ProcedureURL
	}
	if dto.IsMeasuringInstrument != nil {
		t.Calibration.IsMeasuringInstrument = *dto.IsMeasuringInstrument
	}
	if dto.HasCertification != nil {
		t.Calibration.HasCertification = *dto.HasCertification
	}
	if dto.LastCalibrationDate != nil {
		t.Calibration.LastDate = dto.LastCalibrationDate
	}
	if dto.NextCalibrationDate != nil {
		t.Calibration.NextDate = dto.NextCalibrationDate
	}
	if dto.CertificateType != nil {
		t.Calibration.CertificateType = dto.CertificateType
	}
	if dto.CertificateRef != nil {
		t.Calibration.CertificateRef = dto.CertificateRef
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.SaveTool(t); err != nil {
		s.logger.Error("failed to update tool", "error", err, "tool_id", id)
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(id string) (*Tool, error) {
	t, err := s.repo.GetTool(id)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}
	return t, nil
}

func (s *Service) List(f Filter) ([]*Tool, error) {
	return s.repo.ListTools(f)
}

// CheckOut opens a loan: the tool moves into the user's custody and a ledger
// record is appended, both in the same transaction.
func (s *Service) CheckOut(toolID string, dto CheckOutDTO) (*LoanRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	userName, err := s.users.Lookup(dto.UserID)
	if err != nil {
		s.logger.Warn("checkout for unknown user", "user_id", dto.UserID, "tool_id", toolID)
		return nil, internal.ErrUserNotFound
	}

	t, err := s.repo.GetTool(toolID)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	now := time.Now()
	if err := t.Borrow(dto.UserID, now, dto.EstimatedReturnAt); err != nil {
		s.logger.Warn("checkout rejected", "tool_id", toolID, "status", t.Status)
		return nil, err
	}

	rec := &LoanRecord{
		ID:           uuid.New().String(),
		ToolID:       t.ID,
		UserID:       dto.UserID,
		CheckoutDate: now,
		Shift:        schedule.ShiftFor(now),
		Notes:        dto.Notes,
	}

	if err := s.repo.CheckOut(t, rec); err != nil {
		s.logger.Error("failed to persist checkout", "error", err, "tool_id", toolID)
		return nil, err
	}

	s.logger.Info("tool checked out",
		"tool_id", t.ID,
		"loan_id", rec.ID,
		"user_id", dto.UserID,
		"shift", rec.Shift)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewToolCheckedOutEvent(t.ID, t.Name, dto.UserID, userName, dto.EstimatedReturnAt))
	}

	return rec, nil
}

// CheckIn closes the tool's open loan and releases custody. The ledger record
// receives its terminal check-in timestamp; nothing else on it changes.
func (s *Service) CheckIn(toolID string) (*LoanRecord, error) {
	t, err := s.repo.GetTool(toolID)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	now := time.Now()
	held, err := t.Return(now)
	if err != nil {
		s.logger.Warn("checkin rejected", "tool_id", toolID, "status", t.Status)
		return nil, err
	}

	open, err := s.repo.OpenLoan(toolID)
	if err != nil {
		// Custody said borrowed but the ledger has no open loan. The two are
		// written together, so this means outside interference with the data.
		s.logger.Error("no open loan for borrowed tool", "tool_id", toolID)
		return nil, internal.NewInternalError("loan ledger inconsistent with tool custody", err)
	}

	if err := s.repo.CheckIn(t, open.ID, now); err != nil {
		s.logger.Error("failed to persist checkin", "error", err, "tool_id", toolID)
		return nil, err
	}
	open.CheckinDate = &now

	s.logger.Info("tool checked in", "tool_id", t.ID, "loan_id", open.ID, "user_id", held.UserID)

	if s.bus != nil {
		userName, _ := s.users.Lookup(held.UserID)
		s.bus.PublishSync(context.Background(), events.NewToolCheckedInEvent(t.ID, t.Name, held.UserID, userName))
	}

	return open, nil
}

// SendToMaintenance records a maintenance intervention and parks the tool in
// maintenance status. A borrowed tool's open loan is closed first: the shop
// takes over custody from the user.
func (s *Service) SendToMaintenance(toolID string, dto MaintenanceDTO) (*MaintenanceRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	mtype, err := ParseMaintenanceType(dto.Type)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetTool(toolID)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	now := time.Now()
	wasBorrowed := t.Status == StatusBorrowed
	if err := t.SendToMaintenance(now); err != nil {
		return nil, err
	}

	if wasBorrowed {
		open, err := s.repo.OpenLoan(toolID)
		if err == nil {
			if err := s.repo.CheckIn(t, open.ID, now); err != nil {
				s.logger.Error("failed to close loan before maintenance", "error", err, "tool_id", toolID)
				return nil, err
			}
		}
	}

	rec := &MaintenanceRecord{
		ID:          uuid.New().String(),
		ToolID:      t.ID,
		Date:        now,
		Description: dto.Description,
		Type:        mtype,
		Company:     dto.Company,
	}

	if err := s.repo.AddMaintenance(t, rec); err != nil {
		s.logger.Error("failed to persist maintenance", "error", err, "tool_id", toolID)
		return nil, err
	}

	s.logger.Info("tool sent to maintenance",
		"tool_id", t.ID,
		"type", mtype,
		"company", dto.Company)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewToolMaintenanceEvent(t.ID, t.Name, dto.Company, string(mtype)))
	}

	return rec, nil
}

// ReturnFromMaintenance puts a tool in maintenance back into service.
func (s *Service) ReturnFromMaintenance(toolID string) (*Tool, error) {
	t, err := s.repo.GetTool(toolID)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	now := time.Now()
	if err := t.ReturnFromMaintenance(now); err != nil {
		s.logger.Warn("return from maintenance rejected", "tool_id", toolID, "status", t.Status)
		return nil, err
	}

	if err := s.repo.SaveTool(t); err != nil {
		s.logger.Error("failed to persist return from maintenance", "error", err, "tool_id", toolID)
		return nil, err
	}

	s.logger.Info("tool back in service", "tool_id", t.ID)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewToolBackInServiceEvent(t.ID, t.Name))
	}

	return t, nil
}

// Decommission retires a tool permanently and opens the replacement workflow
// at its first stage. If the tool is out on loan, the open loan is closed in
// the same transaction so the ledger never shows a loan against a retired
// tool.
func (s *Service) Decommission(toolID, actorID string, dto DecommissionDTO) (*DecommissionRecord, error) {
	if actorID == "" {
		return nil, internal.ErrMissingActor
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTool(toolID)
	if err != nil {
		return nil, internal.ErrToolNotFound
	}

	if existing, _ := s.repo.GetDecommission(toolID); existing != nil {
		return nil, internal.ErrAlreadyDecommissioned
	}

	now := time.Now()
	wasBorrowed := t.Status == StatusBorrowed
	if err := t.Decommission(now); err != nil {
		return nil, err
	}

	rec := &DecommissionRecord{
		ToolID:            t.ID,
		Date:              now,
		Reason:            dto.Reason,
		Description:       dto.Description,
		EvidenceImageURL:  dto.EvidenceImageURL,
		ResponsibleUserID: actorID,
		ReplacementReason: dto.ReplacementReason,
		ReplacementStatus: ReplacementGenerated,
	}

	var closeLoanAt *time.Time
	if wasBorrowed {
		closeLoanAt = &now
	}

	if err := s.repo.Decommission(t, rec, closeLoanAt); err != nil {
		s.logger.Error("failed to persist decommission", "error", err, "tool_id", toolID)
		return nil, err
	}

	s.logger.Info("tool decommissioned",
		"tool_id", t.ID,
		"reason", dto.Reason,
		"responsible_user_id", actorID)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewToolDecommissionedEvent(t.ID, t.Name, dto.Reason, actorID))
	}

	return rec, nil
}

// AdvanceReplacement moves a decommissioned tool's replacement workflow to
// the given stage. Only the immediate next stage is accepted.
func (s *Service) AdvanceReplacement(toolID string, target ReplacementStatus) (*DecommissionRecord, error) {
	rec, err := s.repo.GetDecommission(toolID)
	if err != nil {
		return nil, internal.ErrDecommissionNotFound
	}

	if err := rec.AdvanceTo(target); err != nil {
		s.logger.Warn("replacement advance rejected",
			"tool_id", toolID,
			"current", rec.ReplacementStatus,
			"target", target)
		return nil, err
	}

	if err := s.repo.SaveReplacementStatus(toolID, rec.ReplacementStatus); err != nil {
		s.logger.Error("failed to persist replacement status", "error", err, "tool_id", toolID)
		return nil, err
	}

	s.logger.Info("replacement advanced", "tool_id", toolID, "status", rec.ReplacementStatus)
	return rec, nil
}

func (s *Service) Loans(f LoanFilter) ([]*LoanRecord, error) {
	return s.repo.ListLoans(f)
}

func (s *Service) MaintenanceHistory(toolID string) ([]*MaintenanceRecord, error) {
	if _, err := s.repo.GetTool(toolID); err != nil {
		return nil, internal.ErrToolNotFound
	}
	return s.repo.ListMaintenance(toolID)
}

func (s *Service) GetDecommission(toolID string) (*DecommissionRecord, error) {
	rec, err := s.repo.GetDecommission(toolID)
	if err != nil {
		return nil, internal.ErrDecommissionNotFound
	}
	return rec, nil
}

func (s *Service) Decommissions() ([]*DecommissionRecord, error) {
	return s.repo.ListDecommissions()
}
