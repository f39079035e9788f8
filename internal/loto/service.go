package loto

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
)

// Repository defines data access for lockout devices and their usage ledger.
// StartUsage and EndUsage must write the device row and the usage record in
// one transaction.
type Repository interface {
	CreateDevice(d *LockoutDevice) error
	GetDevice(id string) (*LockoutDevice, error)
	ListDevices(f DeviceFilter) ([]*LockoutDevice, error)
	SaveDevice(d *LockoutDevice) error
	DeleteDevice(id string) error

	StartUsage(d *LockoutDevice, rec *UsageRecord) error
	EndUsage(d *LockoutDevice, recordID string, at time.Time) error
	GetUsage(recordID string) (*UsageRecord, error)
	ListUsage(f UsageFilter) ([]*UsageRecord, error)
}

type Service struct {
	repo   Repository
	users  tool.UserDirectory
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users tool.UserDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) Register(dto RegisterDeviceDTO) (*LockoutDevice, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("device validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	deviceType, err := ParseDeviceType(dto.Type)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(dto.ID)
	if id == "" {
		id = uuid.New().String()
	} else if existing, _ := s.repo.GetDevice(id); existing != nil {
		return nil, internal.ErrDeviceAlreadyRegistered
	}

	now := time.Now()
	d := &LockoutDevice{
		ID:              id,
		Name:            dto.Name,
		Type:            deviceType,
		Brand:           dto.Brand,
		Color:           dto.Color,
		Status:          StatusAvailable,
		Location:        dto.Location,
		AcquisitionDate: dto.AcquisitionDate,
		Observations:    dto.Observations,
		ImageURL:        dto.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateDevice(d); err != nil {
		s.logger.Error("failed to create device", "error", err, "device_id", id)
		return nil, err
	}

	s.logger.Info("lockout device registered", "device_id", d.ID, "name", d.Name, "type", d.Type)
	return d, nil
}

func (s *Service) Update(id string, dto UpdateDeviceDTO) (*LockoutDevice, error) {
	d, err := s.repo.GetDevice(id)
	if err != nil {
		return nil, internal.ErrDeviceNotFound
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Brand != nil {
		d.Brand = *dto.Brand
	}
	if dto.Color != nil {
		d.Color = *dto.Color
	}
	if dto.Location != nil {
		d.Location = *dto.Location
	}
	if dto.Observations != nil {
		d.Observations = *dto.Observations
	}
	if dto.ImageURL != nil {
		d.ImageURL = dto.ImageURL
	}
	if dto.Condition != nil {
		if err := d.SetCondition(Status(*dto.Condition), time.Now()); err != nil {
			return nil, err
		}
	}
	d.UpdatedAt = time.Now()

	if err := s.repo.SaveDevice(d); err != nil {
		s.logger.Error("failed to update device", "error", err, "device_id", id)
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(id string) (*LockoutDevice, error) {
	d, err := s.repo.GetDevice(id)
	if err != nil {
		return nil, internal.ErrDeviceNotFound
	}
	return d, nil
}

func (s *Service) List(f DeviceFilter) ([]*LockoutDevice, error) {
	return s.repo.ListDevices(f)
}

// Delete removes a device from the registry. A device under an active
// lockout may not be removed.
func (s *Service) Delete(id string) error {
	d, err := s.repo.GetDevice(id)
	if err != nil {
		return internal.ErrDeviceNotFound
	}

	if d.Status == StatusInUse {
		s.logger.Warn("delete rejected for device in use", "device_id", id)
		return internal.ErrDeviceInUse
	}

	if err := s.repo.DeleteDevice(id); err != nil {
		s.logger.Error("failed to delete device", "error", err, "device_id", id)
		return err
	}

	s.logger.Info("lockout device removed", "device_id", id)
	return nil
}

// StartUsage opens a lockout: the device moves to in_use and a usage record
// is appended, both in the same transaction.
func (s *Service) StartUsage(deviceID string, dto StartUsageDTO) (*UsageRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.Lookup(dto.UserID); err != nil {
		s.logger.Warn("lockout start for unknown user", "user_id", dto.UserID, "device_id", deviceID)
		return nil, internal.ErrUserNotFound
	}

	d, err := s.repo.GetDevice(deviceID)
	if err != nil {
		return nil, internal.ErrDeviceNotFound
	}

	now := time.Now()
	if err := d.StartUse(dto.UserID, now); err != nil {
		s.logger.Warn("lockout start rejected", "device_id", deviceID, "status", d.Status)
		return nil, err
	}

	rec := &UsageRecord{
		ID:               uuid.New().String(),
		DeviceID:         d.ID,
		UserID:           dto.UserID,
		StartDate:        now,
		LockLocation:     dto.LockLocation,
		LockReason:       dto.LockReason,
		WorkPermitNumber: dto.WorkPermitNumber,
		PhotoURL:         dto.PhotoURL,
		Notes:            dto.Notes,
	}

	if err := s.repo.StartUsage(d, rec); err != nil {
		s.logger.Error("failed to persist lockout start", "error", err, "device_id", deviceID)
		return nil, err
	}

	s.logger.Info("lockout started",
		"device_id", d.ID,
		"record_id", rec.ID,
		"user_id", dto.UserID,
		"lock_location", dto.LockLocation)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewLockoutStartedEvent(d.ID, d.Name, dto.UserID, dto.LockLocation))
	}

	return rec, nil
}

// EndUsage closes a usage record and frees the device.
func (s *Service) EndUsage(recordID string) (*UsageRecord, error) {
	rec, err := s.repo.GetUsage(recordID)
	if err != nil {
		return nil, internal.ErrUsageNotFound
	}
	if !rec.Open() {
		return nil, internal.ErrUsageAlreadyEnded
	}

	d, err := s.repo.GetDevice(rec.DeviceID)
	if err != nil {
		return nil, internal.ErrDeviceNotFound
	}

	now := time.Now()
	if err := d.EndUse(now); err != nil {
		return nil, err
	}

	if err := s.repo.EndUsage(d, rec.ID, now); err != nil {
		s.logger.Error("failed to persist lockout end", "error", err, "record_id", recordID)
		return nil, err
	}
	rec.EndDate = &now

	s.logger.Info("lockout ended", "device_id", d.ID, "record_id", rec.ID, "user_id", rec.UserID)

	if s.bus != nil {
		s.bus.PublishSync(context.Background(), events.NewLockoutEndedEvent(d.ID, d.Name, rec.UserID))
	}

	return rec, nil
}

func (s *Service) Usage(f UsageFilter) ([]*UsageRecord, error) {
	return s.repo.ListUsage(f)
}
