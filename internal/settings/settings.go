package settings

import (
	"log/slog"
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

// DefaultCalibrationWarningDays is used until an administrator changes it.
const DefaultCalibrationWarningDays = 30

type Settings struct {
	CalibrationWarningDays int       `json:"calibration_warning_days"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type UpdateSettingsDTO struct {
	CalibrationWarningDays int `json:"calibration_warning_days"`
}

func (d UpdateSettingsDTO) Validate() error {
	if d.CalibrationWarningDays < 1 || d.CalibrationWarningDays > 365 {
		return internal.NewValidationError("calibration_warning_days must be between 1 and 365", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Repository interface {
	Get() (*Settings, error)
	Save(s *Settings) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the current settings, falling back to defaults when nothing
// has been stored yet.
func (s *Service) Get() (*Settings, error) {
	stored, err := s.repo.Get()
	if err != nil {
		return &Settings{CalibrationWarningDays: DefaultCalibrationWarningDays}, nil
	}
	return stored, nil
}

func (s *Service) Update(dto UpdateSettingsDTO) (*Settings, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	updated := &Settings{
		CalibrationWarningDays: dto.CalibrationWarningDays,
		UpdatedAt:              time.Now(),
	}

	if err := s.repo.Save(updated); err != nil {
		s.logger.Error("failed to save settings", "error", err)
		return nil, err
	}

	s.logger.Info("settings updated", "calibration_warning_days", dto.CalibrationWarningDays)
	return updated, nil
}

// CalibrationWarningDays is a convenience for the reporting aggregator.
func (s *Service) CalibrationWarningDays() int {
	current, _ := s.Get()
	return current.CalibrationWarningDays
}
