package settings

import "time"

// Settings is a single-row table; ID is always 1.
type Settings struct {
	ID                     int       `gorm:"primaryKey;column:id"`
	CalibrationWarningDays int       `gorm:"column:calibration_warning_days;not null"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (Settings) TableName() string { return "app_settings" }
