package loto

import "time"

type LockoutDevice struct {
	ID              string    `gorm:"primaryKey;column:id"`
	Name            string    `gorm:"column:name;not null"`
	Type            string    `gorm:"column:type;not null"`
	Brand           string    `gorm:"column:brand"`
	Color           string    `gorm:"column:color"`
	Status          string    `gorm:"column:status;not null;index"`
	Location        string    `gorm:"column:location"`
	AcquisitionDate time.Time `gorm:"column:acquisition_date"`
	Observations    string    `gorm:"column:observations"`
	ImageURL        *string   `gorm:"column:image_url"`
	CurrentUserID   *string   `gorm:"column:current_user_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (LockoutDevice) TableName() string { return "lockout_devices" }

type LockoutUsageRecord struct {
	ID               string     `gorm:"primaryKey;column:id"`
	DeviceID         string     `gorm:"column:device_id;not null;index"`
	UserID           string     `gorm:"column:user_id;not null;index"`
	StartDate        time.Time  `gorm:"column:start_date;not null"`
	EndDate          *time.Time `gorm:"column:end_date;index"`
	LockLocation     string     `gorm:"column:lock_location;not null"`
	LockReason       string     `gorm:"column:lock_reason;not null"`
	WorkPermitNumber *string    `gorm:"column:work_permit_number"`
	PhotoURL         *string    `gorm:"column:photo_url"`
	Notes            *string    `gorm:"column:notes"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
}

func (LockoutUsageRecord) TableName() string { return "lockout_usage_records" }
