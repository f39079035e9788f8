package notification

import "time"

type Notification struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Type      string    `gorm:"column:type;not null;index"`
	Message   string    `gorm:"column:message;not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Read      bool      `gorm:"column:read;not null"`
	RefID     *string   `gorm:"column:ref_id;index"` // loan/usage/decommission the record points at
}

func (Notification) TableName() string { return "notifications" }
