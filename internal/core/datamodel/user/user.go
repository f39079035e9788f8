package user

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;not null"`
	Role         string    `gorm:"column:role;not null"`
	AvatarURL    *string   `gorm:"column:avatar_url"`
	AccessZones  string    `gorm:"column:access_zones"` // comma separated, "*" for all
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }
