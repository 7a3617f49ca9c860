package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a broadcast announcement authored by an admin.
type Notification struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	CreatedBy string         `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
