package models

import (
	"time"

	"gorm.io/gorm"
)

// HomepageSection is a creative block rendered on the public landing page.
type HomepageSection struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	ImageKey  string         `gorm:"type:varchar(500)" json:"-"`
	ImageURL  string         `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	LinkURL   string         `gorm:"type:varchar(500)" json:"link_url,omitempty"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedBy string         `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
