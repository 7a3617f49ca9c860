package models

import "time"

// VideoComment is one entry in a video's append-only feedback thread.
// No edit or delete is exposed.
type VideoComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;index" json:"video_id"`
	Author    string    `gorm:"type:varchar(100);not null" json:"author"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
