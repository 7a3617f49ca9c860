package models

import "time"

// InsightKind distinguishes analytics screenshots from UTM screenshots.
// Only the insight kind counts toward the per-video attachment cap.
type InsightKind string

const (
	InsightKindInsight InsightKind = "insight"
	InsightKindUTM     InsightKind = "utm"
)

// InsightImage is an analytics or UTM screenshot attached to a video by
// its creator after approval.
type InsightImage struct {
	ID         uint64      `gorm:"primarykey" json:"id"`
	VideoID    string      `gorm:"type:varchar(36);not null;index" json:"video_id"`
	Kind       InsightKind `gorm:"type:varchar(20);not null;default:'insight'" json:"kind"`
	FileKey    string      `gorm:"type:varchar(500);not null" json:"-"`
	FileURL    string      `gorm:"type:varchar(500);not null" json:"file_url"`
	UploadedBy string      `gorm:"type:varchar(100);not null" json:"uploaded_by"`
	CreatedAt  time.Time   `json:"created_at"`
}
