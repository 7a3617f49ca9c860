package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// VideoStatus is the review lifecycle position of a submission. The numeric
// codes are part of the wire contract with the dashboard client.
type VideoStatus int

const (
	VideoStatusPending   VideoStatus = 0
	VideoStatusReview    VideoStatus = 1
	VideoStatusApproved  VideoStatus = 2
	VideoStatusRejected  VideoStatus = 3
	VideoStatusCompleted VideoStatus = 4
)

// Valid reports whether the status is a known lifecycle value.
func (s VideoStatus) Valid() bool {
	return s >= VideoStatusPending && s <= VideoStatusCompleted
}

func (s VideoStatus) String() string {
	switch s {
	case VideoStatusPending:
		return "Pending"
	case VideoStatusReview:
		return "Review"
	case VideoStatusApproved:
		return "Approved"
	case VideoStatusRejected:
		return "Rejected"
	case VideoStatusCompleted:
		return "Completed"
	}
	return fmt.Sprintf("Unknown(%d)", int(s))
}

// Video is a single creator submission against a task. The ID is an opaque
// uuid string; a repost of a rejected video gets a fresh ID.
type Video struct {
	ID                  string         `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID              uint64         `gorm:"not null;index" json:"task_id"`
	CreatorUsername     string         `gorm:"type:varchar(100);not null;index" json:"creator_username"`
	CoordinatorUsername string         `gorm:"type:varchar(100);index" json:"coordinator_username"`
	FileKey             string         `gorm:"type:varchar(500);not null" json:"-"`
	FileURL             string         `gorm:"type:varchar(500);not null" json:"file_url"`
	Status              VideoStatus    `gorm:"not null;default:0;index" json:"status"`
	SocialMediaURL      string         `gorm:"type:varchar(500)" json:"social_media_url,omitempty"`
	IsRepost            bool           `gorm:"not null;default:false" json:"is_repost"`
	ScoreConsistency    int            `gorm:"not null;default:0" json:"score_consistency"`
	ScoreCreativity     int            `gorm:"not null;default:0" json:"score_creativity"`
	ScoreContent        int            `gorm:"not null;default:0" json:"score_content"`
	ScoredBy            string         `gorm:"type:varchar(100)" json:"scored_by,omitempty"`
	ScoredAt            *time.Time     `json:"scored_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task     Task           `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Insights []InsightImage `gorm:"foreignKey:VideoID" json:"insights,omitempty"`
	Comments []VideoComment `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
}

// Scored reports whether ratings have been submitted.
func (v Video) Scored() bool {
	return v.ScoreConsistency > 0 && v.ScoreCreativity > 0 && v.ScoreContent > 0
}

// TotalScore is the sum of the three ratings, zero while unscored.
func (v Video) TotalScore() int {
	return v.ScoreConsistency + v.ScoreCreativity + v.ScoreContent
}
