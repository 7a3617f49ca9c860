package models

import (
	"time"

	"gorm.io/gorm"
)

type CreatorType string

const (
	CreatorTypeCore    CreatorType = "Core"
	CreatorTypePremium CreatorType = "Premium"
	CreatorTypeAll     CreatorType = "All"
)

// TaskStatus is derived from dates and upload progress, never stored.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusOngoing   TaskStatus = "ongoing"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

// Task is a campaign brief that bounds how many videos a creator must submit.
type Task struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	TotalVideos   int            `gorm:"not null" json:"total_videos"`
	StartDate     time.Time      `gorm:"not null" json:"start_date"`
	EndDate       time.Time      `gorm:"not null" json:"end_date"`
	CreatorType   CreatorType    `gorm:"type:varchar(20);not null;default:'All'" json:"creator_type"`
	ReferenceLink string         `gorm:"type:varchar(500)" json:"reference_link,omitempty"`
	CreatedBy     string         `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Videos []Video `gorm:"foreignKey:TaskID" json:"videos,omitempty"`
}

// StatusAt derives the task lifecycle status at the given instant.
// Completion by quota wins over the overdue check so a task that filled
// its quota late still reads as completed.
func (t Task) StatusAt(now time.Time, uploaded int) TaskStatus {
	if uploaded >= t.TotalVideos && t.TotalVideos > 0 {
		return TaskStatusCompleted
	}
	if now.Before(t.StartDate) {
		return TaskStatusPending
	}
	if now.After(t.EndDate) {
		return TaskStatusOverdue
	}
	return TaskStatusOngoing
}

// AcceptsUploadsFrom reports whether a creator of the given type may submit
// against this task at the given time with the given upload count.
func (t Task) AcceptsUploadsFrom(userType UserType, now time.Time, uploaded int) bool {
	if t.CreatorType != CreatorTypeAll && string(t.CreatorType) != string(userType) {
		return false
	}
	status := t.StatusAt(now, uploaded)
	return status == TaskStatusOngoing || status == TaskStatusPending
}
