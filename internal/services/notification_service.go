package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationInvalid  = errors.New("title and message are required")
)

// NotificationService handles broadcast announcements.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// CreateNotification creates a new announcement.
func (s *NotificationService) CreateNotification(title, message, createdBy string) (*models.Notification, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return nil, ErrNotificationInvalid
	}

	n := &models.Notification{
		Title:     strings.TrimSpace(title),
		Message:   strings.TrimSpace(message),
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// ListNotifications lists announcements, newest first.
func (s *NotificationService) ListNotifications(page, pageSize int) ([]models.Notification, int64, error) {
	notifications, total, err := s.repo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// UpdateNotification edits an existing announcement.
func (s *NotificationService) UpdateNotification(id uint64, title, message *string) (*models.Notification, error) {
	n, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, ErrNotificationInvalid
		}
		n.Title = strings.TrimSpace(*title)
	}
	if message != nil {
		if strings.TrimSpace(*message) == "" {
			return nil, ErrNotificationInvalid
		}
		n.Message = strings.TrimSpace(*message)
	}

	if err := s.repo.Update(n); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return n, nil
}

// DeleteNotification removes an announcement.
func (s *NotificationService) DeleteNotification(id uint64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
