package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
	"github.com/creatorhub/creator-review-api/internal/storage"
)

var (
	ErrSectionTitleRequired = errors.New("section title is required")
	ErrSectionNotFound      = errors.New("homepage section not found")
)

// HomepageService manages the creative blocks of the public landing page.
type HomepageService struct {
	repo  repository.HomepageRepository
	store storage.Storage
}

// NewHomepageService creates a new HomepageService.
func NewHomepageService(repo repository.HomepageRepository, store storage.Storage) *HomepageService {
	return &HomepageService{repo: repo, store: store}
}

// CreateSectionInput represents a new homepage block, with an optional image.
type CreateSectionInput struct {
	Title       string
	LinkURL     string
	Position    int
	CreatedBy   string
	Image       io.Reader
	Filename    string
	ContentType string
}

// CreateSection stores a homepage block and its image when provided.
func (s *HomepageService) CreateSection(ctx context.Context, input CreateSectionInput) (*models.HomepageSection, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrSectionTitleRequired
	}

	section := &models.HomepageSection{
		Title:     strings.TrimSpace(input.Title),
		LinkURL:   input.LinkURL,
		Position:  input.Position,
		CreatedBy: input.CreatedBy,
	}

	if input.Image != nil {
		key := fmt.Sprintf("homepage/%s%s", uuid.NewString(), path.Ext(input.Filename))
		imageURL, err := s.store.Save(ctx, key, input.ContentType, input.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to store section image: %w", err)
		}
		section.ImageKey = key
		section.ImageURL = imageURL
	}

	if err := s.repo.Create(section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return section, nil
}

// ListSections returns all homepage blocks in display order.
func (s *HomepageService) ListSections() ([]models.HomepageSection, error) {
	sections, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// DeleteSection removes a homepage block and its stored image.
func (s *HomepageService) DeleteSection(ctx context.Context, id uint64) error {
	section, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("failed to find section: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	if section.ImageKey != "" {
		if err := s.store.Delete(ctx, section.ImageKey); err != nil {
			log.WithError(err).WithField("key", section.ImageKey).Warn("Failed to delete section image")
		}
	}
	return nil
}
