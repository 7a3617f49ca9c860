package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrInvalidTotalVideos = errors.New("total videos must be positive")
	ErrInvalidCreatorType = errors.New("invalid creator type")
)

// TaskService handles campaign task business logic. Task status is never
// stored; it is derived from dates and upload progress on every read.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// TaskWithStatus pairs a task with its derived fields.
type TaskWithStatus struct {
	models.Task
	UploadedVideos int               `json:"uploaded_videos"`
	Status         models.TaskStatus `json:"status"`
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title         string
	Description   string
	TotalVideos   int
	StartDate     time.Time
	EndDate       time.Time
	CreatorType   models.CreatorType
	ReferenceLink string
	CreatedBy     string
}

// CreateTask creates a campaign task after validation.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.TotalVideos <= 0 {
		return nil, ErrInvalidTotalVideos
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.CreatorType == "" {
		input.CreatorType = models.CreatorTypeAll
	}
	switch input.CreatorType {
	case models.CreatorTypeCore, models.CreatorTypePremium, models.CreatorTypeAll:
	default:
		return nil, ErrInvalidCreatorType
	}

	task := &models.Task{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		TotalVideos:   input.TotalVideos,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		CreatorType:   input.CreatorType,
		ReferenceLink: input.ReferenceLink,
		CreatedBy:     input.CreatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	// CreatorType narrows the list to tasks open to the given type; set for
	// creator-role callers from their own user type.
	CreatorType *models.CreatorType
	// Status filters on the derived status, applied after the database read.
	Status   *models.TaskStatus
	Page     int
	PageSize int
}

// ListTasks lists tasks with derived status and upload counts. The status
// filter runs in memory since the status is derived, not stored; the
// filtered result preserves the underlying list order.
func (s *TaskService) ListTasks(input ListTasksInput) ([]TaskWithStatus, int64, error) {
	filter := repository.TaskFilter{
		CreatorType: input.CreatorType,
		Page:        input.Page,
		PageSize:    input.PageSize,
	}
	if input.Status != nil {
		// Derived-status filtering cannot be pushed into SQL, so page over
		// the full candidate set and window afterwards.
		filter.Page = 0
		filter.PageSize = 0
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	result := make([]TaskWithStatus, 0, len(tasks))
	for _, task := range tasks {
		uploaded, err := s.taskRepo.CountUploads(task.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count uploads: %w", err)
		}
		entry := TaskWithStatus{
			Task:           task,
			UploadedVideos: int(uploaded),
			Status:         task.StatusAt(now, int(uploaded)),
		}
		if input.Status != nil && entry.Status != *input.Status {
			continue
		}
		result = append(result, entry)
	}

	if input.Status != nil {
		total = int64(len(result))
		if input.Page > 0 && input.PageSize > 0 {
			start := (input.Page - 1) * input.PageSize
			if start > len(result) {
				start = len(result)
			}
			end := start + input.PageSize
			if end > len(result) {
				end = len(result)
			}
			result = result[start:end]
		}
	}

	return result, total, nil
}

// GetTask returns a task with derived fields.
func (s *TaskService) GetTask(id uint64) (*TaskWithStatus, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	uploaded, err := s.taskRepo.CountUploads(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count uploads: %w", err)
	}

	return &TaskWithStatus{
		Task:           *task,
		UploadedVideos: int(uploaded),
		Status:         task.StatusAt(time.Now(), int(uploaded)),
	}, nil
}

// UpdateTaskInput carries optional task changes.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	TotalVideos   *int
	StartDate     *time.Time
	EndDate       *time.Time
	CreatorType   *models.CreatorType
	ReferenceLink *string
}

// UpdateTask applies the provided changes to an existing task.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.TotalVideos != nil {
		if *input.TotalVideos <= 0 {
			return nil, ErrInvalidTotalVideos
		}
		task.TotalVideos = *input.TotalVideos
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if !task.EndDate.After(task.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.CreatorType != nil {
		switch *input.CreatorType {
		case models.CreatorTypeCore, models.CreatorTypePremium, models.CreatorTypeAll:
			task.CreatorType = *input.CreatorType
		default:
			return nil, ErrInvalidCreatorType
		}
	}
	if input.ReferenceLink != nil {
		task.ReferenceLink = *input.ReferenceLink
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
