package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/constants"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrCoordinatorRequired  = errors.New("creator accounts require a coordinator username")
	ErrCoordinatorNotFound  = errors.New("coordinator username does not reference a coordinator account")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles admin-managed credential lifecycle. Accounts are
// never self-served.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the fields of a new credential.
type CreateUserInput struct {
	Username            string
	Password            string
	Role                models.Role
	UserType            models.UserType
	CoordinatorUsername string
}

// CreateUser provisions a credential after validating role-specific rules.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if input.Role == models.RoleCreator {
		if strings.TrimSpace(input.CoordinatorUsername) == "" {
			return nil, ErrCoordinatorRequired
		}
		if err := s.ensureCoordinator(input.CoordinatorUsername); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:            username,
		PasswordHash:        string(hashed),
		Role:                input.Role,
		UserType:            input.UserType,
		CoordinatorUsername: strings.TrimSpace(input.CoordinatorUsername),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListUsersInput holds filters for listing credentials.
type ListUsersInput struct {
	Role        *models.Role
	Coordinator string
	Page        int
	PageSize    int
}

// ListUsers lists credentials with optional role and coordinator filters.
func (s *UserService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Role:        input.Role,
		Coordinator: input.Coordinator,
		Page:        input.Page,
		PageSize:    input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUserInput carries optional credential changes.
type UpdateUserInput struct {
	Password            *string
	UserType            *models.UserType
	CoordinatorUsername *string
}

// UpdateUser applies the provided changes to an existing credential.
// Username and role are immutable after creation.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}
	if input.UserType != nil {
		user.UserType = *input.UserType
	}
	if input.CoordinatorUsername != nil {
		if user.Role == models.RoleCreator {
			if strings.TrimSpace(*input.CoordinatorUsername) == "" {
				return nil, ErrCoordinatorRequired
			}
			if err := s.ensureCoordinator(*input.CoordinatorUsername); err != nil {
				return nil, err
			}
		}
		user.CoordinatorUsername = strings.TrimSpace(*input.CoordinatorUsername)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a credential.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) ensureCoordinator(username string) error {
	coordinator, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCoordinatorNotFound
		}
		return fmt.Errorf("failed to check coordinator: %w", err)
	}
	if coordinator.Role != models.RoleCoordinator {
		return ErrCoordinatorNotFound
	}
	return nil
}
