package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewUserService(repository.NewUserRepository(db))
}

func TestUserService_CreateUser(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.CreateUser(CreateUserInput{
		Username: "admin",
		Password: "supersecret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestUserService_CreateUserValidation(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(CreateUserInput{Password: "supersecret", Role: models.RoleAdmin})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.CreateUser(CreateUserInput{Username: "admin", Password: "short", Role: models.RoleAdmin})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.CreateUser(CreateUserInput{Username: "admin", Password: "supersecret", Role: "Intern"})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_DuplicateUsernameRejected(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(CreateUserInput{
		Username: "admin",
		Password: "supersecret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserInput{
		Username: "admin",
		Password: "othersecret",
		Role:     models.RoleClient,
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_CreatorRequiresCoordinator(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(CreateUserInput{
		Username: "alice",
		Password: "supersecret",
		Role:     models.RoleCreator,
		UserType: models.UserTypeCore,
	})
	require.ErrorIs(t, err, ErrCoordinatorRequired)

	_, err = svc.CreateUser(CreateUserInput{
		Username:            "alice",
		Password:            "supersecret",
		Role:                models.RoleCreator,
		UserType:            models.UserTypeCore,
		CoordinatorUsername: "ghost",
	})
	require.ErrorIs(t, err, ErrCoordinatorNotFound)

	// A non-coordinator account cannot be referenced either.
	_, err = svc.CreateUser(CreateUserInput{
		Username: "client",
		Password: "supersecret",
		Role:     models.RoleClient,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserInput{
		Username:            "alice",
		Password:            "supersecret",
		Role:                models.RoleCreator,
		UserType:            models.UserTypeCore,
		CoordinatorUsername: "client",
	})
	require.ErrorIs(t, err, ErrCoordinatorNotFound)

	_, err = svc.CreateUser(CreateUserInput{
		Username: "coord",
		Password: "supersecret",
		Role:     models.RoleCoordinator,
	})
	require.NoError(t, err)

	creator, err := svc.CreateUser(CreateUserInput{
		Username:            "alice",
		Password:            "supersecret",
		Role:                models.RoleCreator,
		UserType:            models.UserTypeCore,
		CoordinatorUsername: "coord",
	})
	require.NoError(t, err)
	require.Equal(t, "coord", creator.CoordinatorUsername)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(CreateUserInput{
		Username: "coord",
		Password: "supersecret",
		Role:     models.RoleCoordinator,
	})
	require.NoError(t, err)

	creator, err := svc.CreateUser(CreateUserInput{
		Username:            "alice",
		Password:            "supersecret",
		Role:                models.RoleCreator,
		UserType:            models.UserTypeCore,
		CoordinatorUsername: "coord",
	})
	require.NoError(t, err)

	premium := models.UserTypePremium
	updated, err := svc.UpdateUser(creator.ID, UpdateUserInput{UserType: &premium})
	require.NoError(t, err)
	require.Equal(t, models.UserTypePremium, updated.UserType)

	// A creator cannot be re-pointed at a missing coordinator.
	ghost := "ghost"
	_, err = svc.UpdateUser(creator.ID, UpdateUserInput{CoordinatorUsername: &ghost})
	require.ErrorIs(t, err, ErrCoordinatorNotFound)

	short := "short"
	_, err = svc.UpdateUser(creator.ID, UpdateUserInput{Password: &short})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.CreateUser(CreateUserInput{
		Username: "client",
		Password: "supersecret",
		Role:     models.RoleClient,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))
	require.ErrorIs(t, svc.DeleteUser(user.ID), ErrUserNotFound)
}
