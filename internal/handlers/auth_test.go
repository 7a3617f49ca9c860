package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/database"
	"github.com/creatorhub/creator-review-api/internal/dto"
	"github.com/creatorhub/creator-review-api/internal/middleware"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
	"github.com/creatorhub/creator-review-api/internal/services"
)

type authTestEnv struct {
	db           *gorm.DB
	handler      *AuthHandler
	userService  *services.UserService
	tokenService *services.TokenService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokenService := services.NewTokenService("test-secret")
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:           db,
		handler:      handler,
		userService:  userService,
		tokenService: tokenService,
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.userService.CreateUser(services.CreateUserInput{
		Username: "admin",
		Password: "supersecret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"username": "admin",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token    string      `json:"token"`
		Role     models.Role `json:"role"`
		Username string      `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.Equal(t, models.RoleAdmin, response.Role)
	require.Equal(t, "admin", response.Username)

	claims, err := env.tokenService.Validate(response.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.userService.CreateUser(services.CreateUserInput{
		Username: "admin",
		Password: "supersecret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	body, err := json.Marshal(map[string]string{
		"username": "admin",
		"password": "wrongpassword",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginUnknownUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	body, err := json.Marshal(map[string]string{
		"username": "ghost",
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.userService.CreateUser(services.CreateUserInput{
		Username: "coord",
		Password: "supersecret",
		Role:     models.RoleCoordinator,
	})
	require.NoError(t, err)

	token, err := env.tokenService.Generate(user)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/auth/me", middleware.RequireAuth(env.tokenService), env.handler.GetCurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "coord", response.Username)
	require.Equal(t, models.RoleCoordinator, response.Role)
}

func TestAuthHandler_GetCurrentUserRejectsBadToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.GET("/api/auth/me", middleware.RequireAuth(env.tokenService), env.handler.GetCurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
