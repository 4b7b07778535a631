package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/internal/app/service"
	"github.com/neonstore/neonstore-backend/internal/db"
	"github.com/neonstore/neonstore-backend/internal/middleware"
	"github.com/neonstore/neonstore-backend/pkg/util"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/refresh", ctrl.RefreshToken)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetProfile)
	router.PUT("/me", authMiddleware.Authenticate(), ctrl.UpdateProfile)

	return router, authService
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "User registered successfully", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])
}

func TestAuthController_Register_InvalidEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "not-an-email",
		Password: "password123",
		Name:     "Test User",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Register_MissingFields(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		reqBody RegisterRequest
	}{
		{
			name: "missing email",
			reqBody: RegisterRequest{
				Password: "password123",
				Name:     "Test User",
			},
		},
		{
			name: "missing password",
			reqBody: RegisterRequest{
				Email: "test@example.com",
				Name:  "Test User",
			},
		},
		{
			name: "missing name",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Password: "password123",
			},
		},
		{
			name: "short password",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Password: "123",
				Name:     "Test User",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", tt.reqBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "test@example.com",
		Password: "password456",
		Name:     "Another User",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email is already in use")
}

func TestAuthController_Login_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	w := postJSON(router, "/login", LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Login successful", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotEmpty(t, response["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	w := postJSON(router, "/login", LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthController_RefreshToken(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	w := postJSON(router, "/refresh", RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])

	claims, err := util.ValidateToken(response["access_token"], "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthController_RefreshToken_Invalid(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/refresh", RefreshTokenRequest{
		RefreshToken: "not.a.token",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_GetProfile(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, tokens, err := authService.Register("test@example.com", "password123", "Test User")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	userMap := response["user"].(map[string]interface{})
	assert.Equal(t, user.Email, userMap["email"])
	assert.Equal(t, user.Name, userMap["name"])

	// Password hash never leaves the API.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthController_GetProfile_Unauthorized(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_GetProfile_InvalidToken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateProfile(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("test@example.com", "password123", "Old Name")
	require.NoError(t, err)

	body, _ := json.Marshal(UpdateProfileRequest{Name: "New Name"})
	req := httptest.NewRequest("PUT", "/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	userMap := response["user"].(map[string]interface{})
	assert.Equal(t, "New Name", userMap["name"])
}
