package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

func init() {
	logger.InitializeForTest()
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*models.MeResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeResponse), args.Error(1)
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
		return req.Email == "dana@uni.edu"
	})).Return(&models.AuthResponse{
		Message: "Registration successful",
		Token:   "token-123",
		User:    models.UserInfo{ID: 7, Email: "dana@uni.edu", Campus: "North", Role: models.UserRoleStudent},
	}, nil)

	handler := NewAuthHandler(authService)
	router := gin.New()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", gin.H{
		"email":    "dana@uni.edu",
		"password": "sup3rsecret",
		"campus":   "North",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	authService.AssertExpectations(t)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	authService := new(MockAuthService)
	handler := NewAuthHandler(authService)
	router := gin.New()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", gin.H{
		"email":    "not-an-email",
		"password": "sup3rsecret",
		"campus":   "North",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	authService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthorized)

	handler := NewAuthHandler(authService)
	router := gin.New()
	router.POST("/login", handler.Login)

	w := postJSON(router, "/login", gin.H{
		"email":    "dana@uni.edu",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Me", mock.Anything, int64(7)).Return(&models.MeResponse{
		User: models.UserInfo{ID: 7, Email: "dana@uni.edu", Campus: "North", Role: models.UserRoleStudent},
	}, nil)

	handler := NewAuthHandler(authService)
	router := gin.New()
	router.GET("/me", withSession(7, "dana@uni.edu", models.UserRoleStudent), handler.Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User models.UserInfo `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dana@uni.edu", resp.User.Email)
}
