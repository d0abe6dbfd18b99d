package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in dto.RegisterDTO) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairResponse, *models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPairResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileDTO) (*models.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordDTO) error {
	args := m.Called(ctx, userID, in)
	return args.Error(0)
}

func setupAuthRouter(svc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).RegisterRoutes(r.Group("/auth"))
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(v)
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestRegisterEndpoint_Created(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Register", mock.Anything, dto.RegisterDTO{
		Email:    "new@example.com",
		Nickname: "newbie",
		Password: "password123",
	}).Return(&models.User{
		ID:       "u1",
		Email:    "new@example.com",
		Nickname: "newbie",
		Role:     "user",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":    "new@example.com",
		"nickname": "newbie",
		"password": "password123",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.UserResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
	svc.AssertExpectations(t)
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailInUse)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":    "taken@example.com",
		"nickname": "newbie",
		"password": "password123",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpoint_InvalidPayload(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, gin.H{
		"email":    "not-an-email",
		"nickname": "x",
		"password": "short",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLoginEndpoint_Success(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Login", mock.Anything, dto.LoginDTO{
		Email:    "user@example.com",
		Password: "correct horse",
	}).Return(&dto.TokenPairResponse{
		AccessToken:  "acc",
		RefreshToken: "ref",
		TokenType:    "bearer",
		ExpiresIn:    900,
	}, &models.User{ID: "u1", Email: "user@example.com", Nickname: "alice"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    "user@example.com",
		"password": "correct horse",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Tokens dto.TokenPairResponse `json:"tokens"`
		User   dto.UserResponse      `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acc", resp.Tokens.AccessToken)
	assert.Equal(t, "alice", resp.User.Nickname)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Login", mock.Anything, mock.Anything).Return(nil, nil, service.ErrInvalidCredentials)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, gin.H{
		"email":    "user@example.com",
		"password": "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRefreshEndpoint_InvalidToken(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Refresh", mock.Anything, "stale").Return(nil, service.ErrInvalidToken)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", jsonBody(t, gin.H{
		"refresh_token": "stale",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileEndpoint_RequiresToken(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestProfileEndpoint_RejectsRefreshToken(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("ValidateToken", "refresh-token").Return(&service.Claims{
		UserID:    "u1",
		Role:      "user",
		TokenType: "refresh",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer refresh-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestProfileEndpoint_Success(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("ValidateToken", "good-token").Return(&service.Claims{
		UserID:    "u1",
		Role:      "user",
		TokenType: "access",
	}, nil)
	svc.On("GetProfile", mock.Anything, "u1").Return(&models.User{
		ID:       "u1",
		Email:    "user@example.com",
		Nickname: "alice",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.UserResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Nickname)
}
