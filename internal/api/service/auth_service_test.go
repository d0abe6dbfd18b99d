package service

import (
	"context"
	"testing"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/config"
	"coindex/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f dto.UserFilterParams, page dto.PageParams) ([]models.User, int64, error) {
	args := m.Called(ctx, f, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository) *authService {
	cfg := &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	}
	return NewAuthService(userRepo, tokenRepo, cfg).(*authService)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByNickname", mock.Anything, "newbie").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" &&
			u.Nickname == "newbie" &&
			u.Role == "user" &&
			u.Password != "" && u.Password != "password123"
	})).Return(nil)

	user, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email:    "new@example.com",
		Nickname: "newbie",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailInUse(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email:    "taken@example.com",
		Nickname: "newbie",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailInUse)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_NicknameInUse(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByNickname", mock.Anything, "taken").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email:    "new@example.com",
		Nickname: "taken",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrNicknameInUse)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo)

	hashed, err := auth.HashPassword("correct horse")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:       "u1",
		Email:    "user@example.com",
		Nickname: "alice",
		Password: hashed,
		Role:     "user",
	}, nil)
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)
	userRepo.On("UpdateLastLogin", mock.Anything, "u1", mock.Anything).Return(nil)

	pair, user, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@example.com",
		Password: "correct horse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository))

	hashed, _ := auth.HashPassword("correct horse")
	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(&models.User{
		ID:       "u1",
		Password: hashed,
	}, nil)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo)

	user := &models.User{ID: "u1", Role: "user"}
	refreshToken, err := svc.signToken(user, "refresh", "jti-1", time.Hour)
	assert.NoError(t, err)

	tokenRepo.On("FindByID", mock.Anything, "jti-1").Return(&models.RefreshToken{
		ID:        "jti-1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", mock.Anything, "u1").Return(user, nil)
	tokenRepo.On("Revoke", mock.Anything, "jti-1").Return(nil)
	tokenRepo.On("Create", mock.Anything, mock.MatchedBy(func(tok *models.RefreshToken) bool {
		return tok.ID != "jti-1" && tok.UserID == "u1"
	})).Return(nil)

	pair, err := svc.Refresh(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	tokenRepo.AssertExpectations(t)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), tokenRepo)

	accessToken, err := svc.signToken(&models.User{ID: "u1"}, "access", "", time.Hour)
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	tokenRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRefresh_RejectsRevokedToken(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), tokenRepo)

	refreshToken, _ := svc.signToken(&models.User{ID: "u1"}, "refresh", "jti-2", time.Hour)
	tokenRepo.On("FindByID", mock.Anything, "jti-2").Return(&models.RefreshToken{
		ID:        "jti-2",
		UserID:    "u1",
		Revoked:   true,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	_, err := svc.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	tokenRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestRefresh_RejectsExpiredStoredToken(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), tokenRepo)

	refreshToken, _ := svc.signToken(&models.User{ID: "u1"}, "refresh", "jti-3", time.Hour)
	tokenRepo.On("FindByID", mock.Anything, "jti-3").Return(&models.RefreshToken{
		ID:        "jti-3",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	_, err := svc.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository))

	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository))

	expired, err := svc.signToken(&models.User{ID: "u1"}, "access", "", -time.Minute)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo)

	hashed, _ := auth.HashPassword("old password")
	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{
		ID:       "u1",
		Password: hashed,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return auth.VerifyPassword(u.Password, "new password") == nil
	})).Return(nil)
	tokenRepo.On("RevokeAllForUser", mock.Anything, "u1").Return(nil)

	err := svc.ChangePassword(context.Background(), "u1", dto.ChangePasswordDTO{
		CurrentPassword: "old password",
		NewPassword:     "new password",
	})

	assert.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo)

	hashed, _ := auth.HashPassword("old password")
	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{
		ID:       "u1",
		Password: hashed,
	}, nil)

	err := svc.ChangePassword(context.Background(), "u1", dto.ChangePasswordDTO{
		CurrentPassword: "nope",
		NewPassword:     "new password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenRepo.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
}
