package service

import (
	"context"
	"errors"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
	"coindex/internal/config"
	"coindex/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNicknameInUse      = errors.New("nickname already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// dummy bcrypt hash compared against on unknown-user login so both paths
// take roughly the same time
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims carried by both token kinds. TokenType distinguishes access from
// refresh so one can never be redeemed as the other.
type Claims struct {
	UserID    string `json:"sub"`
	Role      string `json:"role"`
	TokenType string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, in dto.RegisterDTO) (*models.User, error)
	Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairResponse, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileDTO) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordDTO) error
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, in dto.RegisterDTO) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailInUse
	}
	if _, err := s.userRepo.FindByNickname(ctx, in.Nickname); err == nil {
		return nil, ErrNicknameInUse
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    in.Email,
		Nickname: in.Nickname,
		Password: hashed,
		Role:     "user",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the pre-checks race with concurrent registrations, the unique
		// index is the real arbiter
		if isUniqueViolation(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairResponse, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		auth.VerifyPassword(dummyHash, in.Password)
		return nil, nil, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.Password, in.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		// login still succeeds, last_login is informational
		_ = err
	}
	return pair, user, nil
}

// Refresh validates a refresh token, revokes its persisted id and issues a
// fresh pair. A token whose type claim is not "refresh" is rejected even if
// otherwise valid.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "refresh" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Rotation: the redeemed token id is dead from here on.
	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}
	return s.issueTokenPair(ctx, user)
}

func (s *authService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenPairResponse, error) {
	accessToken, err := s.signToken(user, "access", "", s.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	jti := uuid.New().String()
	refreshToken, err := s.signToken(user, "refresh", jti, s.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	err = s.refreshTokenRepo.Create(ctx, &models.RefreshToken{
		ID:        jti,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) signToken(user *models.User, tokenType, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileDTO) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Nickname != nil && *in.Nickname != user.Nickname {
		if _, err := s.userRepo.FindByNickname(ctx, *in.Nickname); err == nil {
			return nil, ErrNicknameInUse
		}
		user.Nickname = *in.Nickname
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNicknameInUse
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every outstanding refresh token of the user.
func (s *authService) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordDTO) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.VerifyPassword(user.Password, in.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.refreshTokenRepo.RevokeAllForUser(ctx, userID)
}
