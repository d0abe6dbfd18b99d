package repository

import (
	"context"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f dto.UserFilterParams, page dto.PageParams) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil on miss so callers never act on a zero-value user
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("nickname = ?", nickname).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepository) List(ctx context.Context, f dto.UserFilterParams, page dto.PageParams) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if f.Email != "" {
		q = q.Where("email ILIKE ?", "%"+f.Email+"%")
	}
	if f.Nickname != "" {
		q = q.Where("nickname ILIKE ?", "%"+f.Nickname+"%")
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := q.Order("created_at desc").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
