package service

import (
	"context"

	"coindex/internal/api/dto"
	"coindex/internal/api/repository"
)

// UserService backs the admin user directory.
type UserService interface {
	List(ctx context.Context, f dto.UserFilterParams, page dto.PageParams) (*dto.Paginated[dto.UserResponse], error)
	Block(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, f dto.UserFilterParams, page dto.PageParams) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.FromUserToResponse(u))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

// Block is accepted but not implemented yet; there is no blocked flag on the
// user model and the auth flow does not consult one.
func (s *userService) Block(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return translateDBError(err)
	}
	return ErrNotImplemented
}
