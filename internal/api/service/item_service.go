package service

import (
	"context"

	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

// ItemService reads polymorphic base rows without resolving the concrete
// kind.
type ItemService interface {
	GetByID(ctx context.Context, id int64) (*models.Item, error)
}

type itemService struct {
	itemRepo *repository.ItemRepo
}

func NewItemService(itemRepo *repository.ItemRepo) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func (s *itemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	return item, nil
}
