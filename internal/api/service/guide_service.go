package service

import (
	"context"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

type GuideService interface {
	List(ctx context.Context, exchangeID *int64, page dto.PageParams) (*dto.Paginated[dto.GuideResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.GuideResponse, error)
	Create(ctx context.Context, creatorID string, in dto.CreateGuideDTO) (*dto.GuideResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateGuideDTO) (*dto.GuideResponse, error)
	Delete(ctx context.Context, id int64) error
}

type guideService struct {
	guideRepo *repository.GuideRepo
}

func NewGuideService(guideRepo *repository.GuideRepo) GuideService {
	return &guideService{guideRepo: guideRepo}
}

func (s *guideService) List(ctx context.Context, exchangeID *int64, page dto.PageParams) (*dto.Paginated[dto.GuideResponse], error) {
	guides, total, err := s.guideRepo.List(ctx, exchangeID, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.GuideResponse, 0, len(guides))
	for _, g := range guides {
		responses = append(responses, dto.FromGuideToResponse(g))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

func (s *guideService) GetByID(ctx context.Context, id int64) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := dto.FromGuideToResponse(*guide)
	return &resp, nil
}

func (s *guideService) Create(ctx context.Context, creatorID string, in dto.CreateGuideDTO) (*dto.GuideResponse, error) {
	publishedAt := time.Now().UTC()
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}
	guide := &models.GuideItem{
		Title:           in.Title,
		Content:         in.Content,
		ExchangeID:      in.ExchangeID,
		PublishedAt:     publishedAt,
		CreatedByUserID: &creatorID,
	}
	if err := s.guideRepo.Create(ctx, guide); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, guide.ID)
}

func (s *guideService) Update(ctx context.Context, id int64, in dto.UpdateGuideDTO) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	if in.Title != nil {
		guide.Title = *in.Title
	}
	if in.Content != nil {
		guide.Content = in.Content
	}
	if in.ExchangeID != nil {
		guide.ExchangeID = in.ExchangeID
	}
	if in.PublishedAt != nil {
		guide.PublishedAt = *in.PublishedAt
	}
	if err := s.guideRepo.Update(ctx, guide); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *guideService) Delete(ctx context.Context, id int64) error {
	return translateDBError(s.guideRepo.Delete(ctx, id))
}
