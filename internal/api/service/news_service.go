package service

import (
	"context"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

type NewsService interface {
	List(ctx context.Context, exchangeID *int64, page dto.PageParams) (*dto.Paginated[dto.NewsResponse], error)
	GetByID(ctx context.Context, id int64) (*dto.NewsResponse, error)
	Create(ctx context.Context, creatorID string, in dto.CreateNewsDTO) (*dto.NewsResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateNewsDTO) (*dto.NewsResponse, error)
	Delete(ctx context.Context, id int64) error
}

type newsService struct {
	newsRepo *repository.NewsRepo
}

func NewNewsService(newsRepo *repository.NewsRepo) NewsService {
	return &newsService{newsRepo: newsRepo}
}

func (s *newsService) List(ctx context.Context, exchangeID *int64, page dto.PageParams) (*dto.Paginated[dto.NewsResponse], error) {
	items, total, err := s.newsRepo.List(ctx, exchangeID, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.NewsResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, dto.FromNewsToResponse(n))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

func (s *newsService) GetByID(ctx context.Context, id int64) (*dto.NewsResponse, error) {
	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := dto.FromNewsToResponse(*item)
	return &resp, nil
}

func (s *newsService) Create(ctx context.Context, creatorID string, in dto.CreateNewsDTO) (*dto.NewsResponse, error) {
	publishedAt := time.Now().UTC()
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}
	item := &models.NewsItem{
		Title:           in.Title,
		Content:         in.Content,
		SourceName:      in.SourceName,
		SourceURL:       in.SourceURL,
		PublishedAt:     publishedAt,
		CreatedByUserID: &creatorID,
	}
	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	if len(in.ExchangeIDs) > 0 {
		if err := s.newsRepo.ReplaceExchanges(ctx, item, in.ExchangeIDs); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, item.ID)
}

func (s *newsService) Update(ctx context.Context, id int64, in dto.UpdateNewsDTO) (*dto.NewsResponse, error) {
	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Content != nil {
		item.Content = in.Content
	}
	if in.SourceName != nil {
		item.SourceName = in.SourceName
	}
	if in.SourceURL != nil {
		item.SourceURL = in.SourceURL
	}
	if in.PublishedAt != nil {
		item.PublishedAt = *in.PublishedAt
	}
	if err := s.newsRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	if in.ExchangeIDs != nil {
		if err := s.newsRepo.ReplaceExchanges(ctx, item, in.ExchangeIDs); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

func (s *newsService) Delete(ctx context.Context, id int64) error {
	return translateDBError(s.newsRepo.Delete(ctx, id))
}
