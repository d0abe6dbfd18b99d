package service

import (
	"context"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

type StaticPageService interface {
	GetAll(ctx context.Context) ([]models.StaticPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.StaticPage, error)
	Create(ctx context.Context, editorID string, in dto.CreateStaticPageDTO) (*models.StaticPage, error)
	Update(ctx context.Context, slug, editorID string, in dto.UpdateStaticPageDTO) (*models.StaticPage, error)
	Delete(ctx context.Context, slug string) error
}

type staticPageService struct {
	pageRepo *repository.StaticPageRepo
}

func NewStaticPageService(pageRepo *repository.StaticPageRepo) StaticPageService {
	return &staticPageService{pageRepo: pageRepo}
}

func (s *staticPageService) GetAll(ctx context.Context) ([]models.StaticPage, error) {
	return s.pageRepo.GetAll(ctx)
}

func (s *staticPageService) GetBySlug(ctx context.Context, slug string) (*models.StaticPage, error) {
	page, err := s.pageRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}
	return page, nil
}

func (s *staticPageService) Create(ctx context.Context, editorID string, in dto.CreateStaticPageDTO) (*models.StaticPage, error) {
	page := &models.StaticPage{
		Slug:                in.Slug,
		Title:               in.Title,
		Content:             in.Content,
		LastUpdatedByUserID: &editorID,
	}
	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, translateDBError(err)
	}
	return page, nil
}

func (s *staticPageService) Update(ctx context.Context, slug, editorID string, in dto.UpdateStaticPageDTO) (*models.StaticPage, error) {
	page, err := s.pageRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Content != nil {
		page.Content = *in.Content
	}
	page.LastUpdatedByUserID = &editorID
	if err := s.pageRepo.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *staticPageService) Delete(ctx context.Context, slug string) error {
	return translateDBError(s.pageRepo.Delete(ctx, slug))
}
