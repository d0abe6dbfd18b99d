package service

import (
	"context"
	"errors"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

var ErrTagNameTaken = errors.New("tag name already in use")

type TagService interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, in dto.CreateTagDTO) (*models.Tag, error)
	Update(ctx context.Context, id int64, in dto.UpdateTagDTO) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagService struct {
	tagRepo *repository.TagRepo
}

func NewTagService(tagRepo *repository.TagRepo) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetAll(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.GetAll(ctx)
}

func (s *tagService) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, in dto.CreateTagDTO) (*models.Tag, error) {
	tag := &models.Tag{Name: in.Name, Description: in.Description}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagNameTaken
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, id int64, in dto.UpdateTagDTO) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	if in.Name != nil {
		tag.Name = *in.Name
	}
	if in.Description != nil {
		tag.Description = in.Description
	}
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagNameTaken
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	return translateDBError(s.tagRepo.Delete(ctx, id))
}
