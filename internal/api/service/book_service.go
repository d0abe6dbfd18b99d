package service

import (
	"context"

	"coindex/internal/api/dto"
	"coindex/internal/api/repository"
	"coindex/internal/cache"
)

type BookService interface {
	List(ctx context.Context, f dto.BookFilterParams, sort dto.BookSortBy, page dto.PageParams) (*dto.Paginated[dto.BookBriefResponse], error)
	GetBySlug(ctx context.Context, slug string) (*dto.BookResponse, error)
	Create(ctx context.Context, in dto.CreateBookDTO) (*dto.BookResponse, error)
	Update(ctx context.Context, slug string, in dto.UpdateBookDTO) (*dto.BookResponse, error)
	Delete(ctx context.Context, slug string) error
}

type bookService struct {
	bookRepo  *repository.BookRepo
	tagRepo   *repository.TagRepo
	itemCache *cache.ItemCache
}

func NewBookService(bookRepo *repository.BookRepo, tagRepo *repository.TagRepo, itemCache *cache.ItemCache) BookService {
	return &bookService{bookRepo: bookRepo, tagRepo: tagRepo, itemCache: itemCache}
}

func (s *bookService) List(ctx context.Context, f dto.BookFilterParams, sort dto.BookSortBy, page dto.PageParams) (*dto.Paginated[dto.BookBriefResponse], error) {
	books, total, err := s.bookRepo.List(ctx, f, sort, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.BookBriefResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, dto.FromBookToBriefResponse(b))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

func (s *bookService) GetBySlug(ctx context.Context, slug string) (*dto.BookResponse, error) {
	var cached dto.BookResponse
	if s.itemCache.Get(ctx, "book", slug, &cached) {
		return &cached, nil
	}

	b, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := dto.FromBookToResponse(*b)
	s.itemCache.Set(ctx, "book", slug, resp)
	return &resp, nil
}

func (s *bookService) Create(ctx context.Context, in dto.CreateBookDTO) (*dto.BookResponse, error) {
	b := in.ToModel()
	if b.Item.Slug == "" {
		b.Item.Slug = Slugify(b.Item.Name)
	}

	if _, err := s.bookRepo.GetBySlug(ctx, b.Item.Slug); err == nil {
		return nil, ErrSlugTaken
	}

	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, translateDBError(err)
	}
	b.Item.Tags = tags

	if err := s.bookRepo.Create(ctx, &b); err != nil {
		return nil, translateDBError(err)
	}
	return s.reload(ctx, b.ID)
}

func (s *bookService) Update(ctx context.Context, slug string, in dto.UpdateBookDTO) (*dto.BookResponse, error) {
	b, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}

	if in.Slug != nil && *in.Slug != b.Item.Slug {
		if _, err := s.bookRepo.GetBySlug(ctx, *in.Slug); err == nil {
			return nil, ErrSlugTaken
		}
	}
	in.ApplyTo(b)

	if err := s.bookRepo.Update(ctx, b); err != nil {
		return nil, translateDBError(err)
	}

	if in.TagIDs != nil {
		tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
		if err != nil {
			return nil, translateDBError(err)
		}
		if err := s.bookRepo.ReplaceTags(ctx, b, tags); err != nil {
			return nil, err
		}
	}

	s.itemCache.Invalidate(ctx, "book", slug)
	return s.reload(ctx, b.ID)
}

func (s *bookService) Delete(ctx context.Context, slug string) error {
	b, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return translateDBError(err)
	}
	if err := s.bookRepo.Delete(ctx, b.ID); err != nil {
		return translateDBError(err)
	}
	s.itemCache.Invalidate(ctx, "book", slug)
	return nil
}

func (s *bookService) reload(ctx context.Context, id int64) (*dto.BookResponse, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromBookToResponse(*b)
	return &resp, nil
}
