package dto

import (
	"time"

	"coindex/internal/api/models"
)

// BookFilterParams enumerates the optional query filters for book listings.
type BookFilterParams struct {
	Name                string
	Author              string
	YearFrom            *int16
	YearTo              *int16
	MinTotalReviewCount *int64
	TagID               *int64
}

// BookSortFields maps accepted sort names to their SQL columns.
var BookSortFields = map[string]string{
	"name":                   "items.name",
	"overall_average_rating": "items.overall_average_rating",
	"total_review_count":     "items.total_review_count",
	"total_rating_count":     "items.total_rating_count",
	"year":                   "books.year",
	"created_at":             "items.created_at",
}

// BookSortBy is a whitelisted sort field plus direction.
type BookSortBy struct {
	Field     string
	Direction SortDirection
}

type CreateBookDTO struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Slug        *string `json:"slug,omitempty"`
	Overview    *string `json:"overview,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`

	Year      *int16  `json:"year,omitempty"`
	Author    *string `json:"author,omitempty" binding:"omitempty,max=255"`
	Publisher *string `json:"publisher,omitempty" binding:"omitempty,max=255"`
	Pages     *int    `json:"pages,omitempty" binding:"omitempty,gt=0"`
	Number    *string `json:"number,omitempty" binding:"omitempty,max=50"`

	TagIDs []int64 `json:"tag_ids,omitempty"`
}

type UpdateBookDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug,omitempty"`
	Overview    *string `json:"overview,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`

	Year      *int16  `json:"year,omitempty"`
	Author    *string `json:"author,omitempty" binding:"omitempty,max=255"`
	Publisher *string `json:"publisher,omitempty" binding:"omitempty,max=255"`
	Pages     *int    `json:"pages,omitempty" binding:"omitempty,gt=0"`
	Number    *string `json:"number,omitempty" binding:"omitempty,max=50"`

	TagIDs []int64 `json:"tag_ids,omitempty"`
}

func (d CreateBookDTO) ToModel() models.Book {
	slug := ""
	if d.Slug != nil {
		slug = *d.Slug
	}
	return models.Book{
		Item: models.Item{
			ItemType:    models.ItemTypeBook,
			Name:        d.Name,
			Slug:        slug,
			Overview:    d.Overview,
			Description: d.Description,
			LogoURL:     d.LogoURL,
			WebsiteURL:  d.WebsiteURL,
		},
		Year:      d.Year,
		Author:    d.Author,
		Publisher: d.Publisher,
		Pages:     d.Pages,
		Number:    d.Number,
	}
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Name != nil {
		b.Item.Name = *d.Name
	}
	if d.Slug != nil {
		b.Item.Slug = *d.Slug
	}
	if d.Overview != nil {
		b.Item.Overview = d.Overview
	}
	if d.Description != nil {
		b.Item.Description = d.Description
	}
	if d.LogoURL != nil {
		b.Item.LogoURL = d.LogoURL
	}
	if d.WebsiteURL != nil {
		b.Item.WebsiteURL = d.WebsiteURL
	}
	if d.Year != nil {
		b.Year = d.Year
	}
	if d.Author != nil {
		b.Author = d.Author
	}
	if d.Publisher != nil {
		b.Publisher = d.Publisher
	}
	if d.Pages != nil {
		b.Pages = d.Pages
	}
	if d.Number != nil {
		b.Number = d.Number
	}
}

// BookBriefResponse is the list-view projection.
type BookBriefResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Slug                 string  `json:"slug"`
	LogoURL              *string `json:"logo_url,omitempty"`
	Author               *string `json:"author,omitempty"`
	Year                 *int16  `json:"year,omitempty"`
	OverallAverageRating float64 `json:"overall_average_rating"`
	TotalReviewCount     int64   `json:"total_review_count"`
	TotalRatingCount     int64   `json:"total_rating_count"`
}

// BookResponse is the detail-view projection.
type BookResponse struct {
	BookBriefResponse

	Overview    *string `json:"overview,omitempty"`
	Description *string `json:"description,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	Pages       *int    `json:"pages,omitempty"`
	Number      *string `json:"number,omitempty"`

	Tags []models.Tag `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBookToBriefResponse(b models.Book) BookBriefResponse {
	return BookBriefResponse{
		ID:                   b.ID,
		Name:                 b.Item.Name,
		Slug:                 b.Item.Slug,
		LogoURL:              b.Item.LogoURL,
		Author:               b.Author,
		Year:                 b.Year,
		OverallAverageRating: b.Item.OverallAverageRating,
		TotalReviewCount:     b.Item.TotalReviewCount,
		TotalRatingCount:     b.Item.TotalRatingCount,
	}
}

func FromBookToResponse(b models.Book) BookResponse {
	return BookResponse{
		BookBriefResponse: FromBookToBriefResponse(b),
		Overview:          b.Item.Overview,
		Description:       b.Item.Description,
		WebsiteURL:        b.Item.WebsiteURL,
		Publisher:         b.Publisher,
		Pages:             b.Pages,
		Number:            b.Number,
		Tags:              b.Item.Tags,
		CreatedAt:         b.Item.CreatedAt,
		UpdatedAt:         b.Item.UpdatedAt,
	}
}
