package dto

import (
	"time"

	"coindex/internal/api/models"
)

// Tags

type CreateTagDTO struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
}

type UpdateTagDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
}

// News

type CreateNewsDTO struct {
	Title       string     `json:"title" binding:"required,min=1,max=512"`
	Content     *string    `json:"content,omitempty"`
	SourceName  *string    `json:"source_name,omitempty" binding:"omitempty,max=255"`
	SourceURL   *string    `json:"source_url,omitempty" binding:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExchangeIDs []int64    `json:"exchange_ids,omitempty"`
}

type UpdateNewsDTO struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1,max=512"`
	Content     *string    `json:"content,omitempty"`
	SourceName  *string    `json:"source_name,omitempty" binding:"omitempty,max=255"`
	SourceURL   *string    `json:"source_url,omitempty" binding:"omitempty,url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExchangeIDs []int64    `json:"exchange_ids,omitempty"`
}

type NewsResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content,omitempty"`
	SourceName  *string   `json:"source_name,omitempty"`
	SourceURL   *string   `json:"source_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`

	Exchanges []ExchangeBriefResponse `json:"exchanges,omitempty"`
}

func FromNewsToResponse(n models.NewsItem) NewsResponse {
	var exchanges []ExchangeBriefResponse
	for _, e := range n.Exchanges {
		exchanges = append(exchanges, FromExchangeToBriefResponse(e))
	}
	return NewsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		SourceName:  n.SourceName,
		SourceURL:   n.SourceURL,
		PublishedAt: n.PublishedAt,
		CreatedAt:   n.CreatedAt,
		Exchanges:   exchanges,
	}
}

// Guides

type CreateGuideDTO struct {
	Title       string     `json:"title" binding:"required,min=1,max=512"`
	Content     *string    `json:"content,omitempty"`
	ExchangeID  *int64     `json:"exchange_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type UpdateGuideDTO struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1,max=512"`
	Content     *string    `json:"content,omitempty"`
	ExchangeID  *int64     `json:"exchange_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type GuideResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content,omitempty"`
	ExchangeID  *int64    `json:"exchange_id,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`

	AuthorNickname *string `json:"author_nickname,omitempty"`
}

func FromGuideToResponse(g models.GuideItem) GuideResponse {
	resp := GuideResponse{
		ID:          g.ID,
		Title:       g.Title,
		Content:     g.Content,
		ExchangeID:  g.ExchangeID,
		PublishedAt: g.PublishedAt,
		CreatedAt:   g.CreatedAt,
	}
	if g.Creator != nil {
		resp.AuthorNickname = &g.Creator.Nickname
	}
	return resp
}

// Static pages

type CreateStaticPageDTO struct {
	Slug    string `json:"slug" binding:"required,min=1,max=100"`
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content" binding:"required"`
}

type UpdateStaticPageDTO struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Content *string `json:"content,omitempty"`
}
