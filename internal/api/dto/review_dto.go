package dto

import (
	"time"

	"coindex/internal/api/models"
)

// CreateReviewDTO is the payload for posting a new review. Exactly one of
// the authenticated user (taken from the token, not the body) or GuestName
// identifies the author; the service enforces that.
type CreateReviewDTO struct {
	Rating         int16    `json:"rating" binding:"required,min=1,max=5"`
	Comment        *string  `json:"comment,omitempty" binding:"omitempty,max=10000"`
	GuestName      *string  `json:"guest_name,omitempty" binding:"omitempty,min=2,max=100"`
	ScreenshotURLs []string `json:"screenshot_urls,omitempty" binding:"omitempty,max=5,dive,url"`

	// Honored for admin callers only; everyone else starts pending.
	ModerationStatus *models.ModerationStatus `json:"moderation_status,omitempty"`
}

// ModerateReviewDTO carries an admin moderation decision.
type ModerateReviewDTO struct {
	ModerationStatus models.ModerationStatus `json:"moderation_status" binding:"required"`
	ModeratorNotes   *string                 `json:"moderator_notes,omitempty" binding:"omitempty,max=2000"`
}

// VoteReviewDTO marks a review as useful or not useful.
type VoteReviewDTO struct {
	IsUseful *bool `json:"is_useful" binding:"required"`
}

// ReviewFilterParams enumerates the optional filters for review listings.
// Status filtering is only honoured on admin routes; public listings are
// forced to approved by the service.
type ReviewFilterParams struct {
	ItemID        *int64
	ItemType      *models.ItemType
	UserID        *string
	Status        *models.ModerationStatus
	MinRating     *int16
	MaxRating     *int16
	HasComment    *bool
	HasScreenshot *bool
}

// ReviewSortFields maps accepted sort names to their SQL columns. Usefulness
// orders by the net vote balance, not the raw useful counter.
var ReviewSortFields = map[string]string{
	"created_at":         "reviews.created_at",
	"rating":             "reviews.rating",
	"usefulness":         "(reviews.useful_votes_count - reviews.not_useful_votes_count)",
	"useful_votes_count": "reviews.useful_votes_count",
	"moderated_at":       "reviews.moderated_at",
}

// ReviewSortBy is a whitelisted sort field plus direction.
type ReviewSortBy struct {
	Field     string
	Direction SortDirection
}

// ReviewAuthorResponse is the public author projection. For registered
// authors it exposes nickname and avatar only.
type ReviewAuthorResponse struct {
	Nickname  string  `json:"nickname"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	IsGuest   bool    `json:"is_guest"`
}

type ReviewScreenshotResponse struct {
	ID      int64  `json:"id"`
	FileURL string `json:"file_url"`
}

type ReviewResponse struct {
	ID                  int64                      `json:"id"`
	ItemID              int64                      `json:"item_id"`
	Author              ReviewAuthorResponse       `json:"author"`
	Rating              int16                      `json:"rating"`
	Comment             *string                    `json:"comment,omitempty"`
	ModerationStatus    models.ModerationStatus    `json:"moderation_status"`
	UsefulVotesCount    int                        `json:"useful_votes_count"`
	NotUsefulVotesCount int                        `json:"not_useful_votes_count"`
	Screenshots         []ReviewScreenshotResponse `json:"screenshots,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
}

// AdminReviewResponse adds the moderation trail for admin listings.
type AdminReviewResponse struct {
	ReviewResponse

	UserID            *string    `json:"user_id,omitempty"`
	ModeratorNotes    *string    `json:"moderator_notes,omitempty"`
	ModeratedByUserID *string    `json:"moderated_by_user_id,omitempty"`
	ModeratedAt       *time.Time `json:"moderated_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromReviewToResponse(r models.Review) ReviewResponse {
	author := ReviewAuthorResponse{IsGuest: r.UserID == nil}
	if r.User != nil {
		author.Nickname = r.User.Nickname
		author.AvatarURL = r.User.AvatarURL
	} else if r.GuestName != nil {
		author.Nickname = *r.GuestName
	}

	var shots []ReviewScreenshotResponse
	for _, s := range r.Screenshots {
		shots = append(shots, ReviewScreenshotResponse{ID: s.ID, FileURL: s.FileURL})
	}

	return ReviewResponse{
		ID:                  r.ID,
		ItemID:              r.ItemID,
		Author:              author,
		Rating:              r.Rating,
		Comment:             r.Comment,
		ModerationStatus:    r.ModerationStatus,
		UsefulVotesCount:    r.UsefulVotesCount,
		NotUsefulVotesCount: r.NotUsefulVotesCount,
		Screenshots:         shots,
		CreatedAt:           r.CreatedAt,
	}
}

func FromReviewToAdminResponse(r models.Review) AdminReviewResponse {
	return AdminReviewResponse{
		ReviewResponse:    FromReviewToResponse(r),
		UserID:            r.UserID,
		ModeratorNotes:    r.ModeratorNotes,
		ModeratedByUserID: r.ModeratedByUserID,
		ModeratedAt:       r.ModeratedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
