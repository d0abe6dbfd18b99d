package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

var (
	ErrReviewAuthor      = errors.New("review needs exactly one author: a logged-in user or a guest name")
	ErrReviewNotApproved = errors.New("review is not approved")
	ErrInvalidStatus     = errors.New("invalid moderation status")
)

// ItemReader is the slice of the item repository the review service needs.
type ItemReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ReviewService interface {
	ListPublic(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error)
	ListForItem(ctx context.Context, itemID int64, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error)
	ListForUser(ctx context.Context, userID string, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error)
	ListAdmin(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.AdminReviewResponse], error)
	Create(ctx context.Context, itemID int64, userID *string, isAdmin bool, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Moderate(ctx context.Context, reviewID int64, moderatorID string, in dto.ModerateReviewDTO) (*dto.AdminReviewResponse, error)
	Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	itemRepo   ItemReader
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, itemRepo ItemReader, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		itemRepo:   itemRepo,
		logger:     logger,
	}
}

// ListPublic forces the approved filter no matter what the caller asked for.
func (s *reviewService) ListPublic(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	approved := models.ModerationApproved
	f.Status = &approved

	reviews, total, err := s.reviewRepo.List(ctx, f, sort, page)
	if err != nil {
		return nil, err
	}
	return paginatedReviews(reviews, total, page), nil
}

func (s *reviewService) ListForItem(ctx context.Context, itemID int64, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	exists, err := s.itemRepo.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.ListPublic(ctx, dto.ReviewFilterParams{ItemID: &itemID}, dto.ReviewSortBy{}, page)
}

// ListForUser returns the caller's own reviews in every status.
func (s *reviewService) ListForUser(ctx context.Context, userID string, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	reviews, total, err := s.reviewRepo.List(ctx, dto.ReviewFilterParams{UserID: &userID}, dto.ReviewSortBy{}, page)
	if err != nil {
		return nil, err
	}
	return paginatedReviews(reviews, total, page), nil
}

func (s *reviewService) ListAdmin(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.AdminReviewResponse], error) {
	reviews, total, err := s.reviewRepo.List(ctx, f, sort, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AdminReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, dto.FromReviewToAdminResponse(r))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

// Create stores a new review. The author is either the authenticated user
// (userID non-nil) or the trimmed guest name from the payload, exactly one
// of the two. Non-admins always start out pending; an admin may preset the
// moderation status.
func (s *reviewService) Create(ctx context.Context, itemID int64, userID *string, isAdmin bool, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	var guestName string
	if in.GuestName != nil {
		guestName = strings.TrimSpace(*in.GuestName)
	}
	hasGuest := guestName != ""
	if (userID == nil) == !hasGuest {
		return nil, ErrReviewAuthor
	}

	status := models.ModerationPending
	if isAdmin && in.ModerationStatus != nil {
		if !in.ModerationStatus.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *in.ModerationStatus
	}

	exists, err := s.itemRepo.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	review := &models.Review{
		ItemID:           itemID,
		UserID:           userID,
		Rating:           in.Rating,
		Comment:          in.Comment,
		ModerationStatus: status,
	}
	if userID == nil {
		review.GuestName = &guestName
	}
	for _, url := range in.ScreenshotURLs {
		review.Screenshots = append(review.Screenshots, models.ReviewScreenshot{FileURL: url})
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// The rescan picks up admin-authored approved reviews and keeps the item
	// consistent if moderation raced with this write. Failure here never
	// takes the review down with it.
	if err := s.reviewRepo.RecomputeItemAggregates(ctx, itemID); err != nil {
		s.logger.Error("recompute aggregates after review creation failed",
			"item_id", itemID, "review_id", review.ID, "error", err)
	}

	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromReviewToResponse(*created)
	return &resp, nil
}

// Moderate applies an admin decision. When the transition moves into or out
// of approved, the item aggregates are recomputed inside the same
// transaction as the status change.
func (s *reviewService) Moderate(ctx context.Context, reviewID int64, moderatorID string, in dto.ModerateReviewDTO) (*dto.AdminReviewResponse, error) {
	if !in.ModerationStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, translateDBError(err)
	}

	oldStatus := review.ModerationStatus
	now := time.Now().UTC()
	review.ModerationStatus = in.ModerationStatus
	review.ModeratedByUserID = &moderatorID
	review.ModeratedAt = &now
	if in.ModeratorNotes != nil {
		review.ModeratorNotes = in.ModeratorNotes
	}

	crossesApproved := oldStatus != in.ModerationStatus &&
		(oldStatus == models.ModerationApproved || in.ModerationStatus == models.ModerationApproved)

	if err := s.reviewRepo.Moderate(ctx, review, crossesApproved); err != nil {
		return nil, err
	}

	moderated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromReviewToAdminResponse(*moderated)
	return &resp, nil
}

// Vote records a usefulness vote on an approved review. Repeating the same
// vote is a no-op; switching sides flips both counters.
func (s *reviewService) Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, translateDBError(err)
	}
	if review.ModerationStatus != models.ModerationApproved {
		return nil, ErrReviewNotApproved
	}

	voted, err := s.reviewRepo.Vote(ctx, reviewID, userID, isUseful)
	if err != nil {
		return nil, err
	}
	resp := dto.FromReviewToResponse(*voted)
	return &resp, nil
}

func paginatedReviews(reviews []models.Review, total int64, page dto.PageParams) *dto.Paginated[dto.ReviewResponse] {
	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, dto.FromReviewToResponse(r))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated
}
