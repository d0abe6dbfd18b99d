package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrVoteUnchanged = errors.New("vote unchanged")
)

// ReviewRepository handles review persistence including the denormalized
// item aggregates that are derived from approved reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) ([]models.Review, int64, error)
	Moderate(ctx context.Context, review *models.Review, recompute bool) error
	RecomputeItemAggregates(ctx context.Context, itemID int64) error
	Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("User", "Moderator", "Item").Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Screenshots").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) filtered(ctx context.Context, f dto.ReviewFilterParams) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Review{})

	if f.ItemID != nil {
		q = q.Where("reviews.item_id = ?", *f.ItemID)
	}
	if f.ItemType != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM items i WHERE i.id = reviews.item_id AND i.item_type = ?)",
			*f.ItemType,
		)
	}
	if f.UserID != nil {
		q = q.Where("reviews.user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("reviews.moderation_status = ?", *f.Status)
	}
	if f.MinRating != nil {
		q = q.Where("reviews.rating >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Where("reviews.rating <= ?", *f.MaxRating)
	}
	if f.HasComment != nil {
		if *f.HasComment {
			q = q.Where("reviews.comment IS NOT NULL")
		} else {
			q = q.Where("reviews.comment IS NULL")
		}
	}
	if f.HasScreenshot != nil {
		sub := "EXISTS (SELECT 1 FROM review_screenshots rs WHERE rs.review_id = reviews.id)"
		if *f.HasScreenshot {
			q = q.Where(sub)
		} else {
			q = q.Where("NOT " + sub)
		}
	}
	return q
}

func (r *reviewRepository) List(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) ([]models.Review, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	column, ok := dto.ReviewSortFields[sort.Field]
	if !ok {
		column = "reviews.created_at"
	}
	dir := "desc"
	if sort.Direction == dto.SortAsc {
		dir = "asc"
	}

	var list []models.Review
	err := r.filtered(ctx, f).
		Preload("User").
		Preload("Screenshots").
		Order(fmt.Sprintf("%s %s NULLS LAST, reviews.id desc", column, dir)).
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return list, total, nil
}

// Moderate persists a moderation decision. When recompute is true the item
// aggregates are rescanned in the same transaction, under a row lock on the
// item, so a concurrent decision on another review of the same item cannot
// interleave its rescan with ours.
func (r *reviewRepository) Moderate(ctx context.Context, review *models.Review, recompute bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Review{}).
			Where("id = ?", review.ID).
			Updates(map[string]any{
				"moderation_status":    review.ModerationStatus,
				"moderator_notes":      review.ModeratorNotes,
				"moderated_by_user_id": review.ModeratedByUserID,
				"moderated_at":         review.ModeratedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("update review %d: %w", review.ID, err)
		}
		if !recompute {
			return nil
		}
		return recomputeItemAggregates(tx, review.ItemID)
	})
}

func (r *reviewRepository) RecomputeItemAggregates(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recomputeItemAggregates(tx, itemID)
	})
}

// recomputeItemAggregates rescans all approved reviews of the item and writes
// the three denormalized fields. Runs inside the caller's transaction with
// the item row locked first.
func recomputeItemAggregates(tx *gorm.DB, itemID int64) error {
	var item models.Item
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, itemID).Error; err != nil {
		return fmt.Errorf("lock item %d: %w", itemID, err)
	}

	var agg struct {
		AvgRating   float64
		RatingCount int64
		ReviewCount int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS rating_count, COUNT(comment) AS review_count").
		Where("item_id = ? AND moderation_status = ?", itemID, models.ModerationApproved).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("aggregate reviews for item %d: %w", itemID, err)
	}

	err = tx.Model(&models.Item{}).Where("id = ?", itemID).Updates(map[string]any{
		"overall_average_rating": agg.AvgRating,
		"total_rating_count":     agg.RatingCount,
		"total_review_count":     agg.ReviewCount,
	}).Error
	if err != nil {
		return fmt.Errorf("update item %d aggregates: %w", itemID, err)
	}
	return nil
}

// Vote records or changes a user's usefulness vote. A repeated identical
// vote returns ErrVoteUnchanged; a changed vote flips both counters.
func (r *reviewRepository) Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&review, reviewID).Error; err != nil {
			return err
		}

		var vote models.ReviewUsefulnessVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&vote).Error
		switch {
		case err == nil:
			if vote.IsUseful == isUseful {
				return ErrVoteUnchanged
			}
			if err := tx.Model(&vote).Update("is_useful", isUseful).Error; err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
			if isUseful {
				review.UsefulVotesCount++
				review.NotUsefulVotesCount--
			} else {
				review.UsefulVotesCount--
				review.NotUsefulVotesCount++
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = models.ReviewUsefulnessVote{
				ReviewID: reviewID,
				UserID:   userID,
				IsUseful: isUseful,
				VotedAt:  time.Now().UTC(),
			}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
			if isUseful {
				review.UsefulVotesCount++
			} else {
				review.NotUsefulVotesCount++
			}
		default:
			return fmt.Errorf("lookup vote: %w", err)
		}

		return tx.Model(&models.Review{}).Where("id = ?", reviewID).Updates(map[string]any{
			"useful_votes_count":     review.UsefulVotesCount,
			"not_useful_votes_count": review.NotUsefulVotesCount,
		}).Error
	})
	if err != nil && !errors.Is(err, ErrVoteUnchanged) {
		return nil, err
	}
	return &review, nil
}
