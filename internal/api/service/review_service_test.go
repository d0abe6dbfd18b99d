package service

import (
	"context"
	"log/slog"
	"testing"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	review.ID = 42
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) ([]models.Review, int64, error) {
	args := m.Called(ctx, f, sort, page)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Moderate(ctx context.Context, review *models.Review, recompute bool) error {
	args := m.Called(ctx, review, recompute)
	return args.Error(0)
}

func (m *MockReviewRepository) RecomputeItemAggregates(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockReviewRepository) Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*models.Review, error) {
	args := m.Called(ctx, reviewID, userID, isUseful)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestReviewService(reviewRepo *MockReviewRepository, items *MockItemReader) ReviewService {
	return NewReviewService(reviewRepo, items, slog.Default())
}

func strPtr(s string) *string { return &s }

func TestCreateReview_GuestSuccess(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	items.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ItemID == 7 &&
			r.UserID == nil &&
			r.GuestName != nil && *r.GuestName == "satoshi" &&
			r.ModerationStatus == models.ModerationPending
	})).Return(nil)
	reviewRepo.On("RecomputeItemAggregates", mock.Anything, int64(7)).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
		ID:               42,
		ItemID:           7,
		GuestName:        strPtr("satoshi"),
		Rating:           5,
		ModerationStatus: models.ModerationPending,
	}, nil)

	resp, err := svc.Create(context.Background(), 7, nil, false, dto.CreateReviewDTO{
		Rating:    5,
		GuestName: strPtr("satoshi"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "satoshi", resp.Author.Nickname)
	assert.True(t, resp.Author.IsGuest)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_UserAndGuestRejected(t *testing.T) {
	svc := newTestReviewService(new(MockReviewRepository), new(MockItemReader))

	userID := "user-1"
	_, err := svc.Create(context.Background(), 7, &userID, false, dto.CreateReviewDTO{
		Rating:    4,
		GuestName: strPtr("satoshi"),
	})
	assert.ErrorIs(t, err, ErrReviewAuthor)

	_, err = svc.Create(context.Background(), 7, nil, false, dto.CreateReviewDTO{Rating: 4})
	assert.ErrorIs(t, err, ErrReviewAuthor)
}

func TestCreateReview_WhitespaceGuestNameRejected(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	_, err := svc.Create(context.Background(), 7, nil, false, dto.CreateReviewDTO{
		Rating:    4,
		GuestName: strPtr("   "),
	})
	assert.ErrorIs(t, err, ErrReviewAuthor)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_GuestNameTrimmed(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	items.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.GuestName != nil && *r.GuestName == "satoshi"
	})).Return(nil)
	reviewRepo.On("RecomputeItemAggregates", mock.Anything, int64(7)).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
		ID: 42, ItemID: 7, GuestName: strPtr("satoshi"), Rating: 4,
		ModerationStatus: models.ModerationPending,
	}, nil)

	_, err := svc.Create(context.Background(), 7, nil, false, dto.CreateReviewDTO{
		Rating:    4,
		GuestName: strPtr("  satoshi  "),
	})
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_AdminPresetsStatus(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	adminID := "admin-1"
	approved := models.ModerationApproved

	items.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ModerationStatus == models.ModerationApproved
	})).Return(nil)
	reviewRepo.On("RecomputeItemAggregates", mock.Anything, int64(7)).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
		ID: 42, ItemID: 7, UserID: &adminID, Rating: 5,
		ModerationStatus: models.ModerationApproved,
	}, nil)

	resp, err := svc.Create(context.Background(), 7, &adminID, true, dto.CreateReviewDTO{
		Rating:           5,
		ModerationStatus: &approved,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ModerationApproved, resp.ModerationStatus)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_StatusIgnoredForNonAdmins(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	userID := "user-1"
	approved := models.ModerationApproved

	items.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ModerationStatus == models.ModerationPending
	})).Return(nil)
	reviewRepo.On("RecomputeItemAggregates", mock.Anything, int64(7)).Return(nil)
	reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
		ID: 42, ItemID: 7, UserID: &userID, Rating: 5,
		ModerationStatus: models.ModerationPending,
	}, nil)

	_, err := svc.Create(context.Background(), 7, &userID, false, dto.CreateReviewDTO{
		Rating:           5,
		ModerationStatus: &approved,
	})
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_UnknownItem(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	items.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := svc.Create(context.Background(), 99, nil, false, dto.CreateReviewDTO{
		Rating:    3,
		GuestName: strPtr("ghost"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_RecomputeFailureDoesNotFailCreate(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	items := new(MockItemReader)
	svc := newTestReviewService(reviewRepo, items)

	items.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("RecomputeItemAggregates", mock.Anything, int64(7)).Return(assert.AnError)
	reviewRepo.On("GetByID", mock.Anything, int64(42)).Return(&models.Review{
		ID: 42, ItemID: 7, GuestName: strPtr("satoshi"), Rating: 5,
		ModerationStatus: models.ModerationPending,
	}, nil)

	resp, err := svc.Create(context.Background(), 7, nil, false, dto.CreateReviewDTO{
		Rating:    5,
		GuestName: strPtr("satoshi"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestModerate_ApprovalTriggersRecompute(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	pendingReview := &models.Review{
		ID:               10,
		ItemID:           7,
		Rating:           4,
		ModerationStatus: models.ModerationPending,
	}
	reviewRepo.On("GetByID", mock.Anything, int64(10)).Return(pendingReview, nil)
	reviewRepo.On("Moderate", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ModerationStatus == models.ModerationApproved &&
			r.ModeratedByUserID != nil && *r.ModeratedByUserID == "admin-1" &&
			r.ModeratedAt != nil
	}), true).Return(nil)

	_, err := svc.Moderate(context.Background(), 10, "admin-1", dto.ModerateReviewDTO{
		ModerationStatus: models.ModerationApproved,
	})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestModerate_PendingToRejectedSkipsRecompute(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	pendingReview := &models.Review{
		ID:               11,
		ItemID:           7,
		ModerationStatus: models.ModerationPending,
	}
	reviewRepo.On("GetByID", mock.Anything, int64(11)).Return(pendingReview, nil)
	reviewRepo.On("Moderate", mock.Anything, mock.Anything, false).Return(nil)

	_, err := svc.Moderate(context.Background(), 11, "admin-1", dto.ModerateReviewDTO{
		ModerationStatus: models.ModerationRejected,
	})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestModerate_ApprovedToRejectedRecomputes(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	approvedReview := &models.Review{
		ID:               12,
		ItemID:           7,
		ModerationStatus: models.ModerationApproved,
	}
	reviewRepo.On("GetByID", mock.Anything, int64(12)).Return(approvedReview, nil)
	reviewRepo.On("Moderate", mock.Anything, mock.Anything, true).Return(nil)

	_, err := svc.Moderate(context.Background(), 12, "admin-1", dto.ModerateReviewDTO{
		ModerationStatus: models.ModerationRejected,
	})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestModerate_InvalidStatus(t *testing.T) {
	svc := newTestReviewService(new(MockReviewRepository), new(MockItemReader))

	_, err := svc.Moderate(context.Background(), 10, "admin-1", dto.ModerateReviewDTO{
		ModerationStatus: "banana",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestVote_RejectedOnNonApprovedReview(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	reviewRepo.On("GetByID", mock.Anything, int64(20)).Return(&models.Review{
		ID:               20,
		ModerationStatus: models.ModerationPending,
	}, nil)

	_, err := svc.Vote(context.Background(), 20, "user-1", true)
	assert.ErrorIs(t, err, ErrReviewNotApproved)
	reviewRepo.AssertNotCalled(t, "Vote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVote_Success(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	reviewRepo.On("GetByID", mock.Anything, int64(21)).Return(&models.Review{
		ID:               21,
		ModerationStatus: models.ModerationApproved,
	}, nil)
	reviewRepo.On("Vote", mock.Anything, int64(21), "user-1", true).Return(&models.Review{
		ID:               21,
		ModerationStatus: models.ModerationApproved,
		UsefulVotesCount: 1,
	}, nil)

	resp, err := svc.Vote(context.Background(), 21, "user-1", true)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.UsefulVotesCount)
}

func TestListPublic_ForcesApprovedFilter(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newTestReviewService(reviewRepo, new(MockItemReader))

	pending := models.ModerationPending
	requested := dto.ReviewFilterParams{Status: &pending}

	reviewRepo.On("List", mock.Anything, mock.MatchedBy(func(f dto.ReviewFilterParams) bool {
		return f.Status != nil && *f.Status == models.ModerationApproved
	}), mock.Anything, mock.Anything).Return([]models.Review{}, int64(0), nil)

	_, err := svc.ListPublic(context.Background(), requested, dto.ReviewSortBy{}, dto.PageParams{Limit: 10})
	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}
