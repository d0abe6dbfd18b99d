package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coindex/internal/api/dto"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListPublic(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, f, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) ListForItem(ctx context.Context, itemID int64, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, itemID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) ListForUser(ctx context.Context, userID string, page dto.PageParams) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) ListAdmin(ctx context.Context, f dto.ReviewFilterParams, sort dto.ReviewSortBy, page dto.PageParams) (*dto.Paginated[dto.AdminReviewResponse], error) {
	args := m.Called(ctx, f, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.AdminReviewResponse]), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, itemID int64, userID *string, isAdmin bool, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, itemID, userID, isAdmin, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Moderate(ctx context.Context, reviewID int64, moderatorID string, in dto.ModerateReviewDTO) (*dto.AdminReviewResponse, error) {
	args := m.Called(ctx, reviewID, moderatorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdminReviewResponse), args.Error(1)
}

func (m *MockReviewService) Vote(ctx context.Context, reviewID int64, userID string, isUseful bool) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, reviewID, userID, isUseful)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func setupReviewRouter(svc *MockReviewService, authSvc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReviewHandler(svc, authSvc)
	h.RegisterRoutes(r.Group("/reviews"))
	h.RegisterAdminRoutes(r.Group("/admin"))
	return r
}

func accessClaimsFor(authSvc *MockAuthService, token, userID, role string) {
	authSvc.On("ValidateToken", token).Return(&service.Claims{
		UserID:    userID,
		Role:      role,
		TokenType: "access",
	}, nil)
}

func TestCreateReviewEndpoint_Guest(t *testing.T) {
	svc := new(MockReviewService)
	authSvc := new(MockAuthService)
	r := setupReviewRouter(svc, authSvc)

	svc.On("Create", mock.Anything, int64(7), (*string)(nil), false, mock.MatchedBy(func(in dto.CreateReviewDTO) bool {
		return in.Rating == 5 && in.GuestName != nil && *in.GuestName == "satoshi"
	})).Return(&dto.ReviewResponse{
		ID:     42,
		ItemID: 7,
		Author: dto.ReviewAuthorResponse{Nickname: "satoshi", IsGuest: true},
		Rating: 5,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/reviews/item/7", jsonBody(t, gin.H{
		"rating":     5,
		"guest_name": "satoshi",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.True(t, resp.Author.IsGuest)
	svc.AssertExpectations(t)
}

func TestCreateReviewEndpoint_AuthorConflict(t *testing.T) {
	svc := new(MockReviewService)
	authSvc := new(MockAuthService)
	r := setupReviewRouter(svc, authSvc)

	accessClaimsFor(authSvc, "tok", "u1", "user")
	svc.On("Create", mock.Anything, int64(7), mock.Anything, false, mock.Anything).
		Return(nil, service.ErrReviewAuthor)

	req := httptest.NewRequest(http.MethodPost, "/reviews/item/7", jsonBody(t, gin.H{
		"rating":     5,
		"guest_name": "satoshi",
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReviewEndpoint_BadItemID(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	req := httptest.NewRequest(http.MethodPost, "/reviews/item/abc", jsonBody(t, gin.H{
		"rating":     5,
		"guest_name": "satoshi",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteEndpoint_RequiresAuth(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	req := httptest.NewRequest(http.MethodPost, "/reviews/42/vote", jsonBody(t, gin.H{
		"is_useful": true,
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVoteEndpoint_NotApproved(t *testing.T) {
	svc := new(MockReviewService)
	authSvc := new(MockAuthService)
	r := setupReviewRouter(svc, authSvc)

	accessClaimsFor(authSvc, "tok", "u1", "user")
	svc.On("Vote", mock.Anything, int64(42), "u1", true).Return(nil, service.ErrReviewNotApproved)

	req := httptest.NewRequest(http.MethodPost, "/reviews/42/vote", jsonBody(t, gin.H{
		"is_useful": true,
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVoteEndpoint_NotFound(t *testing.T) {
	svc := new(MockReviewService)
	authSvc := new(MockAuthService)
	r := setupReviewRouter(svc, authSvc)

	accessClaimsFor(authSvc, "tok", "u1", "user")
	svc.On("Vote", mock.Anything, int64(404), "u1", false).Return(nil, service.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/reviews/404/vote", jsonBody(t, gin.H{
		"is_useful": false,
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModerateEndpoint_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockReviewService)

	svc.On("Moderate", mock.Anything, int64(10), "admin-1", mock.MatchedBy(func(in dto.ModerateReviewDTO) bool {
		return in.ModerationStatus == "approved"
	})).Return(&dto.AdminReviewResponse{
		ReviewResponse: dto.ReviewResponse{ID: 10, ModerationStatus: "approved"},
	}, nil)

	// admin routes get claims from the group middleware in production; the
	// stand-in here primes the context the same way
	r := gin.New()
	admin := r.Group("/admin", func(c *gin.Context) {
		c.Set("userID", "admin-1")
		c.Set("role", "admin")
	})
	NewReviewHandler(svc, new(MockAuthService)).RegisterAdminRoutes(admin)

	req := httptest.NewRequest(http.MethodPatch, "/admin/reviews/10/moderate", jsonBody(t, gin.H{
		"moderation_status": "approved",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAdminListEndpoint_InvalidStatusFilter(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/admin/reviews?status=banana", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListReviewsEndpoint_UnsupportedSortField(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	req := httptest.NewRequest(http.MethodGet, "/reviews?sort_by=banana", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListPublic", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListReviewsEndpoint_SortByUsefulness(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	result := dto.NewPaginated([]dto.ReviewResponse{{ID: 3}}, 1, dto.PageParams{Limit: 10})
	svc.On("ListPublic", mock.Anything, mock.Anything, dto.ReviewSortBy{
		Field:     "usefulness",
		Direction: dto.SortDesc,
	}, mock.Anything).Return(&result, nil)

	req := httptest.NewRequest(http.MethodGet, "/reviews?sort_by=usefulness&sort_dir=desc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListReviewsEndpoint_Paginated(t *testing.T) {
	svc := new(MockReviewService)
	r := setupReviewRouter(svc, new(MockAuthService))

	page := dto.PageParams{Skip: 20, Limit: 10}
	result := dto.NewPaginated([]dto.ReviewResponse{{ID: 1}, {ID: 2}}, 42, page)
	svc.On("ListPublic", mock.Anything, mock.Anything, dto.ReviewSortBy{
		Field:     "rating",
		Direction: dto.SortAsc,
	}, page).Return(&result, nil)

	req := httptest.NewRequest(http.MethodGet, "/reviews?skip=20&limit=10&sort_by=rating&sort_dir=asc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.Paginated[dto.ReviewResponse]
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Total)
	assert.Len(t, resp.Items, 2)
}
