package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/middleware"
	"coindex/internal/api/models"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc         service.ReviewService
	authService service.AuthService
}

func NewReviewHandler(svc service.ReviewService, authService service.AuthService) *ReviewHandler {
	return &ReviewHandler{svc: svc, authService: authService}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/me", middleware.AuthMiddleware(h.authService), h.ListMine)
	rg.GET("/item/:item_id", h.ListForItem)
	rg.POST("/item/:item_id", middleware.OptionalAuth(h.authService), h.Create)
	rg.POST("/:id/vote", middleware.AuthMiddleware(h.authService), h.Vote)
}

func (h *ReviewHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.AdminList)
	rg.GET("/reviews/pending", h.AdminListPending)
	rg.PATCH("/reviews/:id/moderate", h.Moderate)
}

func (h *ReviewHandler) parseFilters(c *gin.Context) dto.ReviewFilterParams {
	f := dto.ReviewFilterParams{
		ItemID:        queryInt64(c, "item_id"),
		MinRating:     queryInt16(c, "min_rating"),
		MaxRating:     queryInt16(c, "max_rating"),
		HasComment:    queryBool(c, "has_comment"),
		HasScreenshot: queryBool(c, "has_screenshot"),
	}
	if u := c.Query("user_id"); u != "" {
		f.UserID = &u
	}
	return f
}

// List returns approved reviews across all items.
func (h *ReviewHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	field, dir, ok := parseSort(c, dto.ReviewSortFields, "created_at", dto.SortDesc)
	if !ok {
		return
	}

	result, err := h.svc.ListPublic(ctx, h.parseFilters(c), dto.ReviewSortBy{Field: field, Direction: dir}, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMine returns the caller's own reviews, every status included.
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.ListForUser(ctx, userID, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) ListForItem(c *gin.Context) {
	itemID, ok := pathInt64(c, "item_id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.ListForItem(ctx, itemID, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create accepts a review from a logged-in user or from a guest supplying
// guest_name. Admin authors may preset the moderation status; everyone else
// starts out pending.
func (h *ReviewHandler) Create(c *gin.Context) {
	itemID, ok := pathInt64(c, "item_id")
	if !ok {
		return
	}
	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID *string
	isAdmin := false
	if id, authed := middleware.CurrentUserID(c); authed {
		userID = &id
		if role, exists := c.Get("role"); exists {
			isAdmin = role == "admin"
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Create(ctx, itemID, userID, isAdmin, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) Vote(c *gin.Context) {
	reviewID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var in dto.VoteReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Vote(ctx, reviewID, userID, *in.IsUseful)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminList can see and filter every status.
func (h *ReviewHandler) AdminList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	f := h.parseFilters(c)
	if s := c.Query("status"); s != "" {
		status := models.ModerationStatus(s)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		f.Status = &status
	}

	field, dir, ok := parseSort(c, dto.ReviewSortFields, "created_at", dto.SortDesc)
	if !ok {
		return
	}

	result, err := h.svc.ListAdmin(ctx, f, dto.ReviewSortBy{Field: field, Direction: dir}, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminListPending is the moderation queue, oldest first.
func (h *ReviewHandler) AdminListPending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pending := models.ModerationPending
	f := dto.ReviewFilterParams{Status: &pending}

	result, err := h.svc.ListAdmin(ctx, f, dto.ReviewSortBy{Field: "created_at", Direction: dto.SortAsc}, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) Moderate(c *gin.Context) {
	reviewID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	moderatorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var in dto.ModerateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Moderate(ctx, reviewID, moderatorID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
