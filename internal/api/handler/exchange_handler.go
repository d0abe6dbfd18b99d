package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ExchangeHandler struct {
	svc      service.ExchangeService
	newsSvc  service.NewsService
	guideSvc service.GuideService
}

func NewExchangeHandler(svc service.ExchangeService, newsSvc service.NewsService, guideSvc service.GuideService) *ExchangeHandler {
	return &ExchangeHandler{svc: svc, newsSvc: newsSvc, guideSvc: guideSvc}
}

func (h *ExchangeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/go/:slug", h.Redirect)
	rg.GET("/news/:id", h.News)
	rg.GET("/guides/:id", h.Guides)
	rg.GET("/:slug", h.Get)
}

// RegisterAdminRoutes mounts the mutating endpoints; the caller wraps the
// group with auth + admin middleware.
func (h *ExchangeHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/exchanges", h.Create)
	rg.PUT("/exchanges/:slug", h.Update)
	rg.DELETE("/exchanges/:slug", h.Delete)
}

func (h *ExchangeHandler) List(c *gin.Context) {
	// list queries join several tables, give them more room than point reads
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	f := dto.ExchangeFilterParams{
		Name:                c.Query("name"),
		HasKYC:              queryBool(c, "has_kyc"),
		HasP2P:              queryBool(c, "has_p2p"),
		MinTotalReviewCount: queryInt64(c, "min_total_review_count"),
		MaxTotalReviewCount: queryInt64(c, "max_total_review_count"),
		MinTotalRatingCount: queryInt64(c, "min_total_rating_count"),
		MaxTotalRatingCount: queryInt64(c, "max_total_rating_count"),
		CountryID:           queryInt64(c, "country_id"),
		HasLicenseInCountry: queryInt64(c, "has_license_in_country_id"),
		SupportsFiatID:      queryInt64(c, "supports_fiat_id"),
		SupportsLanguageID:  queryInt64(c, "supports_language_id"),
	}

	field, dir, ok := parseSort(c, dto.ExchangeSortFields, "name", dto.SortAsc)
	if !ok {
		return
	}

	result, err := h.svc.List(ctx, f, dto.ExchangeSortBy{Field: field, Direction: dir}, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ExchangeHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Redirect sends the visitor to the exchange's outbound link, falling back
// to the internal overview page when none is known.
func (h *ExchangeHandler) Redirect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	target, err := h.svc.RedirectTarget(ctx, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// News lists news items linked to one exchange.
func (h *ExchangeHandler) News(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.newsSvc.List(ctx, &id, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Guides lists guides tied to one exchange.
func (h *ExchangeHandler) Guides(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.guideSvc.List(ctx, &id, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ExchangeHandler) Create(c *gin.Context) {
	var in dto.CreateExchangeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Create(ctx, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExchangeHandler) Update(c *gin.Context) {
	var in dto.UpdateExchangeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Update(ctx, c.Param("slug"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExchangeHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
