package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/details/:slug", h.Get)
}

func (h *BookHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/books", h.Create)
	rg.PUT("/books/:slug", h.Update)
	rg.DELETE("/books/:slug", h.Delete)
}

func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	f := dto.BookFilterParams{
		Name:                c.Query("name"),
		Author:              c.Query("author"),
		YearFrom:            queryInt16(c, "min_year"),
		YearTo:              queryInt16(c, "max_year"),
		MinTotalReviewCount: queryInt64(c, "min_total_review_count"),
		TagID:               queryInt64(c, "tag_id"),
	}

	field, dir, ok := parseSort(c, dto.BookSortFields, "name", dto.SortAsc)
	if !ok {
		return
	}

	result, err := h.svc.List(ctx, f, dto.BookSortBy{Field: field, Direction: dir}, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
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

func (h *BookHandler) Update(c *gin.Context) {
	var in dto.UpdateBookDTO
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

func (h *BookHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
