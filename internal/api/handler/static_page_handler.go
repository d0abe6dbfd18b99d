package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/middleware"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

type StaticPageHandler struct {
	svc service.StaticPageService
}

func NewStaticPageHandler(svc service.StaticPageService) *StaticPageHandler {
	return &StaticPageHandler{svc: svc}
}

func (h *StaticPageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:slug", h.Get)
}

func (h *StaticPageHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/static-pages", h.Create)
	rg.PUT("/static-pages/:slug", h.Update)
	rg.DELETE("/static-pages/:slug", h.Delete)
}

func (h *StaticPageHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pages, err := h.svc.GetAll(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pages)
}

func (h *StaticPageHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, err := h.svc.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StaticPageHandler) Create(c *gin.Context) {
	editorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var in dto.CreateStaticPageDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, err := h.svc.Create(ctx, editorID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, page)
}

func (h *StaticPageHandler) Update(c *gin.Context) {
	editorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var in dto.UpdateStaticPageDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, err := h.svc.Update(ctx, c.Param("slug"), editorID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StaticPageHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
