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

type GuideHandler struct {
	svc service.GuideService
}

func NewGuideHandler(svc service.GuideService) *GuideHandler {
	return &GuideHandler{svc: svc}
}

func (h *GuideHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

func (h *GuideHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/guides", h.Create)
	rg.PUT("/guides/:id", h.Update)
	rg.DELETE("/guides/:id", h.Delete)
}

func (h *GuideHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.List(ctx, queryInt64(c, "exchange_id"), parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GuideHandler) Get(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuideHandler) Create(c *gin.Context) {
	creatorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var in dto.CreateGuideDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Create(ctx, creatorID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GuideHandler) Update(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateGuideDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Update(ctx, id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuideHandler) Delete(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
