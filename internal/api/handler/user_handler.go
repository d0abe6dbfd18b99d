package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/dto"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin user directory.
type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.PATCH("/users/:id/block", h.Block)
}

func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	f := dto.UserFilterParams{
		Email:    c.Query("email"),
		Nickname: c.Query("nickname"),
		Role:     c.Query("role"),
	}

	result, err := h.svc.List(ctx, f, parsePageParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Block(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Block(ctx, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
