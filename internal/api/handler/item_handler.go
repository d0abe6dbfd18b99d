package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

// ItemHandler exposes the polymorphic base entity by id, regardless of the
// concrete kind.
type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.Get)
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.svc.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
