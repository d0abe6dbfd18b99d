package handler

import (
	"context"
	"net/http"
	"time"

	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the lookup tables used to populate filters and
// admin forms.
type ReferenceHandler struct {
	svc service.ReferenceService
}

func NewReferenceHandler(svc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.Countries)
	rg.GET("/countries/:id", h.Country)
	rg.GET("/languages", h.Languages)
	rg.GET("/fiat_currencies", h.FiatCurrencies)
	rg.GET("/fiat_currencies/:id", h.FiatCurrency)
}

func (h *ReferenceHandler) Countries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	countries, err := h.svc.ListCountries(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *ReferenceHandler) Country(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	country, err := h.svc.GetCountry(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *ReferenceHandler) Languages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	languages, err := h.svc.ListLanguages(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, languages)
}

func (h *ReferenceHandler) FiatCurrencies(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	currencies, err := h.svc.ListFiatCurrencies(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, currencies)
}

func (h *ReferenceHandler) FiatCurrency(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	currency, err := h.svc.GetFiatCurrency(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, currency)
}
