package handler

import (
	"errors"
	"net/http"
	"strconv"

	"coindex/internal/api/dto"
	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

// parsePageParams reads skip/limit from the query string and clamps them.
func parsePageParams(c *gin.Context) dto.PageParams {
	page := dto.PageParams{Limit: dto.DefaultLimit}
	if s := c.Query("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			page.Skip = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			page.Limit = parsed
		}
	}
	return page.Clamp()
}

// parseSort validates sort_by/sort_dir against a whitelist. An unknown field
// or direction is a client error, not something to silently ignore.
func parseSort(c *gin.Context, fields map[string]string, defaultField string, defaultDir dto.SortDirection) (string, dto.SortDirection, bool) {
	field := defaultField
	if s := c.Query("sort_by"); s != "" {
		if _, ok := fields[s]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported sort field: " + s})
			return "", "", false
		}
		field = s
	}
	dir := defaultDir
	if d := c.Query("sort_dir"); d != "" {
		dir = dto.SortDirection(d)
		if !dir.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sort_dir must be asc or desc"})
			return "", "", false
		}
	}
	return field, dir, true
}

func queryBool(c *gin.Context, name string) *bool {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return &parsed
		}
	}
	return nil
}

func queryInt64(c *gin.Context, name string) *int64 {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func queryInt16(c *gin.Context, name string) *int16 {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 16); err == nil {
			val := int16(parsed)
			return &val
		}
	}
	return nil
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondServiceError maps the service sentinels onto status codes. Anything
// unrecognized is a 500 with the message withheld.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrTagNameTaken),
		errors.Is(err, service.ErrNicknameInUse),
		errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReviewAuthor),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReviewNotApproved):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotImplemented):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
