package handlers

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/middleware"
)

// getUserIDFromContext returns the authenticated user ID injected by the auth
// middleware, or "" when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextUserID).(string); ok {
		return id
	}
	return ""
}

// fail renders a classified error as the API's structured failure shape.
func fail(c echo.Context, err error) error {
	return c.JSON(apperrors.HTTPStatus(err), echo.Map{
		"error": echo.Map{
			"kind":    apperrors.KindOf(err).String(),
			"message": apperrors.Message(err),
		},
	})
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

// paginationMeta builds the meta block of paginated list responses.
func paginationMeta(total int64, page, limit int) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":  page,
		"totalPages":   totalPages,
		"totalItems":   total,
		"itemsPerPage": limit,
	}
}
