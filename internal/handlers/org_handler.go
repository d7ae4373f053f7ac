package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/repositories"
)

// OrgHandler serves the campus -> college -> program hierarchy, used by
// clients to drive affiliation pickers.
type OrgHandler struct {
	orgRepository repositories.OrgRepository
}

// NewOrgHandler creates a new OrgHandler
func NewOrgHandler(orgRepo repositories.OrgRepository) *OrgHandler {
	return &OrgHandler{orgRepository: orgRepo}
}

// RegisterOrgRoutes registers organizational hierarchy routes
func (h *OrgHandler) RegisterOrgRoutes(g *echo.Group) {
	g.GET("/campuses", h.GetCampuses)
	g.GET("/colleges", h.GetColleges)
	g.GET("/programs", h.GetPrograms)
}

// GetCampuses lists all campuses
func (h *OrgHandler) GetCampuses(c echo.Context) error {
	campuses, err := h.orgRepository.GetCampuses()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": campuses})
}

// GetColleges lists colleges, optionally filtered by campus_id
func (h *OrgHandler) GetColleges(c echo.Context) error {
	var (
		colleges interface{}
		err      error
	)
	if campusID := c.QueryParam("campus_id"); campusID != "" {
		colleges, err = h.orgRepository.GetCollegesByCampusID(campusID)
	} else {
		colleges, err = h.orgRepository.GetColleges()
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": colleges})
}

// GetPrograms lists programs, optionally filtered by college_id
func (h *OrgHandler) GetPrograms(c echo.Context) error {
	var (
		programs interface{}
		err      error
	)
	if collegeID := c.QueryParam("college_id"); collegeID != "" {
		programs, err = h.orgRepository.GetProgramsByCollegeID(collegeID)
	} else {
		programs, err = h.orgRepository.GetPrograms()
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": programs})
}
