package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

// ReportHandler handles moderation report HTTP requests. Reports are
// append-only audit records; there is no update or delete endpoint.
type ReportHandler struct {
	reportRepository repositories.ReportRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{reportRepository: reportRepo}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports/users/:id", h.reportSubject(models.ReportSubjectUser))
	g.POST("/reports/posts/:id", h.reportSubject(models.ReportSubjectPost))
	g.POST("/reports/comments/:id", h.reportSubject(models.ReportSubjectComment))
	g.POST("/reports/problems", h.ReportProblem)
	g.POST("/suggestions", h.SuggestFeature)
	g.GET("/reports", h.ListReports)
}

// ListReports returns recent reports for moderators, newest first,
// optionally filtered by subject kind.
func (h *ReportHandler) ListReports(c echo.Context) error {
	subject := c.QueryParam("subject")
	switch subject {
	case "", models.ReportSubjectUser, models.ReportSubjectPost, models.ReportSubjectComment, models.ReportSubjectProblem:
	default:
		return fail(c, apperrors.New(apperrors.Validation, "unknown report subject"))
	}

	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	reports, err := h.reportRepository.GetReports(c.Request().Context(), subject, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"reports": reports}})
}

func (h *ReportHandler) reportSubject(subject string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateReportRequest
		if err := c.Bind(&req); err != nil {
			return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
		}

		report := &models.Report{
			Subject:      subject,
			SubjectID:    c.Param("id"),
			ReportedByID: getUserIDFromContext(c),
			Reason:       req.Reason,
		}
		if err := h.reportRepository.InsertReport(c.Request().Context(), report); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true})
	}
}

// ReportProblem reports a problem with the platform itself
func (h *ReportHandler) ReportProblem(c echo.Context) error {
	var req models.CreateProblemReportRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	report := &models.Report{
		Subject:      models.ReportSubjectProblem,
		ReportedByID: getUserIDFromContext(c),
		Reason:       req.Problem,
	}
	if err := h.reportRepository.InsertReport(c.Request().Context(), report); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// SuggestFeature records a feature suggestion
func (h *ReportHandler) SuggestFeature(c echo.Context) error {
	var req models.SuggestFeatureRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apperrors.New(apperrors.Validation, "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.Wrap(apperrors.Validation, err.Error(), err))
	}

	feature := &models.SuggestedFeature{
		Feature:       req.Feature,
		SuggestedByID: getUserIDFromContext(c),
	}
	if err := h.reportRepository.InsertSuggestedFeature(c.Request().Context(), feature); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
