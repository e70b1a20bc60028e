// ================== internal/features/reports/handler.go ==================
package reports

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/pkg/pagination"
	"github.com/crisiswatch/api/internal/pkg/response"
	errs "github.com/crisiswatch/api/pkg/errors"
)

type Handler struct {
	lifecycle *Lifecycle
	repo      *Repository
}

func NewHandler(lifecycle *Lifecycle, repo *Repository) *Handler {
	return &Handler{lifecycle: lifecycle, repo: repo}
}

// Submit godoc
// @Summary Submit an incident report
// @Description Create a new incident report in pending state
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report draft"
// @Success 201 {object} response.SuccessResponse{data=Report}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) Submit(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.lifecycle.Submit(c.Request.Context(), &req, userID)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, report)
}

// List godoc
// @Summary List reports
// @Description List reports with optional city and status filters
// @Tags reports
// @Produce json
// @Param city query string false "Filter by city"
// @Param status query string false "Filter by status" Enums(pending,validated,rejected,resolved)
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Report}
// @Router /reports [get]
func (h *Handler) List(c *gin.Context) {
	city := c.Query("city")
	status := Status(c.Query("status"))
	if status != "" && !ValidStatus(status) {
		response.BadRequest(c, "Unknown status filter", "INVALID_STATUS")
		return
	}

	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	offset := (page.Page - 1) * page.Limit

	results, total, err := h.repo.List(c.Request.Context(), city, status, page.Limit, offset)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Paginated(c, results, total, page.Limit, page.Page)
}

// Get godoc
// @Summary Get a report by ID
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	report, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if report == nil {
		response.NotFound(c, "Report not found")
		return
	}

	response.Success(c, report)
}

// UpdateStatus godoc
// @Summary Transition a report's status
// @Description Apply a status transition (admin only). Allowed edges: pending->validated, pending->rejected, validated->resolved.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /reports/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.lifecycle.Transition(c.Request.Context(), c.Param("id"), req.Status, c.GetString("role"))
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, report)
}

// ApplyScore godoc
// @Summary Apply an AI severity score
// @Description Record an AI analysis score for a report and re-run classification. Called by the analysis batch.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body ApplyScoreRequest true "Severity score in [0,1]"
// @Success 200 {object} response.SuccessResponse{data=Report}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /reports/{id}/ai [put]
func (h *Handler) ApplyScore(c *gin.Context) {
	var req ApplyScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	report, err := h.lifecycle.ApplyAIScore(c.Request.Context(), c.Param("id"), req.Score)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, report)
}

// renderError maps lifecycle and store errors onto HTTP responses.
// Store failures stay generic so storage details never reach clients.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		response.ValidationFailed(c, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		response.AuthorizationError(c)
	case errors.Is(err, errs.ErrNotFound):
		response.NotFound(c, "Report not found")
	case errors.Is(err, errs.ErrInvalidTransition):
		response.StaleStateError(c)
	case errors.Is(err, errs.ErrStoreTimeout), errors.Is(err, errs.ErrStoreUnavailable):
		response.ServiceUnavailable(c, "Service temporarily unavailable", "STORE_UNAVAILABLE")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
