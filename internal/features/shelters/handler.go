package shelters

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crisiswatch/api/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create godoc
// @Summary Register a shelter
// @Description Register an emergency shelter (admin only)
// @Tags shelters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateShelterRequest true "Shelter details"
// @Success 201 {object} response.SuccessResponse{data=Shelter}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /shelters [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	shelter := &Shelter{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Location: *req.Location,
		Capacity: req.Capacity,
		Contact:  req.Contact,
		Type:     req.Type,
	}

	if err := h.repo.Create(c.Request.Context(), shelter); err != nil {
		response.DatabaseError(c, "Failed to create shelter")
		return
	}

	response.Created(c, shelter)
}

// List godoc
// @Summary List shelters
// @Tags shelters
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]Shelter}
// @Router /shelters [get]
func (h *Handler) List(c *gin.Context) {
	results, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, "Failed to list shelters")
		return
	}

	response.Success(c, results)
}
