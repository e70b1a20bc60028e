package users

import (
	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/features/auth"
	"github.com/crisiswatch/api/internal/pkg/pagination"
	"github.com/crisiswatch/api/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary List user accounts
// @Description Paginated listing of all accounts, newest first. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.PaginatedResponse{data=[]auth.User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	offset := (page.Page - 1) * page.Limit

	userList, total, err := h.repo.List(c.Request.Context(), page.Limit, offset)
	if err != nil {
		response.DatabaseError(c, "Failed to fetch users")
		return
	}
	if userList == nil {
		userList = []auth.User{}
	}

	response.Paginated(c, userList, total, page.Limit, page.Page)
}

// Get godoc
// @Summary Get a user account
// @Description Fetch a single account by ID. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=auth.User}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.DatabaseError(c, "Failed to fetch user")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, user)
}
