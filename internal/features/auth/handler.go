// ================== internal/features/auth/handler.go ==================
package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crisiswatch/api/internal/config"
	"github.com/crisiswatch/api/internal/pkg/logger"
	"github.com/crisiswatch/api/internal/pkg/response"
	"github.com/crisiswatch/api/internal/pkg/token"
)

type Handler struct {
	repo *Repository
	idp  IdentityProvider
	cfg  *config.Config
}

func NewHandler(repo *Repository, idp IdentityProvider) *Handler {
	return &Handler{
		repo: repo,
		idp:  idp,
		cfg:  config.Load(),
	}
}

// Session godoc
// @Summary Exchange a login session for an API token
// @Description Validates the session ID from the OAuth redirect, provisions the account on first sign-in, and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SessionRequest true "Session handoff data"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/session [post]
func (h *Handler) Session(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	identity, err := h.idp.Exchange(c.Request.Context(), req.SessionID)
	if err != nil {
		logger.Warn("session exchange failed: %v", err)
		response.AuthenticationError(c, "Invalid session")
		return
	}

	user, err := h.repo.UpsertByEmail(c.Request.Context(), identity)
	if err != nil {
		response.DatabaseError(c, "Failed to provision user")
		return
	}

	jwtToken, err := token.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	session := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Duration(h.cfg.JWTExpireHours) * time.Hour),
	}
	if err := h.repo.CreateSession(c.Request.Context(), session); err != nil {
		response.DatabaseError(c, "Failed to create session")
		return
	}

	response.Success(c, AuthResponse{Token: jwtToken, User: user})
}

// Me godoc
// @Summary Get current user profile
// @Description Get the profile of the currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.repo.FindByID(c.Request.Context(), userID)
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

// UpdatePreferredCity godoc
// @Summary Set the user's preferred city
// @Description Updates the city the user's dashboard defaults to
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "Preferred city"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/me/city [put]
func (h *Handler) UpdatePreferredCity(c *gin.Context) {
	var req struct {
		City string `json:"city" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := h.repo.UpdatePreferredCity(c.Request.Context(), c.GetString("userID"), req.City); err != nil {
		response.DatabaseError(c, "Failed to update preferred city")
		return
	}

	response.Success(c, gin.H{"city": req.City})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the user's live sessions; the client discards its token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/logout [delete]
func (h *Handler) Logout(c *gin.Context) {
	revoked, err := h.repo.RevokeSessions(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.DatabaseError(c, "Failed to revoke sessions")
		return
	}

	response.Success(c, gin.H{"revoked": revoked})
}
