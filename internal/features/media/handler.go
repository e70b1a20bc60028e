package media

import (
	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/pkg/cloudinary"
	"github.com/crisiswatch/api/internal/pkg/logger"
	"github.com/crisiswatch/api/internal/pkg/response"
)

type Handler struct {
	uploads *cloudinary.Service
}

func NewHandler(uploads *cloudinary.Service) *Handler {
	return &Handler{uploads: uploads}
}

// Upload godoc
// @Summary Upload a report image
// @Description Uploads an image and returns its hosted URL for use in a report draft
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpg, jpeg, png, gif, webp; max 10MB)"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required", "MISSING_FILE")
		return
	}

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file", "INVALID_FILE")
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		logger.Error("image upload failed: %v", err)
		response.ServiceUnavailable(c, "Image upload failed", "UPLOAD_FAILED")
		return
	}

	response.Created(c, gin.H{
		"url":       result.URL,
		"public_id": result.PublicID,
		"width":     result.Width,
		"height":    result.Height,
		"format":    result.Format,
	})
}
