package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homefinder/internal/service"
)

// UploadHandler handles image uploads.
type UploadHandler struct {
	imageService service.ImageService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(imageService service.ImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService}
}

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage godoc
// @Summary Upload a property image
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image (png, jpg, jpeg, gif, webp)"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/upload-image [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest("no file provided")
	}

	src, err := fh.Open()
	if err != nil {
		return badRequest("unreadable file")
	}
	defer src.Close()

	url, err := h.imageService.Upload(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}
