package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homefinder/internal/auth"
	"homefinder/internal/middleware"
	"homefinder/internal/model"
	"homefinder/internal/service"
)

// LikeHandler handles the caller's saved properties.
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// LikeRequest names the property to save.
type LikeRequest struct {
	PropertyID uint `json:"property_id" validate:"required"`
}

// LikesResponse lists liked properties, most recent first.
type LikesResponse struct {
	Likes []model.Property `json:"likes"`
}

// List godoc
// @Summary List liked properties
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LikesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /likes [get]
func (h *LikeHandler) List(c echo.Context) error {
	claims, ok := middleware.Identity(c)
	if !ok {
		return errorResponse(auth.ErrTokenMissing)
	}
	properties, err := h.likeService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, LikesResponse{Likes: properties})
}

// Like godoc
// @Summary Like a property
// @Tags likes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LikeRequest true "Property"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /likes [post]
func (h *LikeHandler) Like(c echo.Context) error {
	claims, ok := middleware.Identity(c)
	if !ok {
		return errorResponse(auth.ErrTokenMissing)
	}
	var req LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.likeService.Like(c.Request().Context(), claims.UserID, req.PropertyID); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "property liked"})
}

// Unlike godoc
// @Summary Remove a like
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param propertyId path int true "Property ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /likes/{propertyId} [delete]
func (h *LikeHandler) Unlike(c echo.Context) error {
	claims, ok := middleware.Identity(c)
	if !ok {
		return errorResponse(auth.ErrTokenMissing)
	}
	propertyID, err := pathID(c, "propertyId")
	if err != nil {
		return err
	}
	if err := h.likeService.Unlike(c.Request().Context(), claims.UserID, propertyID); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "like removed"})
}
