package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homefinder/internal/service"
)

// InquiryHandler handles contact requests about properties.
type InquiryHandler struct {
	inquiryService service.InquiryService
}

// NewInquiryHandler creates a new inquiry handler.
func NewInquiryHandler(inquiryService service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// InquiryRequest represents a visitor inquiry.
type InquiryRequest struct {
	PropertyID  uint   `json:"property_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiry_type"`
}

// Submit godoc
// @Summary Send an inquiry about a property
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body InquiryRequest true "Inquiry"
// @Success 201 {object} model.Inquiry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /inquiries [post]
func (h *InquiryHandler) Submit(c echo.Context) error {
	var req InquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	inquiry, err := h.inquiryService.Submit(c.Request().Context(), service.InquiryInput{
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		InquiryType: req.InquiryType,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, inquiry)
}

// List godoc
// @Summary List inquiries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inquiry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	inquiries, err := h.inquiryService.List(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, inquiries)
}
