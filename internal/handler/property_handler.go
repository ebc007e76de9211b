package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"homefinder/internal/repository"
	"homefinder/internal/service"
)

// PropertyHandler handles property endpoints.
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates a new property handler.
func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// List godoc
// @Summary List properties
// @Tags properties
// @Produce json
// @Param q query string false "Search in title, description and location"
// @Param location query string false "Location substring"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param bedrooms query int false "Minimum bedrooms"
// @Param bathrooms query int false "Minimum bathrooms"
// @Param available query bool false "Availability"
// @Success 200 {array} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}
	properties, err := h.propertyService.List(c.Request().Context(), filter)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, properties)
}

// Get godoc
// @Summary Get property by id
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	property, err := h.propertyService.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, property)
}

// Create godoc
// @Summary Create property
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param property body service.PropertyInput true "Property"
// @Success 201 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var input service.PropertyInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	property, err := h.propertyService.Create(c.Request().Context(), input)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, property)
}

// Update godoc
// @Summary Update property
// @Description Supplied fields overwrite, omitted fields keep their value.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param property body service.PropertyInput true "Fields to change"
// @Success 200 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var input service.PropertyInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	property, err := h.propertyService.Update(c.Request().Context(), id, input)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, property)
}

// Delete godoc
// @Summary Delete property
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.propertyService.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted successfully"})
}

// Stats godoc
// @Summary Catalogue statistics
// @Tags properties
// @Produce json
// @Success 200 {object} service.PropertyStats
// @Router /stats [get]
func (h *PropertyHandler) Stats(c echo.Context) error {
	stats, err := h.propertyService.Stats(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func parseFilter(c echo.Context) (repository.PropertyFilter, error) {
	filter := repository.PropertyFilter{
		Query:    c.QueryParam("q"),
		Location: c.QueryParam("location"),
	}

	var err error
	if filter.MinPrice, err = decimalParam(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = decimalParam(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.MinBedrooms, err = intParam(c, "bedrooms"); err != nil {
		return filter, err
	}
	if filter.MinBathrooms, err = intParam(c, "bathrooms"); err != nil {
		return filter, err
	}
	if v := strings.TrimSpace(c.QueryParam("available")); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return filter, badRequest("invalid available")
		}
		filter.Available = &b
	}
	return filter, nil
}

func decimalParam(c echo.Context, name string) (*decimal.Decimal, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, badRequest("invalid " + name)
	}
	return &d, nil
}

func intParam(c echo.Context, name string) (int, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, badRequest("invalid " + name)
	}
	return n, nil
}
