package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// PropertiesHandler manages listing endpoints.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: propertyService}
}

// List handles GET /properties with role-scoped visibility.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	listings, err := h.properties.ListFor(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.PropertyResponse, 0, len(listings))
	for i := range listings {
		items = append(items, dto.NewPropertyResponse(&listings[i]))
	}
	return c.JSON(fiber.Map{"properties": items})
}

// Get handles GET /properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	id, err := propertyID(c)
	if err != nil {
		return err
	}
	property, err := h.properties.GetFor(c.Context(), principal.User, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewPropertyResponse(property))
}

// Create handles POST /properties. Admin and seller roles (route guard); the
// seller id comes from the authenticated identity, never the payload.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Price <= 0 {
		return apperrors.NewValidationError("title and price are required", nil)
	}

	property, err := h.properties.Create(c.Context(), principal.User, service.PropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPropertyResponse(property))
}

// Update handles PUT /properties/:id. Role and ownership are enforced by the
// route guards.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	id, err := propertyID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	property, err := h.properties.Update(c.Context(), principal.User, id, service.PropertyUpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		Verified:     req.Verified,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewPropertyResponse(property))
}

// Delete handles DELETE /properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return err
	}
	if err := h.properties.Delete(c.Context(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "property deleted"})
}

func propertyID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid property id", nil)
	}
	return id, nil
}
