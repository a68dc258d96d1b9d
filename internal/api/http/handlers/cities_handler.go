package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// CitiesHandler exposes city endpoints. Mutations are admin only,
// enforced at the route level.
type CitiesHandler struct {
	cities *service.CityService
}

// NewCitiesHandler constructs handler.
func NewCitiesHandler(cityService *service.CityService) *CitiesHandler {
	return &CitiesHandler{cities: cityService}
}

// List handles GET /cities.
func (h *CitiesHandler) List(c *fiber.Ctx) error {
	cities, err := h.cities.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewCityListResponse(cities)})
}

// Get handles GET /cities/:id.
func (h *CitiesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	city, err := h.cities.GetByID(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewCityResponse(city)})
}

// Create handles POST /cities.
func (h *CitiesHandler) Create(c *fiber.Ctx) error {
	req, err := parseCityRequest(c)
	if err != nil {
		return err
	}

	city, err := h.cities.Create(c.UserContext(), service.CityInput{Name: req.Name, State: req.State})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCityResponse(city)})
}

// Update handles PUT /cities/:id.
func (h *CitiesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	req, err := parseCityRequest(c)
	if err != nil {
		return err
	}

	city, err := h.cities.Update(c.UserContext(), id, service.CityInput{Name: req.Name, State: req.State})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewCityResponse(city)})
}

// Delete handles DELETE /cities/:id.
func (h *CitiesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.cities.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCityRequest(c *fiber.Ctx) (*dto.CityRequest, error) {
	var req dto.CityRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.State == "" {
		return nil, apperrors.NewValidationError("name and state required", nil)
	}
	return &req, nil
}
