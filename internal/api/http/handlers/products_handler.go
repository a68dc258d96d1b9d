package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// List handles GET /products, optionally filtered by city_id.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	if raw := c.Query("city_id"); raw != "" {
		cityID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cityID <= 0 {
			return apperrors.NewValidationError("invalid city_id", map[string]any{"city_id": raw})
		}
		products, err := h.products.ListByCity(c.UserContext(), cityID)
		if err != nil {
			return apperrors.MapError(err)
		}
		return c.JSON(fiber.Map{"data": dto.NewProductListResponse(products)})
	}

	products, err := h.products.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductListResponse(products)})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.products.GetByID(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Create handles POST /products. The authenticated caller becomes the owner.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	product, err := h.products.Create(c.UserContext(), actorFrom(principal), service.ProductInput{
		Code:   req.Code,
		Name:   req.Name,
		Value:  req.Value,
		Stock:  req.Stock,
		CityID: req.CityID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Update handles PUT /products/:id (owner or admin).
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	product, err := h.products.Update(c.UserContext(), actorFrom(principal), id, service.ProductInput{
		Code:   req.Code,
		Name:   req.Name,
		Value:  req.Value,
		Stock:  req.Stock,
		CityID: req.CityID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete handles DELETE /products/:id (owner or admin).
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.products.Delete(c.UserContext(), actorFrom(principal), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProductRequest(c *fiber.Ctx) (*dto.ProductRequest, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Code == "" || req.Name == "" {
		return nil, apperrors.NewValidationError("code and name required", nil)
	}
	if req.Value < 0 {
		return nil, apperrors.NewValidationError("value must not be negative", map[string]any{"value": req.Value})
	}
	if req.Stock < 0 {
		return nil, apperrors.NewValidationError("stock must not be negative", map[string]any{"stock": req.Stock})
	}
	if req.CityID <= 0 {
		return nil, apperrors.NewValidationError("city_id required", nil)
	}
	return &req, nil
}
