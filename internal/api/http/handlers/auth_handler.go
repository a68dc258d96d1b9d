package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// AuthHandler exposes login and token introspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CPF == "" || req.Password == "" {
		return apperrors.NewValidationError("cpf and password required", nil)
	}
	if !dto.IsValidCPF(req.CPF) {
		return apperrors.NewValidationError("invalid CPF format", map[string]any{"cpf": req.CPF})
	}

	issued, err := h.auth.Authenticate(c.UserContext(), req.CPF, req.Password, c.IP())
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": dto.NewAuthResponse(issued)})
}

// Me handles GET /auth/me: the presented token is re-validated against the
// freshly loaded identity it claims to belong to.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	tokenStr, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	user, claims, err := h.auth.Introspect(c.UserContext(), tokenStr)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user":       dto.NewUserResponse(user),
			"expires_at": claims.ExpiresAt.Time,
		},
	})
}
