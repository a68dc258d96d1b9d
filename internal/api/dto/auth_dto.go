package dto

import (
	"regexp"
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// cpfPattern accepts CPFs with or without punctuation, e.g. 123.456.789-01
// or 12345678901.
var cpfPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// IsValidCPF reports whether the identifier matches the CPF format.
func IsValidCPF(cpf string) bool {
	return cpfPattern.MatchString(cpf)
}

// LoginRequest payload for authentication.
type LoginRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// AuthResponse mirrors the issued credential plus the identity it was
// minted for.
type AuthResponse struct {
	Token     string      `json:"token"`
	Type      string      `json:"type"`
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	CPF       string      `json:"cpf"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NewAuthResponse maps an issued token to its response shape.
func NewAuthResponse(issued *domain.IssuedToken) AuthResponse {
	return AuthResponse{
		Token:     issued.Token,
		Type:      issued.Type,
		ID:        issued.SubjectID,
		Name:      issued.Name,
		CPF:       issued.CPF,
		Role:      issued.Role,
		ExpiresAt: issued.ExpiresAt,
	}
}
