package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// UserCreateRequest payload for registration.
type UserCreateRequest struct {
	Name     string      `json:"name"`
	CPF      string      `json:"cpf"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

// UserUpdateRequest payload for updates; password and role are optional.
type UserUpdateRequest struct {
	Name     string      `json:"name"`
	CPF      string      `json:"cpf"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// UserResponse never exposes the password hash.
type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	CPF       string      `json:"cpf"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		CPF:       user.CPF,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of domain users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
