package domain

import "time"

// Role enumerates access levels for identities. Only these two members
// participate in authorization decisions; adding a role requires wiring it
// into the ownership policy explicitly.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known members.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for identities that authenticate and own products.
type User struct {
	ID           int64
	Name         string
	CPF          string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
