package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// UserCreateInput describes registration payload. Role defaults to USER
// when empty.
type UserCreateInput struct {
	Name     string
	CPF      string
	Password string
	Role     domain.Role
}

// UserUpdateInput describes update payload. Password and Role are applied
// only when provided.
type UserUpdateInput struct {
	Name     string
	CPF      string
	Password string
	Role     domain.Role
}

// UserService manages identities. A user record is owned by itself, so
// update/delete go through the same ownership policy as products.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, dispatcher: dispatcher}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// Create registers a new identity with a hashed password.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	exists, err := s.users.ExistsByCPF(ctx, input.CPF)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("cpf already registered", map[string]any{"cpf": input.CPF})
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		CPF:          input.CPF,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserCreated,
		Actor:   events.Actor{SubjectID: user.ID, Role: user.Role},
		Payload: events.UserPayload{UserID: user.ID, Role: user.Role},
	})
	return user, nil
}

// Update modifies a user after the ownership policy admits the actor; the
// record's own id is its owner id. Password is re-hashed only when provided;
// role changes require ADMIN.
func (s *UserService) Update(ctx context.Context, actor Actor, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.MayMutate(actor.SubjectID, actor.Role, user.ID) {
		return nil, apperrors.NewForbidden("you don't have permission to update this user")
	}

	if input.CPF != user.CPF {
		exists, err := s.users.ExistsByCPF(ctx, input.CPF)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("cpf already registered", map[string]any{"cpf": input.CPF})
		}
	}

	user.Name = input.Name
	user.CPF = input.CPF

	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if input.Role != "" && input.Role != user.Role {
		if actor.Role != domain.RoleAdmin {
			return nil, apperrors.NewForbidden("only admins can change roles")
		}
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
		}
		user.Role = input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user after the ownership policy admits the actor.
func (s *UserService) Delete(ctx context.Context, actor Actor, id int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.MayMutate(actor.SubjectID, actor.Role, user.ID) {
		return apperrors.NewForbidden("you don't have permission to delete this user")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserDeleted,
		Actor:   events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Payload: events.UserPayload{UserID: user.ID, Role: user.Role},
	})
	return nil
}
