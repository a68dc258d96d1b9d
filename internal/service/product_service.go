package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	SubjectID int64
	Role      domain.Role
}

// ProductInput describes product create/update payload.
type ProductInput struct {
	Code   string
	Name   string
	Value  float64
	Stock  int
	CityID int64
}

// ProductService coordinates catalog workflows. Ownership decisions are
// delegated to auth.MayMutate; reads are unrestricted.
type ProductService struct {
	products   repository.ProductRepository
	cities     repository.CityRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ProductDependencies bundles repositories for product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	CityRepo    repository.CityRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		cities:     deps.CityRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListByCity returns products grouped under a city.
func (s *ProductService) ListByCity(ctx context.Context, cityID int64) ([]domain.Product, error) {
	return s.products.ListByCity(ctx, cityID)
}

// GetByID fetches a single product.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}
	return product, nil
}

// Create inserts a product owned by the acting identity. Ownership is fixed
// here and never reassigned.
func (s *ProductService) Create(ctx context.Context, actor Actor, input ProductInput) (*domain.Product, error) {
	exists, err := s.products.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("product code already exists", map[string]any{"code": input.Code})
	}

	if _, err := s.users.GetByID(ctx, actor.SubjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": actor.SubjectID})
		}
		return nil, err
	}
	if _, err := s.cities.GetByID(ctx, input.CityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("city", map[string]any{"id": input.CityID})
		}
		return nil, err
	}

	product := &domain.Product{
		Code:    strings.TrimSpace(input.Code),
		Name:    strings.TrimSpace(input.Name),
		Value:   input.Value,
		Stock:   input.Stock,
		CityID:  input.CityID,
		OwnerID: actor.SubjectID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventProductCreated,
		Actor: events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Payload: events.ProductPayload{
			ProductID: product.ID,
			Code:      product.Code,
			CityID:    product.CityID,
			OwnerID:   product.OwnerID,
		},
	})
	return product, nil
}

// Update modifies a product after the ownership policy admits the actor.
func (s *ProductService) Update(ctx context.Context, actor Actor, id int64, input ProductInput) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.MayMutate(actor.SubjectID, actor.Role, product.OwnerID) {
		return nil, apperrors.NewForbidden("you don't have permission to update this product")
	}

	if product.Code != input.Code {
		exists, err := s.products.ExistsByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("product code already exists", map[string]any{"code": input.Code})
		}
	}

	if _, err := s.cities.GetByID(ctx, input.CityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("city", map[string]any{"id": input.CityID})
		}
		return nil, err
	}

	product.Code = strings.TrimSpace(input.Code)
	product.Name = strings.TrimSpace(input.Name)
	product.Value = input.Value
	product.Stock = input.Stock
	product.CityID = input.CityID

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventProductUpdated,
		Actor: events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Payload: events.ProductPayload{
			ProductID: product.ID,
			Code:      product.Code,
			CityID:    product.CityID,
			OwnerID:   product.OwnerID,
		},
	})
	return product, nil
}

// Delete removes a product after the ownership policy admits the actor.
func (s *ProductService) Delete(ctx context.Context, actor Actor, id int64) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.MayMutate(actor.SubjectID, actor.Role, product.OwnerID) {
		return apperrors.NewForbidden("you don't have permission to delete this product")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventProductDeleted,
		Actor: events.Actor{SubjectID: actor.SubjectID, Role: actor.Role},
		Payload: events.ProductPayload{
			ProductID: product.ID,
			Code:      product.Code,
			CityID:    product.CityID,
			OwnerID:   product.OwnerID,
		},
	})
	return nil
}
