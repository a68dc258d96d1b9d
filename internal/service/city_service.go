package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// CityInput describes city create/update payload.
type CityInput struct {
	Name  string
	State string
}

// CityService manages cities. Role gating (ADMIN for mutations) happens at
// the route level; this service only enforces data rules.
type CityService struct {
	cities repository.CityRepository
}

// NewCityService constructs the service.
func NewCityService(cities repository.CityRepository) *CityService {
	return &CityService{cities: cities}
}

// List returns all cities.
func (s *CityService) List(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

// GetByID fetches a single city.
func (s *CityService) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	city, err := s.cities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("city", map[string]any{"id": id})
		}
		return nil, err
	}
	return city, nil
}

// Create inserts a city; names are unique.
func (s *CityService) Create(ctx context.Context, input CityInput) (*domain.City, error) {
	exists, err := s.cities.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("city name already exists", map[string]any{"name": input.Name})
	}

	city := &domain.City{
		Name:  strings.TrimSpace(input.Name),
		State: strings.ToUpper(strings.TrimSpace(input.State)),
	}
	if err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

// Update modifies a city.
func (s *CityService) Update(ctx context.Context, id int64, input CityInput) (*domain.City, error) {
	city, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if city.Name != input.Name {
		exists, err := s.cities.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewConflict("city name already exists", map[string]any{"name": input.Name})
		}
	}

	city.Name = strings.TrimSpace(input.Name)
	city.State = strings.ToUpper(strings.TrimSpace(input.State))

	if err := s.cities.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

// Delete removes a city.
func (s *CityService) Delete(ctx context.Context, id int64) error {
	if err := s.cities.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("city", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
