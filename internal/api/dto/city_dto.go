package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// CityRequest payload for create/update.
type CityRequest struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// CityResponse response shape.
type CityResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCityResponse maps a domain city.
func NewCityResponse(city *domain.City) CityResponse {
	return CityResponse{
		ID:        city.ID,
		Name:      city.Name,
		State:     city.State,
		CreatedAt: city.CreatedAt,
		UpdatedAt: city.UpdatedAt,
	}
}

// NewCityListResponse maps a slice of domain cities.
func NewCityListResponse(cities []domain.City) []CityResponse {
	out := make([]CityResponse, 0, len(cities))
	for i := range cities {
		out = append(out, NewCityResponse(&cities[i]))
	}
	return out
}
