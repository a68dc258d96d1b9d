package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ProductRequest payload for create/update.
type ProductRequest struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Stock  int     `json:"stock"`
	CityID int64   `json:"city_id"`
}

// ProductResponse response shape.
type ProductResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Stock     int       `json:"stock"`
	CityID    int64     `json:"city_id"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Code:      product.Code,
		Name:      product.Name,
		Value:     product.Value,
		Stock:     product.Stock,
		CityID:    product.CityID,
		OwnerID:   product.OwnerID,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// NewProductListResponse maps a slice of domain products.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
