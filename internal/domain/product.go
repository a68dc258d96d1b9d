package domain

import "time"

// Product is a catalog entry. OwnerID is fixed at creation and never
// reassigned; CityID groups products geographically.
type Product struct {
	ID        int64
	Code      string
	Name      string
	Value     float64
	Stock     int
	CityID    int64
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
