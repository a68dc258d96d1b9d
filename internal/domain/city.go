package domain

import "time"

// City groups products by location. Name is unique.
type City struct {
	ID        int64
	Name      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
