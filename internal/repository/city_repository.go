package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/persistence"
)

// CityRepository encapsulates city persistence.
type CityRepository interface {
	Create(ctx context.Context, city *domain.City) error
	Update(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.City, error)
}

type cityRepository struct {
	pool persistence.PgxPool
}

// NewCityRepository instantiates repository.
func NewCityRepository(pool persistence.PgxPool) CityRepository {
	return &cityRepository{pool: pool}
}

func (r *cityRepository) Create(ctx context.Context, city *domain.City) error {
	const query = `
        INSERT INTO cities (name, state)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		city.Name,
		city.State,
	).Scan(&city.ID, &city.CreatedAt, &city.UpdatedAt)
}

func (r *cityRepository) Update(ctx context.Context, city *domain.City) error {
	const query = `
        UPDATE cities SET name=$1, state=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, city.Name, city.State, city.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM cities WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	const query = `
        SELECT id, name, state, created_at, updated_at
        FROM cities WHERE id=$1`

	var city domain.City
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&city.ID,
		&city.Name,
		&city.State,
		&city.CreatedAt,
		&city.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM cities WHERE name=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	const query = `
        SELECT id, name, state, created_at, updated_at
        FROM cities ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var city domain.City
		if err := rows.Scan(
			&city.ID,
			&city.Name,
			&city.State,
			&city.CreatedAt,
			&city.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
