package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/persistence"
)

// ProductRepository encapsulates product persistence. Owner is written at
// insert time only; Update never touches owner_id.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCity(ctx context.Context, cityID int64) ([]domain.Product, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Product, error)
}

type productRepository struct {
	pool persistence.PgxPool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool persistence.PgxPool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (code, name, value, stock, city_id, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Code,
		product.Name,
		product.Value,
		product.Stock,
		product.CityID,
		product.OwnerID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET code=$1, name=$2, value=$3, stock=$4, city_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		product.Code,
		product.Name,
		product.Value,
		product.Stock,
		product.CityID,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `
        SELECT id, code, name, value, stock, city_id, owner_id, created_at, updated_at
        FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Code,
		&product.Name,
		&product.Value,
		&product.Stock,
		&product.CityID,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT owner_id FROM products WHERE id=$1`

	var ownerID int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ownerID); err != nil {
		return 0, err
	}
	return ownerID, nil
}

func (r *productRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM products WHERE code=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id, code, name, value, stock, city_id, owner_id, created_at, updated_at
        FROM products ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *productRepository) ListByCity(ctx context.Context, cityID int64) ([]domain.Product, error) {
	const query = `
        SELECT id, code, name, value, stock, city_id, owner_id, created_at, updated_at
        FROM products WHERE city_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *productRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Product, error) {
	const query = `
        SELECT id, code, name, value, stock, city_id, owner_id, created_at, updated_at
        FROM products WHERE owner_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Code,
			&product.Name,
			&product.Value,
			&product.Stock,
			&product.CityID,
			&product.OwnerID,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
