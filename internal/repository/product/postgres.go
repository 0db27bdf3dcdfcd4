package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, COALESCE(description, ''), price_cents, stock, category, COALESCE(image_url, ''), created_at`

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, filter.Category, filter.Search)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProductRow(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	if err := scanProductRow(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (name, description, price_cents, stock, category, image_url)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''))
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := scanProductRow(r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.Stock, p.Category, p.ImageURL), &out)
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	q := `
UPDATE products
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    stock       = COALESCE($5, stock),
    category    = COALESCE($6, category),
    image_url   = COALESCE($7, image_url)
WHERE id = $1
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := scanProductRow(r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.PriceCents, in.Stock, in.Category, in.ImageURL), &out)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProductRow(row pgx.Row, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt)
}
