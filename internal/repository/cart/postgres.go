package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const lineWithProduct = `
SELECT ci.id::text, ci.user_id::text, ci.product_id::text, ci.quantity, ci.created_at,
       p.id::text, p.name, COALESCE(p.description, ''), p.price_cents, p.stock, p.category, COALESCE(p.image_url, ''), p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	q := lineWithProduct + `
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) GetLine(ctx context.Context, userID, lineID string) (*domain.CartLine, error) {
	q := lineWithProduct + `
WHERE ci.user_id = $1 AND ci.id = $2
`
	line, err := scanLine(r.pool.QueryRow(ctx, q, userID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) GetLineByProduct(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	q := lineWithProduct + `
WHERE ci.user_id = $1 AND ci.product_id = $2
`
	line, err := scanLine(r.pool.QueryRow(ctx, q, userID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text, user_id::text, product_id::text, quantity, created_at
`
	var line domain.CartLine
	if err := r.pool.QueryRow(ctx, q, userID, productID, quantity).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $3
WHERE user_id = $1 AND id = $2
`, userID, lineID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE user_id = $1 AND id = $2
`, userID, lineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func scanLine(row pgx.Row) (*domain.CartLine, error) {
	var line domain.CartLine
	var p domain.Product
	if err := row.Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.Stock,
		&p.Category,
		&p.ImageURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	line.Product = &p
	return &line, nil
}
