package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

// Querier is the subset of pgx the ledger needs. Both *pgxpool.Pool and pgx.Tx
// satisfy it, so a reservation composes into whatever transaction the caller
// is running.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Reserve decrements a product's stock by quantity if and only if enough stock
// remains. The check and the decrement are a single conditional UPDATE, so two
// concurrent reservations for the same product cannot both pass the check;
// stock never goes negative. On failure the stock is re-read to tell a missing
// product apart from an insufficient one.
func Reserve(ctx context.Context, q Querier, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.Validationf("quantity must be positive")
	}
	ct, err := q.Exec(ctx, `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`, productID, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	var available int
	err = q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return &domain.InsufficientStockError{ProductID: productID, Available: available}
}

// Release puts quantity units back. It is unconditional and is used to
// compensate committed reservations, e.g. when an order is cancelled.
func Release(ctx context.Context, q Querier, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.Validationf("quantity must be positive")
	}
	ct, err := q.Exec(ctx, `
UPDATE products
SET stock = stock + $2
WHERE id = $1
`, productID, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
