package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	"github.com/Diego999991/ecommerce-api/internal/inventory"
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

func (r *postgresRepo) CreateFromCart(ctx context.Context, userID string, lines []CheckoutLine) (string, error) {
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var total int64
	for _, l := range lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}

	var orderID string
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, status)
VALUES ($1, $2, 'pending')
RETURNING id::text
`, userID, total).Scan(&orderID)
	if err != nil {
		return "", retryableOr(err)
	}

	for _, l := range lines {
		if err := inventory.Reserve(ctx, tx, l.ProductID, l.Quantity); err != nil {
			r.logger.Printf("order repo: reserve user_id=%s product_id=%s qty=%d err=%v", userID, l.ProductID, l.Quantity, err)
			return "", retryableOr(err)
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
`, orderID, l.ProductID, l.Quantity, l.UnitPriceCents); err != nil {
			return "", retryableOr(err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return "", retryableOr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", retryableOr(err)
	}
	r.logger.Printf("order repo: created order_id=%s user_id=%s total_cents=%d lines=%d", orderID, userID, total, len(lines))
	return orderID, nil
}

const orderColumns = `id::text, user_id::text, total_cents, status, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	return r.fetchOrder(ctx, q, id)
}

func (r *postgresRepo) GetByIDForUser(ctx context.Context, userID, id string) (*domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2
`
	return r.fetchOrder(ctx, q, id, userID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Lines, err = r.loadLines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) ListAll(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	const q = `
SELECT o.id::text, o.user_id::text, o.total_cents, o.status, o.created_at,
       u.id::text, u.name, u.email, u.role, u.created_at
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE ($1 = '' OR o.status = $1)
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var u domain.User
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.User = &u
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Lines, err = r.loadLines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the row so concurrent transitions on the same order serialize and
	// each sees the status the previous one committed.
	var current domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !current.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, next); err != nil {
		return nil, err
	}

	if next == domain.OrderCancelled {
		rows, err := tx.Query(ctx, `SELECT product_id::text, quantity FROM order_lines WHERE order_id = $1`, orderID)
		if err != nil {
			return nil, err
		}
		type restock struct {
			productID string
			quantity  int
		}
		var restocks []restock
		for rows.Next() {
			var x restock
			if err := rows.Scan(&x.productID, &x.quantity); err != nil {
				rows.Close()
				return nil, err
			}
			restocks = append(restocks, x)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		for _, x := range restocks {
			if err := inventory.Release(ctx, tx, x.productID, x.quantity); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, retryableOr(err)
	}
	r.logger.Printf("order repo: status order_id=%s %s -> %s", orderID, current, next)
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...any) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, args...).Scan(&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if o.Lines, err = r.loadLines(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT ol.id::text, ol.order_id::text, ol.product_id::text, ol.quantity, ol.unit_price_cents,
       p.id::text, p.name, COALESCE(p.description, ''), p.price_cents, p.stock, p.category, COALESCE(p.image_url, ''), p.created_at
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = $1
ORDER BY ol.id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		var p domain.Product
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPriceCents,
			&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		line.Product = &p
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// retryableOr maps serialization and deadlock aborts to ErrConflictRetryable;
// those conflicts may clear on a retry, unlike a genuine stock shortage.
func retryableOr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return domain.ErrConflictRetryable
	}
	return err
}
