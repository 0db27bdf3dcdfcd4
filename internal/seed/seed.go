package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	Category    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureUser(ctx, pool, "Admin", "admin@example.com", "admin123", "admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if err := ensureUser(ctx, pool, "Demo Customer", "demo@example.com", "demo123", "customer"); err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Wireless Mouse",
			Description: "Compact 2.4GHz wireless mouse",
			PriceCents:  2499,
			Stock:       50,
			Category:    "electronics",
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless board with brown switches",
			PriceCents:  8999,
			Stock:       20,
			Category:    "electronics",
		},
		{
			Name:        "Cotton T-Shirt",
			Description: "Soft cotton tee",
			PriceCents:  1999,
			Stock:       100,
			Category:    "apparel",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, name, email, password, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, name, email, string(hashed), role)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price_cents, stock, category)
SELECT $1, $2, $3, $4, $5
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Stock, p.Category)
	return err
}
