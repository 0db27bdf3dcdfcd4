package inventory

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	"github.com/Diego999991/ecommerce-api/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, cart_items, tokens, products, users RESTART IDENTITY CASCADE`); err != nil {
		pool.Close()
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}

func seedProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, stock int) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO products (name, price_cents, stock, category) VALUES ('Widget', 100, $1, 'test') RETURNING id::text`,
		stock).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func readStock(ctx context.Context, t *testing.T, pool *pgxpool.Pool, id string) int {
	t.Helper()
	var stock int
	if err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func TestReserve_Decrements(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	id := seedProduct(ctx, t, pool, 5)
	if err := Reserve(ctx, pool, id, 3); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := readStock(ctx, t, pool, id); got != 2 {
		t.Fatalf("expected stock 2, got %d", got)
	}
}

func TestReserve_InsufficientReportsAvailable(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	id := seedProduct(ctx, t, pool, 2)
	err := Reserve(ctx, pool, id, 3)
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stockErr.ProductID != id || stockErr.Available != 2 {
		t.Fatalf("unexpected error detail: %+v", stockErr)
	}
	if got := readStock(ctx, t, pool, id); got != 2 {
		t.Fatalf("failed reservation must not touch stock, got %d", got)
	}
}

func TestReserve_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	err := Reserve(ctx, pool, "00000000-0000-0000-0000-000000000000", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserve_RejectsNonPositiveQuantity(t *testing.T) {
	var verr *domain.ValidationError
	if err := Reserve(context.Background(), nil, "p1", 0); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := Release(context.Background(), nil, "p1", -1); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// Twenty workers race for five units. Exactly five may win; stock must land on
// zero, never below.
func TestReserve_ConcurrentNeverNegative(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	const workers = 20
	const stock = 5
	id := seedProduct(ctx, t, pool, stock)

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Reserve(ctx, pool, id, 1)
		}(i)
	}
	wg.Wait()

	var won, starved int
	for _, err := range results {
		var stockErr *domain.InsufficientStockError
		switch {
		case err == nil:
			won++
		case errors.As(err, &stockErr):
			starved++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != stock {
		t.Fatalf("expected %d winners, got %d (starved %d)", stock, won, starved)
	}
	if got := readStock(ctx, t, pool, id); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestRelease_Restocks(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	id := seedProduct(ctx, t, pool, 1)
	if err := Reserve(ctx, pool, id, 1); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := Release(ctx, pool, id, 1); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := readStock(ctx, t, pool, id); got != 1 {
		t.Fatalf("expected stock 1, got %d", got)
	}

	if err := Release(ctx, pool, "00000000-0000-0000-0000-000000000000", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
