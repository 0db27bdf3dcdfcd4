package order

import (
	"context"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

// CheckoutLine is one cart line snapshotted for checkout: quantity plus the
// unit price observed when the cart was read. The price on the materialized
// order line comes from here, not from a re-read of the catalog.
type CheckoutLine struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

type Repository interface {
	// CreateFromCart materializes an order in a single transaction: insert
	// the order, reserve stock per line, insert the order lines, and delete
	// the user's cart items. If any reservation fails nothing from the
	// attempt persists. Returns the new order id.
	CreateFromCart(ctx context.Context, userID string, lines []CheckoutLine) (string, error)
	// GetByID fetches an order with its lines and their products.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetByIDForUser is GetByID scoped to the owning user.
	GetByIDForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// ListAll returns every order, newest first, optionally filtered by
	// status, with owning users joined.
	ListAll(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	// UpdateStatus moves an order along the lifecycle graph. The current
	// status is locked and validated inside the transaction; a transition to
	// cancelled releases the reserved stock of every line in the same
	// transaction.
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
}
