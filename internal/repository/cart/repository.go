package cart

import (
	"context"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

// Repository stores cart lines. Every operation is scoped to the owning user;
// a line id that belongs to someone else behaves as if it did not exist.
type Repository interface {
	// ListByUser returns the user's lines in insertion order, each joined
	// with the current product row.
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	// GetLine fetches one line with its product, or ErrNotFound.
	GetLine(ctx context.Context, userID, lineID string) (*domain.CartLine, error)
	// GetLineByProduct fetches the user's line for a product, or ErrNotFound.
	GetLineByProduct(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	// Upsert inserts a line or, if one exists for (user, product), adds
	// quantity to it.
	Upsert(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	// UpdateQuantity replaces a line's quantity.
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	// Remove deletes one line.
	Remove(ctx context.Context, userID, lineID string) error
	// Clear deletes all lines for the user.
	Clear(ctx context.Context, userID string) error
}
