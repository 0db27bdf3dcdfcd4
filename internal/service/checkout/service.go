package checkout

import (
	"context"
	"fmt"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	cartrepo "github.com/Diego999991/ecommerce-api/internal/repository/cart"
	orderrepo "github.com/Diego999991/ecommerce-api/internal/repository/order"
)

// Service converts a cart into an order. The flow is: snapshot the cart,
// pre-check stock to fail obviously doomed attempts cheaply, then hand the
// snapshot to the order repository whose single transaction creates the order,
// reserves stock per line, and clears the cart. On any failure nothing
// persists and the cart is untouched.
type Service struct {
	carts  cartRepo
	orders orderRepo
}

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, userID string, lines []orderrepo.CheckoutLine) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

func New(carts cartrepo.Repository, orders orderrepo.Repository) *Service {
	return &Service{carts: carts, orders: orders}
}

// Checkout materializes the user's cart as a pending order and returns it
// fully loaded. The returned order's line prices are the ones snapshotted
// here; later catalog changes do not affect them.
func (s *Service) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	snapshot := make([]orderrepo.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil {
			return nil, fmt.Errorf("cart line %s has no product", line.ID)
		}
		// Advisory pre-check. The transaction below re-checks atomically;
		// this only avoids opening one that is certain to fail.
		if line.Product.Stock < line.Quantity {
			return nil, &domain.InsufficientStockError{ProductID: line.ProductID, Available: line.Product.Stock}
		}
		snapshot = append(snapshot, orderrepo.CheckoutLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.Product.PriceCents,
		})
	}

	orderID, err := s.orders.CreateFromCart(ctx, userID, snapshot)
	if err != nil {
		return nil, err
	}

	// The order is immutable apart from status, so this read outside the
	// transaction is safe.
	return s.orders.GetByID(ctx, orderID)
}
