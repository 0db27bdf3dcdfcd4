package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	cartrepo "github.com/Diego999991/ecommerce-api/internal/repository/cart"
)

// Service implements the cart operations. Stock checks here are advisory: they
// stop obviously doomed additions early but reserve nothing. The authoritative
// check happens at checkout.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	GetLine(ctx context.Context, userID, lineID string) (*domain.CartLine, error)
	GetLineByProduct(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	Upsert(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	Remove(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the user's cart with a total computed from live prices.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := &domain.Cart{Lines: lines, ItemCount: len(lines)}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	for _, line := range lines {
		if line.Product != nil {
			cart.TotalCents += line.Product.PriceCents * int64(line.Quantity)
		}
	}
	return cart, nil
}

// AddItem puts quantity units of a product into the cart, merging with an
// existing line for the same product.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validationf("productId is required")
	}
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be positive")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	existing, err := s.repo.GetLineByProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		requested += existing.Quantity
	}
	if p.Stock < requested {
		return nil, &domain.InsufficientStockError{ProductID: p.ID, Available: p.Stock}
	}

	line, err := s.repo.Upsert(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	line.Product = p
	return line, nil
}

// UpdateItem replaces the quantity on one of the caller's lines.
func (s *Service) UpdateItem(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be positive")
	}
	line, err := s.repo.GetLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}
	if line.Product != nil && line.Product.Stock < quantity {
		return nil, &domain.InsufficientStockError{ProductID: line.ProductID, Available: line.Product.Stock}
	}
	if err := s.repo.UpdateQuantity(ctx, userID, lineID, quantity); err != nil {
		return nil, err
	}
	line.Quantity = quantity
	return line, nil
}

// RemoveItem deletes one of the caller's lines.
func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) error {
	return s.repo.Remove(ctx, userID, lineID)
}

// Clear deletes every line for the user.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
