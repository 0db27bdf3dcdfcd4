package order

import (
	"context"
	"strings"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	orderrepo "github.com/Diego999991/ecommerce-api/internal/repository/order"
)

// Service reads orders and governs their lifecycle after creation.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	GetByIDForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one of the caller's orders.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByIDForUser(ctx, userID, orderID)
}

// ListForUser returns the caller's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every order, optionally filtered by status. Administrative.
func (s *Service) ListAll(ctx context.Context, status string) ([]domain.Order, error) {
	status = strings.TrimSpace(status)
	if status != "" && !domain.OrderStatus(status).Valid() {
		return nil, domain.Validationf("unknown status %q", status)
	}
	return s.repo.ListAll(ctx, domain.OrderStatus(status))
}

// SetStatus moves an order to a new lifecycle state. The transition is
// validated against the current state inside the repository's transaction;
// cancelling restocks every line there as well.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	next := domain.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, domain.Validationf("unknown status %q", status)
	}
	return s.repo.UpdateStatus(ctx, orderID, next)
}
