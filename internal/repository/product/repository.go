package product

import (
	"context"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Category string
	Search   string
}

// UpdateInput carries the fields to change; nil pointers leave the stored
// value untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int
	Category    *string
	ImageURL    *string
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
