package product

import (
	"context"
	"strings"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	productrepo "github.com/Diego999991/ecommerce-api/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields of a new catalog entry.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateInput carries optional replacements; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"priceCents"`
	Stock       *int    `json:"stock"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
}

func (s *Service) List(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilter{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.Validationf("name, description and category are required")
	}
	if in.PriceCents <= 0 {
		return nil, domain.Validationf("price must be positive")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock cannot be negative")
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if in.PriceCents != nil && *in.PriceCents <= 0 {
		return nil, domain.Validationf("price must be positive")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.Validationf("stock cannot be negative")
	}
	return s.repo.Update(ctx, id, productrepo.UpdateInput{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
