package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

type stubRepo struct {
	lines          []domain.CartLine
	listErr        error
	line           *domain.CartLine
	lineErr        error
	byProduct      *domain.CartLine
	byProductErr   error
	upserted       *domain.CartLine
	upsertErr      error
	updateErr      error
	removeErr      error
	clearErr       error
	lastUpsertUser string
	lastUpsertProd string
	lastUpsertQty  int
	lastUpdateLine string
	lastUpdateQty  int
	clearedUser    string
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.CartLine, error) {
	return s.lines, s.listErr
}

func (s *stubRepo) GetLine(_ context.Context, _, _ string) (*domain.CartLine, error) {
	return s.line, s.lineErr
}

func (s *stubRepo) GetLineByProduct(_ context.Context, _, _ string) (*domain.CartLine, error) {
	if s.byProductErr != nil {
		return nil, s.byProductErr
	}
	if s.byProduct == nil {
		return nil, domain.ErrNotFound
	}
	return s.byProduct, nil
}

func (s *stubRepo) Upsert(_ context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	s.lastUpsertUser = userID
	s.lastUpsertProd = productID
	s.lastUpsertQty = quantity
	return s.upserted, s.upsertErr
}

func (s *stubRepo) UpdateQuantity(_ context.Context, _, lineID string, quantity int) error {
	s.lastUpdateLine = lineID
	s.lastUpdateQty = quantity
	return s.updateErr
}

func (s *stubRepo) Remove(_ context.Context, _, _ string) error {
	return s.removeErr
}

func (s *stubRepo) Clear(_ context.Context, userID string) error {
	s.clearedUser = userID
	return s.clearErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestGetComputesTotalFromLivePrices(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ID: "l1", ProductID: "p1", Quantity: 2, Product: &domain.Product{ID: "p1", PriceCents: 1000, Stock: 5}},
		{ID: "l2", ProductID: "p2", Quantity: 3, Product: &domain.Product{ID: "p2", PriceCents: 750, Stock: 10}},
	}}
	svc := &Service{repo: repo}
	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.TotalCents != 2*1000+3*750 {
		t.Fatalf("unexpected total %d", cart.TotalCents)
	}
	if cart.ItemCount != 2 {
		t.Fatalf("unexpected item count %d", cart.ItemCount)
	}
}

func TestGetEmptyCartReturnsEmptyList(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Lines == nil || len(cart.Lines) != 0 {
		t.Fatalf("expected empty non-nil lines, got %#v", cart.Lines)
	}
	if cart.TotalCents != 0 || cart.ItemCount != 0 {
		t.Fatalf("unexpected totals %+v", cart)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, products: &stubProductRepo{}}

	var verr *domain.ValidationError
	_, err := svc.AddItem(context.Background(), "u1", "", 1)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), "u1", "p1", 0)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), "u1", "p1", -2)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}
}

func TestAddItemProductNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, products: &stubProductRepo{err: domain.ErrNotFound}}
	_, err := svc.AddItem(context.Background(), "u1", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemInsufficientStock(t *testing.T) {
	product := &domain.Product{ID: "p1", PriceCents: 500, Stock: 3}
	svc := &Service{repo: &stubRepo{}, products: &stubProductRepo{product: product}}
	_, err := svc.AddItem(context.Background(), "u1", "p1", 4)
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stockErr.Available != 3 || stockErr.ProductID != "p1" {
		t.Fatalf("unexpected detail %+v", stockErr)
	}
}

func TestAddItemMergeCountsExistingQuantity(t *testing.T) {
	product := &domain.Product{ID: "p1", PriceCents: 500, Stock: 5}
	repo := &stubRepo{byProduct: &domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 3}}
	svc := &Service{repo: repo, products: &stubProductRepo{product: product}}

	// 3 already in cart + 3 more exceeds stock of 5.
	_, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	// 3 + 2 fits exactly.
	repo.upserted = &domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 5}
	line, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastUpsertQty != 2 {
		t.Fatalf("expected upsert with delta 2, got %d", repo.lastUpsertQty)
	}
	if line.Product != product {
		t.Fatalf("expected product attached to line")
	}
}

func TestAddItemNewLineHappyPath(t *testing.T) {
	product := &domain.Product{ID: "p1", PriceCents: 500, Stock: 5}
	repo := &stubRepo{upserted: &domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 2}}
	svc := &Service{repo: repo, products: &stubProductRepo{product: product}}
	line, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.ID != "l1" || repo.lastUpsertUser != "u1" || repo.lastUpsertProd != "p1" {
		t.Fatalf("upsert not called as expected")
	}
}

func TestUpdateItemValidation(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	var verr *domain.ValidationError
	_, err := svc.UpdateItem(context.Background(), "u1", "l1", 0)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateItemNotOwned(t *testing.T) {
	svc := &Service{repo: &stubRepo{lineErr: domain.ErrNotFound}}
	_, err := svc.UpdateItem(context.Background(), "u1", "other-line", 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateItemInsufficientStock(t *testing.T) {
	repo := &stubRepo{line: &domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 1, Product: &domain.Product{ID: "p1", Stock: 2}}}
	svc := &Service{repo: repo}
	_, err := svc.UpdateItem(context.Background(), "u1", "l1", 3)
	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stockErr.Available != 2 {
		t.Fatalf("unexpected available %d", stockErr.Available)
	}
}

func TestUpdateItemHappyPath(t *testing.T) {
	repo := &stubRepo{line: &domain.CartLine{ID: "l1", ProductID: "p1", Quantity: 1, Product: &domain.Product{ID: "p1", Stock: 10}}}
	svc := &Service{repo: repo}
	line, err := svc.UpdateItem(context.Background(), "u1", "l1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Quantity != 4 || repo.lastUpdateLine != "l1" || repo.lastUpdateQty != 4 {
		t.Fatalf("update not applied as expected")
	}
}

func TestClearDelegates(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}
	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.clearedUser != "u1" {
		t.Fatalf("clear not called for user")
	}
}
