package domain

import "time"

// CartLine is one (product, quantity) entry in a user's cart. At most one line
// exists per (user, product); adding the same product again merges quantities.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	// Product carries the live catalog row when the line is read joined with
	// the products table. Prices here are current, not locked in.
	Product *Product `json:"product,omitempty"`
}

// Cart is the read model returned to callers: the user's lines with a total
// computed from live product prices.
type Cart struct {
	Lines      []CartLine `json:"items"`
	TotalCents int64      `json:"totalCents"`
	ItemCount  int        `json:"itemCount"`
}
