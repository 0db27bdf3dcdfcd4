package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// statusNext encodes the lifecycle graph: forward-only happy path plus
// cancellation from the two early states. delivered and cancelled are terminal.
var statusNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:    {OrderProcessing: true, OrderCancelled: true},
	OrderProcessing: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Valid reports whether s names a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusNext[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle graph allows moving from s to
// next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return statusNext[s][next]
}

// Order is an immutable snapshot of a checkout. Only Status changes after
// creation.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	TotalCents int64       `json:"totalCents"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"items,omitempty"`
	// User is joined on administrative reads.
	User *User `json:"user,omitempty"`
}

// OrderLine captures a product, quantity and the unit price at order-creation
// time. Later catalog price changes do not affect it.
type OrderLine struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	// Product carries the live catalog row when joined on reads.
	Product *Product `json:"product,omitempty"`
}
