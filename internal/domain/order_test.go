package domain

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if OrderStatus("paid").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
	if OrderStatus("").Valid() {
		t.Fatalf("expected empty status to be invalid")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderPending, OrderProcessing},
		{OrderPending, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderDelivered},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Fatalf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to OrderStatus }{
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderShipped, OrderCancelled},
		{OrderShipped, OrderPending},
		{OrderDelivered, OrderPending},
		{OrderDelivered, OrderCancelled},
		{OrderCancelled, OrderPending},
		{OrderCancelled, OrderProcessing},
		{OrderPending, OrderPending},
	}
	for _, tr := range denied {
		if tr.from.CanTransitionTo(tr.to) {
			t.Fatalf("expected %s -> %s to be denied", tr.from, tr.to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled} {
		for next := range statusNext {
			if terminal.CanTransitionTo(next) {
				t.Fatalf("terminal state %s allows transition to %s", terminal, next)
			}
		}
	}
}
