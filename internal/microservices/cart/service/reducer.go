package service

import (
	"time"

	"chickkart-system/internal/domain"
)

// Action is one cart transition. Reduce is the pure transition function
// (state, action) -> state; it never mutates its input.
type Action interface {
	reduce(state domain.CartState, now time.Time) domain.CartState
}

type AddItem struct {
	Item domain.LineItem
}

type RemoveItem struct {
	ItemID string
}

type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

type Clear struct{}

type SetPaymentStatus struct {
	Status  string
	OrderID string
	Method  string
}

func Reduce(state domain.CartState, a Action, now time.Time) domain.CartState {
	return a.reduce(state, now)
}

func (a AddItem) reduce(state domain.CartState, now time.Time) domain.CartState {
	item := a.Item.Clone()
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	items := domain.CloneItems(state.Items)
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	return retotal(state, items, now)
}

func (a RemoveItem) reduce(state domain.CartState, now time.Time) domain.CartState {
	items := make([]domain.LineItem, 0, len(state.Items))
	for _, it := range state.Items {
		if it.ID != a.ItemID {
			items = append(items, it.Clone())
		}
	}
	return retotal(state, items, now)
}

func (a UpdateQuantity) reduce(state domain.CartState, now time.Time) domain.CartState {
	if a.Quantity <= 0 {
		return RemoveItem{ItemID: a.ItemID}.reduce(state, now)
	}
	items := domain.CloneItems(state.Items)
	for i := range items {
		if items[i].ID == a.ItemID {
			items[i].Quantity = a.Quantity
			break
		}
	}
	return retotal(state, items, now)
}

func (Clear) reduce(_ domain.CartState, now time.Time) domain.CartState {
	return domain.EmptyCart(now)
}

func (a SetPaymentStatus) reduce(state domain.CartState, now time.Time) domain.CartState {
	next := state
	next.Items = domain.CloneItems(state.Items)
	next.PaymentStatus = a.Status
	next.OrderID = a.OrderID
	next.PaymentMethod = a.Method
	next.LastUpdated = now
	return next
}

// retotal recomputes the derived fields from items. Total and ItemCount are
// never carried over; they are always Σ over the lines.
func retotal(state domain.CartState, items []domain.LineItem, now time.Time) domain.CartState {
	next := state
	next.Items = items
	next.Total = 0
	next.ItemCount = 0
	for _, it := range items {
		next.Total += it.LineTotal()
		next.ItemCount += it.Quantity
	}
	next.LastUpdated = now
	return next
}
