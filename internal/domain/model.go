package domain

import "time"

// LineItem is a single product entry inside a cart or an order.
// A cart and an order never share line items by reference: order assembly
// deep-copies them so later cart edits cannot leak into a frozen order.
type LineItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
	Image          string   `json:"image,omitempty"`
}

// LineTotal returns price * quantity for this line.
func (li LineItem) LineTotal() float64 { return li.Price * float64(li.Quantity) }

// Clone returns a deep copy of the line item.
func (li LineItem) Clone() LineItem {
	out := li
	if li.Customizations != nil {
		out.Customizations = make([]string, len(li.Customizations))
		copy(out.Customizations, li.Customizations)
	}
	return out
}

// CloneItems deep-copies a slice of line items.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

// CartState is the pre-checkout state for one customer session.
// Total and ItemCount are always derived from Items; items with
// quantity <= 0 never appear.
type CartState struct {
	Items         []LineItem `json:"items"`
	Total         float64    `json:"total"`
	ItemCount     int        `json:"item_count"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	OrderID       string     `json:"order_id,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	LastUpdated   time.Time  `json:"last_updated"`
}

// EmptyCart returns the canonical empty cart state.
func EmptyCart(now time.Time) CartState {
	return CartState{Items: []LineItem{}, LastUpdated: now}
}

func (c CartState) IsEmpty() bool { return len(c.Items) == 0 }

// CartSummary is the read-only projection handed to the checkout flow.
type CartSummary struct {
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
	IsEmpty   bool       `json:"is_empty"`
	Items     []LineItem `json:"items"`
}

// CustomerInfo is collected at checkout and persisted per session.
type CustomerInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	SpiceLevel   string `json:"spice_level,omitempty"`
	SpecialNotes string `json:"special_notes,omitempty"`
}

// OrderStatus is the staff-facing lifecycle vocabulary.
type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// ValidStatus reports whether s belongs to the status vocabulary.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusNew, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further progression is expected.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus tracks funds independently of the order lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is created once at checkout. Status and PaymentStatus are the only
// fields mutated afterwards (by the admin order store); everything else is
// frozen at assembly time.
type Order struct {
	ID            string        `json:"id"`
	Items         []LineItem    `json:"items"`
	Customer      CustomerInfo  `json:"customer"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        OrderStatus   `json:"status"`
	Total         float64       `json:"total"`
	Timestamp     time.Time     `json:"timestamp"`
	Notes         string        `json:"notes,omitempty"`
}

// MenuCategory and MenuItem come from the external catalog (read-only here).
type MenuCategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
}

type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	Image        string  `json:"image,omitempty"`
	CategorySlug string  `json:"category_slug"`
	IsAvailable  bool    `json:"is_available"`
}
