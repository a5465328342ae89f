package domain

import "time"

// OrderItemMsg and OrderMessage travel over the orders_topic exchange from
// the storefront checkout to the admin order store.
type OrderItemMsg struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations,omitempty"`
}

type OrderMessage struct {
	OrderID       string         `json:"order_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	SpiceLevel    string         `json:"spice_level,omitempty"`
	Items         []OrderItemMsg `json:"items"`
	TotalAmount   float64        `json:"total_amount"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	PaymentStatus string         `json:"payment_status"`
	Notes         string         `json:"notes,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewOrderMessage flattens an assembled order for publishing.
func NewOrderMessage(o Order) OrderMessage {
	items := make([]OrderItemMsg, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemMsg{
			ID:             it.ID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			Price:          it.Price,
			Customizations: it.Customizations,
		})
	}
	return OrderMessage{
		OrderID:       o.ID,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		SpiceLevel:    o.Customer.SpiceLevel,
		Items:         items,
		TotalAmount:   o.Total,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: string(o.PaymentStatus),
		Notes:         o.Notes,
		Timestamp:     o.Timestamp,
	}
}

// Order rebuilds a domain order from the wire form. Status starts at "new";
// unknown payment statuses degrade to "pending".
func (m OrderMessage) Order() Order {
	items := make([]LineItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, LineItem{
			ID:             it.ID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			Price:          it.Price,
			Customizations: it.Customizations,
		})
	}
	ps := PaymentStatus(m.PaymentStatus)
	switch ps {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
	default:
		ps = PaymentPending
	}
	return Order{
		ID: m.OrderID,
		Customer: CustomerInfo{
			Name:         m.CustomerName,
			Phone:        m.CustomerPhone,
			SpiceLevel:   m.SpiceLevel,
			SpecialNotes: m.Notes,
		},
		Items:         items,
		Total:         m.TotalAmount,
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: ps,
		Status:        StatusNew,
		Timestamp:     m.Timestamp,
		Notes:         m.Notes,
	}
}

// StatusChangeMessage fans out on notifications_fanout whenever staff move
// an order through the lifecycle.
type StatusChangeMessage struct {
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}
