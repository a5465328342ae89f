package domain

type AddItemRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
	Image          string   `json:"image,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SetPaymentStatusRequest struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id,omitempty"`
	Method  string `json:"method,omitempty"`
}

type CheckoutRequest struct {
	Customer CustomerInfo `json:"customer"`
}

// CheckoutResponse carries the frozen order plus the payable breakdown and
// UPI deep links for the payment screen.
type CheckoutResponse struct {
	OrderID     string            `json:"order_id"`
	Status      string            `json:"status"`
	Subtotal    float64           `json:"subtotal"`
	PlatformFee float64           `json:"platform_fee"`
	DeliveryFee float64           `json:"delivery_fee"`
	Total       float64           `json:"total"`
	UPILinks    map[string]string `json:"upi_links"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // epoch millis
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// Metrics is the admin dashboard headline block, derived from today's orders.
type Metrics struct {
	TotalOrders   int     `json:"total_orders"`
	PendingOrders int     `json:"pending_orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}
