package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMessageRebuild(t *testing.T) {
	ts := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	original := Order{
		ID: "CK-1",
		Items: []LineItem{
			{ID: "wings-6", Name: "6pc Wings", Price: 150, Quantity: 2, Customizations: []string{"extra spicy"}},
		},
		Customer:      CustomerInfo{Name: "Asha", Phone: "9876543210", SpiceLevel: "hot", SpecialNotes: "ring the bell"},
		PaymentStatus: PaymentPaid,
		Status:        StatusPreparing,
		Total:         300,
		Timestamp:     ts,
		Notes:         "ring the bell",
	}

	got := NewOrderMessage(original).Order()
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Customer, got.Customer)
	assert.Equal(t, original.Total, got.Total)
	assert.Equal(t, PaymentPaid, got.PaymentStatus)
	require.Len(t, got.Items, 1)
	assert.Equal(t, original.Items[0], got.Items[0])

	// Lifecycle always restarts at "new" on the receiving side.
	assert.Equal(t, StatusNew, got.Status)
}

func TestOrderMessageUnknownPaymentStatus(t *testing.T) {
	msg := OrderMessage{OrderID: "CK-1", PaymentStatus: "completed"}
	assert.Equal(t, PaymentPending, msg.Order().PaymentStatus)
}

func TestValidationErrorsMessageIsStable(t *testing.T) {
	v := ValidationErrors{"phone": "bad phone", "name": "bad name"}
	assert.Equal(t, "validation failed: name: bad name; phone: bad phone", v.Error())

	got, ok := AsValidationErrors(error(v))
	require.True(t, ok)
	assert.Equal(t, v, got)
}
