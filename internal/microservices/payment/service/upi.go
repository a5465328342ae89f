package service

import (
	"fmt"
	"net/url"
)

// Known UPI app VPAs offered alongside the merchant's own. The customer
// confirms manually after paying; there is no provider callback.
var appVPAs = map[string]string{
	"paytm":   "paytm@paytm",
	"gpay":    "gpay@okaxis",
	"phonepe": "phonepe@ybl",
}

type UPIService struct {
	merchantVPA  string
	merchantName string
}

func NewUPIService(merchantVPA, merchantName string) *UPIService {
	if merchantName == "" {
		merchantName = "ChickKart"
	}
	return &UPIService{merchantVPA: merchantVPA, merchantName: merchantName}
}

// Link builds a upi://pay deep link for the given payee, amount and order
// reference (the transaction reference shown in the payer's app).
func (s *UPIService) Link(payeeVPA string, amount float64, orderID string) string {
	q := url.Values{}
	q.Set("pa", payeeVPA)
	q.Set("pn", s.merchantName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tn", "Order Payment")
	q.Set("tr", orderID)
	return "upi://pay?" + q.Encode()
}

// Links returns the merchant deep link plus one per supported UPI app.
func (s *UPIService) Links(amount float64, orderID string) map[string]string {
	out := make(map[string]string, len(appVPAs)+1)
	if s.merchantVPA != "" {
		out["merchant-upi"] = s.Link(s.merchantVPA, amount, orderID)
	}
	for app, vpa := range appVPAs {
		out[app] = s.Link(vpa, amount, orderID)
	}
	return out
}
