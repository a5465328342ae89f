package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/domain"
	carthandlers "chickkart-system/internal/microservices/cart/handlers"
	"chickkart-system/internal/microservices/checkout/service"
)

type CheckoutHandler struct {
	service service.CheckoutServiceInterface
}

func NewCheckoutHandler(s service.CheckoutServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session := carthandlers.Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	_, resp, err := h.service.Checkout(r.Context(), session, req.Customer)
	if err != nil {
		if fields, ok := domain.AsValidationErrors(err); ok {
			httpx.WriteValidation(w, fields)
			return
		}
		if errors.Is(err, domain.ErrEmptyCart) {
			httpx.WriteProblem(w, http.StatusConflict, "empty_cart", "cannot check out an empty cart")
			return
		}
		httpx.WriteProblem(w, http.StatusInternalServerError, "checkout_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

type confirmPaymentRequest struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
}

func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	session := carthandlers.Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var req confirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.service.ConfirmPayment(r.Context(), session, req.OrderID, req.Method); err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "payment_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "completed", "order_id": req.OrderID})
}

func (h *CheckoutHandler) GetCustomerInfo(w http.ResponseWriter, r *http.Request) {
	session := carthandlers.Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	info, found, err := h.service.CustomerInfo(r.Context(), session)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	if !found {
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "no saved customer info")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, info)
}

func (h *CheckoutHandler) PutCustomerInfo(w http.ResponseWriter, r *http.Request) {
	session := carthandlers.Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var info domain.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := h.service.SaveCustomerInfo(r.Context(), session, info); err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, info)
}
