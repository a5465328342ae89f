package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/domain"
	cartrepo "chickkart-system/internal/microservices/cart/repository"
	cartsvc "chickkart-system/internal/microservices/cart/service"
	payment "chickkart-system/internal/microservices/payment/service"
)

// PlatformFee is added on top of the cart subtotal at payment time. It never
// enters the cart's own totals, which stay Σ price×quantity.
const PlatformFee = 5.0

var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Publisher is the slice of the AMQP client checkout needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error
}

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, session string, info domain.CustomerInfo) (domain.Order, domain.CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, session, orderID, method string) error
	CustomerInfo(ctx context.Context, session string) (domain.CustomerInfo, bool, error)
	SaveCustomerInfo(ctx context.Context, session string, info domain.CustomerInfo) error
}

type CheckoutService struct {
	cart cartsvc.CartServiceInterface
	repo cartrepo.SessionRepositoryInterface
	pub  Publisher
	upi  *payment.UPIService
	lg   *logger.Logger
	now  func() time.Time
}

func NewCheckoutService(cart cartsvc.CartServiceInterface, repo cartrepo.SessionRepositoryInterface,
	pub Publisher, upi *payment.UPIService, lg *logger.Logger) *CheckoutService {
	return &CheckoutService{cart: cart, repo: repo, pub: pub, upi: upi, lg: lg, now: time.Now}
}

// ValidateCustomer checks every field and reports all failures together so
// the checkout form can show them simultaneously.
func ValidateCustomer(info domain.CustomerInfo) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if len(strings.TrimSpace(info.Name)) < 2 {
		errs["name"] = "please enter a valid name (minimum 2 characters)"
	}
	if !phonePattern.MatchString(info.Phone) {
		errs["phone"] = "please enter a valid 10-digit mobile number"
	}
	if len(info.SpecialNotes) > 200 {
		errs["special_notes"] = "special notes must be 200 characters or fewer"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Checkout freezes the current cart plus customer info into an immutable
// order, persists it as the session's last order and hands it to the admin
// side over the orders exchange.
func (s *CheckoutService) Checkout(ctx context.Context, session string, info domain.CustomerInfo) (domain.Order, domain.CheckoutResponse, error) {
	// Customer info is remembered even when validation fails, so the form
	// comes back pre-filled next time.
	if err := s.repo.SaveCustomerInfo(ctx, session, info); err != nil {
		s.lg.Error("customer_info_persist_failed", err, map[string]any{"session": session})
	}

	if errs := ValidateCustomer(info); errs != nil {
		return domain.Order{}, domain.CheckoutResponse{}, errs
	}

	summary, err := s.cart.Summary(ctx, session)
	if err != nil {
		return domain.Order{}, domain.CheckoutResponse{}, fmt.Errorf("read cart: %w", err)
	}
	if summary.IsEmpty {
		return domain.Order{}, domain.CheckoutResponse{}, domain.ErrEmptyCart
	}

	now := s.now()
	order := domain.Order{
		ID:            newOrderID(now),
		Items:         domain.CloneItems(summary.Items),
		Customer:      info,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.StatusNew,
		Total:         summary.Total,
		Timestamp:     now,
		Notes:         info.SpecialNotes,
	}

	if err := s.repo.SaveLastOrder(ctx, session, order); err != nil {
		s.lg.Error("last_order_persist_failed", err, map[string]any{"session": session, "order_id": order.ID})
	}

	if err := s.publish(ctx, order); err != nil {
		return domain.Order{}, domain.CheckoutResponse{}, fmt.Errorf("publish order: %w", err)
	}

	if _, err := s.cart.SetPaymentStatus(ctx, session, string(domain.PaymentPending), order.ID, ""); err != nil {
		s.lg.Error("cart_payment_mark_failed", err, map[string]any{"session": session, "order_id": order.ID})
	}

	payable := order.Total + PlatformFee
	resp := domain.CheckoutResponse{
		OrderID:     order.ID,
		Status:      string(order.Status),
		Subtotal:    order.Total,
		PlatformFee: PlatformFee,
		DeliveryFee: 0,
		Total:       payable,
		UPILinks:    s.upi.Links(payable, order.ID),
	}
	s.lg.Info("order_assembled", map[string]any{"order_id": order.ID, "total": order.Total, "items": len(order.Items)})
	return order, resp, nil
}

// ConfirmPayment records the customer's manual "I have paid" signal on the
// cart. There is no provider callback to verify against.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, session, orderID, method string) error {
	_, err := s.cart.SetPaymentStatus(ctx, session, "completed", orderID, method)
	return err
}

func (s *CheckoutService) CustomerInfo(ctx context.Context, session string) (domain.CustomerInfo, bool, error) {
	return s.repo.LoadCustomerInfo(ctx, session)
}

func (s *CheckoutService) SaveCustomerInfo(ctx context.Context, session string, info domain.CustomerInfo) error {
	return s.repo.SaveCustomerInfo(ctx, session, info)
}

func (s *CheckoutService) publish(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(domain.NewOrderMessage(order))
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := rabbitmq.OrderRoutingPrefix + string(order.PaymentStatus)
	return s.pub.Publish(pctx, rabbitmq.OrdersExchange, key, body,
		amqp.Table{"x-source": "storefront-service"}, "application/json", true)
}

// newOrderID keeps the human-readable CK prefix and date but takes its tail
// from a uuid, so rapid successive checkouts cannot collide.
func newOrderID(now time.Time) string {
	tail := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("CK%s-%s", now.Format("060102"), tail)
}
