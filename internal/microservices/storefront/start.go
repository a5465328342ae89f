package storefront

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/config"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/connections/redisdb"
	carthandlers "chickkart-system/internal/microservices/cart/handlers"
	cartrepo "chickkart-system/internal/microservices/cart/repository"
	cartsvc "chickkart-system/internal/microservices/cart/service"
	checkouthandlers "chickkart-system/internal/microservices/checkout/handlers"
	checkoutsvc "chickkart-system/internal/microservices/checkout/service"
	menuhandlers "chickkart-system/internal/microservices/menu/handlers"
	menurepo "chickkart-system/internal/microservices/menu/repository"
	menusvc "chickkart-system/internal/microservices/menu/service"
	paymentsvc "chickkart-system/internal/microservices/payment/service"
)

// Run wires the customer-facing API: menu browse backed by the catalog,
// the session cart engine persisted in redis, checkout and UPI payment
// confirmation. Blocks until ctx ends.
func Run(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, rmq *rabbitmq.Client, rdb *redisdb.Client) error {
	lg := logger.New("storefront-service")

	if err := rmq.DeclareTopology(); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}

	sessions := cartrepo.NewSessionRepository(cartrepo.RedisKV{C: rdb})
	cart := cartsvc.NewCartService(sessions, lg)
	upi := paymentsvc.NewUPIService(cfg.Payment.MerchantVPA, cfg.Payment.MerchantName)
	checkout := checkoutsvc.NewCheckoutService(cart, sessions, rmq, upi, lg)

	menuRepo := menurepo.NewMenuRepository(pool)
	menu := menusvc.NewMenuService(menuRepo, lg)
	go menu.WatchChanges(ctx, menuRepo)

	ch := carthandlers.NewCartHandler(cart)
	co := checkouthandlers.NewCheckoutHandler(checkout)
	mh := menuhandlers.NewMenuHandler(menu)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/v1/menu/categories", mh.ListCategories)
	r.Get("/api/v1/menu/items", mh.ListItems)
	r.Get("/api/v1/menu/items/{item_id}", mh.GetItem)

	r.Get("/api/v1/cart", ch.GetSummary)
	r.Post("/api/v1/cart/items", ch.AddItem)
	r.Patch("/api/v1/cart/items/{item_id}", ch.UpdateQuantity)
	r.Delete("/api/v1/cart/items/{item_id}", ch.RemoveItem)
	r.Delete("/api/v1/cart", ch.Clear)
	r.Put("/api/v1/cart/payment-status", ch.SetPaymentStatus)

	r.Get("/api/v1/customer-info", co.GetCustomerInfo)
	r.Put("/api/v1/customer-info", co.PutCustomerInfo)
	r.Post("/api/v1/checkout", co.Checkout)
	r.Post("/api/v1/payments/confirm", co.ConfirmPayment)

	addr := fmt.Sprintf(":%d", cfg.HTTP.StorefrontPort)
	lg.Info("http_listening", map[string]any{"addr": addr})
	return httpx.New(addr, r).Run(ctx)
}
