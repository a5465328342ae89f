package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/config"
	"chickkart-system/internal/connections/database"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/connections/redisdb"
	"chickkart-system/internal/microservices/admin"
	"chickkart-system/internal/microservices/notificator"
	"chickkart-system/internal/microservices/storefront"
)

func main() {
	mode := flag.String("mode", "", "storefront-service | admin-service | notification-subscriber")
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}

	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		lg.Error("rabbitmq_connect_failed", err, nil)
		os.Exit(1)
	}
	defer rmq.Close()

	switch *mode {
	case "storefront-service":
		pool, rdb := mustConnect(ctx, cfg, lg)
		defer pool.Close()
		defer rdb.Close()
		lg.Info("service_started", map[string]any{"service": "storefront-service", "port": cfg.HTTP.StorefrontPort})
		if err := storefront.Run(ctx, cfg, pool, rmq, rdb); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "admin-service":
		pool, rdb := mustConnect(ctx, cfg, lg)
		defer pool.Close()
		defer rdb.Close()
		lg.Info("service_started", map[string]any{"service": "admin-service", "port": cfg.HTTP.AdminPort})
		if err := admin.Run(ctx, cfg, pool, rmq, rdb); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		if err := notificator.Run(ctx, rmq); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: storefront-service | admin-service | notification-subscriber")
		os.Exit(2)
	}
}

func mustConnect(ctx context.Context, cfg *config.Config, lg *logger.Logger) (*pgxpool.Pool, *redisdb.Client) {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("db_connect_failed", err, nil)
		os.Exit(1)
	}
	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		pool.Close()
		lg.Error("redis_connect_failed", err, nil)
		os.Exit(1)
	}
	return pool, rdb
}
