package notificator

import (
	"context"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/microservices/notificator/service"
)

func Run(ctx context.Context, rmq *rabbitmq.Client) error {
	lg := logger.New("notification-subscriber")
	return service.NewNotificatorService(rmq, lg).Notify(ctx)
}
