package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/config"
	"github.com/ama-bakery/pos/internal/event"
	"github.com/ama-bakery/pos/internal/feed"
	"github.com/ama-bakery/pos/internal/messaging"
	"github.com/ama-bakery/pos/internal/worker"
)

var workerTracer = otel.Tracer("github.com/ama-bakery/pos/worker/order")

// Module registers order event worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderEventHandler,
			fx.ParamTags("", "", `optional:"true"`),
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderEventHandler consumes order lifecycle events and relays them to
// connected kitchen displays. The hub is nil when running as a standalone
// worker without the HTTP surface; events are then only logged.
func NewOrderEventHandler(logger *zap.Logger, cfg config.Config, hub *feed.Hub) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var evt event.Order
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Error("failed to decode order event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		logger.Info("order event processed",
			zap.String("kind", evt.Kind),
			zap.Int64("order_id", evt.OrderID),
			zap.Int64("table_id", evt.TableID),
			zap.String("status", evt.Status),
		)

		if hub != nil {
			hub.Broadcast(msg.Value)
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
