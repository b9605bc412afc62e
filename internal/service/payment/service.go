package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/cache"
	"github.com/ama-bakery/pos/internal/config"
	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/entity"
	"github.com/ama-bakery/pos/internal/event"
	"github.com/ama-bakery/pos/internal/messaging"
	repoorder "github.com/ama-bakery/pos/internal/repository/order"
	repotx "github.com/ama-bakery/pos/internal/repository/transaction"
	"github.com/ama-bakery/pos/internal/service/consistency"
	ordersvc "github.com/ama-bakery/pos/internal/service/order"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/ama-bakery/pos/service/payment")

type orderStore interface {
	Get(ctx context.Context, db bun.IDB, id int64) (*entity.Order, error)
	MarkPaid(ctx context.Context, db bun.IDB, id int64) error
}

type settlementStore interface {
	ExistsForOrder(ctx context.Context, db bun.IDB, orderID int64) (bool, error)
	Create(ctx context.Context, db bun.IDB, tx *entity.Transaction) error
	List(ctx context.Context) ([]*entity.Transaction, error)
}

type releaser interface {
	Release(ctx context.Context, db bun.IDB, tableID int64) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error
}

// Service settles orders: it records the payment transaction and drives the
// order and its table back to their terminal states.
type Service struct {
	orders      orderStore
	settlements settlementStore
	engine      releaser
	tx          txRunner
	cache       cache.Store
	logger      *zap.Logger
	publisher   messaging.Client
	enabled     bool
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Orders      *repoorder.Repository
	Settlements *repotx.Repository
	Engine      *consistency.Engine
	Conns       *database.Connections
	Cache       cache.Store
	Config      config.Config
	Logger      *zap.Logger
	Publisher   messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		orders:      p.Orders,
		settlements: p.Settlements,
		engine:      p.Engine,
		tx:          p.Conns,
		cache:       p.Cache,
		logger:      p.Logger,
		publisher:   p.Publisher,
		enabled:     p.Config.Messaging.Enabled,
	}
}

// Settle records a payment against an order. Exactly one settlement can ever
// succeed per order; the transaction insert, the order flip and the table
// release commit together or not at all.
func (s *Service) Settle(ctx context.Context, req dto.SettleRequest) (*entity.Transaction, error) {
	ctx, span := serviceTracer.Start(ctx, "PaymentService.Settle", trace.WithAttributes(
		attribute.Int64("order.id", req.Order),
		attribute.String("payment.method", req.Method),
	))
	defer span.End()

	method, ok := entity.ParsePaymentMethod(req.Method)
	if !ok {
		return nil, errorbank.Validation("unsupported payment method",
			errorbank.WithDetail("method", req.Method))
	}
	if !req.Amount.IsPositive() {
		return nil, errorbank.Validation("amount must be positive")
	}

	settlement := &entity.Transaction{
		OrderID:   req.Order,
		Amount:    req.Amount,
		Method:    method,
		CreatedAt: time.Now().UTC(),
	}
	var order *entity.Order

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		var err error
		order, err = s.orders.Get(ctx, tx, req.Order)
		if err != nil {
			if errors.Is(err, repoorder.ErrNotFound) {
				return errorbank.NotFound("order not found")
			}
			return err
		}

		exists, err := s.settlements.ExistsForOrder(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return errorbank.Conflict("order already settled")
		}

		if err := s.settlements.Create(ctx, tx, settlement); err != nil {
			if errors.Is(err, repotx.ErrAlreadySettled) {
				return errorbank.Conflict("order already settled")
			}
			return err
		}
		if err := s.orders.MarkPaid(ctx, tx, order.ID); err != nil {
			return err
		}
		return s.engine.Release(ctx, tx, order.TableID)
	})
	if err != nil {
		var appErr *errorbank.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		return nil, errorbank.Internal("failed to settle order", errorbank.WithCause(err))
	}

	if err := s.cache.Delete(ctx, ordersvc.CacheKey(order.ID)); err != nil {
		s.logger.Warn("orders cache invalidation failed", zap.Int64("id", order.ID), zap.Error(err))
	}
	s.publishSettled(ctx, order, settlement)

	s.logger.Info("order settled",
		zap.Int64("order_id", order.ID),
		zap.String("amount", settlement.Amount.String()),
		zap.String("method", string(settlement.Method)),
	)
	return settlement, nil
}

// List returns all settlements, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Transaction, error) {
	ctx, span := serviceTracer.Start(ctx, "PaymentService.List")
	defer span.End()

	txs, err := s.settlements.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list transactions", errorbank.WithCause(err))
	}
	return txs, nil
}

func (s *Service) publishSettled(ctx context.Context, order *entity.Order, settlement *entity.Transaction) {
	if !s.enabled || s.publisher == nil {
		return
	}
	evt := event.Order{
		Kind:          event.KindOrderSettled,
		OrderID:       order.ID,
		TableID:       order.TableID,
		Status:        string(entity.OrderCompleted),
		PaymentStatus: string(entity.PaymentPaid),
		Total:         order.Total,
		Method:        string(settlement.Method),
		At:            time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("marshal settled event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		s.logger.Error("publish settled event", zap.Error(err))
	}
}
