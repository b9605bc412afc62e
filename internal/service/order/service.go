package order

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
	repocatalog "github.com/ama-bakery/pos/internal/repository/catalog"
	repoorder "github.com/ama-bakery/pos/internal/repository/order"
	repotable "github.com/ama-bakery/pos/internal/repository/table"
	"github.com/ama-bakery/pos/internal/service/consistency"
	"github.com/ama-bakery/pos/pkg/errorbank"
	"github.com/ama-bakery/pos/pkg/money"
)

var serviceTracer = otel.Tracer("github.com/ama-bakery/pos/service/order")

// CacheKey is the cache key for a single order. The payment service uses it
// to invalidate entries on settlement.
func CacheKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

type orderStore interface {
	Create(ctx context.Context, db bun.IDB, order *entity.Order, items []*entity.OrderItem) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, db bun.IDB, id int64, status entity.OrderStatus) error
}

type tableStore interface {
	Get(ctx context.Context, db bun.IDB, id int64) (*entity.Table, error)
}

type menuResolver interface {
	MenuItem(ctx context.Context, db bun.IDB, id int64) (*entity.MenuItem, error)
}

type occupier interface {
	Occupy(ctx context.Context, db bun.IDB, tableID int64) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Service implements the order ledger: creation with server-side totals,
// reads with display fields denormalized, and fulfillment status writes.
type Service struct {
	orders    orderStore
	tables    tableStore
	catalog   menuResolver
	engine    occupier
	tx        txRunner
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Orders    *repoorder.Repository
	Tables    *repotable.Repository
	Catalog   *repocatalog.Repository
	Engine    *consistency.Engine
	Conns     *database.Connections
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		orders:    p.Orders,
		tables:    p.Tables,
		catalog:   p.Catalog,
		engine:    p.Engine,
		tx:        p.Conns,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create validates the cart, computes the total from catalog prices, stores
// the order with its items and marks the table occupied — all in one
// transaction. Nothing is persisted if any line item fails to validate.
func (s *Service) Create(ctx context.Context, req dto.CreateOrderRequest) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.Int64("table.id", req.Table)))
	defer span.End()

	if len(req.Items) == 0 {
		return nil, errorbank.Validation("order requires at least one item")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errorbank.Validation("quantity must be a positive integer",
				errorbank.WithDetail("item_index", i))
		}
	}

	order := &entity.Order{
		TableID:       req.Table,
		WaiterID:      req.Waiter,
		Status:        entity.OrderNew,
		PaymentStatus: entity.PaymentPending,
		GroupName:     req.GroupName,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		table, err := s.tables.Get(ctx, tx, req.Table)
		if err != nil {
			if errors.Is(err, repotable.ErrNotFound) {
				return errorbank.NotFound("table not found")
			}
			return err
		}

		total := money.Zero
		items := make([]*entity.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			menuItem, err := s.catalog.MenuItem(ctx, tx, line.MenuItem)
			if err != nil {
				if errors.Is(err, repocatalog.ErrNotFound) {
					return errorbank.NotFound("menu item not found",
						errorbank.WithDetail("menu_item", line.MenuItem))
				}
				return err
			}
			lineTotal, err := menuItem.Price.MulInt(int64(line.Quantity))
			if err != nil {
				return errorbank.Validation("order total out of range",
					errorbank.WithDetail("menu_item", line.MenuItem),
					errorbank.WithCause(err))
			}
			total = total.Add(lineTotal)
			items = append(items, &entity.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   line.Quantity,
				Notes:      line.Notes,
			})
		}
		order.Total = total

		if err := s.orders.Create(ctx, tx, order, items); err != nil {
			return err
		}
		return s.engine.Occupy(ctx, tx, table.ID)
	})
	if err != nil {
		var appErr *errorbank.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		return nil, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		span.RecordError(err)
		return nil, errorbank.Internal("failed to load created order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, created); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", created.ID), zap.Error(err))
	}
	s.publishEvent(ctx, event.KindOrderCreated, created)

	s.logger.Info("order created",
		zap.Int64("id", created.ID),
		zap.Int64("table_id", created.TableID),
		zap.String("total", created.Total.String()),
	)
	return created, nil
}

// Get retrieves an order by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoorder.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
	}

	return order, nil
}

// List returns all orders, most recently created first.
func (s *Service) List(ctx context.Context) ([]*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.orders.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}
	return orders, nil
}

// UpdateStatus writes a new fulfillment status. Any member of the closed
// enum may be written at any time; the kitchen drives these transitions.
func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", raw),
	))
	defer span.End()

	status, ok := entity.ParseOrderStatus(raw)
	if !ok {
		return nil, errorbank.Validation("unrecognized order status",
			errorbank.WithDetail("status", raw))
	}

	if err := s.orders.UpdateStatus(ctx, nil, id, status); err != nil {
		if errors.Is(err, repoorder.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update order status", errorbank.WithCause(err))
	}

	if err := s.cache.Delete(ctx, CacheKey(id)); err != nil {
		s.logger.Warn("orders cache invalidation failed", zap.Int64("id", id), zap.Error(err))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	s.publishEvent(ctx, event.KindOrderStatusChanged, order)
	return order, nil
}

func (s *Service) publishEvent(ctx context.Context, kind string, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	evt := event.Order{
		Kind:          kind,
		OrderID:       order.ID,
		TableID:       order.TableID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Total:         order.Total,
		At:            time.Now().UTC(),
	}
	if order.Table != nil {
		evt.TableNumber = order.Table.Number
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("marshal order event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		s.logger.Error("publish order event", zap.String("kind", kind), zap.Error(err))
	}
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, CacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) error {
	if s.cache == nil || order == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, CacheKey(order.ID), bytes, s.cacheTTL)
}
