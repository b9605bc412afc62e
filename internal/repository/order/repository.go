package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/entity"
)

var repoTracer = otel.Tracer("github.com/ama-bakery/pos/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// Repository encapsulates read/write access for orders and their line items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists an order and its line items. Callers pass their
// transaction so the insert is atomic with the table flip.
func (r *Repository) Create(ctx context.Context, db bun.IDB, order *entity.Order, items []*entity.OrderItem) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.Int64("order.table_id", order.TableID)))
	defer span.End()

	if db == nil {
		db = r.writer
	}

	if _, err := db.NewInsert().Model(order).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert order failed")
		return err
	}

	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		item.OrderID = order.ID
	}
	if _, err := db.NewInsert().Model(&items).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert items failed")
		return err
	}
	return nil
}

// Get fetches a bare order row, optionally inside a caller transaction.
func (r *Repository) Get(ctx context.Context, db bun.IDB, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if db == nil {
		db = r.reader
	}

	order := new(entity.Order)
	err := db.NewSelect().Model(order).Where("o.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// GetByID fetches an order with its items, catalog entries, table and waiter
// loaded for display.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().
		Model(order).
		Relation("Items").
		Relation("Items.MenuItem").
		Relation("Table").
		Relation("Waiter").
		Where("o.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// List returns all orders, most recently created first, fully expanded.
func (r *Repository) List(ctx context.Context) ([]*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	var orders []*entity.Order
	err := r.reader.NewSelect().
		Model(&orders).
		Relation("Items").
		Relation("Items.MenuItem").
		Relation("Table").
		Relation("Waiter").
		OrderExpr("o.created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes a new fulfillment status. Returns ErrNotFound if no
// row matched.
func (r *Repository) UpdateStatus(ctx context.Context, db bun.IDB, id int64, status entity.OrderStatus) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	if db == nil {
		db = r.writer
	}

	res, err := db.NewUpdate().
		Model((*entity.Order)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports changed rows, not matched rows. A same-status
		// write is not a miss, so confirm before giving up.
		exists, err := db.NewSelect().Model((*entity.Order)(nil)).Where("o.id = ?", id).Exists(ctx)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if !exists {
			span.SetStatus(codes.Error, "not found")
			return ErrNotFound
		}
	}
	return nil
}

// MarkPaid flips an order to paid/completed as part of settlement.
func (r *Repository) MarkPaid(ctx context.Context, db bun.IDB, id int64) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.MarkPaid", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if db == nil {
		db = r.writer
	}

	res, err := db.NewUpdate().
		Model((*entity.Order)(nil)).
		Set("payment_status = ?", entity.PaymentPaid).
		Set("status = ?", entity.OrderCompleted).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		exists, err := db.NewSelect().Model((*entity.Order)(nil)).Where("o.id = ?", id).Exists(ctx)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if !exists {
			span.SetStatus(codes.Error, "not found")
			return ErrNotFound
		}
	}
	return nil
}
