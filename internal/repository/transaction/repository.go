package transaction

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/entity"
)

var repoTracer = otel.Tracer("github.com/ama-bakery/pos/repository/transaction")

// ErrAlreadySettled is returned when an order already has a transaction.
// Backed by the UNIQUE constraint on transactions.order_id.
var ErrAlreadySettled = errors.New("order already settled")

// Repository encapsulates access to settlement transactions.
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

// ExistsForOrder reports whether a settlement already exists for the order.
func (r *Repository) ExistsForOrder(ctx context.Context, db bun.IDB, orderID int64) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "TransactionRepository.ExistsForOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	if db == nil {
		db = r.reader
	}

	exists, err := db.NewSelect().
		Model((*entity.Transaction)(nil)).
		Where("tr.order_id = ?", orderID).
		Exists(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return false, err
	}
	return exists, nil
}

// Create persists a settlement. The unique order_id constraint serializes
// concurrent settlements: the loser gets ErrAlreadySettled.
func (r *Repository) Create(ctx context.Context, db bun.IDB, tx *entity.Transaction) error {
	if tx == nil {
		return errors.New("nil transaction")
	}
	ctx, span := repoTracer.Start(ctx, "TransactionRepository.Create", trace.WithAttributes(attribute.Int64("order.id", tx.OrderID)))
	defer span.End()

	if db == nil {
		db = r.writer
	}

	if _, err := db.NewInsert().Model(tx).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "duplicate settlement")
			return ErrAlreadySettled
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}
	return nil
}

// List returns all settlements, newest first.
func (r *Repository) List(ctx context.Context) ([]*entity.Transaction, error) {
	ctx, span := repoTracer.Start(ctx, "TransactionRepository.List")
	defer span.End()

	var txs []*entity.Transaction
	err := r.reader.NewSelect().
		Model(&txs).
		OrderExpr("tr.created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return txs, nil
}

// isUniqueViolation recognizes duplicate-key errors across the supported
// drivers (postgres SQLSTATE 23505, mysql and sqlite message forms).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
