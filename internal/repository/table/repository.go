package table

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

var repoTracer = otel.Tracer("github.com/ama-bakery/pos/repository/table")

// ErrNotFound is returned when a table is missing.
var ErrNotFound = errors.New("table not found")

// Repository encapsulates read/write access for tables.
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

// Get fetches a table by primary key. A non-nil db lets callers read inside
// their own transaction.
func (r *Repository) Get(ctx context.Context, db bun.IDB, id int64) (*entity.Table, error) {
	ctx, span := repoTracer.Start(ctx, "TableRepository.Get", trace.WithAttributes(attribute.Int64("table.id", id)))
	defer span.End()

	if db == nil {
		db = r.reader
	}

	table := new(entity.Table)
	err := db.NewSelect().Model(table).Where("t.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return table, nil
}

// List returns every table ordered by its floor number.
func (r *Repository) List(ctx context.Context) ([]*entity.Table, error) {
	ctx, span := repoTracer.Start(ctx, "TableRepository.List")
	defer span.End()

	var tables []*entity.Table
	err := r.reader.NewSelect().Model(&tables).OrderExpr("t.number ASC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return tables, nil
}

// UpdateStatus overwrites a table's occupancy status. Returns ErrNotFound if
// no row matched.
func (r *Repository) UpdateStatus(ctx context.Context, db bun.IDB, id int64, status entity.TableStatus) error {
	ctx, span := repoTracer.Start(ctx, "TableRepository.UpdateStatus", trace.WithAttributes(
		attribute.Int64("table.id", id),
		attribute.String("table.status", string(status)),
	))
	defer span.End()

	if db == nil {
		db = r.writer
	}

	res, err := db.NewUpdate().
		Model((*entity.Table)(nil)).
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
		// MySQL reports changed rows, not matched rows, so writing the
		// status a table already has looks like a miss. Confirm before
		// giving up.
		exists, err := db.NewSelect().Model((*entity.Table)(nil)).Where("t.id = ?", id).Exists(ctx)
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
