package catalog

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

var repoTracer = otel.Tracer("github.com/ama-bakery/pos/repository/catalog")

// ErrNotFound is returned when a menu item is missing.
var ErrNotFound = errors.New("menu item not found")

// Repository provides read-only access to categories and menu items. The
// order core never writes here.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// MenuItem resolves a single menu item. A non-nil db lets order creation read
// catalog prices inside its own transaction.
func (r *Repository) MenuItem(ctx context.Context, db bun.IDB, id int64) (*entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.MenuItem", trace.WithAttributes(attribute.Int64("menu_item.id", id)))
	defer span.End()

	if db == nil {
		db = r.reader
	}

	item := new(entity.MenuItem)
	err := db.NewSelect().Model(item).Where("mi.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return item, nil
}

// MenuItems returns the full menu with category names attached.
func (r *Repository) MenuItems(ctx context.Context) ([]*entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.MenuItems")
	defer span.End()

	var items []*entity.MenuItem
	err := r.reader.NewSelect().
		Model(&items).
		Relation("Category").
		OrderExpr("mi.name ASC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// Categories returns all categories with their items nested.
func (r *Repository) Categories(ctx context.Context) ([]*entity.Category, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Categories")
	defer span.End()

	var categories []*entity.Category
	err := r.reader.NewSelect().
		Model(&categories).
		Relation("Items").
		OrderExpr("c.id ASC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return categories, nil
}
