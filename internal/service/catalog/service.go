package catalog

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/ama-bakery/pos/internal/entity"
	repocatalog "github.com/ama-bakery/pos/internal/repository/catalog"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/ama-bakery/pos/service/catalog")

type store interface {
	Categories(ctx context.Context) ([]*entity.Category, error)
	MenuItems(ctx context.Context) ([]*entity.MenuItem, error)
}

// Service provides read-only catalog views for the terminals. Catalog writes
// are an admin concern outside this service.
type Service struct {
	catalog store
}

// NewService wires a new Service instance.
func NewService(catalog *repocatalog.Repository) *Service {
	return &Service{catalog: catalog}
}

// Categories returns all categories with their items nested.
func (s *Service) Categories(ctx context.Context) ([]*entity.Category, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list categories", errorbank.WithCause(err))
	}
	return categories, nil
}

// MenuItems returns the flat menu with category names attached.
func (s *Service) MenuItems(ctx context.Context) ([]*entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.MenuItems")
	defer span.End()

	items, err := s.catalog.MenuItems(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list menu items", errorbank.WithCause(err))
	}
	return items, nil
}
