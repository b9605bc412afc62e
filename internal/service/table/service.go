package table

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/entity"
	repotable "github.com/ama-bakery/pos/internal/repository/table"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/ama-bakery/pos/service/table")

type registry interface {
	Get(ctx context.Context, db bun.IDB, id int64) (*entity.Table, error)
	List(ctx context.Context) ([]*entity.Table, error)
	UpdateStatus(ctx context.Context, db bun.IDB, id int64, status entity.TableStatus) error
}

// Service exposes direct table status management for the floor staff.
// Order-driven flips go through the consistency engine instead.
type Service struct {
	tables registry
	logger *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Tables *repotable.Repository
	Logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{tables: p.Tables, logger: p.Logger}
}

// SetStatus writes one of the four occupancy statuses onto a table.
func (s *Service) SetStatus(ctx context.Context, id int64, raw string) (*entity.Table, error) {
	ctx, span := serviceTracer.Start(ctx, "TableService.SetStatus", trace.WithAttributes(
		attribute.Int64("table.id", id),
		attribute.String("table.status", raw),
	))
	defer span.End()

	status, ok := entity.ParseTableStatus(raw)
	if !ok {
		return nil, errorbank.Validation("unrecognized table status",
			errorbank.WithDetail("status", raw))
	}

	if err := s.tables.UpdateStatus(ctx, nil, id, status); err != nil {
		if errors.Is(err, repotable.ErrNotFound) {
			return nil, errorbank.NotFound("table not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update table", errorbank.WithCause(err))
	}

	table, err := s.tables.Get(ctx, nil, id)
	if err != nil {
		return nil, errorbank.Internal("failed to load table", errorbank.WithCause(err))
	}

	s.logger.Info("table status set", zap.Int64("id", id), zap.String("status", raw))
	return table, nil
}

// List returns every table ordered by floor number.
func (s *Service) List(ctx context.Context) ([]*entity.Table, error) {
	ctx, span := serviceTracer.Start(ctx, "TableService.List")
	defer span.End()

	tables, err := s.tables.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list tables", errorbank.WithCause(err))
	}
	return tables, nil
}
