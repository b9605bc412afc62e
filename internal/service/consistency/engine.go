// Package consistency holds the state-transition rules that keep table
// occupancy, order fulfillment and payment state in agreement. The flips are
// unconditional overwrites: taking an order marks its table occupied no
// matter what the table said before, and settling an order frees the table
// even if other orders are still open against it.
package consistency

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/entity"
	repotable "github.com/ama-bakery/pos/internal/repository/table"
)

// tableFlipper is the slice of the table repository the engine needs.
type tableFlipper interface {
	UpdateStatus(ctx context.Context, db bun.IDB, id int64, status entity.TableStatus) error
}

// Engine applies the table-side effects of order lifecycle changes. All
// methods expect to run inside the caller's transaction.
type Engine struct {
	tables tableFlipper
	logger *zap.Logger
}

// NewEngine constructs the consistency engine.
func NewEngine(tables *repotable.Repository, logger *zap.Logger) *Engine {
	return &Engine{tables: tables, logger: logger}
}

// Module provides the consistency engine to Fx.
var Module = fx.Provide(NewEngine)

// Occupy marks a table occupied after an order was taken at it.
func (e *Engine) Occupy(ctx context.Context, db bun.IDB, tableID int64) error {
	if err := e.tables.UpdateStatus(ctx, db, tableID, entity.TableOccupied); err != nil {
		return err
	}
	e.logger.Debug("table occupied", zap.Int64("table_id", tableID))
	return nil
}

// Release marks a table available after its order was settled.
func (e *Engine) Release(ctx context.Context, db bun.IDB, tableID int64) error {
	if err := e.tables.UpdateStatus(ctx, db, tableID, entity.TableAvailable); err != nil {
		return err
	}
	e.logger.Debug("table released", zap.Int64("table_id", tableID))
	return nil
}
