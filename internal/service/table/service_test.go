package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/entity"
	repotable "github.com/ama-bakery/pos/internal/repository/table"
	"github.com/ama-bakery/pos/pkg/errorbank"
)

type fakeRegistry struct {
	tables map[int64]*entity.Table
}

func (f *fakeRegistry) Get(_ context.Context, _ bun.IDB, id int64) (*entity.Table, error) {
	table, ok := f.tables[id]
	if !ok {
		return nil, repotable.ErrNotFound
	}
	return table, nil
}

func (f *fakeRegistry) List(context.Context) ([]*entity.Table, error) {
	out := make([]*entity.Table, 0, len(f.tables))
	for _, table := range f.tables {
		out = append(out, table)
	}
	return out, nil
}

func (f *fakeRegistry) UpdateStatus(_ context.Context, _ bun.IDB, id int64, status entity.TableStatus) error {
	table, ok := f.tables[id]
	if !ok {
		return repotable.ErrNotFound
	}
	table.Status = status
	return nil
}

func TestSetStatusAcceptsEveryEnumMember(t *testing.T) {
	registry := &fakeRegistry{tables: map[int64]*entity.Table{
		1: {ID: 1, Number: 1, Status: entity.TableAvailable},
	}}
	svc := &Service{tables: registry, logger: zap.NewNop()}

	for _, raw := range []string{"occupied", "order-in-progress", "payment-pending", "available"} {
		updated, err := svc.SetStatus(context.Background(), 1, raw)
		require.NoError(t, err)
		assert.Equal(t, entity.TableStatus(raw), updated.Status)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	svc := &Service{tables: &fakeRegistry{}, logger: zap.NewNop()}

	_, err := svc.SetStatus(context.Background(), 1, "reserved")
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}

func TestSetStatusUnknownTable(t *testing.T) {
	svc := &Service{tables: &fakeRegistry{tables: map[int64]*entity.Table{}}, logger: zap.NewNop()}

	_, err := svc.SetStatus(context.Background(), 12, "occupied")
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
}
