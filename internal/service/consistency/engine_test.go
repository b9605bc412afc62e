package consistency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/entity"
)

type recordingFlipper struct {
	statuses map[int64]entity.TableStatus
	err      error
}

func (f *recordingFlipper) UpdateStatus(_ context.Context, _ bun.IDB, id int64, status entity.TableStatus) error {
	if f.err != nil {
		return f.err
	}
	f.statuses[id] = status
	return nil
}

func TestOccupyOverwritesAnyPriorStatus(t *testing.T) {
	flipper := &recordingFlipper{statuses: map[int64]entity.TableStatus{
		3: entity.TablePaymentPending,
	}}
	engine := &Engine{tables: flipper, logger: zap.NewNop()}

	require.NoError(t, engine.Occupy(context.Background(), nil, 3))
	assert.Equal(t, entity.TableOccupied, flipper.statuses[3])
}

func TestReleaseFreesTable(t *testing.T) {
	flipper := &recordingFlipper{statuses: map[int64]entity.TableStatus{
		3: entity.TableOccupied,
	}}
	engine := &Engine{tables: flipper, logger: zap.NewNop()}

	require.NoError(t, engine.Release(context.Background(), nil, 3))
	assert.Equal(t, entity.TableAvailable, flipper.statuses[3])
}

func TestFlipErrorsPropagate(t *testing.T) {
	boom := errors.New("update failed")
	engine := &Engine{tables: &recordingFlipper{err: boom}, logger: zap.NewNop()}

	assert.ErrorIs(t, engine.Occupy(context.Background(), nil, 1), boom)
	assert.ErrorIs(t, engine.Release(context.Background(), nil, 1), boom)
}
