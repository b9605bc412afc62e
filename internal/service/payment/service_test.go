package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/cache"
	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/entity"
	repoorder "github.com/ama-bakery/pos/internal/repository/order"
	repotx "github.com/ama-bakery/pos/internal/repository/transaction"
	"github.com/ama-bakery/pos/pkg/errorbank"
	"github.com/ama-bakery/pos/pkg/money"
)

type fakeOrders struct {
	orders map[int64]*entity.Order
	paid   []int64
}

func (f *fakeOrders) Get(_ context.Context, _ bun.IDB, id int64) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repoorder.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrders) MarkPaid(_ context.Context, _ bun.IDB, id int64) error {
	order, ok := f.orders[id]
	if !ok {
		return repoorder.ErrNotFound
	}
	order.PaymentStatus = entity.PaymentPaid
	order.Status = entity.OrderCompleted
	f.paid = append(f.paid, id)
	return nil
}

type fakeSettlements struct {
	byOrder map[int64]*entity.Transaction
	nextID  int64
}

func (f *fakeSettlements) ExistsForOrder(_ context.Context, _ bun.IDB, orderID int64) (bool, error) {
	_, ok := f.byOrder[orderID]
	return ok, nil
}

func (f *fakeSettlements) Create(_ context.Context, _ bun.IDB, tx *entity.Transaction) error {
	if _, ok := f.byOrder[tx.OrderID]; ok {
		return repotx.ErrAlreadySettled
	}
	f.nextID++
	tx.ID = f.nextID
	f.byOrder[tx.OrderID] = tx
	return nil
}

func (f *fakeSettlements) List(context.Context) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(f.byOrder))
	for _, tx := range f.byOrder {
		out = append(out, tx)
	}
	return out, nil
}

type fakeReleaser struct {
	released []int64
}

func (f *fakeReleaser) Release(_ context.Context, _ bun.IDB, tableID int64) error {
	f.released = append(f.released, tableID)
	return nil
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	return fn(ctx, nil)
}

func mustParse(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	require.NoError(t, err)
	return m
}

func newTestService(orders *fakeOrders, settlements *fakeSettlements, rel *fakeReleaser) *Service {
	return &Service{
		orders:      orders,
		settlements: settlements,
		engine:      rel,
		tx:          fakeTx{},
		cache:       cache.Noop(),
		logger:      zap.NewNop(),
	}
}

func TestSettleFlipsOrderAndReleasesTable(t *testing.T) {
	orders := &fakeOrders{orders: map[int64]*entity.Order{
		10: {ID: 10, TableID: 3, Status: entity.OrderReady, PaymentStatus: entity.PaymentPending, Total: mustParse(t, "220.00")},
	}}
	settlements := &fakeSettlements{byOrder: map[int64]*entity.Transaction{}}
	rel := &fakeReleaser{}
	svc := newTestService(orders, settlements, rel)

	settled, err := svc.Settle(context.Background(), dto.SettleRequest{
		Order:  10,
		Amount: mustParse(t, "220.00"),
		Method: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), settled.OrderID)
	assert.Equal(t, entity.MethodCash, settled.Method)
	assert.Equal(t, entity.PaymentPaid, orders.orders[10].PaymentStatus)
	assert.Equal(t, entity.OrderCompleted, orders.orders[10].Status)
	assert.Equal(t, []int64{3}, rel.released)
}

func TestSettleTwiceConflicts(t *testing.T) {
	orders := &fakeOrders{orders: map[int64]*entity.Order{
		10: {ID: 10, TableID: 3, PaymentStatus: entity.PaymentPending, Total: mustParse(t, "100.00")},
	}}
	settlements := &fakeSettlements{byOrder: map[int64]*entity.Transaction{}}
	rel := &fakeReleaser{}
	svc := newTestService(orders, settlements, rel)

	req := dto.SettleRequest{Order: 10, Amount: mustParse(t, "100.00"), Method: "online"}
	_, err := svc.Settle(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), req)
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindConflict, appErr.Kind())
	assert.Len(t, rel.released, 1)
}

func TestSettleUnknownOrder(t *testing.T) {
	svc := newTestService(
		&fakeOrders{orders: map[int64]*entity.Order{}},
		&fakeSettlements{byOrder: map[int64]*entity.Transaction{}},
		&fakeReleaser{},
	)

	_, err := svc.Settle(context.Background(), dto.SettleRequest{
		Order: 404, Amount: mustParse(t, "50.00"), Method: "cash",
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
}

func TestSettleRejectsBadMethod(t *testing.T) {
	svc := newTestService(
		&fakeOrders{orders: map[int64]*entity.Order{}},
		&fakeSettlements{byOrder: map[int64]*entity.Transaction{}},
		&fakeReleaser{},
	)

	_, err := svc.Settle(context.Background(), dto.SettleRequest{
		Order: 1, Amount: mustParse(t, "50.00"), Method: "barter",
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}

func TestSettleRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(
		&fakeOrders{orders: map[int64]*entity.Order{}},
		&fakeSettlements{byOrder: map[int64]*entity.Transaction{}},
		&fakeReleaser{},
	)

	_, err := svc.Settle(context.Background(), dto.SettleRequest{
		Order: 1, Amount: money.Zero, Method: "cash",
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}
