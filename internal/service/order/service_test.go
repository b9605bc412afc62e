package order

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/cache"
	"github.com/ama-bakery/pos/internal/dto"
	"github.com/ama-bakery/pos/internal/entity"
	repocatalog "github.com/ama-bakery/pos/internal/repository/catalog"
	repoorder "github.com/ama-bakery/pos/internal/repository/order"
	repotable "github.com/ama-bakery/pos/internal/repository/table"
	"github.com/ama-bakery/pos/pkg/errorbank"
	"github.com/ama-bakery/pos/pkg/money"
)

type fakeOrders struct {
	nextID  int64
	created *entity.Order
	items   []*entity.OrderItem
	status  map[int64]entity.OrderStatus
}

func (f *fakeOrders) Create(_ context.Context, _ bun.IDB, order *entity.Order, items []*entity.OrderItem) error {
	f.nextID++
	order.ID = f.nextID
	f.created = order
	f.items = items
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	if f.created == nil || f.created.ID != id {
		return nil, repoorder.ErrNotFound
	}
	order := *f.created
	order.Items = f.items
	return &order, nil
}

func (f *fakeOrders) List(context.Context) ([]*entity.Order, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*entity.Order{f.created}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ bun.IDB, id int64, status entity.OrderStatus) error {
	if f.created == nil || f.created.ID != id {
		return repoorder.ErrNotFound
	}
	if f.status == nil {
		f.status = make(map[int64]entity.OrderStatus)
	}
	f.status[id] = status
	f.created.Status = status
	return nil
}

type fakeTables struct {
	tables map[int64]*entity.Table
}

func (f *fakeTables) Get(_ context.Context, _ bun.IDB, id int64) (*entity.Table, error) {
	table, ok := f.tables[id]
	if !ok {
		return nil, repotable.ErrNotFound
	}
	return table, nil
}

type fakeMenu struct {
	items map[int64]*entity.MenuItem
}

func (f *fakeMenu) MenuItem(_ context.Context, _ bun.IDB, id int64) (*entity.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repocatalog.ErrNotFound
	}
	return item, nil
}

type fakeOccupier struct {
	occupied []int64
}

func (f *fakeOccupier) Occupy(_ context.Context, _ bun.IDB, tableID int64) error {
	f.occupied = append(f.occupied, tableID)
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

func newTestService(orders *fakeOrders, tables *fakeTables, menu *fakeMenu, occ *fakeOccupier) *Service {
	return &Service{
		orders:  orders,
		tables:  tables,
		catalog: menu,
		engine:  occ,
		tx:      fakeTx{},
		cache:   cache.Noop(),
		logger:  zap.NewNop(),
	}
}

func TestCreateComputesTotalAndOccupiesTable(t *testing.T) {
	orders := &fakeOrders{}
	tables := &fakeTables{tables: map[int64]*entity.Table{
		5: {ID: 5, Number: 5, Status: entity.TableAvailable, Capacity: 4},
	}}
	menu := &fakeMenu{items: map[int64]*entity.MenuItem{
		1: {ID: 1, Name: "Sourdough Loaf", Price: mustParse(t, "80.00")},
		2: {ID: 2, Name: "Espresso", Price: mustParse(t, "45.00")},
	}}
	occ := &fakeOccupier{}
	svc := newTestService(orders, tables, menu, occ)

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 5,
		Items: []dto.CreateOrderItemRequest{
			{MenuItem: 1, Quantity: 2},
			{MenuItem: 2, Quantity: 3, Notes: "extra hot"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, mustParse(t, "295.00"), created.Total)
	assert.Equal(t, entity.OrderNew, created.Status)
	assert.Equal(t, entity.PaymentPending, created.PaymentStatus)
	assert.Equal(t, []int64{5}, occ.occupied)
	require.Len(t, orders.items, 2)
	assert.Equal(t, "extra hot", orders.items[1].Notes)
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := newTestService(&fakeOrders{}, &fakeTables{}, &fakeMenu{}, &fakeOccupier{})

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{Table: 1})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(&fakeOrders{}, &fakeTables{}, &fakeMenu{}, &fakeOccupier{})

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 1,
		Items: []dto.CreateOrderItemRequest{{MenuItem: 1, Quantity: 0}},
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}

func TestCreateUnknownTable(t *testing.T) {
	occ := &fakeOccupier{}
	svc := newTestService(&fakeOrders{}, &fakeTables{tables: map[int64]*entity.Table{}}, &fakeMenu{}, occ)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 99,
		Items: []dto.CreateOrderItemRequest{{MenuItem: 1, Quantity: 1}},
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
	assert.Empty(t, occ.occupied)
}

func TestCreateUnknownMenuItemLeavesTableUntouched(t *testing.T) {
	orders := &fakeOrders{}
	tables := &fakeTables{tables: map[int64]*entity.Table{
		2: {ID: 2, Number: 2, Status: entity.TableAvailable},
	}}
	menu := &fakeMenu{items: map[int64]*entity.MenuItem{
		1: {ID: 1, Name: "Croissant", Price: mustParse(t, "55.00")},
	}}
	occ := &fakeOccupier{}
	svc := newTestService(orders, tables, menu, occ)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 2,
		Items: []dto.CreateOrderItemRequest{
			{MenuItem: 1, Quantity: 1},
			{MenuItem: 404, Quantity: 1},
		},
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
	assert.Nil(t, orders.created)
	assert.Empty(t, occ.occupied)
}

func TestCreateRejectsOverflowingTotal(t *testing.T) {
	orders := &fakeOrders{}
	tables := &fakeTables{tables: map[int64]*entity.Table{
		3: {ID: 3, Number: 3, Status: entity.TableAvailable},
	}}
	menu := &fakeMenu{items: map[int64]*entity.MenuItem{
		1: {ID: 1, Name: "Croissant", Price: money.FromCents(math.MaxInt64)},
	}}
	occ := &fakeOccupier{}
	svc := newTestService(orders, tables, menu, occ)

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 3,
		Items: []dto.CreateOrderItemRequest{{MenuItem: 1, Quantity: 2}},
	})
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
	assert.Nil(t, orders.created)
	assert.Empty(t, occ.occupied)
}

func TestGetUnknownOrder(t *testing.T) {
	svc := newTestService(&fakeOrders{}, &fakeTables{}, &fakeMenu{}, &fakeOccupier{})

	_, err := svc.Get(context.Background(), 41)
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newTestService(&fakeOrders{}, &fakeTables{}, &fakeMenu{}, &fakeOccupier{})

	_, err := svc.UpdateStatus(context.Background(), 1, "burnt")
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindValidation, appErr.Kind())
}

func TestUpdateStatusWritesAnyEnumMember(t *testing.T) {
	orders := &fakeOrders{}
	tables := &fakeTables{tables: map[int64]*entity.Table{
		1: {ID: 1, Number: 1, Status: entity.TableAvailable},
	}}
	menu := &fakeMenu{items: map[int64]*entity.MenuItem{
		1: {ID: 1, Name: "Brioche", Price: mustParse(t, "60.00")},
	}}
	svc := newTestService(orders, tables, menu, &fakeOccupier{})

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		Table: 1,
		Items: []dto.CreateOrderItemRequest{{MenuItem: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	// The kitchen can move an order freely within the closed set, including
	// straight back to "new".
	for _, raw := range []string{"preparing", "ready", "completed", "new"} {
		updated, err := svc.UpdateStatus(context.Background(), created.ID, raw)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatus(raw), updated.Status)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestService(&fakeOrders{}, &fakeTables{}, &fakeMenu{}, &fakeOccupier{})

	_, err := svc.UpdateStatus(context.Background(), 7, "ready")
	var appErr *errorbank.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
}
