package entity

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ama-bakery/pos/pkg/money"
)

// OrderStatus is the kitchen-facing lifecycle of an order.
type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// ParseOrderStatus validates a raw status value against the closed set.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderNew, OrderPreparing, OrderReady, OrderCompleted:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// PaymentStatus tracks whether an order's bill has been settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Order is a cart of menu items placed against a table.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID            int64         `bun:",pk,autoincrement"`
	TableID       int64         `bun:"table_id"`
	Table         *Table        `bun:"rel:belongs-to,join:table_id=id"`
	WaiterID      *int64        `bun:"waiter_id,nullzero"`
	Waiter        *User         `bun:"rel:belongs-to,join:waiter_id=id"`
	Status        OrderStatus   `bun:"status"`
	Total         money.Money   `bun:"total"`
	PaymentStatus PaymentStatus `bun:"payment_status"`
	GroupName     string        `bun:"group_name,nullzero"`
	Items         []*OrderItem  `bun:"rel:has-many,join:id=order_id"`
	CreatedAt     time.Time     `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// OrderItem is one line of an order; it lives and dies with its order.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID         int64     `bun:",pk,autoincrement"`
	OrderID    int64     `bun:"order_id"`
	MenuItemID int64     `bun:"menu_item_id"`
	MenuItem   *MenuItem `bun:"rel:belongs-to,join:menu_item_id=id"`
	Quantity   int       `bun:"quantity"`
	Notes      string    `bun:"notes,nullzero"`
}
