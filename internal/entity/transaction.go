package entity

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ama-bakery/pos/pkg/money"
)

// PaymentMethod is how a settlement was collected.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
)

// ParsePaymentMethod validates a raw method value against the closed set.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCash, MethodOnline:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

// Transaction records the settlement of exactly one order. Immutable after
// creation; the order_id column carries a UNIQUE constraint.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:tr"`

	ID        int64         `bun:",pk,autoincrement"`
	OrderID   int64         `bun:"order_id"`
	Order     *Order        `bun:"rel:belongs-to,join:order_id=id"`
	Amount    money.Money   `bun:"amount"`
	Method    PaymentMethod `bun:"method"`
	CreatedAt time.Time     `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
