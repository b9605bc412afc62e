// Package event defines the payloads published on the order lifecycle topic.
package event

import (
	"time"

	"github.com/ama-bakery/pos/pkg/money"
)

// Order lifecycle event kinds.
const (
	KindOrderCreated       = "order.created"
	KindOrderStatusChanged = "order.status_changed"
	KindOrderSettled       = "order.settled"
)

// Order is emitted on every order lifecycle change. Kitchen displays and the
// background worker consume these.
type Order struct {
	Kind          string      `json:"kind"`
	OrderID       int64       `json:"order_id"`
	TableID       int64       `json:"table_id"`
	TableNumber   int         `json:"table_number,omitempty"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	Total         money.Money `json:"total"`
	Method        string      `json:"method,omitempty"`
	At            time.Time   `json:"at"`
}
