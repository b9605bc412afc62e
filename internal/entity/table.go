package entity

import "github.com/uptrace/bun"

// TableStatus is the occupancy state of a physical table.
type TableStatus string

const (
	TableAvailable       TableStatus = "available"
	TableOccupied        TableStatus = "occupied"
	TableOrderInProgress TableStatus = "order-in-progress"
	TablePaymentPending  TableStatus = "payment-pending"
)

// ParseTableStatus validates a raw status value against the closed set.
func ParseTableStatus(s string) (TableStatus, bool) {
	switch TableStatus(s) {
	case TableAvailable, TableOccupied, TableOrderInProgress, TablePaymentPending:
		return TableStatus(s), true
	default:
		return "", false
	}
}

// Table represents a physical seating unit.
type Table struct {
	bun.BaseModel `bun:"table:tables,alias:t"`

	ID       int64       `bun:",pk,autoincrement"`
	Number   int         `bun:"number"`
	Status   TableStatus `bun:"status"`
	Capacity int         `bun:"capacity"`
}
