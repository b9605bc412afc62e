package dto

import (
	"time"

	"github.com/ama-bakery/pos/internal/entity"
	"github.com/ama-bakery/pos/pkg/money"
)

// SettleRequest records a payment against an order.
type SettleRequest struct {
	Order  int64       `json:"order"`
	Amount money.Money `json:"amount"`
	Method string      `json:"method"`
}

// TransactionResponse represents a settlement as exposed via transport layers.
type TransactionResponse struct {
	ID        int64       `json:"id"`
	Order     int64       `json:"order"`
	Amount    money.Money `json:"amount"`
	Method    string      `json:"method"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewTransactionResponse maps a transaction entity onto the transport
// representation.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Order:     t.OrderID,
		Amount:    t.Amount,
		Method:    string(t.Method),
		Timestamp: t.CreatedAt,
	}
}
