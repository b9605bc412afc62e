package dto

import (
	"time"

	"github.com/ama-bakery/pos/internal/entity"
	"github.com/ama-bakery/pos/pkg/money"
)

// CreateOrderRequest is the payload a waiter terminal submits.
type CreateOrderRequest struct {
	Table     int64                    `json:"table"`
	Waiter    *int64                   `json:"waiter,omitempty"`
	GroupName string                   `json:"group_name,omitempty"`
	Items     []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one cart line.
type CreateOrderItemRequest struct {
	MenuItem int64  `json:"menu_item"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateOrderStatusRequest moves an order through the kitchen lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is a line item with catalog fields denormalized.
type OrderItemResponse struct {
	ID           int64       `json:"id"`
	MenuItem     int64       `json:"menu_item"`
	MenuItemName string      `json:"menu_item_name"`
	Price        money.Money `json:"price"`
	Quantity     int         `json:"quantity"`
	Notes        string      `json:"notes,omitempty"`
}

// OrderResponse is an order with items expanded and display names attached.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Table         int64               `json:"table"`
	TableNumber   int                 `json:"table_number"`
	Waiter        *int64              `json:"waiter"`
	WaiterName    string              `json:"waiter_name,omitempty"`
	Status        string              `json:"status"`
	Total         money.Money         `json:"total"`
	PaymentStatus string              `json:"payment_status"`
	GroupName     string              `json:"group_name,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewOrderResponse maps an order entity (with relations loaded) onto the
// transport representation.
func NewOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Table:         o.TableID,
		Waiter:        o.WaiterID,
		Status:        string(o.Status),
		Total:         o.Total,
		PaymentStatus: string(o.PaymentStatus),
		GroupName:     o.GroupName,
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:     o.CreatedAt,
	}
	if o.Table != nil {
		resp.TableNumber = o.Table.Number
	}
	if o.Waiter != nil {
		resp.WaiterName = o.Waiter.Username
	}
	for _, item := range o.Items {
		ir := OrderItemResponse{
			ID:       item.ID,
			MenuItem: item.MenuItemID,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		}
		if item.MenuItem != nil {
			ir.MenuItemName = item.MenuItem.Name
			ir.Price = item.MenuItem.Price
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
