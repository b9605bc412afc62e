package dto

import "github.com/ama-bakery/pos/internal/entity"

// UpdateTableStatusRequest sets a table's occupancy status directly.
type UpdateTableStatusRequest struct {
	Status string `json:"status"`
}

// TableResponse represents a table as exposed via transport layers.
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"number"`
	Status   string `json:"status"`
	Capacity int    `json:"capacity"`
}

// NewTableResponse maps a table entity onto the transport representation.
func NewTableResponse(t *entity.Table) TableResponse {
	return TableResponse{
		ID:       t.ID,
		Number:   t.Number,
		Status:   string(t.Status),
		Capacity: t.Capacity,
	}
}
