package dto

import (
	"github.com/ama-bakery/pos/internal/entity"
	"github.com/ama-bakery/pos/pkg/money"
)

// MenuItemResponse represents a catalog entry.
type MenuItemResponse struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Price        money.Money `json:"price"`
	Category     int64       `json:"category"`
	CategoryName string      `json:"category_name,omitempty"`
	Available    bool        `json:"available"`
	Image        string      `json:"image,omitempty"`
}

// CategoryResponse is a category with its items nested.
type CategoryResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Icon  string             `json:"icon,omitempty"`
	Items []MenuItemResponse `json:"items"`
}

// NewMenuItemResponse maps a menu item entity onto the transport
// representation.
func NewMenuItemResponse(mi *entity.MenuItem) MenuItemResponse {
	resp := MenuItemResponse{
		ID:        mi.ID,
		Name:      mi.Name,
		Price:     mi.Price,
		Category:  mi.CategoryID,
		Available: mi.Available,
		Image:     mi.Image,
	}
	if mi.Category != nil {
		resp.CategoryName = mi.Category.Name
	}
	return resp
}

// NewCategoryResponse maps a category entity (items loaded) onto the
// transport representation.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Icon:  c.Icon,
		Items: make([]MenuItemResponse, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		resp.Items = append(resp.Items, NewMenuItemResponse(item))
	}
	return resp
}
