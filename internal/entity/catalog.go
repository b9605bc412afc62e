package entity

import (
	"github.com/uptrace/bun"

	"github.com/ama-bakery/pos/pkg/money"
)

// Category groups menu items for display.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID    int64       `bun:",pk,autoincrement"`
	Name  string      `bun:"name"`
	Icon  string      `bun:"icon,nullzero"`
	Items []*MenuItem `bun:"rel:has-many,join:id=category_id"`
}

// MenuItem is a sellable catalog entry. The core never mutates these.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items,alias:mi"`

	ID         int64       `bun:",pk,autoincrement"`
	Name       string      `bun:"name"`
	Price      money.Money `bun:"price"`
	CategoryID int64       `bun:"category_id"`
	Category   *Category   `bun:"rel:belongs-to,join:category_id=id"`
	Available  bool        `bun:"available"`
	Image      string      `bun:"image,nullzero"`
}
