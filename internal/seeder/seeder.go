package seeder

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ama-bakery/pos/internal/database"
	"github.com/ama-bakery/pos/internal/entity"
	"github.com/ama-bakery/pos/pkg/money"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder loads the outlet's initial staff, catalog and floor plan. Every
// step is idempotent so re-running it is safe.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// All runs every seed step in dependency order.
func (s *Seeder) All(ctx context.Context) error {
	if err := s.Users(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.Catalog(ctx); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := s.Tables(ctx); err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	return nil
}

// Users seeds the staff accounts used by the terminals.
func (s *Seeder) Users(ctx context.Context) error {
	samples := []entity.User{
		{Username: "Rahul", Role: entity.RoleWaiter, PIN: "1234"},
		{Username: "Priya", Role: entity.RoleWaiter, PIN: "2345"},
		{Username: "Kitchen1", Role: entity.RoleKitchen, PIN: "3456"},
		{Username: "Admin", Role: entity.RoleAdmin, PIN: "0000"},
	}

	for _, sample := range samples {
		user := sample
		_, err := s.db.NewInsert().Model(&user).
			On("CONFLICT (username) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	s.logger.Info("seeded users", zap.Int("count", len(samples)))
	return nil
}

// Catalog seeds the categories and menu items sold at the counter.
func (s *Seeder) Catalog(ctx context.Context) error {
	categories := []string{"Bakery", "Coffee", "Beverages", "Snacks"}
	categoryIDs := make(map[string]int64, len(categories))

	for _, name := range categories {
		category := entity.Category{Name: name}
		_, err := s.db.NewInsert().Model(&category).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}

		// Re-read to cover the conflict path, where the insert returns no id.
		if err := s.db.NewSelect().Model(&category).
			Where("name = ?", name).
			Scan(ctx); err != nil {
			return err
		}
		categoryIDs[name] = category.ID
	}

	items := []struct {
		name     string
		price    string
		category string
	}{
		{"Croissant", "45.00", "Bakery"},
		{"Chocolate Muffin", "55.00", "Bakery"},
		{"Cinnamon Roll", "65.00", "Bakery"},
		{"Blueberry Scone", "50.00", "Bakery"},
		{"Danish Pastry", "60.00", "Bakery"},
		{"Espresso", "80.00", "Coffee"},
		{"Americano", "100.00", "Coffee"},
		{"Cappuccino", "120.00", "Coffee"},
		{"Latte", "130.00", "Coffee"},
		{"Mocha", "150.00", "Coffee"},
		{"Fresh Orange Juice", "90.00", "Beverages"},
		{"Iced Tea", "60.00", "Beverages"},
		{"Mango Smoothie", "120.00", "Beverages"},
		{"Veg Sandwich", "120.00", "Snacks"},
		{"Cheese Toast", "80.00", "Snacks"},
		{"Paneer Wrap", "140.00", "Snacks"},
		{"French Fries", "90.00", "Snacks"},
	}

	for _, item := range items {
		price, err := money.Parse(item.price)
		if err != nil {
			return fmt.Errorf("menu item %s: %w", item.name, err)
		}
		menuItem := entity.MenuItem{
			Name:       item.name,
			Price:      price,
			CategoryID: categoryIDs[item.category],
			Available:  true,
		}
		_, err = s.db.NewInsert().Model(&menuItem).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	s.logger.Info("seeded catalog",
		zap.Int("categories", len(categories)),
		zap.Int("menu_items", len(items)),
	)
	return nil
}

// Tables seeds the floor plan: twelve tables, four seats on even numbers and
// two on odd.
func (s *Seeder) Tables(ctx context.Context) error {
	for number := 1; number <= 12; number++ {
		capacity := 2
		if number%2 == 0 {
			capacity = 4
		}
		table := entity.Table{
			Number:   number,
			Status:   entity.TableAvailable,
			Capacity: capacity,
		}
		_, err := s.db.NewInsert().Model(&table).
			On("CONFLICT (number) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	s.logger.Info("seeded tables", zap.Int("count", 12))
	return nil
}
