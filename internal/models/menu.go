package models

import "fmt"

// MenuItem represents a drink or dish on the cafe menu
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"is_active"`
}

// UncategorizedLabel is shown for menu items without a category
const UncategorizedLabel = "Uncategorized"

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if item.ID == "" {
		return fmt.Errorf("menu item id is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item price must not be negative")
	}
	return nil
}

// DisplayCategory returns the category, or a placeholder when it is empty
func (mi *MenuItem) DisplayCategory() string {
	if mi.Category == "" {
		return UncategorizedLabel
	}
	return mi.Category
}
