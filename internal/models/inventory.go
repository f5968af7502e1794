package models

import "fmt"

// InventoryItem represents a stocked ingredient or supply
type InventoryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
}

// ValidateInventoryItem validates an inventory item
func ValidateInventoryItem(item *InventoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("inventory item id is required")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("inventory quantity must not be negative")
	}
	if item.ReorderLevel < 0 {
		return fmt.Errorf("inventory reorder level must not be negative")
	}
	return nil
}

// IsLowStock reports whether the item is at or below its reorder level
func (ii *InventoryItem) IsLowStock() bool {
	return ii.Quantity <= ii.ReorderLevel
}
