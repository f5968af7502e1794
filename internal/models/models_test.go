package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMenuItem(t *testing.T) {
	tests := []struct {
		name    string
		item    MenuItem
		wantErr bool
	}{
		{"valid", MenuItem{ID: "latte", Name: "Latte", Price: 4.35}, false},
		{"free item", MenuItem{ID: "water", Name: "Water"}, false},
		{"missing id", MenuItem{Name: "Latte", Price: 4.35}, true},
		{"negative price", MenuItem{ID: "latte", Price: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMenuItem(&tt.item)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInventoryItem(t *testing.T) {
	assert.NoError(t, ValidateInventoryItem(&InventoryItem{ID: "milk", Unit: "l", Quantity: 0}))
	assert.Error(t, ValidateInventoryItem(&InventoryItem{Name: "Milk"}))
	assert.Error(t, ValidateInventoryItem(&InventoryItem{ID: "milk", Quantity: -1}))
	assert.Error(t, ValidateInventoryItem(&InventoryItem{ID: "milk", ReorderLevel: -2}))
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, (&InventoryItem{Quantity: 2, ReorderLevel: 5}).IsLowStock())
	assert.True(t, (&InventoryItem{Quantity: 5, ReorderLevel: 5}).IsLowStock(), "equal to reorder level alerts")
	assert.False(t, (&InventoryItem{Quantity: 5.5, ReorderLevel: 5}).IsLowStock())
	assert.True(t, (&InventoryItem{}).IsLowStock(), "zero stock with zero reorder level alerts")
}

func TestMenuItemCategory(t *testing.T) {
	item := MenuItem{ID: "latte", Category: "coffee"}
	assert.Equal(t, "coffee", item.DisplayCategory())

	blank := MenuItem{ID: "mystery"}
	assert.Equal(t, UncategorizedLabel, blank.DisplayCategory())
}

func TestOrderLineDisplayName(t *testing.T) {
	assert.Equal(t, "Latte", (&OrderLine{Name: "Latte"}).DisplayName())
	assert.Equal(t, UnknownItemName, (&OrderLine{}).DisplayName())
}
