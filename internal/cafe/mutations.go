package cafe

import (
	"errors"
	"fmt"
	"time"

	"cafecopilot/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalid  = errors.New("invalid request")
	ErrNotFound = errors.New("not found")
)

// Selection is one requested menu item in a new order
type Selection struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// NewOrderID returns a collision-free order identifier
func NewOrderID() string {
	return "order-" + uuid.NewString()
}

// UpsertMenuItem replaces the menu item with the same id, or appends it.
// The input slice is not modified.
func UpsertMenuItem(menu []models.MenuItem, item models.MenuItem) ([]models.MenuItem, error) {
	if err := models.ValidateMenuItem(&item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	updated := make([]models.MenuItem, len(menu), len(menu)+1)
	copy(updated, menu)
	for i := range updated {
		if updated[i].ID == item.ID {
			updated[i] = item
			return updated, nil
		}
	}
	return append(updated, item), nil
}

// UpsertInventoryItem replaces the inventory item with the same id, or appends it.
// The input slice is not modified.
func UpsertInventoryItem(inventory []models.InventoryItem, item models.InventoryItem) ([]models.InventoryItem, error) {
	if err := models.ValidateInventoryItem(&item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	updated := make([]models.InventoryItem, len(inventory), len(inventory)+1)
	copy(updated, inventory)
	for i := range updated {
		if updated[i].ID == item.ID {
			updated[i] = item
			return updated, nil
		}
	}
	return append(updated, item), nil
}

// NewOrder prices the selections against the active menu. Line prices are
// copied from the menu and the total is rounded to cents.
func NewOrder(menu []models.MenuItem, selections []Selection, now time.Time, newID func() string) (models.Order, error) {
	if len(selections) == 0 {
		return models.Order{}, fmt.Errorf("%w: order has no items", ErrInvalid)
	}

	active := make(map[string]models.MenuItem, len(menu))
	for _, item := range menu {
		if item.IsActive {
			active[item.ID] = item
		}
	}

	lines := make([]models.OrderLine, 0, len(selections))
	total := decimal.Zero
	for _, sel := range selections {
		if sel.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: quantity for %q must be at least 1", ErrInvalid, sel.MenuItemID)
		}
		item, ok := active[sel.MenuItemID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: active menu item %q", ErrNotFound, sel.MenuItemID)
		}

		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(sel.Quantity))))
		lines = append(lines, models.OrderLine{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: sel.Quantity,
		})
	}

	rounded, _ := total.Round(2).Float64()
	return models.Order{
		ID:    newID(),
		Date:  now.Format(models.OrderDateLayout),
		Time:  now.Format(models.OrderTimeLayout),
		Items: lines,
		Total: rounded,
	}, nil
}
