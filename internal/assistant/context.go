package assistant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cafecopilot/internal/analytics"
	"cafecopilot/internal/models"
)

// Placeholders rendered instead of empty sections
const (
	NoMenuItemsText      = "No menu items available."
	NoInventoryItemsText = "No inventory items available."
	NoRecentOrdersText   = "No recent order data."
	NoneText             = "None"
)

// MaxHighlightedItems caps the in-stock items suggested for specials
const MaxHighlightedItems = 8

const contextPreamble = "Use the following cafe context to answer questions. " +
	"If the answer is not in the context, say you don't have that information."

// BuildSpecialsGuidance renders the specials and upsell template, steering
// suggestions away from low-stock items
func BuildSpecialsGuidance(menu []models.MenuItem, inventory []models.InventoryItem) string {
	lowStock := analytics.LowStockNames(inventory)
	excluded := make(map[string]bool, len(lowStock))
	for _, name := range lowStock {
		excluded[name] = true
	}

	highlighted := make([]string, 0, MaxHighlightedItems)
	for _, item := range menu {
		if len(highlighted) == MaxHighlightedItems {
			break
		}
		if item.IsActive && !excluded[item.Name] {
			highlighted = append(highlighted, item.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Specials & upsell template:\n")
	fmt.Fprintf(&b, "- Avoid low-stock items: %s.\n", joinOrNone(lowStock))
	b.WriteString("- Prioritize items with healthy stock.\n")
	b.WriteString("- For specials: suggest 1-2 beverages + 1 food item.\n")
	b.WriteString("- For upsells: suggest a complementary pastry/snack or size upgrade.\n")
	fmt.Fprintf(&b, "- Suggested in-stock items to highlight: %s.", joinOrNone(highlighted))
	return b.String()
}

// BuildContext renders the briefing the assistant receives about menu,
// inventory and recent orders. Every section is always present.
func BuildContext(menu []models.MenuItem, inventory []models.InventoryItem, orders []models.Order, now time.Time) string {
	trends := analytics.SummarizeRecentOrders(orders, analytics.DefaultTrendWindowDays, analytics.DefaultTrendMaxItems, now)

	var b strings.Builder
	b.WriteString(contextPreamble)
	b.WriteString("\n\n")

	b.WriteString("Menu Items:\n")
	if len(menu) == 0 {
		b.WriteString(NoMenuItemsText)
	}
	for i, item := range menu {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s): %s", item.Name, item.DisplayCategory(), formatMoney(item.Price))
	}
	b.WriteString("\n\n")

	b.WriteString("Inventory Levels:\n")
	if len(inventory) == 0 {
		b.WriteString(NoInventoryItemsText)
	}
	for i, item := range inventory {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %s %s (reorder at %s)",
			item.Name, formatQuantity(item.Quantity), item.Unit, formatQuantity(item.ReorderLevel))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Low Stock Items: %s\n\n", joinOrNone(analytics.LowStockNames(inventory)))

	b.WriteString("Recent Order Trends:\n")
	fmt.Fprintf(&b, "- Last %d days orders: %d\n", trends.WindowDays, trends.OrderCount)
	fmt.Fprintf(&b, "- Revenue: %s\n", formatMoney(trends.Revenue))
	b.WriteString("- Top items:\n")
	if len(trends.TopItems) == 0 {
		b.WriteString(NoRecentOrdersText)
	}
	for i, item := range trends.TopItems {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: %d", item.Name, item.Quantity)
	}
	b.WriteString("\n\n")

	b.WriteString(BuildSpecialsGuidance(menu, inventory))
	return b.String()
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return NoneText
	}
	return strings.Join(names, ", ")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
