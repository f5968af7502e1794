// Package analytics summarizes sales and stock levels from in-memory collections.
package analytics

import (
	"sort"

	"cafecopilot/internal/models"

	"github.com/shopspring/decimal"
)

// DailyTopItems is the number of items ranked in a daily summary
const DailyTopItems = 5

// ItemCount is an item name with its summed quantity
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DailySummary describes sales for a single calendar day
type DailySummary struct {
	Date       string      `json:"date"`
	OrderCount int         `json:"orders"`
	Revenue    float64     `json:"revenue"`
	TopItems   []ItemCount `json:"top_items"`
}

// SummarizeDailySales aggregates the orders dated referenceDate (YYYY-MM-DD)
func SummarizeDailySales(orders []models.Order, referenceDate string) DailySummary {
	daily := make([]models.Order, 0)
	for _, order := range orders {
		if order.Date == referenceDate {
			daily = append(daily, order)
		}
	}

	return DailySummary{
		Date:       referenceDate,
		OrderCount: len(daily),
		Revenue:    Revenue(daily),
		TopItems:   TopItems(daily, DailyTopItems),
	}
}

// InventoryAlerts returns the low-stock items in their original order
func InventoryAlerts(inventory []models.InventoryItem) []models.InventoryItem {
	alerts := make([]models.InventoryItem, 0)
	for _, item := range inventory {
		if item.IsLowStock() {
			alerts = append(alerts, item)
		}
	}
	return alerts
}

// LowStockNames returns the names of low-stock items in their original order
func LowStockNames(inventory []models.InventoryItem) []string {
	names := make([]string, 0)
	for _, item := range InventoryAlerts(inventory) {
		names = append(names, item.Name)
	}
	return names
}

// Revenue sums order totals in decimal and rounds to cents
func Revenue(orders []models.Order) float64 {
	sum := decimal.Zero
	for _, order := range orders {
		sum = sum.Add(decimal.NewFromFloat(order.Total))
	}
	revenue, _ := sum.Round(2).Float64()
	return revenue
}

// TopItems ranks item names by total quantity across the orders' lines.
// Ties are broken by name, ascending. limit < 1 yields an empty result.
func TopItems(orders []models.Order, limit int) []ItemCount {
	totals := make(map[string]int)
	for _, order := range orders {
		for _, line := range order.Items {
			totals[line.DisplayName()] += line.Quantity
		}
	}

	ranked := make([]ItemCount, 0, len(totals))
	for name, qty := range totals {
		ranked = append(ranked, ItemCount{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit < 1 {
		return ranked[:0]
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
