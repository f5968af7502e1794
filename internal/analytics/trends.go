package analytics

import (
	"time"

	"cafecopilot/internal/models"
)

// Trend window defaults used for the assistant briefing
const (
	DefaultTrendWindowDays = 7
	DefaultTrendMaxItems   = 5
)

// TrendSummary describes order activity over a trailing window of days
type TrendSummary struct {
	WindowDays int         `json:"days"`
	OrderCount int         `json:"orders"`
	Revenue    float64     `json:"revenue"`
	TopItems   []ItemCount `json:"top_items"`
}

// ISO 8601 date and date-time forms; fractional seconds parse under the
// seconds layouts
var orderDateLayouts = []string{
	models.OrderDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
}

// SummarizeRecentOrders aggregates orders dated within the windowDays calendar
// days ending on now's date, inclusive. Orders without a parsable date are
// skipped. windowDays < 1 is treated as 1.
func SummarizeRecentOrders(orders []models.Order, windowDays, maxItems int, now time.Time) TrendSummary {
	if windowDays < 1 {
		windowDays = 1
	}

	today := calendarDate(now, now.Location())
	cutoff := today.AddDate(0, 0, -(windowDays - 1))

	recent := make([]models.Order, 0)
	for _, order := range orders {
		date, ok := parseOrderDate(order.Date, now.Location())
		if !ok {
			continue
		}
		if !date.Before(cutoff) {
			recent = append(recent, order)
		}
	}

	return TrendSummary{
		WindowDays: windowDays,
		OrderCount: len(recent),
		Revenue:    Revenue(recent),
		TopItems:   TopItems(recent, maxItems),
	}
}

func parseOrderDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return calendarDate(t, loc), true
		}
	}
	return time.Time{}, false
}

// calendarDate truncates t to midnight of its own calendar day, placed in loc
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
