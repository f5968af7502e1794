package analytics

import (
	"testing"
	"time"

	"cafecopilot/internal/models"

	"github.com/stretchr/testify/assert"
)

var trendNow = time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

func TestSummarizeRecentOrders_WindowBoundary(t *testing.T) {
	orders := []models.Order{
		{ID: "too-old", Date: "2024-01-03", Total: 100, Items: []models.OrderLine{line("Old Brew", 9)}},
		{ID: "first-day", Date: "2024-01-04", Total: 4.5, Items: []models.OrderLine{line("Latte", 1)}},
		{ID: "today", Date: "2024-01-10", Total: 6.25, Items: []models.OrderLine{line("Latte", 2), line("Scone", 1)}},
	}

	summary := SummarizeRecentOrders(orders, 7, 5, trendNow)

	assert.Equal(t, 7, summary.WindowDays)
	assert.Equal(t, 2, summary.OrderCount)
	assert.Equal(t, 10.75, summary.Revenue)
	assert.Equal(t, []ItemCount{{Name: "Latte", Quantity: 3}, {Name: "Scone", Quantity: 1}}, summary.TopItems)
}

func TestSummarizeRecentOrders_SkipsMalformedDates(t *testing.T) {
	orders := []models.Order{
		{Date: "", Total: 1},
		{Date: "yesterday", Total: 2},
		{Date: "2024-13-45", Total: 3},
		{Date: "2024-01-09T08:15:00Z", Total: 4},
		{Date: "2024-01-08T08:15:00", Total: 5},
	}

	summary := SummarizeRecentOrders(orders, DefaultTrendWindowDays, DefaultTrendMaxItems, trendNow)

	assert.Equal(t, 2, summary.OrderCount)
	assert.Equal(t, 9.0, summary.Revenue)
}

func TestSummarizeRecentOrders_AcceptsISODateTimes(t *testing.T) {
	tests := []string{
		"2024-01-09",
		"2024-01-09T08:15:00Z",
		"2024-01-09T08:15:00+02:00",
		"2024-01-09T08:15:00.123456",
		"2024-01-09 08:15:00",
		"2024-01-09 08:15:00+00:00",
		"2024-01-09T08:15",
		"2024-01-09 08:15",
		"2024-01-09T08:15+01:00",
		"2024-01-09T08",
	}

	for _, date := range tests {
		t.Run(date, func(t *testing.T) {
			orders := []models.Order{{Date: date, Total: 4.5}}
			summary := SummarizeRecentOrders(orders, DefaultTrendWindowDays, DefaultTrendMaxItems, trendNow)
			assert.Equal(t, 1, summary.OrderCount)
		})
	}
}

func TestSummarizeRecentOrders_LimitsAndDefaults(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-01-10", Items: []models.OrderLine{
			line("A", 6), line("B", 5), line("C", 4), line("D", 3), line("E", 2), line("F", 1),
		}},
		{Date: "2024-01-09", Total: 1},
	}

	summary := SummarizeRecentOrders(orders, 7, 2, trendNow)
	assert.Equal(t, []ItemCount{{Name: "A", Quantity: 6}, {Name: "B", Quantity: 5}}, summary.TopItems)

	// a zero-day window still covers today
	summary = SummarizeRecentOrders(orders, 0, 5, trendNow)
	assert.Equal(t, 1, summary.WindowDays)
	assert.Equal(t, 1, summary.OrderCount)
}

func TestSummarizeRecentOrders_IncludesFutureDates(t *testing.T) {
	orders := []models.Order{{Date: "2024-01-11", Total: 3}}

	summary := SummarizeRecentOrders(orders, 7, 5, trendNow)
	assert.Equal(t, 1, summary.OrderCount)
}
