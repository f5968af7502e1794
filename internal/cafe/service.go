// Package cafe loads, mutates and persists the menu, inventory and order
// collections.
package cafe

import (
	"context"
	"log"
	"sync"
	"time"

	"cafecopilot/internal/analytics"
	"cafecopilot/internal/models"
	"cafecopilot/internal/monitoring"
	"cafecopilot/internal/storage"
)

// Assistant answers questions about the current cafe state
type Assistant interface {
	GenerateResponse(ctx context.Context, prompt string, menu []models.MenuItem, inventory []models.InventoryItem, orders []models.Order) string
}

// Dashboard is the daily view: sales summary plus low-stock alerts
type Dashboard struct {
	Summary analytics.DailySummary `json:"summary"`
	Alerts  []models.InventoryItem `json:"alerts"`
}

// Service owns the three collections. Each collection's read-modify-write
// cycle runs under its own mutex, so concurrent requests in one process
// cannot lose updates.
type Service struct {
	store     storage.Store
	assistant Assistant
	metrics   *monitoring.Metrics
	now       func() time.Time
	newID     func() string

	menuMu      sync.Mutex
	inventoryMu sync.Mutex
	ordersMu    sync.Mutex
}

// NewService creates a new cafe service
func NewService(store storage.Store, assistant Assistant, metrics *monitoring.Metrics) *Service {
	return &Service{
		store:     store,
		assistant: assistant,
		metrics:   metrics,
		now:       time.Now,
		newID:     NewOrderID,
	}
}

// SetClock replaces the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Menu returns all menu items
func (s *Service) Menu(ctx context.Context) ([]models.MenuItem, error) {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()
	return s.loadMenu(ctx)
}

// SaveMenuItem upserts a menu item and persists the menu
func (s *Service) SaveMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()

	menu, err := s.loadMenu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	menu, err = UpsertMenuItem(menu, item)
	if err != nil {
		return models.MenuItem{}, err
	}
	if err := s.save(ctx, storage.MenuDocument, menu); err != nil {
		return models.MenuItem{}, err
	}

	log.Printf("Menu item %s saved", item.ID)
	return item, nil
}

// Inventory returns all inventory items
func (s *Service) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	s.inventoryMu.Lock()
	defer s.inventoryMu.Unlock()
	return s.loadInventory(ctx)
}

// SaveInventoryItem upserts an inventory item and persists the inventory
func (s *Service) SaveInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	s.inventoryMu.Lock()
	defer s.inventoryMu.Unlock()

	inventory, err := s.loadInventory(ctx)
	if err != nil {
		return models.InventoryItem{}, err
	}
	inventory, err = UpsertInventoryItem(inventory, item)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if err := s.save(ctx, storage.InventoryDocument, inventory); err != nil {
		return models.InventoryItem{}, err
	}

	s.metrics.SetLowStock(len(analytics.InventoryAlerts(inventory)))
	log.Printf("Inventory item %s saved", item.ID)
	return item, nil
}

// InventoryAlerts returns the low-stock inventory items
func (s *Service) InventoryAlerts(ctx context.Context) ([]models.InventoryItem, error) {
	inventory, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.InventoryAlerts(inventory), nil
}

// Orders returns all orders in creation order
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()
	return s.loadOrders(ctx)
}

// PlaceOrder prices the selections against the menu and appends the order
func (s *Service) PlaceOrder(ctx context.Context, selections []Selection) (models.Order, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return models.Order{}, err
	}
	order, err := NewOrder(menu, selections, s.now(), s.newID)
	if err != nil {
		return models.Order{}, err
	}

	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	orders, err := s.loadOrders(ctx)
	if err != nil {
		return models.Order{}, err
	}
	orders = append(orders, order)
	if err := s.save(ctx, storage.OrdersDocument, orders); err != nil {
		return models.Order{}, err
	}

	s.metrics.RecordOrder(order.Total)
	log.Printf("Order %s saved, total $%.2f", order.ID, order.Total)
	return order, nil
}

// Dashboard summarizes sales for date (YYYY-MM-DD) and lists low-stock items.
// An empty date means today.
func (s *Service) Dashboard(ctx context.Context, date string) (Dashboard, error) {
	if date == "" {
		date = s.now().Format(models.OrderDateLayout)
	}

	orders, err := s.Orders(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	alerts, err := s.InventoryAlerts(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Summary: analytics.SummarizeDailySales(orders, date),
		Alerts:  alerts,
	}, nil
}

// Trends summarizes orders over the trailing window of days
func (s *Service) Trends(ctx context.Context, days int) (analytics.TrendSummary, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return analytics.TrendSummary{}, err
	}
	return analytics.SummarizeRecentOrders(orders, days, analytics.DefaultTrendMaxItems, s.now()), nil
}

// Ask forwards prompt to the assistant along with the current collections
func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return "", err
	}
	inventory, err := s.Inventory(ctx)
	if err != nil {
		return "", err
	}
	orders, err := s.Orders(ctx)
	if err != nil {
		return "", err
	}
	return s.assistant.GenerateResponse(ctx, prompt, menu, inventory, orders), nil
}

func (s *Service) loadMenu(ctx context.Context) ([]models.MenuItem, error) {
	return storage.Load(ctx, s.store, storage.MenuDocument, []models.MenuItem{})
}

// loadInventory also refreshes the low-stock gauge from what was read
func (s *Service) loadInventory(ctx context.Context) ([]models.InventoryItem, error) {
	inventory, err := storage.Load(ctx, s.store, storage.InventoryDocument, []models.InventoryItem{})
	if err != nil {
		return nil, err
	}
	s.metrics.SetLowStock(len(analytics.InventoryAlerts(inventory)))
	return inventory, nil
}

func (s *Service) loadOrders(ctx context.Context) ([]models.Order, error) {
	return storage.Load(ctx, s.store, storage.OrdersDocument, []models.Order{})
}

func (s *Service) save(ctx context.Context, name string, v any) error {
	if err := storage.Save(ctx, s.store, name, v); err != nil {
		return err
	}
	s.metrics.RecordWrite(name)
	return nil
}
