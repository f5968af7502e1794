package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cafecopilot/internal/analytics"
	"cafecopilot/internal/cafe"
	"cafecopilot/internal/models"

	"github.com/gin-gonic/gin"
)

// CafeAPI represents the HTTP surface of the cafe dashboard
type CafeAPI struct {
	Router  *gin.Engine
	Service *cafe.Service

	// ctx bounds long-lived connections; cancelling it closes them
	ctx context.Context
}

// AssistantRequest is the body of an assistant question
type AssistantRequest struct {
	Prompt string `json:"prompt"`
}

// AssistantResponse carries the assistant's reply
type AssistantResponse struct {
	Response string `json:"response"`
}

// OrderRequest is the body of a new order
type OrderRequest struct {
	Items []cafe.Selection `json:"items"`
}

// NewCafeAPI creates a new cafe API instance. WebSocket sessions are closed
// when ctx is cancelled.
func NewCafeAPI(ctx context.Context, service *cafe.Service) *CafeAPI {
	router := gin.Default()

	api := &CafeAPI{
		Router:  router,
		Service: service,
		ctx:     ctx,
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *CafeAPI) setupRoutes() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Cafe Copilot API is running"})
	})

	v1 := a.Router.Group("/api/v1")
	{
		// Menu management
		v1.GET("/menu", a.GetMenu)
		v1.POST("/menu", a.SaveMenuItem)

		// Inventory management
		v1.GET("/inventory", a.GetInventory)
		v1.POST("/inventory", a.SaveInventoryItem)
		v1.GET("/inventory/alerts", a.GetInventoryAlerts)

		// Orders
		v1.GET("/orders", a.GetOrders)
		v1.POST("/orders", a.CreateOrder)

		// Analytics
		v1.GET("/dashboard", a.GetDashboard)
		v1.GET("/trends", a.GetTrends)

		// Assistant
		v1.POST("/assistant", a.Ask)
		v1.GET("/assistant/ws", a.handleAssistantWebSocket)
	}
}

// Menu handlers

func (a *CafeAPI) GetMenu(c *gin.Context) {
	menu, err := a.Service.Menu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (a *CafeAPI) SaveMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := a.Service.SaveMenuItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Inventory handlers

func (a *CafeAPI) GetInventory(c *gin.Context) {
	inventory, err := a.Service.Inventory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventory)
}

func (a *CafeAPI) SaveInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := a.Service.SaveInventoryItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (a *CafeAPI) GetInventoryAlerts(c *gin.Context) {
	alerts, err := a.Service.InventoryAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// Order handlers

func (a *CafeAPI) GetOrders(c *gin.Context) {
	orders, err := a.Service.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (a *CafeAPI) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := a.Service.PlaceOrder(c.Request.Context(), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Analytics handlers

func (a *CafeAPI) GetDashboard(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(models.OrderDateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	dashboard, err := a.Service.Dashboard(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (a *CafeAPI) GetTrends(c *gin.Context) {
	days := analytics.DefaultTrendWindowDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	trends, err := a.Service.Trends(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

// Assistant handlers

func (a *CafeAPI) Ask(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	reply, err := a.Service.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AssistantResponse{Response: reply})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cafe.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cafe.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
