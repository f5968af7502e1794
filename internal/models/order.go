package models

// Order represents a completed sale. Orders are appended and never modified.
type Order struct {
	ID    string      `json:"id"`
	Date  string      `json:"date"`
	Time  string      `json:"time"`
	Items []OrderLine `json:"items"`
	Total float64     `json:"total"`
}

// OrderLine represents one menu item in an order
type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Date and time layouts used for order timestamps
const (
	OrderDateLayout = "2006-01-02"
	OrderTimeLayout = "15:04"
)

// UnknownItemName labels order lines that were saved without a name
const UnknownItemName = "Unknown"

// DisplayName returns the line name, or a placeholder when it is empty
func (ol *OrderLine) DisplayName() string {
	if ol.Name == "" {
		return UnknownItemName
	}
	return ol.Name
}
