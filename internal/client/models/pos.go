package models

import "time"

// TableStatus classifies the occupancy state of a dining table.
type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusReserved TableStatus = "reserved"
	TableStatusCleaning TableStatus = "cleaning"
)

// Table is a dining table in the restaurant floor plan.
type Table struct {
	ID       string      `json:"id"`
	Number   int         `json:"number"`
	Seats    int         `json:"seats"`
	Status   TableStatus `json:"status"`
	WaiterID string      `json:"waiterId,omitempty"`
}

// OrderStatus classifies the kitchen/service state of an order.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is a single line of an order. Price is in minor currency units
// (cents) to avoid floating point drift in totals.
type OrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	Note       string `json:"note,omitempty"`
}

// Order is a guest order attached to a table.
type Order struct {
	ID        string      `json:"id"`
	TableID   string      `json:"tableId"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Total returns the order total in minor currency units.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// MenuCategory groups menu items ("starters", "mains", ...).
type MenuCategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// MenuItem is a sellable dish or drink.
type MenuItem struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Available  bool   `json:"available"`
}
