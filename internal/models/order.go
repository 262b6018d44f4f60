package models

import "time"

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCooking   OrderStatus = "COOKING"
	OrderStatusServed    OrderStatus = "SERVED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the set of legal status successions. PAID and
// CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusCooking, OrderStatusCancelled},
	OrderStatusCooking: {OrderStatusServed, OrderStatusCancelled},
	OrderStatusServed:  {OrderStatusPaid, OrderStatusCancelled},
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCooking, OrderStatusServed, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to the
// next. A same-status "transition" is permitted so that repeated updates
// converge instead of failing.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return ValidOrderStatus(from)
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// OrderItem is one line of a committed order. It snapshots the menu item's
// name and unit price at commit time and is never touched again.
type OrderItem struct {
	MenuItemID    string              `json:"menuItemId"`
	Name          string              `json:"name"`
	Quantity      int                 `json:"quantity"`
	UnitPrice     float64             `json:"price"`
	Modifications map[string][]string `json:"modifications,omitempty"`
}

// Order represents one checkout for a table
type Order struct {
	ID           string      `json:"id"`
	TableID      int         `json:"tableId"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"totalAmount"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	CustomerNote string      `json:"customerNote,omitempty"`
}

// Active reports whether the order still counts toward the kitchen queue and
// pending revenue.
func (o *Order) Active() bool {
	return !o.Status.Terminal()
}
