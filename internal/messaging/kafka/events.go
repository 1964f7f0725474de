package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Customer события
	EventTypeCustomerRegistered EventType = "customer.registered"

	// Order события
	EventTypeOrderCreated EventType = "order.created"

	// Stock события
	EventTypeStockDecremented EventType = "stock.decremented"
)

// Topics для Kafka
const (
	TopicCustomerEvents = "shop.customer.events"
	TopicOrderEvents    = "shop.order.events"
)

// CustomerEvent представляет событие жизненного цикла клиента
type CustomerEvent struct {
	EventType  EventType `json:"event_type"`
	CustomerID string    `json:"customer_id"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID  string `json:"product_id"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"qty"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  EventType        `json:"event_type"`
	OrderID    string           `json:"order_id"`
	CustomerID string           `json:"customer_id"`
	TotalMinor int64            `json:"total_minor"`
	Items      []OrderEventItem `json:"items,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewCustomerEvent создает новое событие клиента
func NewCustomerEvent(eventType EventType, customerID, email string) *CustomerEvent {
	return &CustomerEvent{
		EventType:  eventType,
		CustomerID: customerID,
		Email:      email,
		Timestamp:  time.Now(),
	}
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, customerID string, totalMinor int64, items []OrderEventItem) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		TotalMinor: totalMinor,
		Items:      items,
		Timestamp:  time.Now(),
	}
}
