package models

import "time"

// Analytics event types published after successful handler turns.
const (
	EventTypeProductAdded      = "PRODUCT_ADDED"
	EventTypeCartUpdated       = "CART_UPDATED"
	EventTypeCheckoutCompleted = "CHECKOUT_COMPLETED"
	EventTypeOrderTracked      = "ORDER_TRACKED"
	EventTypeAdviceServed      = "ADVICE_SERVED"
)

// BaseEvent contains common fields for all analytics events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SenderID  string    `json:"sender_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductAddedEvent published when a product lands in a cart
type ProductAddedEvent struct {
	BaseEvent
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ViewType     string  `json:"view_type"`
	Page         int     `json:"page"`
	BasePrice    float64 `json:"base_price"`
	CartQuantity int     `json:"cart_quantity"`
}

// CartUpdatedEvent published for increase/decrease/remove/clear operations
type CartUpdatedEvent struct {
	BaseEvent
	ProductID string `json:"product_id,omitempty"`
	Operation string `json:"operation"`
	CartSize  int    `json:"cart_size"`
}

// CheckoutCompletedEvent published when a checkout clears the cart
type CheckoutCompletedEvent struct {
	BaseEvent
	OrderID     string  `json:"order_id"`
	ItemCount   int     `json:"item_count"`
	FinalTotal  float64 `json:"final_total"`
	TotalSaving float64 `json:"total_saving"`
}

// OrderTrackedEvent published when an order-status record is served
type OrderTrackedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// AdviceServedEvent published when a styling-advice answer is returned
type AdviceServedEvent struct {
	BaseEvent
	Question string `json:"question"`
	Cached   bool   `json:"cached"`
}
