package service

import (
	"context"
	"time"
)

// Stock event types
const (
	EventProductCreated         = "product.created"
	EventProductQuantityUpdated = "product.quantity_updated"
)

// StockEvent announces a change in product stock to downstream consumers.
type StockEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventType  string    `json:"event_type"`
	ProductID  int64     `json:"product_id"`
	SKU        string    `json:"sku"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishStockEvent publishes a stock event for async processing
	PublishStockEvent(ctx context.Context, event *StockEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
