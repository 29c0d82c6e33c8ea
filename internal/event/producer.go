// Package event publishes domain events to Kafka. Publishing is best-effort:
// services log a failed publish and carry on, so an unavailable broker never
// blocks a shopper.
package event

import (
	"context"

	"github.com/elbatin/JustzMatbaa/internal/domain"
	"github.com/elbatin/JustzMatbaa/pkg/kafka"
	"github.com/elbatin/JustzMatbaa/pkg/logger"
)

// Topic and event type names.
const (
	TopicCartEvents    = "cart-events"
	TopicOrderEvents   = "order-events"
	TopicCatalogEvents = "catalog-events"

	TypeCartUpdated        = "cart.updated"
	TypeCartCleared        = "cart.cleared"
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeCatalogChanged     = "catalog.changed"

	source = "justzmatbaa"
)

// Publisher emits domain events for downstream consumers.
type Publisher interface {
	CartUpdated(ctx context.Context, cart *domain.Cart) error
	CartCleared(ctx context.Context, sessionID string) error
	OrderCreated(ctx context.Context, order domain.Order) error
	OrderStatusChanged(ctx context.Context, orderID, previous, next string) error
	CatalogChanged(ctx context.Context, productID, action string) error
	Close() error
}

// CartUpdatedPayload is the body of cart.updated events.
type CartUpdatedPayload struct {
	SessionID   string  `json:"sessionId"`
	ItemCount   int     `json:"itemCount"`
	TotalAmount float64 `json:"totalAmount"`
}

// OrderCreatedPayload is the body of order.created events.
type OrderCreatedPayload struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	TotalAmount float64 `json:"totalAmount"`
	ItemCount   int     `json:"itemCount"`
	City        string  `json:"city"`
}

// OrderStatusChangedPayload is the body of order.status_changed events.
type OrderStatusChangedPayload struct {
	OrderID        string `json:"orderId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

// CatalogChangedPayload is the body of catalog.changed events.
type CatalogChangedPayload struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"`
}

// KafkaPublisher publishes events through a shared Kafka producer.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher wraps the given producer.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, payload any) error {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		return err
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}
	return p.producer.Publish(ctx, topic, evt)
}

func (p *KafkaPublisher) CartUpdated(ctx context.Context, cart *domain.Cart) error {
	return p.publish(ctx, TopicCartEvents, TypeCartUpdated, cart.SessionID, "cart", CartUpdatedPayload{
		SessionID:   cart.SessionID,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	})
}

func (p *KafkaPublisher) CartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartEvents, TypeCartCleared, sessionID, "cart", CartUpdatedPayload{
		SessionID: sessionID,
	})
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, TopicOrderEvents, TypeOrderCreated, order.ID, "order", OrderCreatedPayload{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		City:        order.Customer.City,
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, orderID, previous, next string) error {
	return p.publish(ctx, TopicOrderEvents, TypeOrderStatusChanged, orderID, "order", OrderStatusChangedPayload{
		OrderID:        orderID,
		PreviousStatus: previous,
		NewStatus:      next,
	})
}

func (p *KafkaPublisher) CatalogChanged(ctx context.Context, productID, action string) error {
	return p.publish(ctx, TopicCatalogEvents, TypeCatalogChanged, productID, "product", CatalogChangedPayload{
		ProductID: productID,
		Action:    action,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) CartUpdated(context.Context, *domain.Cart) error { return nil }

func (NoopPublisher) CartCleared(context.Context, string) error { return nil }

func (NoopPublisher) OrderCreated(context.Context, domain.Order) error { return nil }

func (NoopPublisher) OrderStatusChanged(context.Context, string, string, string) error { return nil }

func (NoopPublisher) CatalogChanged(context.Context, string, string) error { return nil }

func (NoopPublisher) Close() error { return nil }
