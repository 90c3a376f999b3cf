package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing analytics events. A nil publisher is
// valid and publishes nothing, so handlers need no broker-enabled check.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates an event publisher over a producer.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func (ep *EventPublisher) publish(ctx context.Context, senderID string, event interface{}) error {
	if ep == nil || ep.producer == nil {
		return nil
	}
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("sender-%s", senderID), event)
}

// PublishProductAdded publishes a ProductAdded event
func (ep *EventPublisher) PublishProductAdded(ctx context.Context, event *models.ProductAddedEvent) error {
	return ep.publish(ctx, event.SenderID, event)
}

// PublishCartUpdated publishes a CartUpdated event
func (ep *EventPublisher) PublishCartUpdated(ctx context.Context, event *models.CartUpdatedEvent) error {
	return ep.publish(ctx, event.SenderID, event)
}

// PublishCheckoutCompleted publishes a CheckoutCompleted event
func (ep *EventPublisher) PublishCheckoutCompleted(ctx context.Context, event *models.CheckoutCompletedEvent) error {
	return ep.publish(ctx, event.SenderID, event)
}

// PublishOrderTracked publishes an OrderTracked event
func (ep *EventPublisher) PublishOrderTracked(ctx context.Context, event *models.OrderTrackedEvent) error {
	return ep.publish(ctx, event.SenderID, event)
}

// PublishAdviceServed publishes an AdviceServed event
func (ep *EventPublisher) PublishAdviceServed(ctx context.Context, event *models.AdviceServedEvent) error {
	return ep.publish(ctx, event.SenderID, event)
}

// EventHandler routes consumed analytics events to registered callbacks.
type EventHandler struct {
	logger         *zap.Logger
	onCheckout     func(context.Context, *models.CheckoutCompletedEvent) error
	onProductAdded func(context.Context, *models.ProductAddedEvent) error
	onUnhandled    func(eventType string)
}

// NewEventHandler creates an event handler.
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnCheckoutCompleted registers a handler for CheckoutCompleted events.
func (eh *EventHandler) OnCheckoutCompleted(handler func(context.Context, *models.CheckoutCompletedEvent) error) {
	eh.onCheckout = handler
}

// OnProductAdded registers a handler for ProductAdded events.
func (eh *EventHandler) OnProductAdded(handler func(context.Context, *models.ProductAddedEvent) error) {
	eh.onProductAdded = handler
}

// OnUnhandled registers a callback for event types with no handler.
func (eh *EventHandler) OnUnhandled(handler func(eventType string)) {
	eh.onUnhandled = handler
}

// HandleMessage routes one consumed message to the right callback.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Debug("Handling analytics event",
		zap.String("type", baseEvent.EventType),
		zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeCheckoutCompleted:
		if eh.onCheckout != nil {
			var event models.CheckoutCompletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CheckoutCompleted event: %w", err)
			}
			return eh.onCheckout(ctx, &event)
		}

	case models.EventTypeProductAdded:
		if eh.onProductAdded != nil {
			var event models.ProductAddedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductAdded event: %w", err)
			}
			return eh.onProductAdded(ctx, &event)
		}

	default:
		if eh.onUnhandled != nil {
			eh.onUnhandled(baseEvent.EventType)
		}
	}

	util.AnalyticsEventsTotal.WithLabelValues(baseEvent.EventType).Inc()
	return nil
}
