package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Routing keys of the domain events published after successful writes.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher sends a serialized event under a routing key.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the envelope published for every domain event.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// publishEvent is best effort: a broker failure is logged and never fails
// the request that produced the event.
func publishEvent(publisher EventPublisher, log *zap.Logger, routingKey string, data any) {
	if publisher == nil {
		return
	}

	body, err := json.Marshal(Event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		log.Warn("failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
