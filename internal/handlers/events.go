package handlers

import (
	"context"
	"log"

	"taskmasters/internal/rabbitmq"
)

// Routing keys for domain events published on the topic exchange.
const (
	EventRequestCreated  = "friend.request.created"
	EventRequestAccepted = "friend.request.accepted"
	EventRequestDeclined = "friend.request.declined"
	EventFriendRemoved   = "friend.removed"
	EventMessageCreated  = "message.created"
	EventTaskCreated     = "task.created"
	EventTaskShared      = "task.shared"
)

func publishEvent(ctx context.Context, publisher rabbitmq.Publisher, routingKey string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("event publish failed key=%s: %v", routingKey, err)
	}
}
