package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionWebhooks = "webhooks"
)

// webhook event types emitted by the indexing monitor
const (
	EventMonitoringStarted = "monitoringStarted"
	EventMonitoringStopped = "monitoringStopped"
	EventIndexingCompleted = "indexingCompleted"
	EventIndexingTimeout   = "indexingTimeout"
	EventIndexingError     = "indexingError"
	EventTest              = "test"
)

type Webhook struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	WebhookId string              `bson:"webhook_id" json:"id"`
	URL       string              `bson:"url" json:"url"`
	Events    []string            `bson:"events" json:"events"`
	Headers   map[string]string   `bson:"headers,omitempty" json:"headers,omitempty"`
	Secret    string              `bson:"secret,omitempty" json:"-"`
	Active    bool                `bson:"active" json:"active"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

func (w *Webhook) SubscribedTo(event string) bool {
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}
