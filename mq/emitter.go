package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dailyjournal/db"
	"dailyjournal/models"
	"dailyjournal/rdx"
)

const channel = "journal-events"

// Publisher is the event transport. The default publishes to Redis;
// tests swap in Discard so handlers can run without a connection.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct{}

func (redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return rdx.Publish(ctx, channel, payload)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, string, []byte) error { return nil }

var publisher Publisher = redisPublisher{}

// SetPublisher swaps the event transport.
func SetPublisher(p Publisher) {
	publisher = p
}

// Event actions
const (
	UserRegistered = "user-registered"
	UserLoggedIn   = "user-loggedin"
	PostCreated    = "post-created"
	PostDeleted    = "post-deleted"
)

// Emit publishes a journal event to Redis. Emission is fire-and-forget:
// a failed publish is logged and never fails the request that caused it.
func Emit(ctx context.Context, userID, action, entityID string) {
	event := models.Activity{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: marshal %s: %v", action, err)
		return
	}
	if err := publisher.Publish(ctx, channel, payload); err != nil {
		log.Printf("mq: publish %s: %v", action, err)
	}
}

// StartActivityWorker consumes journal events and persists them to the
// activities collection. Runs until the context is cancelled.
func StartActivityWorker(ctx context.Context) {
	sub := rdx.Subscribe(ctx, channel)
	defer sub.Close()
	events := sub.Channel()

	log.Println("mq: activity worker listening")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			var event models.Activity
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("mq: bad event payload: %v", err)
				continue
			}
			if _, err := db.ActivitiesCollection.InsertOne(ctx, event); err != nil {
				log.Printf("mq: store activity %s: %v", event.Action, err)
			}
		}
	}
}
