package models

import "time"

// Activity is an audit record of a journal event, written by the mq
// worker after the request that caused it has already completed.
type Activity struct {
	UserID    string    `json:"userid" bson:"userid"`
	Action    string    `json:"action" bson:"action"`
	EntityID  string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
