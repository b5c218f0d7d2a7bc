package models

import "time"

// Post is a journal entry. Posts live in a single collection with an
// owner reference; there is no embedded copy in the user document, so
// a post has exactly one source of truth.
type Post struct {
	PostID    string    `json:"postid" bson:"postid"`
	UserID    string    `json:"userid" bson:"userid"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
