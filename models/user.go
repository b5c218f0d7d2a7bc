package models

import "time"

// User is a journal account. Local accounts carry a bcrypt hash in
// Password; accounts created through Google OAuth have GoogleID set
// and no local password.
type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password,omitempty"`
	GoogleID  string    `json:"-" bson:"googleid,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	LastLogin time.Time `json:"last_login" bson:"last_login"`
}

// HasLocalPassword reports whether the account can log in with
// username/password credentials.
func (u User) HasLocalPassword() bool {
	return u.Password != ""
}
