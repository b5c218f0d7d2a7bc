package utils

import (
	rndm "math/rand"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// NewUserID mints an application-level user identifier.
func NewUserID() string {
	return "u" + GenerateRandomString(10)
}

// NewPostID mints an application-level post identifier.
func NewPostID() string {
	return "p" + GenerateRandomString(12)
}
