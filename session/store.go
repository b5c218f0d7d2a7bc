package session

import (
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"dailyjournal/rdx"
)

// ErrNoSession is returned when a user has no live server-side record.
var ErrNoSession = errors.New("session: no active session")

const sessionsHash = "sessions"

// Store holds the server-side half of a session: the token a user is
// currently allowed to present. One live session per user.
type Store interface {
	Set(userID, token string, ttl time.Duration) error
	Get(userID string) (string, error)
	Del(userID string) error
}

// RedisStore keeps session records in a Redis hash so logout revokes
// a cookie immediately, before its signature expires.
type RedisStore struct{}

func (RedisStore) Set(userID, token string, _ time.Duration) error {
	return rdx.RdxHset(sessionsHash, userID, token)
}

func (RedisStore) Get(userID string) (string, error) {
	token, err := rdx.RdxHget(sessionsHash, userID)
	if err == redis.Nil {
		return "", ErrNoSession
	}
	return token, err
}

func (RedisStore) Del(userID string) error {
	_, err := rdx.RdxHdel(sessionsHash, userID)
	return err
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (s *MemoryStore) Set(userID, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *MemoryStore) Get(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[userID]
	if !ok {
		return "", ErrNoSession
	}
	return token, nil
}

func (s *MemoryStore) Del(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}
