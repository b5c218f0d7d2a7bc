package rdx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dailyjournal/globals"
)

var Conn *redis.Client

// Init dials Redis and verifies the connection. Called once at
// startup, before any handler can run.
func Init(addr string) error {
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		return fmt.Errorf("rdx: ping: %w", err)
	}
	return nil
}

// Close releases the Redis connection during shutdown.
func Close() error {
	if Conn == nil {
		return nil
	}
	return Conn.Close()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// GetDel atomically reads and removes a key; used for one-shot values
// such as OAuth state tokens.
func GetDel(key string) (string, error) {
	return Conn.GetDel(globals.Ctx, key).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

func Publish(ctx context.Context, channel string, payload []byte) error {
	return Conn.Publish(ctx, channel, payload).Err()
}

func Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return Conn.Subscribe(ctx, channel)
}
