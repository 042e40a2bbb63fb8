package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"meetupscheduler/internal/domain"
)

// RedisQueue is a Redis-list-backed task queue. Enqueue LPUSHes a JSON
// payload under queue:<kind>; Dequeue BRPOPs the oldest one.
type RedisQueue struct {
	client *redis.Client
}

// NewRedis connects to Redis using the given URL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &RedisQueue{client: client}, nil
}

// NewRedisWithClient wraps an existing client. Used by tests.
func NewRedisWithClient(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}

func queueKey(kind string) string {
	return "queue:" + kind
}

// Enqueue implements domain.NotificationDispatcher. It appends the task and
// returns; delivery happens in the notifier process.
func (q *RedisQueue) Enqueue(ctx context.Context, task *domain.SubscriptionNoticeTask) error {
	return q.Add(ctx, domain.TaskSubscriptionNotice, task)
}

// Add appends a JSON-encoded payload to the queue for the given kind.
func (q *RedisQueue) Add(ctx context.Context, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, queueKey(kind), data).Err(); err != nil {
		return fmt.Errorf("lpush task: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next payload of the given kind.
// It returns (nil, nil) when the timeout elapses with no task.
func (q *RedisQueue) Dequeue(ctx context.Context, kind string, timeout time.Duration) ([]byte, error) {
	res, err := q.client.BRPop(ctx, timeout, queueKey(kind)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}
	// BRPop returns [key, value].
	if len(res) != 2 {
		return nil, fmt.Errorf("brpop: unexpected reply length %d", len(res))
	}
	return []byte(res[1]), nil
}
