package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"meetupscheduler/internal/domain"
)

func newTestQueue(t *testing.T) *RedisQueue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisWithClient(client)
}

func TestRedisQueue_EnqueueDequeue(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	task := &domain.SubscriptionNoticeTask{
		MeetupID:        "m1",
		MeetupTitle:     "Go Hack Night",
		MeetupDate:      time.Date(2026, 5, 12, 19, 0, 0, 0, time.UTC),
		OrganizerName:   "Olivia",
		OrganizerEmail:  "org@example.com",
		SubscriberName:  "Sam",
		SubscriberEmail: "sub@example.com",
	}
	require.NoError(t, q.Enqueue(ctx, task))

	payload, err := q.Dequeue(ctx, domain.TaskSubscriptionNotice, time.Second)
	require.NoError(t, err)
	require.NotNil(t, payload)

	var got domain.SubscriptionNoticeTask
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Equal(t, task.MeetupID, got.MeetupID)
	require.Equal(t, task.SubscriberEmail, got.SubscriberEmail)
	require.True(t, task.MeetupDate.Equal(got.MeetupDate))
}

func TestRedisQueue_FIFOOrder(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, domain.TaskSubscriptionNotice, &domain.SubscriptionNoticeTask{MeetupID: "first"}))
	require.NoError(t, q.Add(ctx, domain.TaskSubscriptionNotice, &domain.SubscriptionNoticeTask{MeetupID: "second"}))

	for _, want := range []string{"first", "second"} {
		payload, err := q.Dequeue(ctx, domain.TaskSubscriptionNotice, time.Second)
		require.NoError(t, err)
		var got domain.SubscriptionNoticeTask
		require.NoError(t, json.Unmarshal(payload, &got))
		require.Equal(t, want, got.MeetupID)
	}
}

func TestRedisQueue_DequeueTimeout(t *testing.T) {
	q := newTestQueue(t)

	payload, err := q.Dequeue(context.Background(), domain.TaskSubscriptionNotice, 50*time.Millisecond)
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestRedisQueue_KindsAreIsolated(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, "other_kind", &domain.SubscriptionNoticeTask{MeetupID: "m1"}))

	payload, err := q.Dequeue(ctx, domain.TaskSubscriptionNotice, 50*time.Millisecond)
	require.NoError(t, err)
	require.Nil(t, payload)
}
