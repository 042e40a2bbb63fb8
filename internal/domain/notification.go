package domain

import (
	"context"
	"time"
)

// TaskSubscriptionNotice is the queue kind for subscription notification tasks.
const TaskSubscriptionNotice = "subscription_notice"

// SubscriptionNoticeTask is the ephemeral message enqueued after a successful
// subscription: a snapshot of the meetup (including its organizer's contact
// details) and of the subscriber. It is consumed once by the notifier worker
// and then discarded.
type SubscriptionNoticeTask struct {
	MeetupID        string    `json:"meetup_id"`
	MeetupTitle     string    `json:"meetup_title"`
	MeetupDate      time.Time `json:"meetup_date"`
	OrganizerName   string    `json:"organizer_name"`
	OrganizerEmail  string    `json:"organizer_email"`
	SubscriberName  string    `json:"subscriber_name"`
	SubscriberEmail string    `json:"subscriber_email"`
}

// NotificationDispatcher enqueues notification tasks for asynchronous
// delivery. Enqueue appends the task and returns; it must not block the
// caller beyond the append.
type NotificationDispatcher interface {
	Enqueue(ctx context.Context, task *SubscriptionNoticeTask) error
}
