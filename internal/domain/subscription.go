package domain

import (
	"context"
	"time"
)

// Subscription links a user to a meetup they attend. Subscriptions are
// created only through the SubscriptionService and never updated.
// swagger:model Subscription
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MeetupID  string    `json:"meetup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscription returns a new Subscription. ID is typically set by the repository on create.
func NewSubscription(userID, meetupID string, createdAt time.Time) *Subscription {
	return &Subscription{
		UserID:    userID,
		MeetupID:  meetupID,
		CreatedAt: createdAt,
	}
}

// SubscriptionWithMeetup bundles a subscription with its related meetup.
type SubscriptionWithMeetup struct {
	Subscription *Subscription `json:"subscription"`
	Meetup       *Meetup       `json:"meetup"`
}

// SubscriptionRepository defines storage operations for subscriptions.
// Create must report a (user_id, meetup_id) uniqueness violation as
// ErrConflict: two concurrent subscribe calls can both pass the admission
// reads, and the storage constraint is what closes that window.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*Subscription, error)
	// GetByUserAndDate returns any subscription of the user whose meetup
	// starts at exactly the given instant.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Subscription, error)
	// ListUpcomingByUser returns the user's subscriptions to meetups dated
	// after now, ordered by meetup date ascending.
	ListUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]*SubscriptionWithMeetup, error)
}

// SubscriptionService decides whether a subscription may exist and, if all
// admission checks pass, commits it and triggers the notification dispatch.
type SubscriptionService interface {
	// Subscribe evaluates the admission checks strictly in order and returns
	// on the first failure: meetup missing (ErrNotFound), requester organizes
	// the meetup (ErrForbidden), meetup already past (ErrInvalidState),
	// already subscribed or another subscription at the same instant
	// (ErrConflict). On success exactly one subscription is persisted and
	// exactly one notification task is enqueued; an enqueue failure does not
	// roll back the subscription.
	Subscribe(ctx context.Context, requesterID, meetupID string) (*Subscription, error)
	ListUpcoming(ctx context.Context, userID string) ([]*SubscriptionWithMeetup, error)
}
