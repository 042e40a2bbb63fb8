package domain

import (
	"context"
	"time"
)

// Meetup represents a scheduled meetup created by an organizer.
// swagger:model Meetup
type Meetup struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
	OrganizerID  string    `json:"organizer_id"`
	AttachmentID *string   `json:"attachment_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMeetup returns a new Meetup with the given fields. ID is typically set by the repository on create.
func NewMeetup(title, description, location string, date time.Time, organizerID string, attachmentID *string, createdAt, updatedAt time.Time) *Meetup {
	return &Meetup{
		Title:        title,
		Description:  description,
		Location:     location,
		Date:         date,
		OrganizerID:  organizerID,
		AttachmentID: attachmentID,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PastAt reports whether the meetup's date is before now. This is the single
// past-meetup predicate shared by meetup updates, deletes, and subscription
// admission; it is computed at observation time and never stored.
func (m *Meetup) PastAt(now time.Time) bool {
	return m.Date.Before(now)
}

// MeetupUpdate holds the optional fields of a meetup update. Nil fields are
// left unchanged. OrganizerID is immutable and has no update field.
type MeetupUpdate struct {
	Title        *string
	Description  *string
	Location     *string
	Date         *time.Time
	AttachmentID *string
}

// MeetupRepository defines the interface for meetup storage.
type MeetupRepository interface {
	Create(ctx context.Context, m *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	Update(ctx context.Context, id string, upd MeetupUpdate) (*Meetup, error)
	Delete(ctx context.Context, id string) error
	// ListByDay returns meetups on the given calendar day (all meetups when
	// day is nil), ordered by date ascending, paginated.
	ListByDay(ctx context.Context, day *time.Time, p PaginationParams) ([]*Meetup, error)
}

// MeetupService defines the business logic for organizing meetups.
type MeetupService interface {
	// Create persists the meetup. The date must be strictly in the future
	// at creation time, otherwise ErrInvalidState is returned.
	Create(ctx context.Context, meetup *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	// Update applies the partial update. The actor must be the organizer
	// (ErrForbidden) and the meetup must still be upcoming (ErrInvalidState);
	// the date cannot be moved into the past.
	Update(ctx context.Context, meetupID, actorID string, upd MeetupUpdate) (*Meetup, error)
	// Delete removes the meetup under the same organizer and not-past rules
	// as Update. Subscriptions are removed by the storage cascade.
	Delete(ctx context.Context, meetupID, actorID string) error
	ListByDay(ctx context.Context, day *time.Time, p PaginationParams) ([]*Meetup, error)
}
