package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"meetupscheduler/internal/domain"
)

const uniqueViolationCode = "23505"

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{
		DB: db,
	}
}

// Create inserts the subscription. The subscriptions table has a unique
// constraint on (user_id, meetup_id); a violation is reported as ErrConflict
// so the service can treat the concurrent-subscribe race as a plain conflict.
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, meetup_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, sub.UserID, sub.MeetupID, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return fmt.Errorf("subscription already exists: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) GetByUserAndMeetup(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, meetup_id, created_at
		FROM subscriptions
		WHERE user_id = $1 AND meetup_id = $2
	`
	sub := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, userID, meetupID).
		Scan(&sub.ID, &sub.UserID, &sub.MeetupID, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Subscription, error) {
	query := `
		SELECT s.id, s.user_id, s.meetup_id, s.created_at
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		WHERE s.user_id = $1 AND m.date = $2
		LIMIT 1
	`
	sub := &domain.Subscription{}
	err := r.DB.QueryRowContext(ctx, query, userID, date).
		Scan(&sub.ID, &sub.UserID, &sub.MeetupID, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) ListUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]*domain.SubscriptionWithMeetup, error) {
	query := `
		SELECT s.id, s.user_id, s.meetup_id, s.created_at,
		       m.id, m.title, m.description, m.location, m.date, m.organizer_id, m.attachment_id, m.created_at, m.updated_at
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		WHERE s.user_id = $1 AND m.date > $2
		ORDER BY m.date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.SubscriptionWithMeetup, 0)
	for rows.Next() {
		sub := &domain.Subscription{}
		m := &domain.Meetup{}
		var attachmentNull sql.NullString
		err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.MeetupID, &sub.CreatedAt,
			&m.ID, &m.Title, &m.Description, &m.Location, &m.Date,
			&m.OrganizerID, &attachmentNull, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if attachmentNull.Valid {
			m.AttachmentID = &attachmentNull.String
		}
		result = append(result, &domain.SubscriptionWithMeetup{
			Subscription: sub,
			Meetup:       m,
		})
	}
	return result, rows.Err()
}
