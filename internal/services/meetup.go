package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetupscheduler/internal/domain"
)

type meetupService struct {
	meetupRepo domain.MeetupRepository
	clock      domain.Clock
}

// NewMeetupService creates a MeetupService with the given repository and clock.
func NewMeetupService(meetupRepo domain.MeetupRepository, clock domain.Clock) domain.MeetupService {
	return &meetupService{
		meetupRepo: meetupRepo,
		clock:      clock,
	}
}

func (s *meetupService) Create(ctx context.Context, meetup *domain.Meetup) error {
	if meetup.OrganizerID == "" {
		return fmt.Errorf("meetup organizer is required")
	}
	if strings.TrimSpace(meetup.Title) == "" {
		return fmt.Errorf("meetup title is required")
	}

	now := s.clock.Now()
	if !meetup.Date.After(now) {
		return fmt.Errorf("meetup date not in the future: %w", domain.ErrInvalidState)
	}

	meetup.CreatedAt = now
	meetup.UpdatedAt = now
	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		return fmt.Errorf("create meetup: %w", err)
	}
	return nil
}

func (s *meetupService) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	return meetup, nil
}

func (s *meetupService) Update(ctx context.Context, meetupID, actorID string, upd domain.MeetupUpdate) (*domain.Meetup, error) {
	if _, err := s.guardMutable(ctx, meetupID, actorID); err != nil {
		return nil, err
	}
	if upd.Date != nil && !upd.Date.After(s.clock.Now()) {
		return nil, fmt.Errorf("meetup date not in the future: %w", domain.ErrInvalidState)
	}

	updated, err := s.meetupRepo.Update(ctx, meetupID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update meetup: %w", err)
	}
	return updated, nil
}

func (s *meetupService) Delete(ctx context.Context, meetupID, actorID string) error {
	if _, err := s.guardMutable(ctx, meetupID, actorID); err != nil {
		return err
	}
	if err := s.meetupRepo.Delete(ctx, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete meetup: %w", err)
	}
	return nil
}

// guardMutable loads the meetup and enforces the shared mutation rules:
// only the organizer may change it, and a past meetup is immutable.
func (s *meetupService) guardMutable(ctx context.Context, meetupID, actorID string) (*domain.Meetup, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	if meetup.OrganizerID != actorID {
		return nil, fmt.Errorf("only the organizer may modify the meetup: %w", domain.ErrForbidden)
	}
	if meetup.PastAt(s.clock.Now()) {
		return nil, fmt.Errorf("meetup already past: %w", domain.ErrInvalidState)
	}
	return meetup, nil
}

func (s *meetupService) ListByDay(ctx context.Context, day *time.Time, p domain.PaginationParams) ([]*domain.Meetup, error) {
	meetups, err := s.meetupRepo.ListByDay(ctx, day, p)
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}
	if meetups == nil {
		meetups = []*domain.Meetup{}
	}
	return meetups, nil
}
