package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetupscheduler/internal/domain"
)

type subscriptionService struct {
	meetupRepo domain.MeetupRepository
	subRepo    domain.SubscriptionRepository
	userRepo   domain.UserRepository
	dispatcher domain.NotificationDispatcher
	clock      domain.Clock
	logger     *slog.Logger
}

// NewSubscriptionService creates a SubscriptionService with the given
// repositories, notification dispatcher, and clock.
func NewSubscriptionService(
	meetupRepo domain.MeetupRepository,
	subRepo domain.SubscriptionRepository,
	userRepo domain.UserRepository,
	dispatcher domain.NotificationDispatcher,
	clock domain.Clock,
	logger *slog.Logger,
) domain.SubscriptionService {
	return &subscriptionService{
		meetupRepo: meetupRepo,
		subRepo:    subRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger,
	}
}

// admissionState carries what the admission checks read: the requester, the
// meetup under consideration, and the observation time fixed once per call.
type admissionState struct {
	requesterID string
	meetup      *domain.Meetup
	now         time.Time
}

type admissionCheck func(ctx context.Context, st *admissionState) error

// admissionChecks returns the rule chain in evaluation order. Subscribe
// short-circuits on the first failing check.
func (s *subscriptionService) admissionChecks() []admissionCheck {
	return []admissionCheck{
		s.checkNotOrganizer,
		s.checkNotPast,
		s.checkNotSubscribed,
		s.checkNoOverlap,
	}
}

func (s *subscriptionService) checkNotOrganizer(_ context.Context, st *admissionState) error {
	if st.meetup.OrganizerID == st.requesterID {
		return fmt.Errorf("organizer cannot subscribe to own meetup: %w", domain.ErrForbidden)
	}
	return nil
}

func (s *subscriptionService) checkNotPast(_ context.Context, st *admissionState) error {
	if st.meetup.PastAt(st.now) {
		return fmt.Errorf("meetup already past: %w", domain.ErrInvalidState)
	}
	return nil
}

func (s *subscriptionService) checkNotSubscribed(ctx context.Context, st *admissionState) error {
	_, err := s.subRepo.GetByUserAndMeetup(ctx, st.requesterID, st.meetup.ID)
	if err == nil {
		return fmt.Errorf("already subscribed: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get subscription: %w", err)
	}
	return nil
}

func (s *subscriptionService) checkNoOverlap(ctx context.Context, st *admissionState) error {
	_, err := s.subRepo.GetByUserAndDate(ctx, st.requesterID, st.meetup.Date)
	if err == nil {
		return fmt.Errorf("overlapping schedule: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get subscription by date: %w", err)
	}
	return nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, requesterID, meetupID string) (*domain.Subscription, error) {
	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("meetup not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	st := &admissionState{
		requesterID: requesterID,
		meetup:      meetup,
		now:         s.clock.Now(),
	}
	for _, check := range s.admissionChecks() {
		if err := check(ctx, st); err != nil {
			return nil, err
		}
	}

	sub := domain.NewSubscription(requesterID, meetup.ID, s.clock.Now())
	if err := s.subRepo.Create(ctx, sub); err != nil {
		// The storage uniqueness constraint on (user_id, meetup_id) closes
		// the race between concurrent subscribe calls; a violation is the
		// same conflict as the read-path check.
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("already subscribed: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	s.dispatchNotice(ctx, meetup, requesterID)
	return sub, nil
}

// dispatchNotice enqueues the notification task for an already-committed
// subscription. Failures here are logged and never surfaced to the caller.
func (s *subscriptionService) dispatchNotice(ctx context.Context, meetup *domain.Meetup, subscriberID string) {
	subscriber, err := s.userRepo.GetByID(ctx, subscriberID)
	if err != nil {
		s.logger.Error("load subscriber for notice", "meetup_id", meetup.ID, "user_id", subscriberID, "err", err)
		return
	}
	organizer, err := s.userRepo.GetByID(ctx, meetup.OrganizerID)
	if err != nil {
		s.logger.Error("load organizer for notice", "meetup_id", meetup.ID, "organizer_id", meetup.OrganizerID, "err", err)
		return
	}
	task := &domain.SubscriptionNoticeTask{
		MeetupID:        meetup.ID,
		MeetupTitle:     meetup.Title,
		MeetupDate:      meetup.Date,
		OrganizerName:   organizer.Name,
		OrganizerEmail:  organizer.Email,
		SubscriberName:  subscriber.Name,
		SubscriberEmail: subscriber.Email,
	}
	if err := s.dispatcher.Enqueue(ctx, task); err != nil {
		s.logger.Error("enqueue subscription notice", "meetup_id", meetup.ID, "user_id", subscriberID, "err", err)
	}
}

func (s *subscriptionService) ListUpcoming(ctx context.Context, userID string) ([]*domain.SubscriptionWithMeetup, error) {
	subs, err := s.subRepo.ListUpcomingByUser(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if subs == nil {
		subs = []*domain.SubscriptionWithMeetup{}
	}
	return subs, nil
}
