package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"meetupscheduler/internal/domain"
)

// TaskSource is the consumer side of the task queue.
type TaskSource interface {
	Dequeue(ctx context.Context, kind string, timeout time.Duration) ([]byte, error)
}

const (
	defaultPopTimeout = 5 * time.Second
	errorBackoff      = time.Second
)

// Notifier drains the subscription notice queue and delivers emails. Each
// task moves Queued -> Processing -> Delivered or Failed; Failed is terminal
// and the task is logged and dropped, independent of the subscription that
// produced it.
type Notifier struct {
	source     TaskSource
	emails     domain.EmailService
	logger     *slog.Logger
	popTimeout time.Duration
}

// NewNotifier creates a Notifier reading from source and sending through emails.
func NewNotifier(source TaskSource, emails domain.EmailService, logger *slog.Logger) *Notifier {
	return &Notifier{
		source:     source,
		emails:     emails,
		logger:     logger,
		popTimeout: defaultPopTimeout,
	}
}

// Run processes tasks one at a time until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info("notifier started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopping")
			return
		default:
		}

		payload, err := n.source.Dequeue(ctx, domain.TaskSubscriptionNotice, n.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				n.logger.Info("notifier stopping")
				return
			}
			n.logger.Error("dequeue subscription notice", "err", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(errorBackoff):
			}
			continue
		}
		if payload == nil {
			continue
		}
		n.process(ctx, payload)
	}
}

func (n *Notifier) process(ctx context.Context, payload []byte) {
	var task domain.SubscriptionNoticeTask
	if err := json.Unmarshal(payload, &task); err != nil {
		n.logger.Error("unmarshal subscription notice", "err", err)
		return
	}
	n.logger.Info("processing subscription notice",
		"meetup_id", task.MeetupID,
		"subscriber", task.SubscriberEmail,
	)
	if err := n.emails.SendSubscriptionNotice(ctx, &task); err != nil {
		n.logger.Error("subscription notice failed",
			"meetup_id", task.MeetupID,
			"subscriber", task.SubscriberEmail,
			"err", err,
		)
		return
	}
	n.logger.Info("subscription notice delivered",
		"meetup_id", task.MeetupID,
		"subscriber", task.SubscriberEmail,
	)
}
