package services

import (
	"context"
	"fmt"
	"log"

	"meetupscheduler/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendSubscriptionNotice sends the subscription confirmation email to the
// subscriber using the "subscription_notice" template. The organizer's name
// and email appear in the message body as the reply context.
func (s *emailService) SendSubscriptionNotice(ctx context.Context, task *domain.SubscriptionNoticeTask) error {
	if task == nil {
		return fmt.Errorf("subscription notice task is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("subscription_notice", task)
	if err != nil {
		return fmt.Errorf("failed to render subscription_notice template: %w", err)
	}
	if err := s.mailer.Send(task.SubscriberEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send subscription notice: %w", err)
	}
	log.Printf("[EMAIL] Subscription notice sent to %s for meetup %s", task.SubscriberEmail, task.MeetupID)
	return nil
}
