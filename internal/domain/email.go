package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	// SendSubscriptionNotice emails the subscriber about their new
	// subscription, with the organizer's name and email as the reply context.
	SendSubscriptionNotice(ctx context.Context, task *SubscriptionNoticeTask) error
}
