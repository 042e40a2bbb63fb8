package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"meetupscheduler/config"
	"meetupscheduler/internal/adapters/email"
	"meetupscheduler/internal/adapters/queue"
	"meetupscheduler/internal/services"
	"meetupscheduler/internal/worker"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskQueue, err := queue.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer taskQueue.Close()
	logger.Info("connected to Redis")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	notifier := worker.NewNotifier(taskQueue, emailService, logger)
	notifier.Run(ctx)

	logger.Info("notifier stopped")
}
