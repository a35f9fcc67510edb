// Command mailer delivers queued account emails over SMTP.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/email"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog := logger.NewFromEnv(cfg.App.Env).With("component", "mailer")

	smtpTransport := email.NewSMTPTransport(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword)
	consumer, err := email.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, smtpTransport, appLog)
	if err != nil {
		log.Fatalf("Failed to start mail consumer: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		appLog.Critical("mail consumer stopped", "error", err)
		os.Exit(1)
	}
	appLog.Info("mail consumer stopped")
}
