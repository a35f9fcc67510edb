package email

import (
	"context"
	"fmt"
	"io"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

// LogTransport only logs the message. Used in development.
type LogTransport struct {
	log logger.Logger
}

func NewLogTransport(log logger.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Send(ctx context.Context, msg Message) error {
	t.log.Info("email (not sent)", "to", msg.To, "subject", msg.Subject, "html", msg.HTML)
	return nil
}

// SMTPTransport delivers with PLAIN auth over STARTTLS.
type SMTPTransport struct {
	addr string
	host string
	auth smtp.Auth

	// replaced in tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPTransport{
		addr:     host + ":" + strconv.Itoa(port),
		host:     host,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.sendMail(t.addr, t.auth, msg.From, []string{msg.To}, buildMIME(msg)); err != nil {
		return fmt.Errorf("smtp %s: %w", t.host, err)
	}
	return nil
}

func buildMIME(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// NewTransport picks the transport named by MAIL_TRANSPORT. The returned closer is a no-op
// except for the queue transport.
func NewTransport(cfg *config.Config, log logger.Logger) (Transport, io.Closer, error) {
	switch cfg.Mail.Transport {
	case "", "log":
		return NewLogTransport(log), nopCloser{}, nil
	case "smtp":
		return NewSMTPTransport(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword),
			nopCloser{}, nil
	case "queue":
		q, err := DialQueue(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if err != nil {
			return nil, nil, err
		}
		return q, q, nil
	default:
		return nil, nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
