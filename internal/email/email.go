// Package email renders the account emails and hands them to a transport.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

const (
	VerificationSubject  = "Verification Link | Social Soccer"
	PasswordResetSubject = "Password Reset | Social Soccer"
)

var (
	verificationTmpl = template.Must(template.New("verification").Parse(
		`<h1>Welcome to Social Soccer</h1><p>Please click on the link to verify and complete your registration</p><a href="{{.URL}}">Click Here</a>`))
	passwordResetTmpl = template.Must(template.New("password_reset").Parse(
		`<h1>Password Reset</h1><p>If you have requested a password reset, please click on the link</p><a href="{{.URL}}">Click Here</a>`))
)

// Message is one rendered email. It is also the job body on the mail queue.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

type Service struct {
	from      string
	transport Transport
	log       logger.Logger
}

func NewService(transport Transport, from string, log logger.Logger) *Service {
	return &Service{from: from, transport: transport, log: log}
}

func (s *Service) SendVerification(ctx context.Context, to, url string) error {
	return s.send(ctx, to, VerificationSubject, verificationTmpl, url)
}

func (s *Service) SendPasswordReset(ctx context.Context, to, url string) error {
	return s.send(ctx, to, PasswordResetSubject, passwordResetTmpl, url)
}

func (s *Service) send(ctx context.Context, to, subject string, tmpl *template.Template, url string) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, struct{ URL string }{URL: url}); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}

	msg := Message{From: s.from, To: to, Subject: subject, HTML: body.String()}
	if err := s.transport.Send(ctx, msg); err != nil {
		s.log.InternalError("email delivery failed", err, "template", tmpl.Name())
		return fmt.Errorf("send %s: %w", tmpl.Name(), err)
	}
	return nil
}
