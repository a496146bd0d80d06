// Package contact handles the contact form and newsletter signups.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/velantec/streamfolio/internal/store"
)

var (
	ErrMailNotConfigured = errors.New("SMTP credentials not configured")
	ErrInvalidEmail      = errors.New("please enter a valid email address")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidEmail applies the newsletter address check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Form is a contact form submission.
type Form struct {
	Name    string `form:"name" json:"name" binding:"required,max=200"`
	Email   string `form:"email" json:"email" binding:"required,email,max=320"`
	Subject string `form:"subject" json:"subject" binding:"max=200"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// Repository persists submissions.
type Repository interface {
	SaveMessage(ctx context.Context, m store.Message) error
	MarkMailed(ctx context.Context, id string) error
	Subscribe(ctx context.Context, email string) (bool, error)
}

// Mailer delivers a submission to the site owner.
type Mailer interface {
	Send(ctx context.Context, m store.Message) error
}

// Service stores submissions and forwards them by mail.
type Service struct {
	repo   Repository
	mailer Mailer
	delay  time.Duration
	logger *slog.Logger
	tracer trace.Tracer
}

// NewService builds a Service. A nil mailer keeps messages in the database
// only.
func NewService(repo Repository, mailer Mailer, delay time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		mailer: mailer,
		delay:  delay,
		logger: logger,
		tracer: otel.Tracer("streamfolio/contact"),
	}
}

// Submit waits out the submission delay, stores the message and mails it.
// The stored message is returned even when mailing fails.
func (s *Service) Submit(ctx context.Context, f Form) (store.Message, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return store.Message{}, ctx.Err()
		case <-t.C:
		}
	}

	msg := store.Message{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Subject:   strings.TrimSpace(f.Subject),
		Body:      strings.TrimSpace(f.Message),
		CreatedAt: time.Now(),
	}
	span.SetAttributes(attribute.String("message.id", msg.ID))

	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return msg, err
	}

	if s.mailer == nil {
		s.logger.Info("contact message stored", "id", msg.ID)
		return msg, nil
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mail failed")
		s.logger.Error("error sending contact email", "id", msg.ID, "error", err)
		return msg, fmt.Errorf("sending contact email: %w", err)
	}
	msg.Mailed = true
	if err := s.repo.MarkMailed(ctx, msg.ID); err != nil {
		s.logger.Warn("could not mark message mailed", "id", msg.ID, "error", err)
	}
	s.logger.Info("contact email sent", "id", msg.ID)
	return msg, nil
}

// Subscribe adds email to the newsletter list. Repeat signups succeed and
// report false.
func (s *Service) Subscribe(ctx context.Context, email string) (bool, error) {
	if !ValidEmail(email) {
		return false, ErrInvalidEmail
	}
	return s.repo.Subscribe(ctx, email)
}
