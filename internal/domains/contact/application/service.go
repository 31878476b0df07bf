package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	contacttypes "github.com/Apurer/pan-logistics-api/internal/domains/contact/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

// Service handles the contact message inbox.
type Service struct {
	repo     ports.Repository
	notifier ports.Notifier
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
}

type Option func(*Service)

// WithNotifier sets the receipt sender.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the contact service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit stores a new unread message and sends the submitter a receipt.
func (s *Service) Submit(ctx context.Context, input contacttypes.SubmitMessageInput) (*domain.Message, error) {
	message := &domain.Message{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Body:    input.Message,
	}
	message.Normalize()
	if err := message.Validate(); err != nil {
		return nil, mapError(err)
	}
	message.ID = s.newID()
	message.CreatedAt = s.now().UTC()

	saved, err := s.repo.Create(ctx, message)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.MessageReceived(ctx, *saved); err != nil {
			s.logger.WarnContext(ctx, "failed to dispatch contact confirmation",
				slog.String("message.id", saved.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return saved, nil
}

// List returns a page of messages, newest first.
func (s *Service) List(ctx context.Context, query contacttypes.ListMessagesQuery) (projection.Page[*domain.Message], error) {
	return s.repo.List(ctx, ports.ListFilter{
		UnreadOnly: query.UnreadOnly,
		Page:       projection.NewPageRequest(query.Page, query.Limit),
	})
}

// UnreadCount returns the number of unread messages.
func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

// MarkAsRead flags a message as read. Marking twice is not an error.
func (s *Service) MarkAsRead(ctx context.Context, id string) error {
	return s.repo.MarkAsRead(ctx, strings.TrimSpace(id))
}

// Delete removes a message.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

var _ ports.Service = (*Service)(nil)
