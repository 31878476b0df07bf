package application

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"log/slog"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultFrontendURL is linked from emails when no frontend URL is configured.
const DefaultFrontendURL = "http://localhost:3000"

var kinds = []domain.Kind{
	domain.KindBookingConfirmation,
	domain.KindStatusUpdate,
	domain.KindContactConfirmation,
}

type templates struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

type viewData struct {
	Shipment    *domain.Shipment
	Inquiry     *domain.Inquiry
	TrackingURL string
	Year        int
}

// Service renders notification templates and hands the result to a mailer.
type Service struct {
	mailer      ports.Mailer
	frontendURL string
	now         func() time.Time
	logger      *slog.Logger
	templates   map[domain.Kind]templates
}

// Option customizes the service.
type Option func(*Service)

// WithFrontendURL sets the base URL of the public site.
func WithFrontendURL(url string) Option {
	return func(s *Service) {
		if url = strings.TrimRight(strings.TrimSpace(url), "/"); url != "" {
			s.frontendURL = url
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService parses the embedded templates and wires the mailer.
func NewService(mailer ports.Mailer, opts ...Option) (*Service, error) {
	s := &Service{
		mailer:      mailer,
		frontendURL: DefaultFrontendURL,
		now:         time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		templates:   make(map[domain.Kind]templates, len(kinds)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	funcs := map[string]any{"date": formatDate}
	for _, kind := range kinds {
		html, err := htmltemplate.New(string(kind)).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html.tmpl",
			fmt.Sprintf("templates/%s.html.tmpl", kind),
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s html template: %w", kind, err)
		}
		text, err := texttemplate.New(string(kind)).Funcs(funcs).ParseFS(templateFS,
			fmt.Sprintf("templates/%s.txt.tmpl", kind),
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s text template: %w", kind, err)
		}
		s.templates[kind] = templates{html: html, text: text}
	}
	return s, nil
}

// Render produces the email for n without sending it.
func (s *Service) Render(n domain.Notification) (domain.Email, error) {
	if err := n.Validate(); err != nil {
		return domain.Email{}, err
	}
	tpl, ok := s.templates[n.Kind]
	if !ok {
		return domain.Email{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, n.Kind)
	}
	data := viewData{
		Shipment:    n.Shipment,
		Inquiry:     n.Inquiry,
		TrackingURL: s.frontendURL + "/tracking.html",
		Year:        s.now().Year(),
	}
	var html, text bytes.Buffer
	if err := tpl.html.ExecuteTemplate(&html, fmt.Sprintf("%s.html.tmpl", n.Kind), data); err != nil {
		return domain.Email{}, fmt.Errorf("render %s html: %w", n.Kind, err)
	}
	if err := tpl.text.ExecuteTemplate(&text, fmt.Sprintf("%s.txt.tmpl", n.Kind), data); err != nil {
		return domain.Email{}, fmt.Errorf("render %s text: %w", n.Kind, err)
	}
	return domain.Email{
		To:      strings.TrimSpace(n.To),
		Subject: n.Subject(),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// Send renders n and delivers it through the mailer.
func (s *Service) Send(ctx context.Context, n domain.Notification) error {
	email, err := s.Render(n)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send %s email: %w", n.Kind, err)
	}
	s.logger.InfoContext(ctx, "notification sent",
		slog.String("kind", string(n.Kind)),
		slog.String("subject", email.Subject),
	)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.DateOnly)
}

var _ ports.Service = (*Service)(nil)
