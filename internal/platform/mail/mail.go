package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
)

const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = "587"
	DefaultFrom = "Pan Logistics <noreply@panlogistics.ca>"

	boundary = "----=_PAN_LOGISTICS_BOUNDARY"
)

// Message is a multipart/alternative email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Host) == "" {
		c.Host = DefaultHost
	}
	if strings.TrimSpace(c.Port) == "" {
		c.Port = DefaultPort
	}
	if strings.TrimSpace(c.From) == "" {
		c.From = DefaultFrom
	}
	return c
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends mail through an authenticated SMTP relay using STARTTLS.
type SMTPSender struct {
	cfg      Config
	sendMail sendMailFunc
}

// NewSMTPSender builds a sender for cfg.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg.withDefaults(), sendMail: smtp.SendMail}
}

// Send delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := sanitizeHeader(msg.To)
	if to == "" {
		return errors.New("mail recipient is empty")
	}
	envelopeFrom := s.cfg.Username
	if addr, err := mail.ParseAddress(s.cfg.From); err == nil {
		envelopeFrom = addr.Address
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, envelopeFrom, []string{to}, compose(s.cfg.From, msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender records emails instead of sending them. Used when SMTP is not configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender wraps logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the would-be email.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "[MOCK EMAIL]",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// NewSender picks SMTP when credentials are configured, the log sender otherwise.
func NewSender(cfg Config, logger *slog.Logger) Sender {
	if cfg.Configured() {
		return NewSMTPSender(cfg)
	}
	if logger != nil {
		logger.Warn("SMTP credentials not set, emails will only be logged")
	}
	return NewLogSender(logger)
}

func compose(from string, msg Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", sanitizeHeader(from))
	fmt.Fprintf(&b, "To: %s\r\n", sanitizeHeader(msg.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Text + "\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTML + "\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}
