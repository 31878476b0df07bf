package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Apurer/pan-logistics-api/internal/shared/validate"
)

const (
	MaxNameLength    = 255
	MaxPhoneLength   = 50
	MaxSubjectLength = 255
	MaxMessageLength = 5000
)

var (
	ErrMissingFields = errors.New("name, email and message are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
)

// FieldTooLongError names the field that broke its length limit.
type FieldTooLongError struct {
	Field string
	Max   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrFieldTooLong
}

// Message is an inquiry submitted through the public contact form.
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}

// Normalize trims every field and lower-cases the email.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = validate.NormalizeEmail(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
}

// Validate enforces required fields, the email pattern and length limits.
func (m *Message) Validate() error {
	if m.Name == "" || m.Email == "" || m.Body == "" {
		return ErrMissingFields
	}
	if !validate.Email(m.Email) {
		return ErrInvalidEmail
	}
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", m.Name, MaxNameLength},
		{"phone", m.Phone, MaxPhoneLength},
		{"subject", m.Subject, MaxSubjectLength},
		{"message", m.Body, MaxMessageLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return &FieldTooLongError{Field: l.field, Max: l.max}
		}
	}
	return nil
}

// MarkAsRead flags the message as read. It reports whether anything changed.
func (m *Message) MarkAsRead() bool {
	if m.IsRead {
		return false
	}
	m.IsRead = true
	return true
}
