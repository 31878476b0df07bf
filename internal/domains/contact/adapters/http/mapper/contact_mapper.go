package mapper

import (
	bookingmapper "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/http/mapper"
	contacttypes "github.com/Apurer/pan-logistics-api/internal/domains/contact/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
)

// SubmitMessage is the public contact form payload.
type SubmitMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Message is the staff inbox row.
type Message struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Subject   *string `json:"subject"`
	Message   string  `json:"message"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

type Submitted struct {
	MessageID string `json:"message_id"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}

func ToSubmitInput(in SubmitMessage) contacttypes.SubmitMessageInput {
	return contacttypes.SubmitMessageInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}
}

func FromDomain(m *domain.Message) Message {
	return Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     nullable(m.Phone),
		Subject:   nullable(m.Subject),
		Message:   m.Body,
		IsRead:    m.IsRead,
		CreatedAt: bookingmapper.FormatTimestamp(m.CreatedAt),
	}
}

func FromDomainList(list []*domain.Message) []Message {
	out := make([]Message, 0, len(list))
	for _, m := range list {
		out = append(out, FromDomain(m))
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
