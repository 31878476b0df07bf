package mail

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMTPSender_ComposesMultipartMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	s := NewSMTPSender(Config{Username: "relay@panlogistics.ca", Password: "secret"})
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		return nil
	}

	err := s.Send(context.Background(), Message{
		To:      "jane@example.com",
		Subject: "Shipment Update - PAN-1-A\r\nBcc: evil@example.com",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	require.NoError(t, err)
	require.Equal(t, "smtp.gmail.com:587", gotAddr)
	require.Equal(t, "noreply@panlogistics.ca", gotFrom)
	require.Equal(t, []string{"jane@example.com"}, gotTo)

	body := string(gotBody)
	require.Contains(t, body, "From: Pan Logistics <noreply@panlogistics.ca>\r\n")
	require.Contains(t, body, "Subject: Shipment Update - PAN-1-A  Bcc: evil@example.com\r\n")
	require.Contains(t, body, "Content-Type: multipart/alternative")
	require.Contains(t, body, "<p>hi</p>")
}

func TestSMTPSender_WrapsErrors(t *testing.T) {
	s := NewSMTPSender(Config{Host: "mail.local", Port: "2525", Username: "u", Password: "p", From: "ops@panlogistics.ca"})
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 busy") }

	err := s.Send(context.Background(), Message{To: "jane@example.com"})
	require.ErrorContains(t, err, "421 busy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Send(ctx, Message{To: "jane@example.com"}), context.Canceled)
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	sender := NewSender(Config{}, logger)
	_, isLog := sender.(*LogSender)
	require.True(t, isLog)

	require.NoError(t, sender.Send(context.Background(), Message{To: "jane@example.com", Subject: "hello"}))
	require.Contains(t, buf.String(), "[MOCK EMAIL]")
	require.Contains(t, buf.String(), "subject=hello")

	_, isSMTP := NewSender(Config{Username: "u", Password: "p"}, logger).(*SMTPSender)
	require.True(t, isSMTP)
}
