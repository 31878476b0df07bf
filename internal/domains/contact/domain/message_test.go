package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_NormalizeAndValidate(t *testing.T) {
	m := Message{Name: "  Ada ", Email: " Ada@Example.COM ", Body: " Hello "}
	m.Normalize()
	require.NoError(t, m.Validate())
	require.Equal(t, "ada@example.com", m.Email)
	require.Equal(t, "Ada", m.Name)
	require.Equal(t, "Hello", m.Body)
}

func TestMessage_ValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want error
	}{
		{"missing name", Message{Email: "a@b.co", Body: "hi"}, ErrMissingFields},
		{"missing body", Message{Name: "A", Email: "a@b.co"}, ErrMissingFields},
		{"bad email", Message{Name: "A", Email: "not-an-email", Body: "hi"}, ErrInvalidEmail},
		{"long phone", Message{Name: "A", Email: "a@b.co", Body: "hi", Phone: strings.Repeat("1", 51)}, ErrFieldTooLong},
		{"long body", Message{Name: "A", Email: "a@b.co", Body: strings.Repeat("x", 5001)}, ErrFieldTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.msg.Validate(), tc.want)
		})
	}
}

func TestMessage_FieldTooLongNamesField(t *testing.T) {
	m := Message{Name: "A", Email: "a@b.co", Body: "hi", Subject: strings.Repeat("s", 256)}
	var tooLong *FieldTooLongError
	require.ErrorAs(t, m.Validate(), &tooLong)
	require.Equal(t, "subject", tooLong.Field)
	require.Equal(t, "subject must be at most 255 characters", tooLong.Error())
}

func TestMessage_MarkAsReadIsIdempotent(t *testing.T) {
	m := Message{}
	require.True(t, m.MarkAsRead())
	require.False(t, m.MarkAsRead())
	require.True(t, m.IsRead)
}
