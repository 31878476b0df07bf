package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
)

func TestFromDomain_NullsOptionalFields(t *testing.T) {
	raw, err := json.Marshal(FromDomain(&domain.Message{
		ID:        "m-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Body:      "hello",
		CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "m-1",
		"name": "Ada",
		"email": "ada@example.com",
		"phone": null,
		"subject": null,
		"message": "hello",
		"is_read": false,
		"created_at": "2024-05-01T09:00:00.000Z"
	}`, string(raw))
}
