package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

func TestFromDomainUser_OmitsPasswordHash(t *testing.T) {
	raw, err := json.Marshal(FromDomainUser(&userdomain.User{
		ID:           "u-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         userdomain.RoleStaff,
	}))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "$2a$")
	require.JSONEq(t, `{"id":"u-1","name":"Ada","email":"ada@example.com","role":"staff"}`, string(raw))
}
