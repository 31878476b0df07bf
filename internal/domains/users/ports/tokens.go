package ports

import (
	"errors"
	"time"

	"github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the verified content of a bearer token.
type Claims struct {
	UserID    string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Parse(token string) (Claims, error)
}
