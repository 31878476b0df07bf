package types

import "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"

// RegisterInput creates a back-office account. An empty role means staff.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  *domain.User
}
