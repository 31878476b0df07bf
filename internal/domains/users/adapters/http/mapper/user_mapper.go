package mapper

import (
	bookingmapper "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/http/mapper"
	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

// User is the transport projection. It never carries the password hash.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Register struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

type UpdateRole struct {
	Role string `json:"role" binding:"required,oneof=admin staff"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func ToRegisterInput(in Register) usertypes.RegisterInput {
	return usertypes.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: bookingmapper.FormatTimestamp(user.CreatedAt),
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

func FromSession(s *usertypes.Session) Session {
	return Session{Token: s.Token, User: FromDomainUser(s.User)}
}
