package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/pan-logistics-api/internal/shared/validate"
)

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

// Password length bounds for registration and password changes. bcrypt
// rejects input longer than MaxPasswordLength bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var (
	ErrMissingFields = errors.New("name, email and password are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrLongPassword  = errors.New("password must be at most 72 bytes")
	ErrInvalidRole   = errors.New("invalid role")
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole maps an empty value to staff and rejects anything unknown.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleStaff:
		return RoleStaff, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// User is a back-office account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser validates the fields and hashes the password.
func NewUser(name, email, password string, role Role) (*User, error) {
	u := &User{
		Name:  strings.TrimSpace(name),
		Email: validate.NormalizeEmail(email),
		Role:  role,
	}
	if u.Name == "" || u.Email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !validate.Email(u.Email) {
		return nil, ErrInvalidEmail
	}
	if u.Role != RoleAdmin && u.Role != RoleStaff {
		return nil, ErrInvalidRole
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored hash.
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrLongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
