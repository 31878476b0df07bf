package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user already exists")
)

// Repository is the users persistence port.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users ordered by created_at descending.
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
