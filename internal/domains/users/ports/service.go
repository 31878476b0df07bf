package ports

import (
	"context"

	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

// Service exposes the user and authentication use cases to adapters.
type Service interface {
	Login(ctx context.Context, email, password string) (*usertypes.Session, error)
	Register(ctx context.Context, input usertypes.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Me(ctx context.Context, id string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// Delete removes the user with id on behalf of actorID.
	Delete(ctx context.Context, actorID, id string) error
	EnsureAdmin(ctx context.Context, input usertypes.RegisterInput) (*domain.User, bool, error)
}
