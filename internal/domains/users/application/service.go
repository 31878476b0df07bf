package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/validate"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*usertypes.Session, error) {
	email = validate.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, mapError(ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ErrInvalidCredentials)
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &usertypes.Session{Token: token, User: user}, nil
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, input usertypes.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := domain.NewUser(input.Name, input.Email, input.Password, role)
	if err != nil {
		return nil, mapError(err)
	}
	now := s.now().UTC()
	user.ID = s.newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Authenticate verifies a token and re-reads its subject, so role changes
// and deletions apply to tokens issued earlier.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ErrUserGone)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Me(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return mapError(ErrIncorrectPassword)
	}
	if err := user.SetPassword(next); err != nil {
		return mapError(err)
	}
	user.UpdatedAt = s.now().UTC()
	_, err = s.repo.Save(ctx, user)
	return err
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	if strings.TrimSpace(role) == "" {
		return nil, mapError(domain.ErrInvalidRole)
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == parsed {
		return user, nil
	}
	user.Role = parsed
	user.UpdatedAt = s.now().UTC()
	return s.repo.Save(ctx, user)
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if actorID != "" && actorID == id {
		return mapError(ErrSelfDelete)
	}
	return s.repo.Delete(ctx, id)
}

// EnsureAdmin creates the admin account unless the email is already taken.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, input usertypes.RegisterInput) (*domain.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, validate.NormalizeEmail(input.Email))
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			s.logger.WarnContext(ctx, "seed email belongs to a non-admin account",
				slog.String("user.id", existing.ID),
				slog.String("role", string(existing.Role)),
			)
		}
		return existing, false, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, false, err
	}
	input.Role = string(domain.RoleAdmin)
	created, err := s.Register(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

var _ ports.Service = (*Service)(nil)
