package logisticsserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	usersapp "github.com/Apurer/pan-logistics-api/internal/domains/users/application"
	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

const currentUserKey = "logistics.currentUser"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

type authGuard struct {
	authenticator Authenticator
	responder     *apierrors.ChainedResponder
	logger        *slog.Logger
}

func newAuthGuard(a Authenticator, responder *apierrors.ChainedResponder, logger *slog.Logger) *authGuard {
	return &authGuard{authenticator: a, responder: responder, logger: logger}
}

// Require authenticates the request and checks the caller's role grants capability.
func (g *authGuard) Require(capability userdomain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			g.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("Access denied. No token provided."))
			return
		}
		if g.authenticator == nil {
			g.logger.ErrorContext(c.Request.Context(), "authenticated route reached without an authenticator", slog.String("path", c.FullPath()))
			g.responder.Respond(c, apierrors.ErrInternal.WithDetail("Authentication failed"))
			return
		}
		user, err := g.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			g.responder.Respond(c, authProblem(err))
			if !errors.Is(err, usersapp.ErrAuthentication) {
				g.logger.ErrorContext(c.Request.Context(), "authentication failed", slog.String("error", err.Error()))
			}
			return
		}
		if !userdomain.Allows(user.Role, capability) {
			g.responder.Respond(c, apierrors.ErrForbidden.WithDetail(forbiddenMessage(capability)))
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func authProblem(err error) apierrors.ProblemDetail {
	switch {
	case errors.Is(err, userports.ErrTokenExpired):
		return apierrors.ErrUnauthorized.WithDetail("Token expired")
	case errors.Is(err, usersapp.ErrUserGone):
		return apierrors.ErrUnauthorized.WithDetail("Invalid token. User not found.")
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("Invalid token")
	}
	return apierrors.ErrInternal.WithDetail("Authentication failed")
}

func forbiddenMessage(capability userdomain.Capability) string {
	if capability == userdomain.CapabilityAdmin {
		return "Access denied. Admin only."
	}
	return "Access denied. Staff only."
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser returns the caller stored by the auth guard.
func currentUser(c *gin.Context) (*userdomain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*userdomain.User)
	return user, ok && user != nil
}
