package logisticsserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
)

// Access is the minimum caller level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	Staff
	Admin
)

func (a Access) capability() userdomain.Capability {
	switch a {
	case Admin:
		return userdomain.CapabilityAdmin
	case Staff:
		return userdomain.CapabilityStaff
	default:
		return userdomain.CapabilityAuthenticated
	}
}

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Access is the guard placed in front of HandlerFunc.
	Access Access
	// RateLimited routes count against the per-IP request budget.
	RateLimited bool
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handlers of every API group.
type ApiHandleFunctions struct {
	BookingsAPI BookingsAPI
	TrackingAPI TrackingAPI
	ContactAPI  ContactAPI
	AuthAPI     AuthAPI
	HealthAPI   HealthAPI
}

type routerSettings struct {
	logger        *slog.Logger
	authenticator Authenticator
	limiter       Limiter
	limit         int64
	window        time.Duration
	corsOrigins   []string
	middleware    []gin.HandlerFunc
}

// RouterOption customizes NewRouter.
type RouterOption func(*routerSettings)

// WithRouterLogger sets the logger used for request logs and guard failures.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(s *routerSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuthenticator sets the token verifier behind non-public routes.
func WithAuthenticator(a Authenticator) RouterOption {
	return func(s *routerSettings) {
		s.authenticator = a
	}
}

// WithRateLimiter enables the per-IP budget on rate limited routes.
func WithRateLimiter(l Limiter, perMinute int64) RouterOption {
	return func(s *routerSettings) {
		s.limiter = l
		if perMinute > 0 {
			s.limit = perMinute
		}
	}
}

// WithCORSOrigins restricts cross-origin callers. "*" or an empty list allows any.
func WithCORSOrigins(origins []string) RouterOption {
	return func(s *routerSettings) {
		s.corsOrigins = origins
	}
}

// WithMiddleware appends engine-wide middleware such as tracing.
func WithMiddleware(handlers ...gin.HandlerFunc) RouterOption {
	return func(s *routerSettings) {
		s.middleware = append(s.middleware, handlers...)
	}
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts...)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	settings := routerSettings{
		logger: slog.Default(),
		limit:  DefaultRateLimitPerMinute,
		window: time.Minute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	router.Use(gin.Recovery())
	router.Use(settings.middleware...)
	router.Use(RequestLogger(settings.logger))
	router.Use(CORS(settings.corsOrigins))

	responder := newResponder(settings.logger)
	auth := newAuthGuard(settings.authenticator, responder, settings.logger)
	limit := newRateLimitGuard(settings.limiter, settings.limit, settings.window, settings.logger)

	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if route.RateLimited {
			chain = append(chain, limit.Handle)
		}
		if route.Access != Public {
			chain = append(chain, auth.Require(route.Access.capability()))
		}
		chain = append(chain, route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, chain...)
		case http.MethodPost:
			router.POST(route.Pattern, chain...)
		case http.MethodPut:
			router.PUT(route.Pattern, chain...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, chain...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, chain...)
		}
	}
	router.NoRoute(func(c *gin.Context) {
		responder.NotFound(c, "Route not found")
	})

	return router
}

// DefaultHandleFunc is the default handler for routes without one.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateBooking",
			http.MethodPost,
			"/api/bookings/create",
			Public,
			true,
			handleFunctions.BookingsAPI.CreateBooking,
		},
		{
			"GetBookingStats",
			http.MethodGet,
			"/api/bookings/stats",
			Staff,
			false,
			handleFunctions.BookingsAPI.GetBookingStats,
		},
		{
			"GetBookingByTrackingNumber",
			http.MethodGet,
			// One wildcard name per segment; here it carries the tracking number.
			"/api/bookings/:id",
			Public,
			false,
			handleFunctions.BookingsAPI.GetBookingByTrackingNumber,
		},
		{
			"ListBookings",
			http.MethodGet,
			"/api/bookings",
			Staff,
			false,
			handleFunctions.BookingsAPI.ListBookings,
		},
		{
			"UpdateBookingStatus",
			http.MethodPut,
			"/api/bookings/:id/status",
			Staff,
			false,
			handleFunctions.BookingsAPI.UpdateBookingStatus,
		},
		{
			"UpdateBooking",
			http.MethodPut,
			"/api/bookings/:id",
			Staff,
			false,
			handleFunctions.BookingsAPI.UpdateBooking,
		},
		{
			"DeleteBooking",
			http.MethodDelete,
			"/api/bookings/:id",
			Admin,
			false,
			handleFunctions.BookingsAPI.DeleteBooking,
		},
		{
			"ValidateTrackingNumber",
			http.MethodGet,
			"/api/tracking/validate/:trackingNumber",
			Public,
			false,
			handleFunctions.TrackingAPI.ValidateTrackingNumber,
		},
		{
			"TrackShipment",
			http.MethodGet,
			"/api/tracking/:trackingNumber",
			Public,
			false,
			handleFunctions.TrackingAPI.TrackShipment,
		},
		{
			"SubmitContactMessage",
			http.MethodPost,
			"/api/contact",
			Public,
			true,
			handleFunctions.ContactAPI.SubmitMessage,
		},
		{
			"ListContactMessages",
			http.MethodGet,
			"/api/contact/messages",
			Staff,
			false,
			handleFunctions.ContactAPI.ListMessages,
		},
		{
			"GetUnreadCount",
			http.MethodGet,
			"/api/contact/unread-count",
			Staff,
			false,
			handleFunctions.ContactAPI.UnreadCount,
		},
		{
			"MarkMessageAsRead",
			http.MethodPut,
			"/api/contact/messages/:id/read",
			Staff,
			false,
			handleFunctions.ContactAPI.MarkAsRead,
		},
		{
			"DeleteContactMessage",
			http.MethodDelete,
			"/api/contact/messages/:id",
			Staff,
			false,
			handleFunctions.ContactAPI.DeleteMessage,
		},
		{
			"Login",
			http.MethodPost,
			"/api/auth/login",
			Public,
			true,
			handleFunctions.AuthAPI.Login,
		},
		{
			"Register",
			http.MethodPost,
			"/api/auth/register",
			Admin,
			false,
			handleFunctions.AuthAPI.Register,
		},
		{
			"Me",
			http.MethodGet,
			"/api/auth/me",
			Authenticated,
			false,
			handleFunctions.AuthAPI.Me,
		},
		{
			"ChangePassword",
			http.MethodPut,
			"/api/auth/password",
			Authenticated,
			false,
			handleFunctions.AuthAPI.ChangePassword,
		},
		{
			"ListUsers",
			http.MethodGet,
			"/api/auth/users",
			Admin,
			false,
			handleFunctions.AuthAPI.ListUsers,
		},
		{
			"UpdateUserRole",
			http.MethodPut,
			"/api/auth/users/:id/role",
			Admin,
			false,
			handleFunctions.AuthAPI.UpdateUserRole,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/api/auth/users/:id",
			Admin,
			false,
			handleFunctions.AuthAPI.DeleteUser,
		},
		{
			"Health",
			http.MethodGet,
			"/api/health",
			Public,
			false,
			handleFunctions.HealthAPI.Health,
		},
	}
}
