package logisticsserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingsmemory "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/memory"
	bookingsapp "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application"
	contactmemory "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/memory"
	contactapp "github.com/Apurer/pan-logistics-api/internal/domains/contact/application"
	trackingapp "github.com/Apurer/pan-logistics-api/internal/domains/tracking/application"
	usermemory "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/tokens"
	usersapp "github.com/Apurer/pan-logistics-api/internal/domains/users/application"
	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
)

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int64, _ time.Duration) (bool, int64, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key] <= limit, f.counts[key], nil
}

type testServer struct {
	router *gin.Engine
	users  *usersapp.Service
	jwt    *tokens.JWT
}

func newTestServer(t *testing.T, opts ...RouterOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt, err := tokens.NewJWT("test-secret", time.Hour)
	require.NoError(t, err)
	userService := usersapp.NewService(usermemory.NewRepository(), jwt)

	bookingRepo := bookingsmemory.NewRepository()
	bookingService := bookingsapp.NewService(bookingRepo)
	contactService := contactapp.NewService(contactmemory.NewRepository())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := ApiHandleFunctions{
		BookingsAPI: NewBookingsAPI(bookingService),
		TrackingAPI: NewTrackingAPI(trackingapp.NewService(bookingRepo)),
		ContactAPI:  NewContactAPI(contactService),
		AuthAPI:     NewAuthAPI(userService),
		HealthAPI:   NewHealthAPI(),
	}
	opts = append([]RouterOption{WithRouterLogger(logger), WithAuthenticator(userService)}, opts...)
	return &testServer{
		router: NewRouter(handlers, opts...),
		users:  userService,
		jwt:    jwt,
	}
}

// login registers an account with role and returns its bearer token.
func (s *testServer) login(t *testing.T, email, role string) string {
	t.Helper()
	_, err := s.users.Register(context.Background(), usertypes.RegisterInput{
		Name:     "Test " + role,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	session, err := s.users.Login(context.Background(), email, "secret123")
	require.NoError(t, err)
	return session.Token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *Pagination       `json:"pagination"`
	Errors     []json.RawMessage `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var out envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/nope", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Route not found", body.Message)
}

func TestAuthGuard(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, "staff@pan.test", "staff")
	admin := srv.login(t, "admin@pan.test", "admin")

	expired, err := tokens.NewJWT("test-secret", time.Hour, tokens.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	require.NoError(t, err)
	staffUser, err := srv.users.Authenticate(context.Background(), staff)
	require.NoError(t, err)
	expiredToken, err := expired.Issue(staffUser)
	require.NoError(t, err)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", http.MethodGet, "/api/bookings", "", http.StatusUnauthorized, "Access denied. No token provided."},
		{"garbage token", http.MethodGet, "/api/bookings", "not-a-jwt", http.StatusUnauthorized, "Invalid token"},
		{"expired token", http.MethodGet, "/api/bookings", expiredToken, http.StatusUnauthorized, "Token expired"},
		{"staff on staff route", http.MethodGet, "/api/bookings", staff, http.StatusOK, ""},
		{"staff on admin route", http.MethodGet, "/api/auth/users", staff, http.StatusForbidden, "Access denied. Admin only."},
		{"admin on admin route", http.MethodGet, "/api/auth/users", admin, http.StatusOK, ""},
		{"admin on staff route", http.MethodGet, "/api/contact/messages", admin, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.token, nil)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.message != "" {
				assert.Equal(t, tt.message, decode(t, rec).Message)
			}
		})
	}
}

func TestAuthGuard_DeletedUser(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(t, "admin@pan.test", "admin")
	staff := srv.login(t, "staff@pan.test", "staff")
	staffUser, err := srv.users.Authenticate(context.Background(), staff)
	require.NoError(t, err)

	rec := srv.do(t, http.MethodDelete, "/api/auth/users/"+staffUser.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/auth/me", staff, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token. User not found.", decode(t, rec).Message)
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{}
	srv := newTestServer(t, WithRateLimiter(limiter, 2))
	payload := map[string]string{"name": "Ann", "email": "ann@example.com", "message": "Hello"}

	for i := 0; i < 2; i++ {
		rec := srv.do(t, http.MethodPost, "/api/contact", "", payload)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := srv.do(t, http.MethodPost, "/api/contact", "", payload)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Too many requests, please try again later.", body.Message)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Routes outside the limited set are unaffected.
	rec = srv.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	srv := newTestServer(t, WithRateLimiter(&fakeLimiter{err: errors.New("redis down")}, 1))
	payload := map[string]string{"name": "Ann", "email": "ann@example.com", "message": "Hello"}

	for i := 0; i < 3; i++ {
		rec := srv.do(t, http.MethodPost, "/api/contact", "", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, WithCORSOrigins([]string{"https://pan.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "https://pan.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://pan.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
