package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/config"
	"github.com/aaditya996/City-Issue-Tracker/internal/identity"
	"github.com/aaditya996/City-Issue-Tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{JWTSecret: "test-secret", LoginPath: "/api/auth/login"}

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(testCfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

type fakeResolver map[uuid.UUID]*services.Actor

func (f fakeResolver) Actor(id uuid.UUID) (*services.Actor, error) {
	if a, ok := f[id]; ok {
		return a, nil
	}
	return nil, services.ErrUserNotFound
}

func actorEcho(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	if actor == nil {
		return c.SendString("anonymous")
	}
	if actor.Staff() {
		return c.SendString("staff")
	}
	return c.SendString("user")
}

func TestOptionalAuthAndResolveActor(t *testing.T) {
	staffID, userID := uuid.New(), uuid.New()
	resolver := fakeResolver{
		staffID: {UserID: staffID, IsStaff: true},
		userID:  {UserID: userID},
	}

	app := fiber.New()
	app.Get("/", OptionalAuth(testCfg), ResolveActor(resolver), actorEcho)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"staff", "Bearer " + signToken(t, staffID.String()), http.StatusOK, "staff"},
		{"resident", "Bearer " + signToken(t, userID.String()), http.StatusOK, "user"},
		{"unknown user", "Bearer " + signToken(t, uuid.NewString()), http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				buf := make([]byte, 16)
				n, _ := resp.Body.Read(buf)
				assert.Equal(t, tt.body, string(buf[:n]))
			}
		})
	}
}

func TestLoginRequiredRedirects(t *testing.T) {
	app := fiber.New()
	app.Post("/api/issues/:id/comments", LoginRequired(testCfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/issues/abc/comments", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/auth/login?next=%2Fapi%2Fissues%2Fabc%2Fcomments", resp.Header.Get("Location"))

	req = httptest.NewRequest(http.MethodPost, "/api/issues/abc/comments", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString()))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", JWTProtected(testCfg), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type fakeCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	failing bool
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.failing {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, exp time.Duration) *redis.BoolCmd {
	f.expires[key] = exp
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	return redis.NewDurationResult(f.expires[key], nil)
}

func limitedApp(counter Counter, actor *services.Actor) *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		if actor != nil {
			identity.SetActor(c, actor)
		}
		return c.Next()
	}, ReportRateLimiter(counter, 2, 24*time.Hour), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestReportRateLimiter(t *testing.T) {
	counter := newFakeCounter()
	actor := &services.Actor{UserID: uuid.New()}
	app := limitedApp(counter, actor)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "86400", resp.Header.Get("Retry-After"))
	assert.Equal(t, 24*time.Hour, counter.expires[reportLimitPrefix+actor.UserID.String()])
}

func TestReportRateLimiterFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.failing = true
	app := limitedApp(counter, &services.Actor{UserID: uuid.New()})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}
