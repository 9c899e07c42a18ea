package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type stubRepo struct {
	user *User
}

func (s stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s stubRepo) RecordLogin(context.Context, int64, time.Time, string, string) error {
	return nil
}

func (s stubRepo) PruneLogins(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

func newTestHandler(t *testing.T, repo Repository) *Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	tokens := shared.NewTokenManager(client, time.Hour)
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewHandler(logger, NewService(repo), tokens, nil)
}

func loginBody(t *testing.T, email, password string) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	h := newTestHandler(t, stubRepo{user: &User{
		ID: 1, Email: "admin@kirana.id", PasswordHash: hash, IsActive: true,
	}})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "admin@kirana.id", "rahasia-sekali"))
	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	h := newTestHandler(t, stubRepo{user: &User{
		ID: 1, Email: "admin@kirana.id", PasswordHash: hash, IsActive: true,
	}})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "admin@kirana.id", "password-salah"))
	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	h := newTestHandler(t, stubRepo{user: &User{
		ID: 1, Email: "admin@kirana.id", PasswordHash: hash, IsActive: false,
	}})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "admin@kirana.id", "rahasia-sekali"))
	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidatesPayload(t *testing.T) {
	h := newTestHandler(t, stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody(t, "bukan-email", "short"))
	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var problem struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Fields, "email")
	assert.Contains(t, problem.Fields, "password")
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc-123")
	assert.Equal(t, "abc-123", BearerToken(req))

	req.Header.Set("Authorization", "bearer xyz")
	assert.Equal(t, "xyz", BearerToken(req))
}
