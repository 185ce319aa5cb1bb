package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openconf/registration-backend/internal/config"
	"github.com/openconf/registration-backend/internal/model"
	"github.com/openconf/registration-backend/internal/utils"
)

type fakeUserStore struct {
	byEmail map[string]model.AdminUser
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.AdminUser, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.AdminUser{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.AdminUser, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.AdminUser{}, sql.ErrNoRows
}

type fakeTokenStore struct {
	stored     []string
	revoked    []string
	revokedAll []uint64
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, _ uint64, tokenHash string, _ time.Time) error {
	f.stored = append(f.stored, tokenHash)
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	for _, h := range f.stored {
		if h == tokenHash {
			return 7, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	f.revoked = append(f.revoked, tokenHash)
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *fakeTokenStore) {
	t.Helper()
	hash, err := utils.HashPassword("hunter22", 4)
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]model.AdminUser{
		"admin@conf.test": {ID: 7, Email: "admin@conf.test", PasswordHash: hash, Role: "ADMIN", IsActive: true},
	}}
	tokens := &fakeTokenStore{}
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 30}
	return NewAuthHandler(cfg, users, tokens), tokens
}

func doLogin(h *AuthHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Login(e.NewContext(req, rec))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h, tokens := newTestAuthHandler(t)

	rec := doLogin(h, `{"email":"admin@conf.test","password":"hunter22"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		User    struct{ Role string }
		Access  struct{ Token string }
		Refresh struct{ Token string }
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ADMIN", resp.User.Role)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)
	require.Len(t, tokens.stored, 1)
	assert.NotEqual(t, resp.Refresh.Token, tokens.stored[0], "only the hash is persisted")
}

func TestLoginWrongPassword(t *testing.T) {
	h, tokens := newTestAuthHandler(t)

	rec := doLogin(h, `{"email":"admin@conf.test","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, tokens.stored)
}

func TestLogoutAllRevokesEveryToken(t *testing.T) {
	h, tokens := newTestAuthHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout_all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(7)) // as JWTAuth stores the subject claim
	require.NoError(t, h.LogoutAll(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{7}, tokens.revokedAll)
}

func TestLogoutAllWithoutIdentity(t *testing.T) {
	h, tokens := newTestAuthHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout_all", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.LogoutAll(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, tokens.revokedAll)
}
