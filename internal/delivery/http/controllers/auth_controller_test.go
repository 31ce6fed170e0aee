package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePasswordHasher struct {
	password string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) { return "hash", nil }

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if password != f.password {
		return domain.ErrUnauthorized
	}
	return nil
}

type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(subject, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func newAuthController(hasher domain.PasswordHasher, issuer domain.TokenIssuer) *AuthController {
	return NewAuthController(testLogger, AdminCredentials{
		Email:        "Admin@example.com",
		PasswordHash: "stored-hash",
		PasswordSalt: "stored-salt",
	}, hasher, issuer, time.Hour)
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := newAuthController(&fakePasswordHasher{password: "s3cret"}, &fakeTokenIssuer{token: "jwt-token"})

		body := strings.NewReader(`{"email": "ADMIN@example.com", "password": "s3cret"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec)["data"].(map[string]any)
		assert.Equal(t, "jwt-token", data["token"])
	})

	t.Run("wrong email", func(t *testing.T) {
		ctrl := newAuthController(&fakePasswordHasher{password: "s3cret"}, &fakeTokenIssuer{token: "jwt-token"})
		body := strings.NewReader(`{"email": "intruder@example.com", "password": "s3cret"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", errorCode(t, rec))
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := newAuthController(&fakePasswordHasher{password: "s3cret"}, &fakeTokenIssuer{token: "jwt-token"})
		body := strings.NewReader(`{"email": "admin@example.com", "password": "guess"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := newAuthController(&fakePasswordHasher{}, &fakeTokenIssuer{})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email": "admin@example.com"}`))
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("issuer failure", func(t *testing.T) {
		ctrl := newAuthController(&fakePasswordHasher{password: "s3cret"}, &fakeTokenIssuer{err: errors.New("no key")})
		body := strings.NewReader(`{"email": "admin@example.com", "password": "s3cret"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		ctrl.Login(rec, req)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
