package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Login(t *testing.T) {
	pair := &domain.TokenPair{AccessToken: "a", RefreshToken: "r"}

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{name: "success", body: `{"username":"alice","password":"pw"}`, wantStatus: http.StatusOK, wantBody: `{"access_token":"a","refresh_token":"r"}`},
		{name: "unknown user", body: `{"username":"x","password":"pw"}`, svcErr: domain.ErrWrongCredentials, wantStatus: http.StatusUnauthorized, wantBody: `{"reason":"wrong credentials"}`},
		{name: "bad password", body: `{"username":"alice","password":"no"}`, svcErr: domain.ErrWrongPassword, wantStatus: http.StatusUnauthorized, wantBody: `{"reason":"wrong username or password"}`},
		{name: "missing fields", body: `{}`, wantStatus: http.StatusBadRequest, wantBody: `{"reason":"username is required; password is required"}`},
		{name: "storage failure", body: `{"username":"alice","password":"pw"}`, svcErr: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantBody: `{"reason":"internal error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{pair: pair, err: tt.svcErr}
			c := NewAuthController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/v1/auth", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			c.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestAuthController_Refresh(t *testing.T) {
	svc := &fakeAuthService{err: fmt.Errorf("%w: %w", domain.ErrWrongRefreshToken, domain.ErrTokenExpired)}
	c := NewAuthController(testLogger, svc)
	req := httptest.NewRequest(http.MethodPost, "http://test/v1/auth/refresh", bytes.NewBufferString(`{"refresh_token":"old"}`))
	rr := httptest.NewRecorder()

	c.Refresh(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"reason":"wrong refresh token"}`, rr.Body.String())
	assert.Equal(t, "old", svc.lastToken)
}

func TestAuthController_Register(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &domain.User{ID: 5, Type: "user", Username: "alice", Salt: "s", Password: "d", CreatedAt: now, UpdatedAt: now}

	t.Run("success never echoes secrets", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{user: user})
		req := httptest.NewRequest(http.MethodPost, "http://test/v1/auth/create", bytes.NewBufferString(`{"username":"alice","password":"pw"}`))
		rr := httptest.NewRecorder()
		c.Register(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id":5,"type":"user","username":"alice","created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}`, rr.Body.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{err: domain.ErrDuplicateUsername})
		req := httptest.NewRequest(http.MethodPost, "http://test/v1/auth/create", bytes.NewBufferString(`{"username":"alice","password":"pw"}`))
		rr := httptest.NewRecorder()
		c.Register(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"reason":"username already taken"}`, rr.Body.String())
	})
}

func TestAuthController_AccountInfo(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{})

	rr := httptest.NewRecorder()
	c.AccountInfo(rr, httptest.NewRequest(http.MethodGet, "http://test/v1/auth/account/info", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	user := &domain.User{ID: 5, Type: "admin", Username: "alice", Password: "secret-digest"}
	req := httptest.NewRequest(http.MethodGet, "http://test/v1/auth/account/info", nil)
	req = req.WithContext(middleware.SetUser(req.Context(), user))
	rr = httptest.NewRecorder()
	c.AccountInfo(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "admin", body["type"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "salt")
}

func TestAuthController_ChangePassword(t *testing.T) {
	user := &domain.User{ID: 5, Username: "alice"}

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "success", body: `{"old_password":"a","new_password":"b"}`, wantStatus: http.StatusOK},
		{name: "wrong old password", body: `{"old_password":"x","new_password":"b"}`, svcErr: domain.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "missing new password", body: `{"old_password":"a"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{pair: &domain.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, err: tt.svcErr}
			c := NewAuthController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/v1/auth/password", bytes.NewBufferString(tt.body))
			req = req.WithContext(middleware.SetUser(req.Context(), user))
			rr := httptest.NewRecorder()

			c.ChangePassword(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "b", svc.lastPass)
			}
		})
	}
}
