package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/models/dto"
)

type countingLimiter struct {
	limit int
	seen  int
}

func (l *countingLimiter) Allow(context.Context, string) (bool, error) {
	l.seen++
	return l.seen <= l.limit, nil
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "valid credentials", body: map[string]string{"email": "admin@society.test", "password": testPassword}, wantStatus: http.StatusOK},
		{name: "email is case-insensitive", body: map[string]string{"email": "Admin@Society.test", "password": testPassword}, wantStatus: http.StatusOK},
		{name: "wrong password", body: map[string]string{"email": "admin@society.test", "password": "nope"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown email", body: map[string]string{"email": "ghost@society.test", "password": testPassword}, wantStatus: http.StatusUnauthorized},
		{name: "missing fields", body: map[string]string{}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeBody[dto.LoginResponse](t, w)
			assert.True(t, resp.Success)
			assert.Equal(t, env.admin.ID, resp.UserID)

			claims, err := env.tokens.Parse(resp.AuthToken)
			require.NoError(t, err)
			assert.Equal(t, env.admin.ID, claims.UserID)
			assert.Equal(t, models.RoleAdmin, claims.Role)
		})
	}
}

func TestGetUserRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/getuserRole", env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[dto.RoleResponse](t, w)
	assert.Equal(t, env.resident.ID, resp.ID)
	assert.Equal(t, models.RoleUser, resp.Role)

	w = env.do(t, http.MethodPost, "/api/auth/getuserRole", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, env.store.DeleteAccount(context.Background(), env.resident.ID))
	w = env.do(t, http.MethodPost, "/api/auth/getuserRole", env.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginThrottled(t *testing.T) {
	env := newTestEnv(t)
	mux := http.NewServeMux()
	NewAuthHandler(env.store, env.tokens, &countingLimiter{limit: 2}, false).Register(mux)
	env.mux = mux

	body := map[string]string{"email": "admin@society.test", "password": testPassword}
	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := env.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
