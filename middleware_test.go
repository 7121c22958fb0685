package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *memStore) {
	store := newMemStore()
	tokens := NewTokenService("test-secret", time.Hour)
	accounts := NewAccountManager(store)
	ledger := NewLedgerManager(store, NoopPublisher{})
	return NewHandler(accounts, ledger, tokens, false), store
}

func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	h, _ := newTestHandler()

	invoked := false
	guarded := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"lowercase scheme", "bearer abc"},
		{"scheme without token", "Bearer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			guarded(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Authorization header missing"}`, w.Body.String())
		})
	}

	assert.False(t, invoked, "wrapped handler must not run on auth failure")
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	h, _ := newTestHandler()

	guarded := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("wrapped handler must not run")
	})

	expired, err := NewTokenService("test-secret", -time.Minute).Issue("user-1", "a@x.com")
	require.NoError(t, err)
	foreign, err := NewTokenService("other-secret", time.Hour).Issue("user-1", "a@x.com")
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		body  string
	}{
		{"garbage", "garbage", `{"error":"Invalid token"}`},
		{"wrong secret", foreign, `{"error":"Invalid token"}`},
		{"expired", expired, `{"error":"Token expired"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			r.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()

			guarded(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestRequireAuthBindsIdentity(t *testing.T) {
	h, _ := newTestHandler()

	var got Identity
	guarded := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		got = identity
	})

	token, err := h.tokens.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	guarded(httptest.NewRecorder(), r)

	assert.Equal(t, "user-1", got.UserId)
	assert.Equal(t, "a@x.com", got.Email)
}
