package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	user    string
	clears  int
	updates int
	failing error
}

func newMemStore(access, refresh string) *memStore {
	return &memStore{access: access, refresh: refresh, user: "Alice"}
}

func (s *memStore) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.access != ""
}

func (s *memStore) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh, s.refresh != ""
}

func (s *memStore) UpdateTokens(_ context.Context, prevRefresh, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.failing != nil {
		return s.failing
	}
	if s.refresh == "" || s.refresh != prevRefresh {
		return errors.New("session replaced")
	}
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.access, s.refresh, s.user = "", "", ""
	return nil
}

func (s *memStore) snapshot() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

// events collects SessionEvents.
type events struct {
	mu   sync.Mutex
	list []SessionEvent
}

func (e *events) handle(ev SessionEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, ev)
}

func (e *events) all() []SessionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]SessionEvent(nil), e.list...)
}

func mintRefresh(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		Subject:   "alice",
	})
	s, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func tokenNotValid(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"detail": "Given token not valid for any token type",
		"code":   "token_not_valid",
	})
}

func newTestClient(t *testing.T, srv *httptest.Server, store TokenStore, opts ...Option) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.URL+"/", store, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
