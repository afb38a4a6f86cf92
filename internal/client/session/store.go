// Package session holds the client's authentication state: the access
// token, the refresh token and the cached display name. The state is kept in
// memory for lock-cheap reads and mirrored to the local metadata table so a
// restarted client resumes where it left off.
//
// The three values are always written and cleared together. Store is the only
// writer; the HTTP layer reads the authorization header from it on every
// request instead of keeping a mutable copy of its own.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/prepa/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/prepa/internal/common"
	"github.com/dmitrijs2005/prepa/internal/dbx"
)

// Tokens is a snapshot of the session.
type Tokens struct {
	Access   string
	Refresh  string
	Username string
}

// Store is the persisted token store. It is safe for concurrent use.
//
// Writers are serialized by wmu, which is held across the read of the current
// session, the database write and the in-memory swap. Readers only take mu.
type Store struct {
	db *sql.DB

	wmu sync.Mutex

	mu  sync.RWMutex
	cur Tokens
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the persisted session into memory. A partially persisted
// session (a key missing, or an empty access or refresh token) is treated as
// no session and wiped. The username may legitimately be empty.
func (s *Store) Load(ctx context.Context) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	access, okA := values[common.StorageAccessTokenKey]
	refresh, okR := values[common.StorageRefreshTokenKey]
	username, okU := values[common.StorageUsernameKey]

	if !okA && !okR && !okU {
		s.replace(Tokens{})
		return nil
	}
	if !okA || !okR || !okU || access == "" || refresh == "" {
		return s.clear(ctx)
	}

	s.replace(Tokens{Access: access, Refresh: refresh, Username: username})
	return nil
}

// Set persists a freshly issued session in one transaction and makes it
// current.
func (s *Store) Set(ctx context.Context, access, refresh, username string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.set(ctx, Tokens{Access: access, Refresh: refresh, Username: username})
}

// UpdateTokens replaces the access token after a successful refresh. The
// refresh token is replaced only when the server issued a new one.
//
// prevRefresh is the refresh token the refresh call was made with. When the
// session was cleared or replaced in the meantime the update is dropped and
// common.ErrNotLoggedIn is returned.
func (s *Store) UpdateTokens(ctx context.Context, prevRefresh, access, refresh string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	t := s.Snapshot()
	if t.Access == "" || t.Refresh == "" || t.Refresh != prevRefresh {
		return common.ErrNotLoggedIn
	}

	t.Access = access
	if refresh != "" {
		t.Refresh = refresh
	}
	return s.set(ctx, t)
}

// SetUsername updates the cached display name of the current session.
func (s *Store) SetUsername(ctx context.Context, username string) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	t := s.Snapshot()
	if t.Access == "" {
		return common.ErrNotLoggedIn
	}
	t.Username = username
	return s.set(ctx, t)
}

// Clear removes the session from memory and from the database.
func (s *Store) Clear(ctx context.Context) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.clear(ctx)
}

func (s *Store) set(ctx context.Context, t Tokens) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.StorageAccessTokenKey, t.Access); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.StorageRefreshTokenKey, t.Refresh); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageUsernameKey, t.Username)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.replace(t)
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	s.replace(Tokens{})

	repo := metadata.NewSQLiteRepository(s.db)
	err := repo.Delete(ctx, common.StorageAccessTokenKey, common.StorageRefreshTokenKey, common.StorageUsernameKey)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken returns the current access token; ok is false when there is
// none.
func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Access, s.cur.Access != ""
}

// RefreshToken returns the current refresh token; ok is false when there is
// none.
func (s *Store) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Refresh, s.cur.Refresh != ""
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Username
}

// Authenticated reports whether an access token is held.
func (s *Store) Authenticated() bool {
	_, ok := s.AccessToken()
	return ok
}

// AuthorizationHeader returns "Bearer <access>", or "" without a session.
func (s *Store) AuthorizationHeader() string {
	access, ok := s.AccessToken()
	if !ok {
		return ""
	}
	return common.BearerPrefix + access
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) replace(t Tokens) {
	s.mu.Lock()
	s.cur = t
	s.mu.Unlock()
}
