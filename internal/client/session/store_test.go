package session

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/prepa/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func persisted(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT key, value FROM metadata`)
	require.NoError(t, err)
	defer rows.Close()

	m := map[string]string{}
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		m[k] = v
	}
	require.NoError(t, rows.Err())
	return m
}

func TestStore_SetThenGet(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))

	access, ok := s.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "A1", access)

	refresh, ok := s.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "R1", refresh)

	assert.Equal(t, "Alice", s.Username())
	assert.Equal(t, "Bearer A1", s.AuthorizationHeader())
	assert.True(t, s.Authenticated())

	assert.Equal(t, map[string]string{
		common.StorageAccessTokenKey:  "A1",
		common.StorageRefreshTokenKey: "R1",
		common.StorageUsernameKey:     "Alice",
	}, persisted(t, db))
}

func TestStore_ClearThenGet(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.AccessToken()
	assert.False(t, ok)
	_, ok = s.RefreshToken()
	assert.False(t, ok)
	assert.Empty(t, s.Username())
	assert.Empty(t, s.AuthorizationHeader())
	assert.False(t, s.Authenticated())
	assert.Empty(t, persisted(t, db))
}

func TestStore_NeverSet(t *testing.T) {
	s := NewStore(openDB(t))

	_, ok := s.AccessToken()
	assert.False(t, ok)
	assert.Empty(t, s.AuthorizationHeader())
}

func TestStore_UpdateTokens_KeepsRefreshWhenNotReissued(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.UpdateTokens(ctx, "R1", "A2", ""))

	assert.Equal(t, Tokens{Access: "A2", Refresh: "R1", Username: "Alice"}, s.Snapshot())
	assert.Equal(t, "A2", persisted(t, db)[common.StorageAccessTokenKey])
	assert.Equal(t, "R1", persisted(t, db)[common.StorageRefreshTokenKey])
}

func TestStore_UpdateTokens_ReplacesRefreshWhenReissued(t *testing.T) {
	s := NewStore(openDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.UpdateTokens(ctx, "R1", "A2", "R2"))

	assert.Equal(t, Tokens{Access: "A2", Refresh: "R2", Username: "Alice"}, s.Snapshot())
}

func TestStore_SetUsername(t *testing.T) {
	s := NewStore(openDB(t))
	ctx := context.Background()

	require.ErrorIs(t, s.SetUsername(ctx, "Bob"), common.ErrNotLoggedIn)

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.SetUsername(ctx, "Alicia"))
	assert.Equal(t, "Alicia", s.Username())
	access, _ := s.AccessToken()
	assert.Equal(t, "A1", access)
}

func TestStore_LoadResumesPersistedSession(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, NewStore(db).Set(ctx, "A1", "R1", "Alice"))

	resumed := NewStore(db)
	require.NoError(t, resumed.Load(ctx))

	assert.Equal(t, Tokens{Access: "A1", Refresh: "R1", Username: "Alice"}, resumed.Snapshot())
}

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore(openDB(t))
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.Authenticated())
}

func TestStore_LoadPartialSessionIsWiped(t *testing.T) {
	db := openDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, common.StorageAccessTokenKey, "A1")
	require.NoError(t, err)

	s := NewStore(db)
	require.NoError(t, s.Load(context.Background()))

	assert.False(t, s.Authenticated())
	assert.Empty(t, persisted(t, db))
}

func TestStore_ClearKeepsUnrelatedMetadata(t *testing.T) {
	db := openDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('theme', 'dark')`)
	require.NoError(t, err)

	s := NewStore(db)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, map[string]string{"theme": "dark"}, persisted(t, db))
}

func TestStore_SetFailureLeavesPreviousSession(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))

	_, err := db.Exec(`DROP TABLE metadata`)
	require.NoError(t, err)

	require.Error(t, s.Set(ctx, "A9", "R9", "Mallory"))
	assert.Equal(t, Tokens{Access: "A1", Refresh: "R1", Username: "Alice"}, s.Snapshot())
}

func TestStore_UpdateTokens_AfterClearIsDropped(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.Clear(ctx))

	require.ErrorIs(t, s.UpdateTokens(ctx, "R1", "A2", ""), common.ErrNotLoggedIn)

	assert.Equal(t, Tokens{}, s.Snapshot())
	assert.False(t, s.Authenticated())
	assert.Empty(t, persisted(t, db))

	resumed := NewStore(db)
	require.NoError(t, resumed.Load(ctx))
	assert.False(t, resumed.Authenticated())
}

func TestStore_UpdateTokens_AfterReloginIsDropped(t *testing.T) {
	s := NewStore(openDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))
	require.NoError(t, s.Set(ctx, "B1", "S1", "Bob"))

	require.ErrorIs(t, s.UpdateTokens(ctx, "R1", "A2", "R2"), common.ErrNotLoggedIn)
	assert.Equal(t, Tokens{Access: "B1", Refresh: "S1", Username: "Bob"}, s.Snapshot())
}

func TestStore_LoadEmptyRefreshIsWiped(t *testing.T) {
	db := openDB(t)
	for k, v := range map[string]string{
		common.StorageAccessTokenKey:  "A2",
		common.StorageRefreshTokenKey: "",
		common.StorageUsernameKey:     "",
	} {
		_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, k, v)
		require.NoError(t, err)
	}

	s := NewStore(db)
	require.NoError(t, s.Load(context.Background()))

	assert.False(t, s.Authenticated())
	assert.Empty(t, persisted(t, db))
}

func TestStore_LoadKeepsEmptyUsername(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, NewStore(db).Set(ctx, "A1", "R1", ""))

	s := NewStore(db)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, Tokens{Access: "A1", Refresh: "R1"}, s.Snapshot())
}

func TestStore_ConcurrentUpdateAndRenameBothApply(t *testing.T) {
	s := NewStore(openDB(t))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "A1", "R1", "Alice"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.UpdateTokens(ctx, "R1", "A2", ""))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, s.SetUsername(ctx, "Alicia"))
	}()
	wg.Wait()

	assert.Equal(t, Tokens{Access: "A2", Refresh: "R1", Username: "Alicia"}, s.Snapshot())
}

func TestStore_ConcurrentWritersNeverLeavePartialSession(t *testing.T) {
	db := openDB(t)
	s := NewStore(db)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "A0", "R0", "Alice"))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, fmt.Sprintf("A%d", i), fmt.Sprintf("R%d", i), "Alice")
		}()
		go func() {
			defer wg.Done()
			_ = s.Clear(ctx)
		}()
		go func() {
			defer wg.Done()
			refresh, _ := s.RefreshToken()
			_ = s.UpdateTokens(ctx, refresh, fmt.Sprintf("N%d", i), "")
		}()
		go func() {
			defer wg.Done()
			_ = s.SetUsername(ctx, "Alicia")
		}()
	}
	wg.Wait()

	cur := s.Snapshot()
	if cur.Access == "" {
		assert.Equal(t, Tokens{}, cur)
		assert.Empty(t, persisted(t, db))
		return
	}
	assert.NotEmpty(t, cur.Refresh)
	assert.Equal(t, map[string]string{
		common.StorageAccessTokenKey:  cur.Access,
		common.StorageRefreshTokenKey: cur.Refresh,
		common.StorageUsernameKey:     cur.Username,
	}, persisted(t, db))
}
