package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, metadata.Repository) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), metadata.NewSQLiteRepository(db)
}

// storeContract runs the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "fresh store has no token")

	assert.ErrorIs(t, s.Set(ctx, ""), ErrEmptyToken)
	assert.ErrorIs(t, s.SetSession(ctx, "", nil), ErrEmptyToken)

	require.NoError(t, s.Set(ctx, "abc"))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	user := &models.User{ID: "7", Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, s.SetSession(ctx, "def", user))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "def", tok)

	got, err := s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, s.SetSession(ctx, "ghi", nil))
	got, err = s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "nil user drops the cached profile")

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	got, err = s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, _ := newSQLiteStore(t)
	storeContract(t, s)
}

func TestSQLiteStore_ClearRemovesKeys(t *testing.T) {
	s, repo := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, "tok", &models.User{ID: "1"}))
	require.NoError(t, s.Clear(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, KeyToken)
	assert.NotContains(t, all, KeyUser)
}

func TestSQLiteStore_TokenStoredVerbatim(t *testing.T) {
	s, repo := newSQLiteStore(t)
	ctx := context.Background()

	token := "eyJ0eXAi.payload with spaces/+=.sigé"
	require.NoError(t, s.Set(ctx, token))

	raw, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte(token), raw)
}

func TestSQLiteStore_CorruptUser(t *testing.T) {
	s, repo := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUser, []byte("{not json")))
	_, err := s.User(ctx)
	assert.ErrorContains(t, err, "decode user")
}

func TestOpenDatabase_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "twice.db")

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWithNotify(t *testing.T) {
	ctx := context.Background()
	var got []bool
	s := WithNotify(NewMemoryStore(), func(a bool) { got = append(got, a) })

	require.NoError(t, s.Set(ctx, "a"))
	require.NoError(t, s.SetSession(ctx, "b", nil))
	require.Error(t, s.Set(ctx, ""))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, []bool{true, true, false}, got, "failed writes are not reported")
}
