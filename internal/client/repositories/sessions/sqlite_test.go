package sessions

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
	"github.com/dmitrijs2005/followupdesk/internal/client/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sample() session.Session {
	return session.Session{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         models.User{ID: 1, Name: "Root", Email: "root@example.org", Role: models.RoleAdmin},
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, sample()))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(sample(), *got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Empty_ReturnsErrNoSession(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Load(context.Background())
	require.ErrorIs(t, err, session.ErrNoSession)
	require.Nil(t, got)
}

func TestSave_ReplacesPreviousSession(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, sample()))
	next := session.Session{AccessToken: "B1", RefreshToken: "S1", User: models.User{ID: 2, Role: models.RoleUser}}
	require.NoError(t, r.Save(ctx, next))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, *got)
}

func TestClear_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, sample()))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Load(ctx)
	require.ErrorIs(t, err, session.ErrNoSession)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	assert.Zero(t, n)

	require.NoError(t, r.Clear(ctx), "clear is idempotent")
}

func TestSetAccessToken(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.ErrorIs(t, r.SetAccessToken(ctx, "A2"), session.ErrNoSession)

	require.NoError(t, r.Save(ctx, sample()))
	require.NoError(t, r.SetAccessToken(ctx, "A2"))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	assert.Equal(t, models.RoleAdmin, got.User.Role)
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")

	db, err := storage.InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Save(ctx, sample()))
	require.NoError(t, db.Close())

	db, err = storage.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteRepository(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.AccessToken)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Load(ctx)
	require.ErrorContains(t, err, "failed to load session")

	require.ErrorContains(t, r.Save(ctx, sample()), "failed to save session")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear session")
	require.ErrorContains(t, r.SetAccessToken(ctx, "x"), "failed to update access token")
}

func TestWorksBehindManager(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(NewSQLiteRepository(setupDB(t)))

	require.NoError(t, m.Save(ctx, sample()))
	assert.True(t, m.IsAdmin(ctx))
	require.NoError(t, m.Clear(ctx))
	assert.False(t, m.IsAuthenticated(ctx))
}
