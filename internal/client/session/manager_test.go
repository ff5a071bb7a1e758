package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminSession() Session {
	return Session{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         models.User{ID: 1, Name: "Root", Email: "root@example.org", Role: models.RoleAdmin},
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Save(ctx, adminSession()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminSession(), *got)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Clear(ctx), "clearing twice is fine")
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, adminSession()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	got.AccessToken = "mutated"

	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", again.AccessToken)
}

func TestMemoryStore_SetAccessToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.ErrorIs(t, s.SetAccessToken(ctx, "A2"), ErrNoSession)

	require.NoError(t, s.Save(ctx, adminSession()))
	require.NoError(t, s.SetAccessToken(ctx, "A2"))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	assert.Equal(t, int64(1), got.User.ID)
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, adminSession()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SetAccessToken(ctx, "A")
			_, _ = s.Load(ctx)
		}()
	}
	wg.Wait()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", got.AccessToken)
}

func TestManager_Accessors(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	tok, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, m.IsAuthenticated(ctx))
	assert.False(t, m.IsAdmin(ctx))
	_, err = m.CurrentUser(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, m.Save(ctx, adminSession()))

	tok, err = m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", tok)
	rt, err := m.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R1", rt)
	assert.True(t, m.IsAuthenticated(ctx))
	assert.True(t, m.IsAdmin(ctx))

	require.NoError(t, m.SetAccessToken(ctx, "A2"))
	tok, _ = m.AccessToken(ctx)
	assert.Equal(t, "A2", tok)

	require.NoError(t, m.Clear(ctx))
	assert.False(t, m.IsAuthenticated(ctx))
}

func TestManager_SaveRejectsEmptyToken(t *testing.T) {
	m := NewManager(NewMemoryStore())
	require.Error(t, m.Save(context.Background(), Session{RefreshToken: "R"}))
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Load(context.Context) (*Session, error) { return nil, errors.New("disk gone") }

func TestManager_AccessTokenPropagatesStoreErrors(t *testing.T) {
	m := NewManager(&failingStore{})
	_, err := m.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestManager_TokenInfo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(14 * time.Minute)),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	m := NewManager(NewMemoryStore())
	m.now = func() time.Time { return now }

	s := adminSession()
	s.AccessToken = signed
	require.NoError(t, m.Save(ctx, s))

	info, err := m.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(now.Add(14*time.Minute)))
	assert.False(t, info.Expired)

	m.now = func() time.Time { return now.Add(time.Hour) }
	info, err = m.TokenInfo(ctx)
	require.NoError(t, err)
	assert.True(t, info.Expired)
}

func TestManager_TokenInfo_OpaqueToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())
	require.NoError(t, m.Save(ctx, adminSession()))

	_, err := m.TokenInfo(ctx)
	require.ErrorIs(t, err, ErrOpaqueToken)
}
