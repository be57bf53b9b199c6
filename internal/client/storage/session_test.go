package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	s := NewSessionStore(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", time.Now().Add(time.Hour)))

	token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestSessionStore_Absent_ReturnsEmpty(t *testing.T) {
	s := NewSessionStore(setupRepo(t))

	token, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStore_Expired_ReturnsEmpty(t *testing.T) {
	s := NewSessionStore(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", time.Now().Add(-time.Minute)))

	token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStore_Corrupt_ReturnsEmpty(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetItem(ctx, SessionKey, []byte("not json")))

	s := NewSessionStore(repo)
	token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStore_EmptyTokenDeletes(t *testing.T) {
	repo := setupRepo(t)
	s := NewSessionStore(repo)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", time.Now().Add(time.Hour)))
	require.NoError(t, s.Save(ctx, "", time.Time{}))

	v, err := repo.GetItem(ctx, SessionKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDrafts_RoundTripAndDelete(t *testing.T) {
	repo := setupRepo(t)
	d := NewDrafts(repo)
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "answer:7:0", "half-written reply"))

	text, err := d.Load(ctx, "answer:7:0")
	require.NoError(t, err)
	assert.Equal(t, "half-written reply", text)

	// Keys are namespaced away from other stored state.
	raw, err := repo.GetItem(ctx, "crCmp:answer:7:0")
	require.NoError(t, err)
	assert.Equal(t, []byte("half-written reply"), raw)

	// Saving empty text discards the draft.
	require.NoError(t, d.Save(ctx, "answer:7:0", ""))
	text, err = d.Load(ctx, "answer:7:0")
	require.NoError(t, err)
	assert.Empty(t, text)
}
