package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoltStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	require.NoError(t, err)

	_, ok, err := s.Load()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(Tokens{Access: "acc", Refresh: "ref"}))
	require.NoError(t, s.Close())

	// tokens survive reopening the file
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Tokens{Access: "acc", Refresh: "ref"}, got)

	require.NoError(t, s.Clear())
	_, ok, err = s.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemStore(t *testing.T) {
	s := Memory()

	_, ok, err := s.Load()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(Tokens{Access: "a"}))
	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", got.Access)

	require.NoError(t, s.Clear())
	_, ok, _ = s.Load()
	require.False(t, ok)
}
