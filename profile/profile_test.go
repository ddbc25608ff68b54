package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	loc := "Internet"
	s := Snapshot{
		ID:              1,
		ScreenName:      "alice",
		Name:            "Alice",
		Location:        &loc,
		FollowersCount:  10,
		ProfileImageURL: "https://example.invalid/a.png",
	}
	var c JSONCodec
	b, err := c.Encode(s)
	require.NoError(t, err)
	got, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestStorePutAndLookupUserIsTimeOrdered(t *testing.T) {
	store, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Put(1, 2000, Snapshot{ID: 1, ScreenName: "later"}))
	require.NoError(t, store.Put(1, 1000, Snapshot{ID: 1, ScreenName: "earlier"}))
	require.NoError(t, store.Put(2, 1500, Snapshot{ID: 2, ScreenName: "other-user"}))

	observations, err := store.LookupUser(1)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, uint64(1000), observations[0].ObservedMillis)
	assert.Equal(t, "earlier", observations[0].Snapshot.ScreenName)
	assert.Equal(t, uint64(2000), observations[1].ObservedMillis)
	assert.Equal(t, "later", observations[1].Snapshot.ScreenName)
}

func TestStoreLookupUserAbsentIsEmpty(t *testing.T) {
	store, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	observations, err := store.LookupUser(99)
	require.NoError(t, err)
	assert.Empty(t, observations)
}
