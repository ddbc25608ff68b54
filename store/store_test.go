package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/merge"
	"github.com/archivelab/statuslol/tag"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestScreenNamePointLookupIsCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewScreenName("genflynn", []uint64{240454812})))

	ids, err := s.LookupScreenName("GenFlynn")
	require.NoError(t, err)
	assert.Equal(t, []uint64{240454812}, ids)
}

func TestLookupScreenNameAbsentIsEmpty(t *testing.T) {
	s := openTestStore(t)
	ids, err := s.LookupScreenName("nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUserScanStopsAtPrefixBoundary(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(42, "alice", []uint64{10, 11})))
	require.NoError(t, s.PutEntry(entry.NewUser(42, "alice2", []uint64{12})))
	require.NoError(t, s.PutEntry(entry.NewUser(43, "bob", []uint64{99})))

	aliases, err := s.LookupUser(42)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "alice", aliases[0].ScreenName)
	assert.Equal(t, []uint64{10, 11}, aliases[0].StatusIDs)
	assert.Equal(t, "alice2", aliases[1].ScreenName)
	assert.Equal(t, []uint64{12}, aliases[1].StatusIDs)
}

func TestLookupUserScreenNamePicksLargestSetFirstWinsOnTie(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(1, "a", []uint64{1})))
	require.NoError(t, s.PutEntry(entry.NewUser(1, "b", []uint64{1, 2})))

	name, ok, err := s.LookupUserScreenName(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", name)

	require.NoError(t, s.PutEntry(entry.NewUser(2, "x", []uint64{1})))
	require.NoError(t, s.PutEntry(entry.NewUser(2, "y", []uint64{2})))

	name, ok, err = s.LookupUserScreenName(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", name)
}

func TestFullStatusReplyMetadataRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repliedTo := uint64(400)
	require.NoError(t, s.PutEntry(entry.NewTweet(500, 7, 1_600_000_000_000, &repliedTo, nil, []uint64{8, 9})))

	meta, err := s.LookupTweetMetadata(500)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, MetadataFull, meta.Kind)
	require.NotNil(t, meta.RepliedToID)
	assert.Equal(t, uint64(400), *meta.RepliedToID)
	assert.Nil(t, meta.QuotedID)
	assert.Equal(t, []uint64{8, 9}, meta.MentionIDs)
}

func TestTweetMetadataFallsBackToShortStatus(t *testing.T) {
	s := openTestStore(t)
	sid := tag.FirstSnowflake + (uint64(1) << 22)
	require.NoError(t, s.PutEntry(entry.NewShortStatus(sid, 1)))

	meta, err := s.LookupTweetMetadata(sid)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, MetadataShort, meta.Kind)
	millis, ok := meta.Timestamp()
	require.True(t, ok)
	assert.Equal(t, tag.SnowflakeMillis(sid), millis)
}

func TestTweetMetadataShortBelowSnowflakeEpochHasNoTimestamp(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewShortStatus(100, 1)))

	meta, err := s.LookupTweetMetadata(100)
	require.NoError(t, err)
	require.NotNil(t, meta)
	_, ok := meta.Timestamp()
	assert.False(t, ok)
}

func TestMergeUnionAcrossTwoWrites(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(5, "u", []uint64{1, 3, 5})))
	require.NoError(t, s.PutEntry(entry.NewUser(5, "u", []uint64{2, 3, 4})))

	aliases, err := s.LookupUser(5)
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, aliases[0].StatusIDs)
}

func TestLookupDeletes(t *testing.T) {
	s := openTestStore(t)
	ts := uint64(777)
	require.NoError(t, s.PutEntry(entry.NewDelete(1, 2, nil)))
	require.NoError(t, s.PutEntry(entry.NewDelete(1, 3, &ts)))

	deletes, err := s.LookupDeletes(1)
	require.NoError(t, err)
	require.Len(t, deletes, 2)
}

func TestCompletedFilesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewCompletedFile("archive.zip", "tweet.js", 10)))

	files, err := s.GetCompletedFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "archive.zip", files[0].ArchivePath)
	assert.Equal(t, uint64(10), files[0].StatusCount)
}

func TestStatsAppearanceCountMatchesStatusIDSum(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(1, "a", []uint64{1, 2, 3})))
	require.NoError(t, s.PutEntry(entry.NewUser(2, "b", []uint64{4, 5})))

	stats, err := s.GetStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.PairCount)
	assert.Equal(t, uint64(2), stats.UserIDCount)
	assert.Equal(t, uint64(5), stats.AppearanceCount)
}

// TestFullStatusMergeCollisionIsSurfacedToWriterAndReader pins the
// propagation spec.md requires on both ends: the colliding PutEntry call
// itself returns a *merge.CollisionError, and a later LookupTweetMetadata
// on the same key returns the same error rather than silently decoding the
// value the merge kept.
func TestFullStatusMergeCollisionIsSurfacedToWriterAndReader(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewTweet(500, 7, 1000, nil, nil, nil)))

	err := s.PutEntry(entry.NewTweet(500, 8, 1000, nil, nil, nil))
	require.Error(t, err)
	var collision *merge.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, merge.CollisionUserID, collision.Kind)
	assert.Equal(t, uint64(7), collision.Previous)
	assert.Equal(t, uint64(8), collision.Update)

	_, lookupErr := s.LookupTweetMetadata(500)
	require.Error(t, lookupErr)
	var readCollision *merge.CollisionError
	require.ErrorAs(t, lookupErr, &readCollision)
	assert.Equal(t, merge.CollisionUserID, readCollision.Kind)
}

func TestDumpIDsEnumeratesUserIDs(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(7, "a", []uint64{1})))
	require.NoError(t, s.PutEntry(entry.NewUser(9, "b", []uint64{2})))

	ids, err := s.DumpIDs(tag.User)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{7, 9}, ids)
}
