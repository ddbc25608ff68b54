package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelab/statuslol/tag"
)

func TestSortedUint64sDedupsAndSorts(t *testing.T) {
	assert.Equal(t, []uint64{1, 2, 3, 5}, SortedUint64s([]uint64{5, 2, 1, 3, 2, 1}))
}

func TestSortedUint64sDoesNotMutateInput(t *testing.T) {
	in := []uint64{3, 1, 2}
	_ = SortedUint64s(in)
	assert.Equal(t, []uint64{3, 1, 2}, in)
}

func TestUint64SetRoundTrip(t *testing.T) {
	ids := []uint64{1, 2, 3, 400000}
	assert.Equal(t, ids, DecodeUint64Set(EncodeUint64Set(ids)))
}

func TestUserRoundTrip(t *testing.T) {
	u := NewUser(42, "Alice", []uint64{5, 3, 3, 1})
	key, value := u.Encode()
	require.True(t, ValidateUserKV(key, value))
	got := DecodeUser(key, value)
	assert.Equal(t, uint64(42), got.UserID)
	assert.Equal(t, "Alice", got.ScreenName)
	assert.Equal(t, []uint64{1, 3, 5}, got.StatusIDs)
}

func TestScreenNameLowerCasesAndRoundTrips(t *testing.T) {
	s := NewScreenName("AlicE", []uint64{9, 1})
	key, value := s.Encode()
	require.True(t, ValidateScreenNameKV(key, value))
	got := DecodeScreenName(key, value)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, []uint64{1, 9}, got.UserIDs)
}

func TestFullStatusPlainRoundTrip(t *testing.T) {
	f := NewTweet(100, 7, 1000, nil, nil, []uint64{3, 1})
	key, value := f.Encode()
	require.True(t, ValidateFullStatusKV(key, value))
	got := DecodeFullStatus(key, value)
	assert.Equal(t, f.StatusID, got.StatusID)
	assert.Equal(t, f.UserID, got.UserID)
	assert.Nil(t, got.RepliedToID)
	assert.Nil(t, got.QuotedID)
	assert.Nil(t, got.RetweetedID)
	assert.Equal(t, []uint64{1, 3}, got.MentionIDs)
}

func TestFullStatusReplyQuoteRoundTrip(t *testing.T) {
	repliedTo := uint64(55)
	quoted := uint64(66)
	f := NewTweet(100, 7, 1000, &repliedTo, &quoted, []uint64{1})
	key, value := f.Encode()
	require.True(t, ValidateFullStatusKV(key, value))
	got := DecodeFullStatus(key, value)
	require.NotNil(t, got.RepliedToID)
	require.NotNil(t, got.QuotedID)
	assert.Equal(t, repliedTo, *got.RepliedToID)
	assert.Equal(t, quoted, *got.QuotedID)
}

func TestFullStatusRetweetRoundTrip(t *testing.T) {
	f := NewRetweet(100, 7, 1000, 999)
	key, value := f.Encode()
	require.True(t, ValidateFullStatusKV(key, value))
	got := DecodeFullStatus(key, value)
	require.NotNil(t, got.RetweetedID)
	assert.Equal(t, uint64(999), *got.RetweetedID)
	assert.Nil(t, got.MentionIDs)
}

func TestShortStatusRoundTrip(t *testing.T) {
	s := NewShortStatus(1, 2)
	key, value := s.Encode()
	require.True(t, ValidateShortStatusKV(key, value))
	got := DecodeShortStatus(key, value)
	assert.Equal(t, s, got)
}

func TestDeleteRoundTripWithAndWithoutTimestamp(t *testing.T) {
	d := NewDelete(1, 2, nil)
	key, value := d.Encode()
	require.True(t, ValidateDeleteKV(key, value))
	got := DecodeDelete(key, value)
	assert.Nil(t, got.TimeMillis)

	ts := uint64(12345)
	d2 := NewDelete(1, 2, &ts)
	key2, value2 := d2.Encode()
	require.True(t, ValidateDeleteKV(key2, value2))
	got2 := DecodeDelete(key2, value2)
	require.NotNil(t, got2.TimeMillis)
	assert.Equal(t, ts, *got2.TimeMillis)
}

func TestCompletedFileRoundTrip(t *testing.T) {
	c := NewCompletedFile("archive.zip", "data/tweet.js", 321)
	key, value := c.Encode()
	require.True(t, ValidateCompletedFileKV(key, value))
	got, err := DecodeCompletedFile(key, value)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCompletedFileRejectsKeyWithoutSeparator(t *testing.T) {
	key := append([]byte{byte(tag.CompletedFile)}, []byte("noseparator")...)
	value := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	assert.False(t, ValidateCompletedFileKV(key, value))
}

func TestValidUint64RunRejectsShortRun(t *testing.T) {
	assert.False(t, ValidUint64Run([]byte{1, 2, 3}))
	assert.True(t, ValidUint64Run([]byte{}))
}
