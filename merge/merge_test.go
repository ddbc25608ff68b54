package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/tag"
)

func u64set(ids ...uint64) []byte {
	return entry.EncodeUint64Set(ids)
}

func TestMergeSortedU64SetUnion(t *testing.T) {
	fn := Dispatch(byte(tag.User))
	require.NotNil(t, fn)

	out, err := fn(u64set(1, 3, 5), [][]byte{u64set(2, 3, 4)})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, entry.DecodeUint64Set(out))
}

func TestMergeSortedU64SetCommutative(t *testing.T) {
	fn := Dispatch(byte(tag.ScreenName))
	a, err := fn(nil, [][]byte{u64set(9, 1), u64set(1, 5), u64set(5)})
	require.NoError(t, err)
	b, err := fn(nil, [][]byte{u64set(5), u64set(1, 5), u64set(9, 1)})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMergeSortedU64SetSkipsMalformedOperand(t *testing.T) {
	fn := Dispatch(byte(tag.User))
	out, err := fn(u64set(1, 2), [][]byte{{0x01, 0x02, 0x03}, u64set(3)})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, entry.DecodeUint64Set(out))
}

func TestMergeSortedU64SetEmptyUnionIsNil(t *testing.T) {
	fn := Dispatch(byte(tag.User))
	out, err := fn(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMergeFullStatusConsistentKeepsLargestMentionSet(t *testing.T) {
	small := encodeFullStatusFixture(t, 7, 1000, nil, nil, []uint64{1})
	large := encodeFullStatusFixture(t, 7, 1000, nil, nil, []uint64{1, 2, 3})

	out, err := mergeFullStatus(small, [][]byte{large})
	require.NoError(t, err)
	assert.Equal(t, large, out)
}

func TestMergeFullStatusCollisionOnUserID(t *testing.T) {
	a := encodeFullStatusFixture(t, 7, 1000, nil, nil, nil)
	b := encodeFullStatusFixture(t, 8, 1000, nil, nil, nil)

	out, err := mergeFullStatus(a, [][]byte{b})
	require.Error(t, err)
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, CollisionUserID, collision.Kind)
	assert.Equal(t, a, out)
}

func TestMergeFullStatusCollisionOnTimestamp(t *testing.T) {
	a := encodeFullStatusFixture(t, 7, 1000, nil, nil, nil)
	b := encodeFullStatusFixture(t, 7, 2000, nil, nil, nil)

	_, err := mergeFullStatus(a, [][]byte{b})
	require.Error(t, err)
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, CollisionTimestamp, collision.Kind)
}

func TestMergeDeleteLatestNonEmptyWins(t *testing.T) {
	fn := Dispatch(byte(tag.Delete))
	ts := tag.PutUint64(nil, 42)

	out, err := fn(nil, [][]byte{{}, ts})
	require.NoError(t, err)
	assert.Equal(t, ts, out)

	out, err = fn(ts, [][]byte{{}})
	require.NoError(t, err)
	assert.Equal(t, ts, out)
}

func TestMergeCompletedFileLatestWins(t *testing.T) {
	fn := Dispatch(byte(tag.CompletedFile))
	first := tag.PutUint64(nil, 10)
	second := tag.PutUint64(nil, 20)

	out, err := fn(first, [][]byte{second})
	require.NoError(t, err)
	assert.Equal(t, second, out)
}

func encodeFullStatusFixture(t *testing.T, userID, tsMillis uint64, repliedTo, quoted *uint64, mentions []uint64) []byte {
	t.Helper()
	f := entry.FullStatus{
		StatusID:    1,
		UserID:      userID,
		TimeMillis:  tsMillis,
		RepliedToID: repliedTo,
		QuotedID:    quoted,
		MentionIDs:  entry.SortedUint64s(mentions),
	}
	_, value := f.Encode()
	return value
}
