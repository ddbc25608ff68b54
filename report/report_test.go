package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestGenerateTwoHopReport reproduces the canonical two-hop scenario: the
// target user (7) authors a reply (500, to 400 authored by 9) and a retweet
// (501, of 401 authored by 10); the replied-to and retweeted statuses resolve via
// the second hop.
func TestGenerateTwoHopReport(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutEntry(entry.NewUser(7, "target", []uint64{500, 501})))
	require.NoError(t, s.PutEntry(entry.NewScreenName("target", []uint64{7})))
	require.NoError(t, s.PutEntry(entry.NewUser(9, "replied-to-author", []uint64{400})))
	require.NoError(t, s.PutEntry(entry.NewUser(10, "retweeted-author", []uint64{401})))

	repliedTo := uint64(400)
	require.NoError(t, s.PutEntry(entry.NewTweet(500, 7, 1000, &repliedTo, nil, nil)))
	require.NoError(t, s.PutEntry(entry.NewRetweet(501, 7, 1000, 401)))

	require.NoError(t, s.PutEntry(entry.NewTweet(400, 9, 900, nil, nil, nil)))
	require.NoError(t, s.PutEntry(entry.NewTweet(401, 10, 900, nil, nil, nil)))

	rpt, err := Generate(s, 7)
	require.NoError(t, err)

	require.Contains(t, rpt.RepliesTo, uint64(9))
	assert.Equal(t, "replied-to-author", rpt.RepliesTo[9].ScreenName)
	assert.Equal(t, []uint64{400}, rpt.RepliesTo[9].StatusIDs)

	require.Contains(t, rpt.Retweets, uint64(10))
	assert.Equal(t, "retweeted-author", rpt.Retweets[10].ScreenName)
	assert.Equal(t, []uint64{401}, rpt.Retweets[10].StatusIDs)

	assert.Empty(t, rpt.NotFound)
}

func TestGenerateReportCollectsNotFoundStatuses(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutEntry(entry.NewUser(1, "alice", []uint64{999})))

	rpt, err := Generate(s, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{999}, rpt.NotFound)
}

func TestGenerateReportMentionsAndMentionedBy(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutEntry(entry.NewUser(1, "author", []uint64{100})))
	require.NoError(t, s.PutEntry(entry.NewUser(2, "mentioned", []uint64{100, 777})))
	require.NoError(t, s.PutEntry(entry.NewTweet(100, 1, 1000, nil, nil, []uint64{2})))

	rpt, err := Generate(s, 1)
	require.NoError(t, err)
	require.Contains(t, rpt.Mentions, uint64(2))
	assert.Equal(t, []uint64{100}, rpt.Mentions[2].StatusIDs)

	rpt2, err := Generate(s, 2)
	require.NoError(t, err)
	require.Contains(t, rpt2.MentionedBy, uint64(1))
	assert.Equal(t, []uint64{100}, rpt2.MentionedBy[1].StatusIDs)
}

// TestQuotedByOverCountsRegardlessOfTarget pins the preserved quirk:
// quoted_by records an edge for any quote whose quoted status resolves,
// even when the quoting author isn't the report's target.
func TestQuotedByOverCountsRegardlessOfTarget(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutEntry(entry.NewUser(1, "quoter", []uint64{100})))
	require.NoError(t, s.PutEntry(entry.NewUser(3, "bystander", []uint64{200})))
	quoted := uint64(200)
	require.NoError(t, s.PutEntry(entry.NewTweet(100, 1, 1000, nil, &quoted, nil)))
	require.NoError(t, s.PutEntry(entry.NewTweet(200, 3, 900, nil, nil, nil)))

	rpt, err := Generate(s, 1)
	require.NoError(t, err)
	require.Contains(t, rpt.QuotedBy, uint64(1))
	assert.Equal(t, []uint64{100}, rpt.QuotedBy[1].StatusIDs)
}
