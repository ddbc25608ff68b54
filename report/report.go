// Package report synthesizes a two-hop cross-reference report for a user:
// every screen name they were seen under, and the retweet/reply/quote/
// mention relationships their authored statuses participate in, expanded
// one edge further so the counterpart's screen name is known too.
package report

import (
	"github.com/pkg/errors"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/store"
)

// Lookup is the subset of *store.Store the report builder depends on,
// narrowed to a interface so callers can supply a fake in tests.
type Lookup interface {
	LookupUser(userID uint64) ([]store.UserAlias, error)
	LookupTweetMetadata(statusID uint64) (*store.TweetMetadata, error)
	LookupUserScreenName(userID uint64) (string, bool, error)
}

// Relation is one edge's counterpart: their screen name and the sorted,
// deduplicated set of status ids the edge was observed on.
type Relation struct {
	ScreenName string
	StatusIDs  []uint64
}

// ScreenNameWindow summarizes the statuses observed under one screen name.
type ScreenNameWindow struct {
	FirstSeenMillis uint64
	LastSeenMillis  uint64
	HasWindow       bool
	Count           int
}

// UserReport is the full two-hop synthesis for one target user.
type UserReport struct {
	ScreenNameDates map[string]ScreenNameWindow
	Retweets        map[uint64]Relation
	RepliesTo       map[uint64]Relation
	Quotes          map[uint64]Relation
	Mentions        map[uint64]Relation
	RetweetedBy     map[uint64]Relation
	RepliedToBy     map[uint64]Relation
	QuotedBy        map[uint64]Relation
	MentionedBy     map[uint64]Relation
	NotFound        []uint64
}

type edge struct {
	UserID   uint64
	StatusID uint64
}

type relations struct {
	retweets    map[edge]struct{}
	repliesTo   map[edge]struct{}
	quotes      map[edge]struct{}
	mentions    map[edge]struct{}
	retweetedBy map[edge]struct{}
	repliedToBy map[edge]struct{}
	quotedBy    map[edge]struct{}
	mentionedBy map[edge]struct{}
}

func newRelations() *relations {
	return &relations{
		retweets:    map[edge]struct{}{},
		repliesTo:   map[edge]struct{}{},
		quotes:      map[edge]struct{}{},
		mentions:    map[edge]struct{}{},
		retweetedBy: map[edge]struct{}{},
		repliedToBy: map[edge]struct{}{},
		quotedBy:    map[edge]struct{}{},
		mentionedBy: map[edge]struct{}{},
	}
}

func (r *relations) userIDs() map[uint64]struct{} {
	result := map[uint64]struct{}{}
	add := func(set map[edge]struct{}) {
		for e := range set {
			result[e.UserID] = struct{}{}
		}
	}
	add(r.retweets)
	add(r.repliesTo)
	add(r.quotes)
	add(r.mentions)
	add(r.retweetedBy)
	add(r.repliedToBy)
	add(r.quotedBy)
	add(r.mentionedBy)
	return result
}

// add records every edge status_id participates in, relative to
// targetUserID, given the already-fetched two-hop metadata map.
//
// The quoted_by edge is recorded whenever the quoted status resolves at
// all, regardless of whether the quoting author is targetUserID. This
// over-counts relative to a strict "incoming" reading, matching behaviour
// this was ported from; flagged in the design ledger as a preserved quirk
// rather than a bug to fix silently.
func (r *relations) add(targetUserID uint64, db map[uint64]*store.TweetMetadata, statusID uint64) {
	metadata, ok := db[statusID]
	if !ok {
		return
	}

	switch metadata.Kind {
	case store.MetadataRetweet:
		if metadata.RetweetedID == nil {
			return
		}
		retweetedID := *metadata.RetweetedID
		retweetedMetadata, ok := db[retweetedID]
		if !ok {
			return
		}
		if metadata.UserID == targetUserID {
			r.retweets[edge{retweetedMetadata.UserID, retweetedID}] = struct{}{}
		} else if retweetedMetadata.UserID == targetUserID {
			r.retweetedBy[edge{metadata.UserID, retweetedID}] = struct{}{}
		}

	case store.MetadataFull:
		var repliedToMeta, quotedMeta *store.TweetMetadata
		if metadata.RepliedToID != nil {
			if m, ok := db[*metadata.RepliedToID]; ok {
				repliedToMeta = m
			}
		}
		if metadata.QuotedID != nil {
			if m, ok := db[*metadata.QuotedID]; ok {
				quotedMeta = m
			}
		}

		if metadata.UserID == targetUserID {
			if repliedToMeta != nil {
				r.repliesTo[edge{repliedToMeta.UserID, repliedToMeta.StatusID}] = struct{}{}
			}
			if quotedMeta != nil {
				r.quotes[edge{quotedMeta.UserID, quotedMeta.StatusID}] = struct{}{}
			}
			for _, mentionedUserID := range metadata.MentionIDs {
				r.mentions[edge{mentionedUserID, statusID}] = struct{}{}
			}
		}

		if repliedToMeta != nil && repliedToMeta.UserID == targetUserID {
			r.repliedToBy[edge{metadata.UserID, statusID}] = struct{}{}
		}
		if quotedMeta != nil {
			r.quotedBy[edge{metadata.UserID, statusID}] = struct{}{}
		}
		for _, mentionedUserID := range metadata.MentionIDs {
			if mentionedUserID == targetUserID {
				r.mentionedBy[edge{metadata.UserID, statusID}] = struct{}{}
			}
		}
	}
}

func expand(userDB map[uint64]string, edges map[edge]struct{}) map[uint64]Relation {
	byUser := map[uint64][]uint64{}
	for e := range edges {
		byUser[e.UserID] = append(byUser[e.UserID], e.StatusID)
	}
	result := map[uint64]Relation{}
	for userID, ids := range byUser {
		screenName, ok := userDB[userID]
		if !ok {
			continue
		}
		result[userID] = Relation{ScreenName: screenName, StatusIDs: entry.SortedUint64s(ids)}
	}
	return result
}

// Generate builds the full two-hop report for userID: every screen name
// they were seen under with a first/last-seen window, and the eight
// relation buckets expanded to include the counterpart's screen name.
func Generate(lookup Lookup, userID uint64) (*UserReport, error) {
	byScreenName, err := lookup.LookupUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "lookup user aliases")
	}

	statusIDSet := map[uint64]struct{}{}
	for _, alias := range byScreenName {
		for _, id := range alias.StatusIDs {
			statusIDSet[id] = struct{}{}
		}
	}

	statusMetadata := map[uint64]*store.TweetMetadata{}
	for statusID := range statusIDSet {
		meta, err := lookup.LookupTweetMetadata(statusID)
		if err != nil {
			return nil, errors.Wrapf(err, "lookup tweet metadata %d", statusID)
		}
		if meta != nil {
			statusMetadata[statusID] = meta
		}
	}

	// Second hop: pull in the metadata for retweeted/replied-to/quoted
	// statuses not already known, so relations.add can resolve their
	// author. Mentioned statuses are never expanded this way.
	var secondHop []uint64
	for _, meta := range statusMetadata {
		switch meta.Kind {
		case store.MetadataRetweet:
			if meta.RetweetedID != nil {
				if _, ok := statusMetadata[*meta.RetweetedID]; !ok {
					secondHop = append(secondHop, *meta.RetweetedID)
				}
			}
		case store.MetadataFull:
			if meta.RepliedToID != nil {
				if _, ok := statusMetadata[*meta.RepliedToID]; !ok {
					secondHop = append(secondHop, *meta.RepliedToID)
				}
			}
			if meta.QuotedID != nil {
				if _, ok := statusMetadata[*meta.QuotedID]; !ok {
					secondHop = append(secondHop, *meta.QuotedID)
				}
			}
		}
	}
	for _, statusID := range secondHop {
		if _, ok := statusMetadata[statusID]; ok {
			continue
		}
		meta, err := lookup.LookupTweetMetadata(statusID)
		if err != nil {
			return nil, errors.Wrapf(err, "lookup tweet metadata %d", statusID)
		}
		if meta != nil {
			statusMetadata[statusID] = meta
		}
	}

	screenNameDates := map[string]ScreenNameWindow{}
	rel := newRelations()
	var notFound []uint64

	for _, alias := range byScreenName {
		window := ScreenNameWindow{}
		for _, statusID := range alias.StatusIDs {
			meta, ok := statusMetadata[statusID]
			if !ok {
				notFound = append(notFound, statusID)
				continue
			}
			if millis, ok := meta.Timestamp(); ok {
				if !window.HasWindow || millis < window.FirstSeenMillis {
					window.FirstSeenMillis = millis
				}
				if !window.HasWindow || millis > window.LastSeenMillis {
					window.LastSeenMillis = millis
				}
				window.HasWindow = true
			}
			window.Count++
			rel.add(userID, statusMetadata, statusID)
		}
		screenNameDates[alias.ScreenName] = window
	}

	userDB := map[uint64]string{}
	for id := range rel.userIDs() {
		screenName, ok, err := lookup.LookupUserScreenName(id)
		if err != nil {
			return nil, errors.Wrapf(err, "lookup screen name for user %d", id)
		}
		if ok {
			userDB[id] = screenName
		}
	}

	return &UserReport{
		ScreenNameDates: screenNameDates,
		Retweets:        expand(userDB, rel.retweets),
		RepliesTo:       expand(userDB, rel.repliesTo),
		Quotes:          expand(userDB, rel.quotes),
		Mentions:        expand(userDB, rel.mentions),
		RetweetedBy:     expand(userDB, rel.retweetedBy),
		RepliedToBy:     expand(userDB, rel.repliedToBy),
		QuotedBy:        expand(userDB, rel.quotedBy),
		MentionedBy:     expand(userDB, rel.mentionedBy),
		NotFound:        notFound,
	}, nil
}
