// Package merge implements the associative combiner the store applies on
// every write to fold the new value into whatever is already stored at the
// same key, without ever reading the prior value back out to the caller.
package merge

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/tag"
)

// CollisionKind names which FullStatus field disagreed across operands.
type CollisionKind int

const (
	CollisionUserID CollisionKind = iota
	CollisionTimestamp
	CollisionSubtag
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionUserID:
		return "UserId"
	case CollisionTimestamp:
		return "Timestamp"
	case CollisionSubtag:
		return "Subtag"
	default:
		return "Unknown"
	}
}

// CollisionError is raised when a FullStatus merge finds an existing value
// and an operand (or two operands) disagreeing on user id, timestamp, or
// subtag. The merge itself resolves by preserving the prior value; this
// error is surfaced to the next reader that touches the key.
type CollisionError struct {
	Kind     CollisionKind
	Previous uint64
	Update   uint64
}

func (e *CollisionError) Error() string {
	return "merge collision on " + e.Kind.String()
}

// collisionMarkerTag is a subtag value FullStatus never produces (valid
// subtags are 0-4), used to mark a key a CollisionError was raised against
// so the next reader can re-surface the same error instead of silently
// decoding whichever value the merge kept.
const collisionMarkerTag = 0xFF

// EncodeCollisionMarker serializes c as a value the store can write in
// place of a merged FullStatus value, so a later read of the same key
// reports the collision instead of the value the merge preserved.
func EncodeCollisionMarker(c *CollisionError) []byte {
	v := make([]byte, 0, 18)
	v = append(v, collisionMarkerTag, byte(c.Kind))
	v = tag.PutUint64(v, c.Previous)
	v = tag.PutUint64(v, c.Update)
	return v
}

// DecodeCollisionMarker reports whether value was written by
// EncodeCollisionMarker, returning the CollisionError it encodes.
func DecodeCollisionMarker(value []byte) (*CollisionError, bool) {
	if len(value) != 18 || value[0] != collisionMarkerTag {
		return nil, false
	}
	return &CollisionError{
		Kind:     CollisionKind(value[1]),
		Previous: binary.BigEndian.Uint64(value[2:10]),
		Update:   binary.BigEndian.Uint64(value[10:18]),
	}, true
}

// Func is the shape Dispatch selects per tag: combine an optional
// existing value with one or more operands, in submission order.
type Func func(existingValue []byte, operands [][]byte) ([]byte, error)

// Dispatch returns the merge function for the given key tag, or nil if the
// tag carries no merge semantics (callers should treat that as a plain put).
func Dispatch(t byte) Func {
	switch t {
	case byte(tag.User), byte(tag.ScreenName):
		return mergeSortedU64Set
	case byte(tag.FullStatus):
		return mergeFullStatus
	case byte(tag.ShortStatus):
		return mergeLatestWins
	case byte(tag.Delete):
		return mergeDeleteLatestNonEmpty
	case byte(tag.CompletedFile):
		return mergeLatestWins
	default:
		return nil
	}
}

// mergeSortedU64Set unions existingValue and every operand as runs of
// big-endian u64s, producing a sorted deduplicated run. Malformed (not a
// multiple of 8 bytes) operands are logged and skipped rather than failing
// the merge. The result is nil only when the union is empty.
func mergeSortedU64Set(existingValue []byte, operands [][]byte) ([]byte, error) {
	bm := roaring64.New()

	addRun := func(b []byte, source string) {
		if !entry.ValidUint64Run(b) {
			log.Error().Str("source", source).Int("length", len(b)).
				Msg("merge: run length is not a multiple of 8, skipping operand")
			return
		}
		for i := 0; i < len(b); i += 8 {
			bm.Add(binary.BigEndian.Uint64(b[i : i+8]))
		}
	}

	if existingValue != nil {
		addRun(existingValue, "existing")
	}
	for _, op := range operands {
		addRun(op, "operand")
	}

	if bm.IsEmpty() {
		return nil, nil
	}

	ids := bm.ToArray()
	out := make([]byte, 0, len(ids)*8)
	for _, id := range ids {
		out = tag.PutUint64(out, id)
	}
	return out, nil
}

// mergeLatestWins keeps the most recently submitted operand, falling back
// to the existing value when there are no operands (which the store never
// actually does, but keeps the function total).
func mergeLatestWins(existingValue []byte, operands [][]byte) ([]byte, error) {
	if len(operands) == 0 {
		return existingValue, nil
	}
	return operands[len(operands)-1], nil
}

// mergeDeleteLatestNonEmpty keeps the most recently submitted non-empty
// operand (a timestamped delete) over an empty (untimestamped) one, so a
// later-arriving timestamp is never discarded by an earlier bare marker.
func mergeDeleteLatestNonEmpty(existingValue []byte, operands [][]byte) ([]byte, error) {
	result := existingValue
	for _, op := range operands {
		if len(op) > 0 || len(result) == 0 {
			result = op
		}
	}
	if result == nil {
		// An untimestamped delete is still a record: return an empty,
		// non-nil value so the store keeps the key.
		result = []byte{}
	}
	return result, nil
}

// mergeFullStatus checks that subtag, user_id, and ts_millis agree across
// the existing value and every operand, then keeps whichever consistent
// value carries the largest mention set. A disagreement returns the prior
// value unchanged alongside a CollisionError describing the first field
// that disagreed.
func mergeFullStatus(existingValue []byte, operands [][]byte) ([]byte, error) {
	var best []byte
	var bestMentions int

	consider := func(v []byte) ([]byte, error) {
		if len(v) < 17 {
			return best, nil
		}
		if best == nil {
			best = v
			bestMentions = mentionCount(v)
			return best, nil
		}
		if v[0] != best[0] {
			return best, errors.WithStack(&CollisionError{
				Kind:     CollisionSubtag,
				Previous: uint64(best[0]),
				Update:   uint64(v[0]),
			})
		}
		prevUser := binary.BigEndian.Uint64(best[1:9])
		updUser := binary.BigEndian.Uint64(v[1:9])
		if prevUser != updUser {
			return best, errors.WithStack(&CollisionError{
				Kind:     CollisionUserID,
				Previous: prevUser,
				Update:   updUser,
			})
		}
		prevTs := binary.BigEndian.Uint64(best[9:17])
		updTs := binary.BigEndian.Uint64(v[9:17])
		if prevTs != updTs {
			return best, errors.WithStack(&CollisionError{
				Kind:     CollisionTimestamp,
				Previous: prevTs,
				Update:   updTs,
			})
		}
		if n := mentionCount(v); n > bestMentions {
			best = v
			bestMentions = n
		}
		return best, nil
	}

	if existingValue != nil {
		if _, err := consider(existingValue); err != nil {
			return existingValue, err
		}
	}
	for _, op := range operands {
		if _, err := consider(op); err != nil {
			return existingValue, err
		}
	}
	return best, nil
}

// mentionCount returns the number of trailing mention ids a plain/reply/
// quote FullStatus value carries, or 0 for a retweet value (which has
// none) or a malformed value.
func mentionCount(v []byte) int {
	if len(v) < 17 {
		return 0
	}
	subtag := v[0]
	if subtag == entry.SubtagRetweet {
		return 0
	}
	fixed := 17
	if subtag&entry.SubtagReply != 0 {
		fixed += 8
	}
	if subtag&entry.SubtagQuote != 0 {
		fixed += 8
	}
	if len(v) <= fixed {
		return 0
	}
	return (len(v) - fixed) / 8
}
