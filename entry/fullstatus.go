package entry

import (
	"encoding/binary"

	"github.com/archivelab/statuslol/tag"
)

// FullStatus subtags select which edge fields follow the fixed user_id/
// timestamp prefix in a FullStatus value. The subtag is an on-disk
// discriminant distinct from the outer key tag byte.
const (
	SubtagPlain        byte = 0
	SubtagReply        byte = 1
	SubtagQuote        byte = 2
	SubtagReplyQuote   byte = 3
	SubtagRetweet      byte = 4
	retweetValueLength      = 25 // subtag(1) + user_id(8) + ts(8) + retweeted_id(8)
)

// FullStatus is status metadata with timestamp and edges.
//
// Key: tag.FullStatus ‖ status_id:u64be
//
// Exactly one of (RetweetedID set) or (RepliedToID/QuotedID/MentionIDs)
// applies: a retweet never carries mentions, replied-to, or quoted ids.
type FullStatus struct {
	StatusID    uint64
	UserID      uint64
	TimeMillis  uint64
	RepliedToID *uint64
	QuotedID    *uint64
	MentionIDs  []uint64
	RetweetedID *uint64
}

// NewTweet builds a plain/reply/quote/reply+quote FullStatus entry.
func NewTweet(statusID, userID, timeMillis uint64, repliedTo, quoted *uint64, mentions []uint64) FullStatus {
	return FullStatus{
		StatusID:    statusID,
		UserID:      userID,
		TimeMillis:  timeMillis,
		RepliedToID: repliedTo,
		QuotedID:    quoted,
		MentionIDs:  SortedUint64s(mentions),
	}
}

// NewRetweet builds a retweet FullStatus entry.
func NewRetweet(statusID, userID, timeMillis, retweetedID uint64) FullStatus {
	return FullStatus{
		StatusID:    statusID,
		UserID:      userID,
		TimeMillis:  timeMillis,
		RetweetedID: &retweetedID,
	}
}

// Subtag returns the on-disk discriminant byte for f.
func (f FullStatus) Subtag() byte {
	if f.RetweetedID != nil {
		return SubtagRetweet
	}
	var s byte
	if f.RepliedToID != nil {
		s |= SubtagReply
	}
	if f.QuotedID != nil {
		s |= SubtagQuote
	}
	return s
}

func fullStatusKey(statusID uint64) []byte {
	key := make([]byte, 0, 9)
	key = append(key, byte(tag.FullStatus))
	return tag.PutUint64(key, statusID)
}

// Encode produces the (key, value) byte pair for the store.
func (f FullStatus) Encode() (key, value []byte) {
	key = fullStatusKey(f.StatusID)
	subtag := f.Subtag()

	value = make([]byte, 0, retweetValueLength+len(f.MentionIDs)*8)
	value = append(value, subtag)
	value = tag.PutUint64(value, f.UserID)
	value = tag.PutUint64(value, f.TimeMillis)

	if subtag == SubtagRetweet {
		value = tag.PutUint64(value, *f.RetweetedID)
		return key, value
	}
	if subtag&SubtagReply != 0 {
		value = tag.PutUint64(value, *f.RepliedToID)
	}
	if subtag&SubtagQuote != 0 {
		value = tag.PutUint64(value, *f.QuotedID)
	}
	value = append(value, EncodeUint64Set(f.MentionIDs)...)
	return key, value
}

// ValidateFullStatusKV checks the key shape, the subtag range, and that the
// value's length matches the grammar the subtag selects.
func ValidateFullStatusKV(key, value []byte) bool {
	if len(key) != 9 || key[0] != byte(tag.FullStatus) {
		return false
	}
	if len(value) < 1 {
		return false
	}
	subtag := value[0]
	switch subtag {
	case SubtagRetweet:
		return len(value) == retweetValueLength
	case SubtagPlain, SubtagReply, SubtagQuote, SubtagReplyQuote:
		fixed := 1 + 8 + 8
		if subtag&SubtagReply != 0 {
			fixed += 8
		}
		if subtag&SubtagQuote != 0 {
			fixed += 8
		}
		if len(value) < fixed {
			return false
		}
		return ValidUint64Run(value[fixed:])
	default:
		return false
	}
}

// DecodeFullStatus parses a validated FullStatus (key, value) pair.
func DecodeFullStatus(key, value []byte) FullStatus {
	statusID := binary.BigEndian.Uint64(key[1:9])
	subtag := value[0]
	userID := binary.BigEndian.Uint64(value[1:9])
	tsMillis := binary.BigEndian.Uint64(value[9:17])

	f := FullStatus{StatusID: statusID, UserID: userID, TimeMillis: tsMillis}

	if subtag == SubtagRetweet {
		retweeted := binary.BigEndian.Uint64(value[17:25])
		f.RetweetedID = &retweeted
		return f
	}

	offset := 17
	if subtag&SubtagReply != 0 {
		v := binary.BigEndian.Uint64(value[offset : offset+8])
		f.RepliedToID = &v
		offset += 8
	}
	if subtag&SubtagQuote != 0 {
		v := binary.BigEndian.Uint64(value[offset : offset+8])
		f.QuotedID = &v
		offset += 8
	}
	f.MentionIDs = DecodeUint64Set(value[offset:])
	return f
}
