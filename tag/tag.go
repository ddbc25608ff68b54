// Package tag defines the single-byte discriminators that prefix every key
// in the primary store, and the handful of byte-order helpers shared by the
// entry codecs built on top of them.
package tag

import "encoding/binary"

// Tag is the leading byte of every primary-store key. It selects which of
// the six logical record kinds the rest of the key/value bytes belong to.
type Tag byte

const (
	User          Tag = 0
	ScreenName    Tag = 1
	FullStatus    Tag = 2
	ShortStatus   Tag = 3
	Delete        Tag = 4
	CompletedFile Tag = 16
)

func (t Tag) String() string {
	switch t {
	case User:
		return "User"
	case ScreenName:
		return "ScreenName"
	case FullStatus:
		return "FullStatus"
	case ShortStatus:
		return "ShortStatus"
	case Delete:
		return "Delete"
	case CompletedFile:
		return "CompletedFile"
	default:
		return "Unknown"
	}
}

// Valid reports whether b is one of the six on-disk tag assignments.
func Valid(b byte) bool {
	switch Tag(b) {
	case User, ScreenName, FullStatus, ShortStatus, Delete, CompletedFile:
		return true
	default:
		return false
	}
}

// FirstSnowflake is the smallest status id treated as a Twitter-style
// snowflake: its millisecond timestamp is recoverable from its upper bits.
const FirstSnowflake uint64 = 250_000_000_000_000

// SnowflakeEpochMillis is the millisecond epoch offset snowflake ids are
// measured from (2010-11-04T01:42:54.657Z).
const SnowflakeEpochMillis uint64 = 1_288_834_974_657

// IsSnowflake reports whether statusID's timestamp can be recovered from
// its own bits rather than needing a stored timestamp.
func IsSnowflake(statusID uint64) bool {
	return statusID >= FirstSnowflake
}

// SnowflakeMillis derives the millisecond timestamp encoded in a snowflake
// status id. Callers must check IsSnowflake first.
func SnowflakeMillis(statusID uint64) uint64 {
	return (statusID >> 22) + SnowflakeEpochMillis
}

// PutUint64 appends the big-endian encoding of v to dst and returns the
// extended slice.
func PutUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// UserPrefix returns the key prefix `User ‖ user_id`, shared by every
// UserEntry a user has ever had regardless of screen name.
func UserPrefix(userID uint64) []byte {
	prefix := make([]byte, 0, 9)
	prefix = append(prefix, byte(User))
	return PutUint64(prefix, userID)
}

// DeletePrefix returns the key prefix `Delete ‖ user_id`.
func DeletePrefix(userID uint64) []byte {
	prefix := make([]byte, 0, 9)
	prefix = append(prefix, byte(Delete))
	return PutUint64(prefix, userID)
}
