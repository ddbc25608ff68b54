package entry

import (
	"encoding/binary"

	"github.com/archivelab/statuslol/tag"
)

// User is an observation that user_id appeared under screen_name in the
// set of statuses whose ids are in StatusIDs.
//
// Key:   tag.User ‖ user_id:u64be ‖ screen_name:utf8
// Value: sorted deduplicated sequence of status_id:u64be
type User struct {
	UserID     uint64
	ScreenName string
	StatusIDs  []uint64
}

// NewUser builds a User entry, sorting and deduplicating statusIDs.
func NewUser(userID uint64, screenName string, statusIDs []uint64) User {
	return User{
		UserID:     userID,
		ScreenName: screenName,
		StatusIDs:  SortedUint64s(statusIDs),
	}
}

// Encode produces the (key, value) byte pair for the store.
func (u User) Encode() (key, value []byte) {
	key = make([]byte, 0, 9+len(u.ScreenName))
	key = append(key, byte(tag.User))
	key = tag.PutUint64(key, u.UserID)
	key = append(key, u.ScreenName...)
	value = EncodeUint64Set(u.StatusIDs)
	return key, value
}

// ValidateUserKV reports whether key/value form a structurally valid User
// entry: tag byte, parseable user id, UTF-8 screen name, and a value whose
// length is a multiple of 8.
func ValidateUserKV(key, value []byte) bool {
	if len(key) < 9 || key[0] != byte(tag.User) {
		return false
	}
	if !validUTF8Tail(key[9:]) {
		return false
	}
	return ValidUint64Run(value)
}

// DecodeUser parses a validated User (key, value) pair. Callers must have
// checked ValidateUserKV first.
func DecodeUser(key, value []byte) User {
	return User{
		UserID:     binary.BigEndian.Uint64(key[1:9]),
		ScreenName: string(key[9:]),
		StatusIDs:  DecodeUint64Set(value),
	}
}
