package entry

import (
	"strings"

	"github.com/archivelab/statuslol/tag"
)

// ScreenName is the inverse index from a lower-cased screen name to the
// set of user ids ever observed using it.
//
// Key:   tag.ScreenName ‖ lower(screen_name):utf8
// Value: sorted deduplicated sequence of user_id:u64be
type ScreenName struct {
	Name    string // already lower-cased
	UserIDs []uint64
}

// NewScreenName lower-cases name and sorts/deduplicates userIDs.
func NewScreenName(name string, userIDs []uint64) ScreenName {
	return ScreenName{
		Name:    strings.ToLower(name),
		UserIDs: SortedUint64s(userIDs),
	}
}

// Encode produces the (key, value) byte pair for the store.
func (s ScreenName) Encode() (key, value []byte) {
	key = make([]byte, 0, 1+len(s.Name))
	key = append(key, byte(tag.ScreenName))
	key = append(key, s.Name...)
	value = EncodeUint64Set(s.UserIDs)
	return key, value
}

// ValidateScreenNameKV checks the tag byte, UTF-8 name, and a u64-run value.
func ValidateScreenNameKV(key, value []byte) bool {
	if len(key) < 1 || key[0] != byte(tag.ScreenName) {
		return false
	}
	if !validUTF8Tail(key[1:]) {
		return false
	}
	return ValidUint64Run(value)
}

// DecodeScreenName parses a validated ScreenName (key, value) pair.
func DecodeScreenName(key, value []byte) ScreenName {
	return ScreenName{
		Name:    string(key[1:]),
		UserIDs: DecodeUint64Set(value),
	}
}
