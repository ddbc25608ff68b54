package entry

import (
	"encoding/binary"

	"github.com/archivelab/statuslol/tag"
)

// ShortStatus is a status for which only (status_id, user_id) is known:
// seen via an edge (a mention, reply, or retweet target) before its own
// record arrived.
//
// Key: tag.ShortStatus ‖ status_id:u64be; Value: user_id:u64be
type ShortStatus struct {
	StatusID uint64
	UserID   uint64
}

// NewShortStatus builds a ShortStatus entry.
func NewShortStatus(statusID, userID uint64) ShortStatus {
	return ShortStatus{StatusID: statusID, UserID: userID}
}

// Encode produces the (key, value) byte pair for the store.
func (s ShortStatus) Encode() (key, value []byte) {
	key = make([]byte, 0, 9)
	key = append(key, byte(tag.ShortStatus))
	key = tag.PutUint64(key, s.StatusID)
	value = tag.PutUint64(nil, s.UserID)
	return key, value
}

// ValidateShortStatusKV checks the key shape and that the value is exactly
// one u64.
func ValidateShortStatusKV(key, value []byte) bool {
	return len(key) == 9 && key[0] == byte(tag.ShortStatus) && len(value) == 8
}

// DecodeShortStatus parses a validated ShortStatus (key, value) pair.
func DecodeShortStatus(key, value []byte) ShortStatus {
	return ShortStatus{
		StatusID: binary.BigEndian.Uint64(key[1:9]),
		UserID:   binary.BigEndian.Uint64(value),
	}
}
