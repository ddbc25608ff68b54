package entry

import (
	"encoding/binary"

	"github.com/archivelab/statuslol/tag"
)

// Delete is a deletion notice for status_id of user_id, optionally
// timestamped.
//
// Key: tag.Delete ‖ user_id:u64be ‖ status_id:u64be
// Value: empty, or ts_millis:u64be
type Delete struct {
	UserID     uint64
	StatusID   uint64
	TimeMillis *uint64
}

// NewDelete builds a Delete entry. timeMillis may be nil.
func NewDelete(userID, statusID uint64, timeMillis *uint64) Delete {
	return Delete{UserID: userID, StatusID: statusID, TimeMillis: timeMillis}
}

// Encode produces the (key, value) byte pair for the store.
func (d Delete) Encode() (key, value []byte) {
	key = make([]byte, 0, 17)
	key = append(key, byte(tag.Delete))
	key = tag.PutUint64(key, d.UserID)
	key = tag.PutUint64(key, d.StatusID)
	if d.TimeMillis != nil {
		value = tag.PutUint64(nil, *d.TimeMillis)
	}
	return key, value
}

// ValidateDeleteKV checks the key shape and that the value is either empty
// or exactly one u64.
func ValidateDeleteKV(key, value []byte) bool {
	if len(key) != 17 || key[0] != byte(tag.Delete) {
		return false
	}
	return len(value) == 0 || len(value) == 8
}

// DecodeDelete parses a validated Delete (key, value) pair.
func DecodeDelete(key, value []byte) Delete {
	d := Delete{
		UserID:   binary.BigEndian.Uint64(key[1:9]),
		StatusID: binary.BigEndian.Uint64(key[9:17]),
	}
	if len(value) == 8 {
		ts := binary.BigEndian.Uint64(value)
		d.TimeMillis = &ts
	}
	return d
}
