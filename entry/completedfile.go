package entry

import (
	"encoding/binary"
	"strings"

	"github.com/archivelab/statuslol/tag"
)

// CompletedFile records that archive_path|file_path was fully processed
// and produced StatusCount statuses (the idempotency anchor for
// resumable imports).
//
// Key: tag.CompletedFile ‖ "archive|file":utf8
// Value: status_count:u64be
type CompletedFile struct {
	ArchivePath string
	FilePath    string
	StatusCount uint64
}

// NewCompletedFile builds a CompletedFile entry.
func NewCompletedFile(archivePath, filePath string, statusCount uint64) CompletedFile {
	return CompletedFile{ArchivePath: archivePath, FilePath: filePath, StatusCount: statusCount}
}

// Encode produces the (key, value) byte pair for the store.
func (c CompletedFile) Encode() (key, value []byte) {
	key = make([]byte, 0, 1+len(c.ArchivePath)+1+len(c.FilePath))
	key = append(key, byte(tag.CompletedFile))
	key = append(key, c.ArchivePath...)
	key = append(key, '|')
	key = append(key, c.FilePath...)
	value = tag.PutUint64(nil, c.StatusCount)
	return key, value
}

// ValidateCompletedFileKV checks the tag byte, a single '|' separator in
// the tail, and an 8-byte value.
func ValidateCompletedFileKV(key, value []byte) bool {
	if len(key) < 1 || key[0] != byte(tag.CompletedFile) {
		return false
	}
	if !validUTF8Tail(key[1:]) {
		return false
	}
	if strings.Count(string(key[1:]), "|") != 1 {
		return false
	}
	return len(value) == 8
}

// DecodeCompletedFile parses a validated CompletedFile (key, value) pair.
// Callers must have checked ValidateCompletedFileKV first.
func DecodeCompletedFile(key, value []byte) (CompletedFile, error) {
	parts := strings.SplitN(string(key[1:]), "|", 2)
	if len(parts) != 2 {
		return CompletedFile{}, UnexpectedKeyError{Key: append([]byte(nil), key...)}
	}
	return CompletedFile{
		ArchivePath: parts[0],
		FilePath:    parts[1],
		StatusCount: binary.BigEndian.Uint64(value),
	}, nil
}

// UnexpectedKeyError reports a key that does not match the grammar its tag
// byte promises (a CompletedFile key whose tail does not split into
// exactly archive|file, or any other tag-specific decode failure callers
// choose to raise through this type).
type UnexpectedKeyError struct {
	Key []byte
}

func (e UnexpectedKeyError) Error() string {
	return "unexpected key: " + string(e.Key)
}
