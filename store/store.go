// Package store is the Badger-backed storage façade: typed point lookups,
// prefix scans, and a PutEntry submission path that folds writes to the
// same key through the merge package rather than overwriting them.
//
// Badger's own GetMergeOperator only combines operands pairwise against a
// single fixed key (https://github.com/dgraph-io/badger/issues/373), which
// cannot express a combiner dispatched on a key's leading tag byte across
// an unbounded key space. Instead PutEntry reads-modifies-writes inside a
// single badger.Txn, retrying on conflict, and calls merge.Dispatch itself.
package store

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/archivelab/statuslol/entry"
	"github.com/archivelab/statuslol/merge"
	"github.com/archivelab/statuslol/tag"
)

// Store is the opened handle shared between the writer and all readers.
type Store struct {
	db *badger.DB
}

// Open opens (creating if missing) the Badger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Entry is the shape every typed entry codec implements.
type Entry interface {
	Encode() (key, value []byte)
}

// PutEntry submits e as a merge against whatever is already stored at its
// key, using the combiner merge.Dispatch selects for the key's tag byte.
// Entries whose tag carries no merge semantics fall back to a plain write.
func (s *Store) PutEntry(e Entry) error {
	key, value := e.Encode()
	return s.PutRaw(key, value)
}

// PutRaw submits a raw (key, value) pair as a merge, the same way PutEntry
// does for a typed entry. Bulk import reads raw records directly off the
// wire and has no typed Entry to decode them into before writing.
//
// A FullStatus merge collision does not fail the write: the key is left
// holding a marker a subsequent LookupTweetMetadata recognizes and reports,
// and PutRaw itself returns the same *merge.CollisionError to its caller.
func (s *Store) PutRaw(key, value []byte) error {
	if len(key) == 0 {
		return errors.New("store: empty key")
	}
	fn := merge.Dispatch(key[0])
	if fn == nil {
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set(key, value)
		})
	}

	for {
		var collision *merge.CollisionError
		err := s.db.Update(func(txn *badger.Txn) error {
			collision = nil
			var existing []byte
			item, err := txn.Get(key)
			switch {
			case err == nil:
				existing, err = item.ValueCopy(nil)
				if err != nil {
					return err
				}
			case errors.Is(err, badger.ErrKeyNotFound):
				existing = nil
			default:
				return err
			}

			merged, mergeErr := fn(existing, [][]byte{value})
			if mergeErr != nil {
				if errors.As(mergeErr, &collision) {
					log.Warn().
						Str("kind", collision.Kind.String()).
						Uint64("previous", collision.Previous).
						Uint64("update", collision.Update).
						Msg("merge collision, marking key for next reader")
					return txn.Set(key, merge.EncodeCollisionMarker(collision))
				}
				return mergeErr
			}
			if merged == nil {
				return txn.Delete(key)
			}
			return txn.Set(key, merged)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return err
		}
		if collision != nil {
			return collision
		}
		return nil
	}
}

// LookupScreenName returns the user ids ever observed using name, case
// insensitively. An absent key yields an empty (not nil) slice.
func (s *Store) LookupScreenName(name string) ([]uint64, error) {
	key, _ := entry.NewScreenName(name, nil).Encode()
	var ids []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			ids = entry.DecodeUint64Set(val)
			return nil
		})
	})
	if ids == nil {
		ids = []uint64{}
	}
	return ids, err
}

// UserAlias pairs a screen name observed for a user with the status ids
// recorded under that (user, name) pair.
type UserAlias struct {
	ScreenName string
	StatusIDs  []uint64
}

// LookupUser returns every (screen_name, status_ids) pair on record for
// userID, in key order (ascending screen-name bytes), stopping at the
// first key belonging to a different tag or user id.
func (s *Store) LookupUser(userID uint64) ([]UserAlias, error) {
	prefix := tag.UserPrefix(userID)
	var aliases []UserAlias
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key, err := copyKey(item)
			if err != nil {
				return err
			}
			var value []byte
			if err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			}); err != nil {
				return err
			}
			if !entry.ValidateUserKV(key, value) {
				return UnexpectedKeyError{Key: key}
			}
			u := entry.DecodeUser(key, value)
			aliases = append(aliases, UserAlias{ScreenName: u.ScreenName, StatusIDs: u.StatusIDs})
		}
		return nil
	})
	return aliases, err
}

// LookupUserScreenName returns the screen name with the largest status-id
// set recorded for userID, ties broken by first appearance in key order.
func (s *Store) LookupUserScreenName(userID uint64) (string, bool, error) {
	aliases, err := s.LookupUser(userID)
	if err != nil {
		return "", false, err
	}
	if len(aliases) == 0 {
		return "", false, nil
	}
	best := aliases[0]
	for _, a := range aliases[1:] {
		if len(a.StatusIDs) > len(best.StatusIDs) {
			best = a
		}
	}
	return best.ScreenName, true, nil
}

// TweetMetadataKind discriminates the sum TweetMetadata returns.
type TweetMetadataKind int

const (
	MetadataShort TweetMetadataKind = iota
	MetadataFull
	MetadataRetweet
)

// TweetMetadata is the sum LookupTweetMetadata returns: Short carries only
// the author; Full and Retweet carry a timestamp and the FullStatus edges.
type TweetMetadata struct {
	Kind        TweetMetadataKind
	StatusID    uint64
	UserID      uint64
	TimeMillis  uint64 // zero for Short
	RepliedToID *uint64
	QuotedID    *uint64
	MentionIDs  []uint64
	RetweetedID *uint64
}

// LookupTweetMetadata tries FullStatus first, falling back to ShortStatus,
// per the read layer's preference between the two independent namespaces.
func (s *Store) LookupTweetMetadata(statusID uint64) (*TweetMetadata, error) {
	var result *TweetMetadata
	err := s.db.View(func(txn *badger.Txn) error {
		fullKey := make([]byte, 0, 9)
		fullKey = append(fullKey, byte(tag.FullStatus))
		fullKey = tag.PutUint64(fullKey, statusID)

		item, err := txn.Get(fullKey)
		switch {
		case err == nil:
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if collision, ok := merge.DecodeCollisionMarker(value); ok {
				return collision
			}
			if !entry.ValidateFullStatusKV(fullKey, value) {
				return UnexpectedKeyError{Key: fullKey}
			}
			f := entry.DecodeFullStatus(fullKey, value)
			kind := MetadataFull
			if f.RetweetedID != nil {
				kind = MetadataRetweet
			}
			result = &TweetMetadata{
				Kind:        kind,
				StatusID:    f.StatusID,
				UserID:      f.UserID,
				TimeMillis:  f.TimeMillis,
				RepliedToID: f.RepliedToID,
				QuotedID:    f.QuotedID,
				MentionIDs:  f.MentionIDs,
				RetweetedID: f.RetweetedID,
			}
			return nil
		case errors.Is(err, badger.ErrKeyNotFound):
			// fall through to ShortStatus below.
		default:
			return err
		}

		shortKey := make([]byte, 0, 9)
		shortKey = append(shortKey, byte(tag.ShortStatus))
		shortKey = tag.PutUint64(shortKey, statusID)

		item, err = txn.Get(shortKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if !entry.ValidateShortStatusKV(shortKey, value) {
			return UnexpectedKeyError{Key: shortKey}
		}
		sh := entry.DecodeShortStatus(shortKey, value)
		result = &TweetMetadata{Kind: MetadataShort, StatusID: sh.StatusID, UserID: sh.UserID}
		return nil
	})
	return result, err
}

// Timestamp returns the creation instant in millis: the stored timestamp
// for Full and Retweet metadata, and for Short metadata the instant derived
// from a snowflake StatusID, or ok=false when StatusID is below
// tag.FirstSnowflake.
func (m TweetMetadata) Timestamp() (millis uint64, ok bool) {
	if m.Kind != MetadataShort {
		return m.TimeMillis, true
	}
	if !tag.IsSnowflake(m.StatusID) {
		return 0, false
	}
	return tag.SnowflakeMillis(m.StatusID), true
}

// Delete is a single (status_id, optional timestamp) deletion record.
type Delete struct {
	StatusID   uint64
	TimeMillis *uint64
}

// LookupDeletes returns every deletion notice on record for userID.
func (s *Store) LookupDeletes(userID uint64) ([]Delete, error) {
	prefix := tag.DeletePrefix(userID)
	var deletes []Delete
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key, err := copyKey(item)
			if err != nil {
				return err
			}
			var value []byte
			if err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			}); err != nil {
				return err
			}
			if !entry.ValidateDeleteKV(key, value) {
				return UnexpectedKeyError{Key: key}
			}
			d := entry.DecodeDelete(key, value)
			deletes = append(deletes, Delete{StatusID: d.StatusID, TimeMillis: d.TimeMillis})
		}
		return nil
	})
	return deletes, err
}

// GetCompletedFiles enumerates every (archive, file, status_count) marker.
func (s *Store) GetCompletedFiles() ([]entry.CompletedFile, error) {
	prefix := []byte{byte(tag.CompletedFile)}
	var files []entry.CompletedFile
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key, err := copyKey(item)
			if err != nil {
				return err
			}
			var value []byte
			if err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			}); err != nil {
				return err
			}
			if !entry.ValidateCompletedFileKV(key, value) {
				return UnexpectedKeyError{Key: key}
			}
			cf, err := entry.DecodeCompletedFile(key, value)
			if err != nil {
				return err
			}
			files = append(files, cf)
		}
		return nil
	})
	return files, err
}

// Stats summarizes a single full scan of the store.
type Stats struct {
	PairCount          uint64
	UserIDCount        uint64
	AppearanceCount    uint64
	ScreenNameCount    uint64
	FullStatusCount    uint64
	ShortStatusCount   uint64
	DeleteCount        uint64
	CompletedFileCount uint64
}

// GetStats performs one full ordered scan, counting by tag.
func (s *Store) GetStats() (Stats, error) {
	var stats Stats
	var lastUserID uint64
	haveLastUserID := false

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key, err := copyKey(item)
			if err != nil {
				return err
			}
			if len(key) == 0 {
				return UnexpectedKeyError{Key: key}
			}
			switch key[0] {
			case byte(tag.User):
				stats.PairCount++
				if err := item.Value(func(v []byte) error {
					stats.AppearanceCount += uint64(len(v) / 8)
					return nil
				}); err != nil {
					return err
				}
				if len(key) >= 9 {
					userID := binary.BigEndian.Uint64(key[1:9])
					if !haveLastUserID || userID != lastUserID {
						stats.UserIDCount++
						lastUserID = userID
						haveLastUserID = true
					}
				}
			case byte(tag.ScreenName):
				stats.ScreenNameCount++
			case byte(tag.FullStatus):
				stats.FullStatusCount++
			case byte(tag.ShortStatus):
				stats.ShortStatusCount++
			case byte(tag.Delete):
				stats.DeleteCount++
			case byte(tag.CompletedFile):
				stats.CompletedFileCount++
			default:
				return UnexpectedKeyError{Key: key}
			}
		}
		return nil
	})
	return stats, err
}

// DumpIDs enumerates the id field of every key carrying t: for User and
// Delete that is the user id; for FullStatus and ShortStatus the status
// id; for ScreenName and CompletedFile the ids are empty (text-keyed).
func (s *Store) DumpIDs(t tag.Tag) ([]uint64, error) {
	if t == tag.ScreenName || t == tag.CompletedFile {
		return nil, nil
	}
	prefix := []byte{byte(t)}
	var ids []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key, err := copyKey(it.Item())
			if err != nil {
				return err
			}
			if len(key) < 9 {
				continue
			}
			ids = append(ids, binary.BigEndian.Uint64(key[1:9]))
		}
		return nil
	})
	return ids, err
}

func copyKey(item *badger.Item) ([]byte, error) {
	return append([]byte(nil), item.Key()...), nil
}

// UnexpectedKeyError reports a key whose leading tag byte is unknown, or
// whose layout does not match what its tag promises, encountered during a
// scan.
type UnexpectedKeyError struct {
	Key []byte
}

func (e UnexpectedKeyError) Error() string {
	return "unexpected key: " + formatKey(e.Key)
}

func formatKey(key []byte) string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, c := range key {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(hexByte(c))
	}
	b.WriteByte(']')
	return b.String()
}

const hexDigits = "0123456789abcdef"

func hexByte(c byte) string {
	return string([]byte{hexDigits[c>>4], hexDigits[c&0x0f]})
}
