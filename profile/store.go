package profile

import (
	"encoding/binary"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/archivelab/statuslol/tag"
)

// Store is the secondary profile-history database: a distinct directory
// from the primary store, with no merge operator registered.
type Store struct {
	db    *badger.DB
	codec Codec
}

// Open opens (creating if missing) the profile store at path, using codec
// to encode and decode snapshot values. A nil codec defaults to JSONCodec.
func Open(path string, codec Codec) (*Store, error) {
	if codec == nil {
		codec = JSONCodec{}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrap(err, "create profile store directory")
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open profile store")
	}
	return &Store{db: db, codec: codec}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func profileKey(userID, observedMillis uint64) []byte {
	key := make([]byte, 0, 16)
	key = tag.PutUint64(key, userID)
	return tag.PutUint64(key, observedMillis)
}

// Put records a single observation of snap for userID at observedMillis.
func (s *Store) Put(userID, observedMillis uint64, snap Snapshot) error {
	value, err := s.codec.Encode(snap)
	if err != nil {
		return errors.Wrap(err, "encode profile snapshot")
	}
	key := profileKey(userID, observedMillis)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Observation pairs a decoded Snapshot with the instant it was observed.
type Observation struct {
	ObservedMillis uint64
	Snapshot       Snapshot
}

// LookupUser returns every snapshot recorded for userID in time order
// (the key's big-endian timestamp suffix coincides with chronological
// order).
func (s *Store) LookupUser(userID uint64) ([]Observation, error) {
	prefix := tag.PutUint64(nil, userID)
	var observations []Observation
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := append([]byte(nil), item.Key()...)
			if len(key) != 16 {
				return errors.Errorf("profile: malformed key length %d", len(key))
			}
			var value []byte
			if err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			}); err != nil {
				return err
			}
			snap, err := s.codec.Decode(value)
			if err != nil {
				return errors.Wrap(err, "decode profile snapshot")
			}
			observations = append(observations, Observation{
				ObservedMillis: binary.BigEndian.Uint64(key[8:16]),
				Snapshot:       snap,
			})
		}
		return nil
	})
	return observations, err
}
