// Package ingest drives bulk loading: reading the binary import-file
// format into raw (key, value) records, and projecting inbound JSON
// profile objects into typed profile.Snapshot values.
package ingest

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Record is one raw (key, value) pair read from an import file.
type Record struct {
	Key   []byte
	Value []byte
}

// Driver is the abstract sink ingest submits records to: the contract of
// spec.md §4.7, which requires every logical record be encoded via its
// matching entry codec and submitted for merge before the import file
// that produced it is recorded as a CompletedFile. *store.Store satisfies
// Driver via its PutRaw method; callers outside this package never need
// to import store directly to drive a bulk load.
type Driver interface {
	PutRaw(key, value []byte) error
}

// ImportFileReader reads the `key_len:u32be ‖ key ‖ val_len:u32be ‖ val`
// record stream an archive import produces.
type ImportFileReader struct {
	r     io.Reader
	count int
}

// NewImportFileReader wraps r.
func NewImportFileReader(r io.Reader) *ImportFileReader {
	return &ImportFileReader{r: r}
}

// Count returns the number of records successfully read so far.
func (f *ImportFileReader) Count() int {
	return f.count
}

// Next reads the next record, returning io.EOF only when the stream ends
// exactly on a record boundary. A short read mid-record is fatal and
// returned wrapped, distinguishable from a clean io.EOF.
func (f *ImportFileReader) Next() (Record, error) {
	var lengthBuf [4]byte
	if _, err := io.ReadFull(f.r, lengthBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, errors.Wrap(err, "import file: read key length")
	}
	keyLen := binary.BigEndian.Uint32(lengthBuf[:])
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(f.r, key); err != nil {
		return Record{}, errors.Wrap(err, "import file: short read on key")
	}

	if _, err := io.ReadFull(f.r, lengthBuf[:]); err != nil {
		return Record{}, errors.Wrap(err, "import file: read value length")
	}
	valLen := binary.BigEndian.Uint32(lengthBuf[:])
	value := make([]byte, valLen)
	if _, err := io.ReadFull(f.r, value); err != nil {
		return Record{}, errors.Wrap(err, "import file: short read on value")
	}

	f.count++
	return Record{Key: key, Value: value}, nil
}

// ReadAll drains the reader, invoking fn for each record in order. It
// returns the first error fn returns, or any read error. EOF terminates
// the loop cleanly.
func ReadAll(r io.Reader, fn func(Record) error) (int, error) {
	reader := NewImportFileReader(r)
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return reader.Count(), nil
		}
		if err != nil {
			return reader.Count(), err
		}
		if err := fn(rec); err != nil {
			return reader.Count(), err
		}
	}
}

// Submit drains r over the binary import-file format, submitting each raw
// record to d in order via PutRaw. It returns the number of records
// submitted and the first error from either the read side or d.
func Submit(d Driver, r io.Reader) (int, error) {
	return ReadAll(r, func(rec Record) error {
		return d.PutRaw(rec.Key, rec.Value)
	})
}

// WriteRecord encodes a single record in the binary import-file format,
// the inverse of ImportFileReader.Next. Used by importers that stage
// records before a bulk load and by tests exercising the reader.
func WriteRecord(w io.Writer, key, value []byte) error {
	var lengthBuf [4]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(key)))
	if _, err := w.Write(lengthBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(value)))
	if _, err := w.Write(lengthBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(value)
	return err
}
