// Package entry implements the typed encode/validate/decode views over the
// raw (key, value) byte pairs the storage façade reads and writes. Every
// entry kind shares the tag-byte discipline of package tag: validate never
// trusts anything beyond what the bytes themselves prove, and decode is
// undefined behavior if validate did not first return true.
package entry

import (
	"encoding/binary"
	"sort"
	"unicode/utf8"

	"github.com/archivelab/statuslol/tag"
)

// SortedUint64s returns a sorted, deduplicated copy of ids. Entry
// constructors call this so on-disk sets are always canonical.
func SortedUint64s(ids []uint64) []uint64 {
	out := make([]uint64, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return dedupSorted(out)
}

func dedupSorted(sorted []uint64) []uint64 {
	if len(sorted) == 0 {
		return sorted
	}
	w := 1
	for r := 1; r < len(sorted); r++ {
		if sorted[r] != sorted[w-1] {
			sorted[w] = sorted[r]
			w++
		}
	}
	return sorted[:w]
}

// EncodeUint64Set writes ids (already sorted/deduplicated) as a run of
// big-endian u64s.
func EncodeUint64Set(ids []uint64) []byte {
	out := make([]byte, 0, len(ids)*8)
	for _, id := range ids {
		out = tag.PutUint64(out, id)
	}
	return out
}

// ValidUint64Run reports whether b's length is a multiple of 8, the
// structural grammar every u64-set value must respect.
func ValidUint64Run(b []byte) bool {
	return len(b)%8 == 0
}

// DecodeUint64Set parses a validated run of big-endian u64s. Callers must
// have checked ValidUint64Run first.
func DecodeUint64Set(b []byte) []uint64 {
	out := make([]uint64, 0, len(b)/8)
	for i := 0; i+8 <= len(b); i += 8 {
		out = append(out, binary.BigEndian.Uint64(b[i:i+8]))
	}
	return out
}

// validUTF8Tail reports whether b decodes as UTF-8 in its entirety.
func validUTF8Tail(b []byte) bool {
	return utf8.Valid(b)
}
