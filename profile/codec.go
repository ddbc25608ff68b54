package profile

import "encoding/json"

// Codec encodes and decodes a Snapshot to the opaque bytes the profile
// store persists. The store treats the value as opaque; only the observed
// timestamp in the key participates in ordering.
//
// The system this was distilled from used an Avro codec parameterized by
// an externally-supplied schema. No Avro library appears anywhere in the
// retrieved example corpus, so JSONCodec below stands in as the default
// (see the design ledger for why a third-party serialization library was
// not substituted instead).
type Codec interface {
	Encode(Snapshot) ([]byte, error)
	Decode([]byte) (Snapshot, error)
}

// JSONCodec is the default Codec, round-tripping Snapshot through
// encoding/json. Callers needing wire compatibility with an external Avro
// schema can supply their own Codec to Store.
type JSONCodec struct{}

func (JSONCodec) Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

func (JSONCodec) Decode(b []byte) (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal(b, &s)
	return s, err
}
