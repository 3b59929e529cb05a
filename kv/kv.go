package kv

// KVPair is one key and its value as returned from a scan.
type KVPair struct {
	Key   []byte
	Value []byte
}

// KV is the low level storage interface rows are scanned out of. Scan returns
// pairs with keys in the range [startPrefix, endPrefix), in key order, up to
// limit pairs (limit <= 0 means no limit).
type KV interface {
	Put(key []byte, value []byte) error

	Get(key []byte) ([]byte, error)

	Delete(key []byte) error

	Scan(startPrefix []byte, endPrefix []byte, limit int) ([]KVPair, error)

	Close() error
}
