package kv

import (
	"github.com/cockroachdb/pebble"

	"github.com/lithodb/lithodb/common"
	"github.com/lithodb/lithodb/errors"
)

var nosyncWriteOptions = &pebble.WriteOptions{Sync: false}

// PebbleKV is a pebble backed KV store. Writes are unsynced; durability
// across crashes is the replication layer's concern, not this store's.
type PebbleKV struct {
	db *pebble.DB
}

func NewPebbleKV(dataDir string) (*PebbleKV, error) {
	db, err := pebble.Open(dataDir, &pebble.Options{})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &PebbleKV{db: db}, nil
}

func (p *PebbleKV) Put(key []byte, value []byte) error {
	return errors.WithStack(p.db.Set(key, value, nosyncWriteOptions))
}

func (p *PebbleKV) Get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	res := common.CopyByteSlice(value)
	if err := closer.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}

func (p *PebbleKV) Delete(key []byte) error {
	return errors.WithStack(p.db.Delete(key, nosyncWriteOptions))
}

func (p *PebbleKV) Scan(startPrefix []byte, endPrefix []byte, limit int) ([]KVPair, error) {
	iter := p.db.NewIter(&pebble.IterOptions{LowerBound: startPrefix, UpperBound: endPrefix})
	var pairs []KVPair
	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		// The iterator owns the returned slices so they must be copied out.
		pairs = append(pairs, KVPair{
			Key:   common.CopyByteSlice(iter.Key()),
			Value: common.CopyByteSlice(iter.Value()),
		})
		count++
		if limit > 0 && count == limit {
			break
		}
	}
	if err := iter.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return pairs, nil
}

func (p *PebbleKV) Close() error {
	return errors.WithStack(p.db.Close())
}
