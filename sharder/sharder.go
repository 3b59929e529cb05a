package sharder

import (
	"github.com/twmb/murmur3"
)

type ShardType int

const (
	ShardTypeHash = iota + 1
	ShardTypeRange
)

// Sharder routes keys to shards. The shard ID set is fixed at construction;
// rebalancing on membership change is a cluster concern that lives elsewhere.
type Sharder struct {
	shardIDs []uint64
}

func NewSharder(numShards int) *Sharder {
	shardIDs := make([]uint64, numShards)
	for i := range shardIDs {
		shardIDs[i] = uint64(i)
	}
	return &Sharder{shardIDs: shardIDs}
}

func (s *Sharder) ShardIDs() []uint64 {
	return s.shardIDs
}

func (s *Sharder) CalculateShard(shardType ShardType, key []byte) uint64 {
	if shardType == ShardTypeHash {
		return s.computeHashShard(key)
	}
	panic("unsupported shard type")
}

func (s *Sharder) computeHashShard(key []byte) uint64 {
	index := Hash(key) % uint32(len(s.shardIDs))
	return s.shardIDs[index]
}

// Hash must be stable across nodes and releases, as it determines where rows
// live.
func Hash(key []byte) uint32 {
	h1, _ := murmur3.Sum128(key)
	return uint32(h1)
}
