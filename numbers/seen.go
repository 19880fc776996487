package numbers

import (
	"sync"
	"sync/atomic"
)

// Number is a value in [0, MaxNumber], written on the wire as 9 zero-padded digits.
type Number uint32

const MaxNumber Number = 999_999_999

const seenShards = 64

type seenShard struct {
	sync.Mutex
	m map[Number]struct{}
}

// SeenSet records every distinct number accepted since startup. It only grows.
type SeenSet struct {
	shards [seenShards]seenShard
	size   atomic.Int64
}

func NewSeenSet() *SeenSet {
	s := &SeenSet{}
	for i := range s.shards {
		s.shards[i].m = make(map[Number]struct{})
	}
	return s
}

func (s *SeenSet) shard(n Number) *seenShard {
	// Fibonacci hashing spreads sequential inputs across shards
	return &s.shards[(uint32(n)*2654435761)>>26]
}

// Add inserts n and reports whether it was absent before the call.
func (s *SeenSet) Add(n Number) bool {
	sh := s.shard(n)
	sh.Lock()
	_, ok := sh.m[n]
	if !ok {
		sh.m[n] = struct{}{}
	}
	sh.Unlock()

	if ok {
		return false
	}
	s.size.Add(1)
	return true
}

func (s *SeenSet) Contains(n Number) bool {
	sh := s.shard(n)
	sh.Lock()
	defer sh.Unlock()
	_, ok := sh.m[n]
	return ok
}

func (s *SeenSet) Len() int {
	return int(s.size.Load())
}
