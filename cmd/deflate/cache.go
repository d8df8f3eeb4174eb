package main

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// blockCache maps a file's content hash to its already-compressed bytes,
// the same cache construction BeHierarchic's internal/spinner uses but
// keyed by content instead of (path, offset): identical files seen
// during one walk are compressed exactly once.
type blockCache struct {
	t *tinylfu.T[uint64, []byte]
}

var cacheSeed = maphash.MakeSeed()

func newBlockCache(capacity int) *blockCache {
	return &blockCache{
		t: tinylfu.New[uint64, []byte](capacity, capacity*10, hashKey),
	}
}

func hashKey(k uint64) uint64 { return maphash.Comparable(cacheSeed, k) }

func digest(b []byte) uint64 { return xxhash.Sum64(b) }

func (c *blockCache) get(key uint64) ([]byte, bool) {
	return c.t.Get(key)
}

func (c *blockCache) put(key uint64, compressed []byte) {
	c.t.Add(key, compressed)
}
