// Package hrw picks a shard for a key with rendezvous (highest random weight)
// hashing.
package hrw

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Pick returns the index in shards with the highest score for key, or -1 if
// shards is empty. seed separates otherwise identical shard sets.
func Pick(key string, shards []string, seed string) int {
	best, bestScore := -1, uint64(0)
	keyB := []byte(key)
	for i, id := range shards {
		s := score(keyB, id, seed)
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

func score(key []byte, shardID string, seed string) uint64 {
	// 8-byte digest is read as the score
	h, _ := blake2b.New(8, nil)
	if seed != "" {
		h.Write([]byte(seed))
		h.Write([]byte{0})
	}
	h.Write(key)
	h.Write([]byte{0})
	h.Write([]byte(shardID))
	return binary.BigEndian.Uint64(h.Sum(nil))
}
