// Package cache provides a fixed-capacity LRU cache over a chained hash index.
//
// # LRU
//
// [LRU] keeps entries in a recency list (most recently inserted first) and
// indexes them by key in a [hashtable.Table] sized to the capacity. Insert
// and Find are O(1) expected time. When the cache is full, an insert first
// evicts the tail of the list and removes that same key from the index.
//
//	c, err := cache.New[*Session](1024)
//	if err != nil {
//	    return err
//	}
//	c.Insert("s:1", sess)
//	if s, ok := c.Find("s:1"); ok {
//	    // use s
//	}
//
// Find does not touch recency by default, so entries leave in insertion
// order. Set [LRUOpts.PromoteOnFind] for the classic read-promoting policy.
//
// Insert refuses empty keys, nil values and keys that are already resident.
// A refused insert changes nothing, not even when the cache is full. [LRU.Add]
// reports which of these happened.
//
// # Value lifetime
//
// The cache never owns values. [LRUOpts.OnEvict] sees every evicted entry and
// [LRU.Delete] hands every remaining value to a destroy callback, so each
// inserted value reaches exactly one of the two.
//
// # Concurrency
//
// [LRU] is single-owner. [Synchronized] wraps it in a mutex, [Sharded]
// spreads keys over several Synchronized shards, and [Loader] adds
// read-through loading with per-key single flight on top of any [Cache].
package cache
