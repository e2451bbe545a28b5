package shard

// Func maps a key to a shard/bucket index.
type Func func(key string) int

const djb2Seed uint64 = 5381

// DJB2 hashes key with the "times 33 plus byte" variant of DJB2.
// Arithmetic wraps in uint64, so the result never goes negative.
func DJB2(key string) uint64 {
	h := djb2Seed
	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}
	return h
}

// ForKey returns the bucket for key among n buckets. n must be > 0.
func ForKey(key string, n int) int {
	return int(DJB2(key) % uint64(n))
}

type Sharder interface {
	GetShardForKey(key string) int
}

type fnSharder struct {
	fn Func
}

func NewSharder(fn Func) Sharder {
	return &fnSharder{fn: fn}
}

func (s *fnSharder) GetShardForKey(key string) int { return s.fn(key) }

// Distributed spreads keys over count buckets using ForKey.
func Distributed(count int) Sharder {
	return &fnSharder{
		fn: func(key string) int {
			return ForKey(key, count)
		},
	}
}

// Const routes every key to the same bucket.
func Const(shard int) Sharder {
	return &fnSharder{
		fn: func(string) int {
			return shard
		},
	}
}
