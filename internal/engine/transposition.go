package engine

// ScoreEntry is a cached search value for one position at one depth.
type ScoreEntry struct {
	Key   uint64 // Full 64-bit Zobrist hash for verification
	Score int32
	Depth int8
	Used  bool
}

// ScoreCache memoizes search values by Zobrist hash and depth. The search is
// a pure function of board, side and depth, so a hit can stand in for the
// whole subtree.
type ScoreCache struct {
	entries []ScoreEntry
	size    uint64
	mask    uint64

	// Statistics
	hits   uint64
	probes uint64
}

// NewScoreCache creates a score cache with the given size in MB.
func NewScoreCache(sizeMB int) *ScoreCache {
	entrySize := uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries == 0 {
		numEntries = 1
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &ScoreCache{
		entries: make([]ScoreEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up the value stored for hash at exactly depth.
func (c *ScoreCache) Probe(hash uint64, depth int) (int, bool) {
	c.probes++

	entry := c.entries[hash&c.mask]
	if entry.Used && entry.Key == hash && int(entry.Depth) == depth {
		c.hits++
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves the value of hash at depth. Deeper entries are kept over
// shallower ones since they cost more to recompute.
func (c *ScoreCache) Store(hash uint64, depth int, score int) {
	entry := &c.entries[hash&c.mask]
	if entry.Used && entry.Key != hash && int(entry.Depth) > depth {
		return
	}
	*entry = ScoreEntry{Key: hash, Score: int32(score), Depth: int8(depth), Used: true}
}

// Clear clears the cache.
func (c *ScoreCache) Clear() {
	for i := range c.entries {
		c.entries[i] = ScoreEntry{}
	}
	c.hits = 0
	c.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (c *ScoreCache) HashFull() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > c.size {
		sampleSize = int(c.size)
	}

	for i := 0; i < sampleSize; i++ {
		if c.entries[i].Used {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (c *ScoreCache) HitRate() float64 {
	if c.probes == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.probes) * 100
}

// Size returns the number of entries in the table.
func (c *ScoreCache) Size() uint64 {
	return c.size
}
