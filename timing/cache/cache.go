// Package cache models the L1 data cache seen by the vector load/store
// unit, using Akita cache components for tag and replacement state.
//
// Contiguous vector accesses are issued as four 32-bit beats. Beats that
// fall in the same cache line coalesce into a single tag lookup, so a
// 128-bit access to an aligned address costs one line access while a
// line-crossing access costs two.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// beatBytes is the width of one vector beat.
const beatBytes = 4

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes.
	Size int
	// Associativity (number of ways).
	Associativity int
	// BlockSize in bytes (cache line size).
	BlockSize int
	// HitLatency in cycles.
	HitLatency uint64
	// MissLatency in cycles, including the backing memory access.
	MissLatency uint64
}

// DefaultL1DConfig returns the default L1 data cache configuration,
// following the Cortex-M55 reference design: 32KB, 4-way, 32B lines.
func DefaultL1DConfig() Config {
	return Config{
		Size:          32 * 1024,
		Associativity: 4,
		BlockSize:     32,
		HitLatency:    1,
		MissLatency:   8,
	}
}

// Statistics holds cache performance counters.
type Statistics struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}

// BackingStore is the next level in the memory hierarchy.
type BackingStore interface {
	// Read fetches size bytes from the backing store.
	Read(addr uint64, size int) []byte
	// Write stores data to the backing store.
	Write(addr uint64, data []byte)
}

// AccessResult describes one scalar cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Latency is the number of cycles the access takes.
	Latency uint64
	// Data is the value read, for load accesses.
	Data uint64
}

// VectorResult describes one four-beat vector access.
type VectorResult struct {
	// Lines is the number of distinct cache lines touched.
	Lines int
	// Hits and Misses count line lookups, not beats.
	Hits   int
	Misses int
	// Latency is the total cycles for the access, summed over lines.
	Latency uint64
}

// Cache is a write-back, write-allocate L1 data cache.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl

	// Line data, indexed by setID*associativity + wayID.
	dataStore [][]byte

	stats   Statistics
	backing BackingStore
}

// New creates a cache with the given configuration.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns the performance counters.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears the performance counters.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) lineAddr(addr uint64) uint64 {
	return addr / uint64(c.config.BlockSize) * uint64(c.config.BlockSize)
}

// lineAccess looks up one cache line, filling it on a miss, and returns
// the block holding it together with hit status and latency. The dirty
// bit is the caller's responsibility.
func (c *Cache) lineAccess(blockAddr uint64) (*akitacache.Block, bool, uint64) {
	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return block, true, c.config.HitLatency
	}

	c.stats.Misses++
	return c.fill(blockAddr), false, c.config.MissLatency
}

// fill brings a line into the cache, evicting and writing back the
// victim as needed.
func (c *Cache) fill(blockAddr uint64) *akitacache.Block {
	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return nil
	}

	victimData := c.dataStore[c.blockIndex(victim)]
	if victim.IsValid {
		c.stats.Evictions++
		if victim.IsDirty && c.backing != nil {
			c.stats.Writebacks++
			c.backing.Write(victim.Tag, victimData)
		}
	}

	if c.backing != nil {
		copy(victimData, c.backing.Read(blockAddr, c.config.BlockSize))
	} else {
		for i := range victimData {
			victimData[i] = 0
		}
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)
	return victim
}

// Read performs a scalar cache read of size bytes.
func (c *Cache) Read(addr uint64, size int) AccessResult {
	c.stats.Reads++

	block, hit, latency := c.lineAccess(c.lineAddr(addr))
	if block == nil {
		return AccessResult{Latency: latency}
	}

	offset := addr % uint64(c.config.BlockSize)
	return AccessResult{
		Hit:     hit,
		Latency: latency,
		Data:    extractData(c.dataStore[c.blockIndex(block)], offset, size),
	}
}

// Write performs a scalar cache write of size bytes, allocating the line
// on a miss.
func (c *Cache) Write(addr uint64, size int, data uint64) AccessResult {
	c.stats.Writes++

	block, hit, latency := c.lineAccess(c.lineAddr(addr))
	if block == nil {
		return AccessResult{Latency: latency}
	}

	offset := addr % uint64(c.config.BlockSize)
	storeData(c.dataStore[c.blockIndex(block)], offset, size, data)
	block.IsDirty = true

	return AccessResult{Hit: hit, Latency: latency}
}

// VectorAccess models a contiguous four-beat vector load or store
// starting at addr. active[b] marks beat b as predicated on; fully
// predicated-off lines are not looked up and cost nothing. Beats landing
// in the same line share a single lookup.
func (c *Cache) VectorAccess(addr uint64, active [4]bool, write bool) VectorResult {
	if write {
		c.stats.Writes++
	} else {
		c.stats.Reads++
	}

	var result VectorResult
	var lastLine uint64
	haveLine := false

	for b := 0; b < 4; b++ {
		if !active[b] {
			continue
		}

		line := c.lineAddr(addr + uint64(b*beatBytes))
		if haveLine && line == lastLine {
			continue
		}
		lastLine, haveLine = line, true

		block, hit, latency := c.lineAccess(line)
		result.Lines++
		result.Latency += latency
		if hit {
			result.Hits++
		} else {
			result.Misses++
		}
		if write && block != nil {
			block.IsDirty = true
		}
	}

	return result
}

// Invalidate marks the line holding addr invalid without writeback.
func (c *Cache) Invalidate(addr uint64) {
	block := c.directory.Lookup(0, c.lineAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Flush writes back all dirty lines and invalidates the cache.
func (c *Cache) Flush() {
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty && c.backing != nil {
				c.stats.Writebacks++
				c.backing.Write(block.Tag, c.dataStore[c.blockIndex(block)])
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}
}

// Reset invalidates all lines without writeback and clears counters.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

func extractData(data []byte, offset uint64, size int) uint64 {
	if data == nil || int(offset)+size > len(data) {
		return 0
	}
	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(data[int(offset)+i]) << (8 * i)
	}
	return v
}

func storeData(data []byte, offset uint64, size int, v uint64) {
	if data == nil || int(offset)+size > len(data) {
		return
	}
	for i := 0; i < size; i++ {
		data[int(offset)+i] = byte(v >> (8 * i))
	}
}
