package cache

import (
	"github.com/sarchlab/m55sim/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore. Line fills and
// writebacks go through the memory's bulk copy path, which moves whole
// page-sized runs rather than individual bytes.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches size bytes from the backing memory.
func (m *MemoryBacking) Read(addr uint64, size int) []byte {
	data := make([]byte, size)
	m.memory.ReadBytes(addr, data)
	return data
}

// Write stores data to the backing memory.
func (m *MemoryBacking) Write(addr uint64, data []byte) {
	m.memory.WriteBytes(addr, data)
}
