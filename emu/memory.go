package emu

import (
	"encoding/binary"
	"fmt"
)

const (
	pageShift = 12
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
)

// MemFault reports a guest memory access to an unmapped address. It
// propagates uncaught through the vector engine, aborting the current
// instruction before any predicate/beat state advance.
type MemFault struct {
	// Addr is the faulting guest address.
	Addr uint64
	// Size is the access size in bytes.
	Size int
	// Write is true for a store fault.
	Write bool
}

func (f *MemFault) Error() string {
	kind := "load"
	if f.Write {
		kind = "store"
	}
	return fmt.Sprintf("memory fault: %s of %d bytes at 0x%x", kind, f.Size, f.Addr)
}

// Memory is a sparse, page-granular guest memory. The convenience
// accessors (Read*/Write*) allocate pages on demand for program and test
// setup; the Load/Store primitives used by the vector engine fault on
// unmapped pages instead.
type Memory struct {
	pages map[uint64][]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{pages: make(map[uint64][]byte)}
}

func (m *Memory) page(addr uint64, alloc bool) []byte {
	base := addr >> pageShift
	p, ok := m.pages[base]
	if !ok && alloc {
		p = make([]byte, pageSize)
		m.pages[base] = p
	}
	return p
}

// Map allocates backing pages covering [addr, addr+size).
func (m *Memory) Map(addr, size uint64) {
	for a := addr &^ uint64(pageMask); a < addr+size; a += pageSize {
		m.page(a, true)
	}
}

// IsMapped reports whether every byte of [addr, addr+size) is backed.
func (m *Memory) IsMapped(addr uint64, size int) bool {
	for a := addr &^ uint64(pageMask); a < addr+uint64(size); a += pageSize {
		if m.page(a, false) == nil {
			return false
		}
	}
	return true
}

// Load reads a size-byte little-endian value, faulting if any byte is
// unmapped. Nothing is read on a fault.
func (m *Memory) Load(addr uint64, size int) (uint64, error) {
	if !m.IsMapped(addr, size) {
		return 0, &MemFault{Addr: addr, Size: size}
	}
	var v uint64
	for i := size - 1; i >= 0; i-- {
		a := addr + uint64(i)
		v = v<<8 | uint64(m.page(a, false)[a&pageMask])
	}
	return v, nil
}

// Store writes a size-byte little-endian value, faulting if any byte is
// unmapped. Nothing is written on a fault.
func (m *Memory) Store(addr uint64, size int, v uint64) error {
	if !m.IsMapped(addr, size) {
		return &MemFault{Addr: addr, Size: size, Write: true}
	}
	for i := 0; i < size; i++ {
		a := addr + uint64(i)
		m.page(a, false)[a&pageMask] = byte(v >> (8 * i))
	}
	return nil
}

// Read8 reads a byte, allocating the page if needed.
func (m *Memory) Read8(addr uint64) uint8 {
	return m.page(addr, true)[addr&pageMask]
}

// Write8 writes a byte, allocating the page if needed.
func (m *Memory) Write8(addr uint64, v uint8) {
	m.page(addr, true)[addr&pageMask] = v
}

// Read16 reads a little-endian 16-bit value.
func (m *Memory) Read16(addr uint64) uint16 {
	var b [2]byte
	m.ReadBytes(addr, b[:])
	return binary.LittleEndian.Uint16(b[:])
}

// Write16 writes a little-endian 16-bit value.
func (m *Memory) Write16(addr uint64, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	m.WriteBytes(addr, b[:])
}

// Read32 reads a little-endian 32-bit value.
func (m *Memory) Read32(addr uint64) uint32 {
	var b [4]byte
	m.ReadBytes(addr, b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Write32 writes a little-endian 32-bit value.
func (m *Memory) Write32(addr uint64, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	m.WriteBytes(addr, b[:])
}

// Read64 reads a little-endian 64-bit value.
func (m *Memory) Read64(addr uint64) uint64 {
	var b [8]byte
	m.ReadBytes(addr, b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Write64 writes a little-endian 64-bit value.
func (m *Memory) Write64(addr uint64, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	m.WriteBytes(addr, b[:])
}

// ReadBytes copies len(dst) bytes out of memory, one page-sized run at a
// time, allocating pages on demand.
func (m *Memory) ReadBytes(addr uint64, dst []byte) {
	for len(dst) > 0 {
		p := m.page(addr, true)
		n := copy(dst, p[addr&pageMask:])
		dst = dst[n:]
		addr += uint64(n)
	}
}

// WriteBytes copies src into memory, one page-sized run at a time,
// allocating pages on demand.
func (m *Memory) WriteBytes(addr uint64, src []byte) {
	for len(src) > 0 {
		p := m.page(addr, true)
		n := copy(p[addr&pageMask:], src)
		src = src[n:]
		addr += uint64(n)
	}
}
