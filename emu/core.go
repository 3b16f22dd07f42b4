// Package emu provides functional MVE (Helium) vector emulation.
package emu

import "encoding/binary"

// VecReg is one 128-bit vector register, stored little-endian so that byte
// i of the register is element i of an 8-bit arrangement.
type VecReg [16]byte

// ECI records which beats of the current vector instruction have already
// committed their effects, for resumption after a mid-instruction exception.
type ECI uint8

// ECI states. A and B name the first and second overlapping instruction;
// ECIA0A1A2B0 means beats 0-2 of this instruction and beat 0 of the next
// one have completed.
const (
	ECINone ECI = iota
	ECIA0
	ECIA0A1
	ECIA0A1A2
	ECIA0A1A2B0
)

// VPR field layout: P0 in bits [15:0], MASK01 in [19:16], MASK23 in [23:20].
const (
	vprP0Mask     uint32 = 0x0000ffff
	vprMask01Mask uint32 = 0x000f0000
	vprMask23Mask uint32 = 0x00f00000
	vprMask01Pos         = 16
	vprMask23Pos         = 20
)

// FPSCR bits used by the vector engine.
const (
	FPSCRQC   uint32 = 1 << 27 // sticky saturation
	FPSCRV    uint32 = 1 << 28
	FPSCRC    uint32 = 1 << 29 // carry, threaded through VADC/VSBC
	FPSCRZ    uint32 = 1 << 30
	FPSCRN    uint32 = 1 << 31
	FPSCRNZCV uint32 = FPSCRN | FPSCRZ | FPSCRC | FPSCRV
)

// Core holds the per-core architectural state the vector engine reads and
// mutates. Each emulated core owns exactly one Core; nothing here is shared,
// so the engine needs no locking.
type Core struct {
	// V holds the eight 128-bit vector registers Q0-Q7.
	V [8]VecReg

	// VPR is the vector predication status and control register:
	// the P0 per-byte predicate plus the MASK01/MASK23 shift registers
	// that sequence VPT blocks.
	VPR uint32

	// LTPSize is log2 of the element size of an active low-overhead
	// tail-predicated loop. 4 means no tail predication.
	LTPSize uint8

	// LR is the remaining loop iteration count used for tail predication.
	LR uint32

	// ECI is the beat-completion state of the current instruction.
	ECI ECI

	// FPSCR holds the status flags (NZCV, sticky QC).
	FPSCR uint32
}

// NewCore creates a core in its reset state.
func NewCore() *Core {
	c := &Core{}
	c.Reset()
	return c
}

// Reset restores the architectural reset state.
func (c *Core) Reset() {
	*c = Core{LTPSize: 4}
}

// P0 returns the 16-bit per-byte predicate field of VPR.
func (c *Core) P0() uint16 {
	return uint16(c.VPR & vprP0Mask)
}

// SetP0 replaces the P0 field of VPR.
func (c *Core) SetP0(p0 uint16) {
	c.VPR = (c.VPR &^ vprP0Mask) | uint32(p0)
}

// Mask01 returns the VPT mask field for the low eight byte lanes.
func (c *Core) Mask01() uint8 {
	return uint8((c.VPR & vprMask01Mask) >> vprMask01Pos)
}

// Mask23 returns the VPT mask field for the high eight byte lanes.
func (c *Core) Mask23() uint8 {
	return uint8((c.VPR & vprMask23Mask) >> vprMask23Pos)
}

// SetVPTMasks replaces both VPT mask fields.
func (c *Core) SetVPTMasks(mask01, mask23 uint8) {
	c.VPR = (c.VPR &^ (vprMask01Mask | vprMask23Mask)) |
		uint32(mask01&0xf)<<vprMask01Pos |
		uint32(mask23&0xf)<<vprMask23Pos
}

// QC reports the sticky saturation flag.
func (c *Core) QC() bool {
	return c.FPSCR&FPSCRQC != 0
}

// Carry reports the FPSCR carry flag.
func (c *Core) Carry() bool {
	return c.FPSCR&FPSCRC != 0
}

// SetCarry sets or clears the FPSCR carry flag.
func (c *Core) SetCarry(carry bool) {
	if carry {
		c.FPSCR |= FPSCRC
	} else {
		c.FPSCR &^= FPSCRC
	}
}

// ReadQ reads a whole vector register as two 64-bit halves.
func (c *Core) ReadQ(q uint8) (lo, hi uint64) {
	lo = binary.LittleEndian.Uint64(c.V[q][0:8])
	hi = binary.LittleEndian.Uint64(c.V[q][8:16])
	return lo, hi
}

// WriteQ writes a whole vector register as two 64-bit halves.
func (c *Core) WriteQ(q uint8, lo, hi uint64) {
	binary.LittleEndian.PutUint64(c.V[q][0:8], lo)
	binary.LittleEndian.PutUint64(c.V[q][8:16], hi)
}

// ReadLane8 reads byte lane e of register q.
func (c *Core) ReadLane8(q, e uint8) uint8 {
	return c.V[q][e]
}

// WriteLane8 writes byte lane e of register q.
func (c *Core) WriteLane8(q, e uint8, v uint8) {
	c.V[q][e] = v
}

// ReadLane16 reads 16-bit lane e of register q.
func (c *Core) ReadLane16(q, e uint8) uint16 {
	return binary.LittleEndian.Uint16(c.V[q][e*2 : e*2+2])
}

// WriteLane16 writes 16-bit lane e of register q.
func (c *Core) WriteLane16(q, e uint8, v uint16) {
	binary.LittleEndian.PutUint16(c.V[q][e*2:e*2+2], v)
}

// ReadLane32 reads 32-bit lane e of register q.
func (c *Core) ReadLane32(q, e uint8) uint32 {
	return binary.LittleEndian.Uint32(c.V[q][e*4 : e*4+4])
}

// WriteLane32 writes 32-bit lane e of register q.
func (c *Core) WriteLane32(q, e uint8, v uint32) {
	binary.LittleEndian.PutUint32(c.V[q][e*4:e*4+4], v)
}

// ReadLane64 reads 64-bit lane e of register q.
func (c *Core) ReadLane64(q, e uint8) uint64 {
	return binary.LittleEndian.Uint64(c.V[q][e*8 : e*8+8])
}

// WriteLane64 writes 64-bit lane e of register q.
func (c *Core) WriteLane64(q, e uint8, v uint64) {
	binary.LittleEndian.PutUint64(c.V[q][e*8:e*8+8], v)
}
