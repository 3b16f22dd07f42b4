package emu

import "fmt"

// ElementMask returns the mask of byte lanes the current instruction may
// update, one bit per byte of the vector. It combines:
//
//  1. the P0 per-byte predicate, forced all-active for each half whose
//     VPT mask field is zero (predication disabled for that half);
//  2. tail predication, which on the final iteration of a low-overhead
//     loop retains only the least significant LR << LTPSize bits;
//  3. the ECI beat-completion state, which masks out beats that already
//     committed before the instruction was interrupted.
//
// 8-bit operations look at every bit of the result; 16-bit operations look
// at bits 0, 2, 4, ...; 32-bit operations at bits 0, 4, 8 and 12. The
// resolver never mutates state.
func (c *Core) ElementMask() uint16 {
	mask := c.P0()

	if c.VPR&vprMask01Mask == 0 {
		mask |= 0x00ff
	}
	if c.VPR&vprMask23Mask == 0 {
		mask |= 0xff00
	}

	if c.LTPSize < 4 && c.LR <= 1<<(4-c.LTPSize) {
		// Tail predication active and this is the last iteration:
		// keep the low (LR * esize) predicate bits only.
		masklen := c.LR << c.LTPSize
		mask &= uint16(1<<masklen - 1)
	}

	switch c.ECI {
	case ECINone:
	case ECIA0:
		mask &= 0xfff0
	case ECIA0A1:
		mask &= 0xff00
	case ECIA0A1A2, ECIA0A1A2B0:
		mask &= 0xf000
	default:
		panic(fmt.Sprintf("emu: unreachable ECI state %d", c.ECI))
	}

	return mask
}

// AdvanceVPT advances the VPT and ECI state after an instruction completes.
// It must run exactly once per completed instruction and never after a
// fault aborts one.
func (c *Core) AdvanceVPT() {
	if c.ECI == ECIA0A1A2B0 {
		c.ECI = ECIA0
	} else {
		c.ECI = ECINone
	}

	vpr := c.VPR
	if vpr&(vprMask01Mask|vprMask23Mask) == 0 {
		// VPT not enabled, nothing to do.
		return
	}

	mask01 := c.Mask01()
	mask23 := c.Mask23()
	if mask01 > 8 {
		// High bit set, but not 0b1000: invert that half of P0.
		vpr ^= 0x00ff
	}
	if mask23 > 8 {
		vpr ^= 0xff00
	}
	vpr = (vpr &^ (vprMask01Mask | vprMask23Mask)) |
		uint32(mask01<<1&0xf)<<vprMask01Pos |
		uint32(mask23<<1&0xf)<<vprMask23Pos
	c.VPR = vpr
}
