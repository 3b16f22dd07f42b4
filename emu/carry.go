package emu

// vadc threads a carry across the four 32-bit lanes. Every lane's sum is
// computed regardless of predication so the carry chain stays
// architecturally correct, but the carry captured for the next lane is
// taken only from lanes whose mask bit is set. Subtraction uses the one's
// complement of qm (inv = ^0) with the appropriate carry-in.
func (u *VecUnit) vadc(qd, qn, qm uint8, inv, carryIn uint32, updateFlags bool) {
	c := u.core
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	mask := c.ElementMask()

	// If any additions trigger, we will update flags.
	if mask&0x1111 != 0 {
		updateFlags = true
	}

	for e := 0; e < 4; e, mask = e+1, mask>>4 {
		r := uint64(carryIn)
		r += uint64(readLane[uint32](n, e, 4))
		r += uint64(readLane[uint32](m, e, 4) ^ inv)
		if mask&1 != 0 {
			carryIn = uint32(r >> 32)
		}
		mergeMask(d, e, 4, uint32(r), mask)
	}

	if updateFlags {
		// Store C, clear NZV.
		c.FPSCR &^= FPSCRNZCV
		c.FPSCR |= carryIn * FPSCRC
	}
	c.AdvanceVPT()
}

func (c *Core) carryBit() uint32 {
	if c.FPSCR&FPSCRC != 0 {
		return 1
	}
	return 0
}

// VADC performs add with carry across 32-bit lanes, consuming FPSCR.C.
func (u *VecUnit) VADC(qd, qn, qm uint8) {
	u.vadc(qd, qn, qm, 0, u.core.carryBit(), false)
}

// VSBC performs subtract with carry across 32-bit lanes, consuming FPSCR.C.
func (u *VecUnit) VSBC(qd, qn, qm uint8) {
	u.vadc(qd, qn, qm, ^uint32(0), u.core.carryBit(), false)
}

// VADCI is VADC with carry-in forced to 0 and a mandatory flag update.
func (u *VecUnit) VADCI(qd, qn, qm uint8) {
	u.vadc(qd, qn, qm, 0, 0, true)
}

// VSBCI is VSBC with carry-in forced to 1 and a mandatory flag update.
func (u *VecUnit) VSBCI(qd, qn, qm uint8) {
	u.vadc(qd, qn, qm, ^uint32(0), 1, true)
}
