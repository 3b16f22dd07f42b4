package emu

// doVCAdd implements the complex rotate-add pattern: lanes pair up as
// (real, imaginary) and each half of the pair combines with the other
// half of the partner operand. All results are computed before any
// write-back because the operands may alias the destination.
func doVCAdd[T signedLane](c *Core, qd, qn, qm uint8, esize int,
	fn0, fn1 func(n, m T) T) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	var r [16]T
	for e := 0; e < 16/esize; e++ {
		if e&1 == 0 {
			r[e] = fn0(readLane[T](n, e, esize), readLane[T](m, e+1, esize))
		} else {
			r[e] = fn1(readLane[T](n, e, esize), readLane[T](m, e-1, esize))
		}
	}
	mask := c.ElementMask()
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		mergeMask(d, e, esize, r[e], mask)
	}
	c.AdvanceVPT()
}

func addT[T signedLane](n, m T) T { return n + m }
func subT[T signedLane](n, m T) T { return n - m }

// VCADD90 rotates qm by 90 degrees and adds: even lanes subtract the odd
// partner, odd lanes add the even partner.
func (u *VecUnit) VCADD90(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		doVCAdd(u.core, qd, qn, qm, 1, subT[int8], addT[int8])
	case 2:
		doVCAdd(u.core, qd, qn, qm, 2, subT[int16], addT[int16])
	case 4:
		doVCAdd(u.core, qd, qn, qm, 4, subT[int32], addT[int32])
	default:
		panic(errBadESize)
	}
}

// VCADD270 rotates qm by 270 degrees and adds.
func (u *VecUnit) VCADD270(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		doVCAdd(u.core, qd, qn, qm, 1, addT[int8], subT[int8])
	case 2:
		doVCAdd(u.core, qd, qn, qm, 2, addT[int16], subT[int16])
	case 4:
		doVCAdd(u.core, qd, qn, qm, 4, addT[int32], subT[int32])
	default:
		panic(errBadESize)
	}
}

// VHCADD90 is the halving form of VCADD90 (signed only).
func (u *VecUnit) VHCADD90(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		doVCAdd(u.core, qd, qn, qm, 1, opHSub[int8], opHAdd[int8])
	case 2:
		doVCAdd(u.core, qd, qn, qm, 2, opHSub[int16], opHAdd[int16])
	case 4:
		doVCAdd(u.core, qd, qn, qm, 4, opHSub[int32], opHAdd[int32])
	default:
		panic(errBadESize)
	}
}

// VHCADD270 is the halving form of VCADD270.
func (u *VecUnit) VHCADD270(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		doVCAdd(u.core, qd, qn, qm, 1, opHAdd[int8], opHSub[int8])
	case 2:
		doVCAdd(u.core, qd, qn, qm, 2, opHAdd[int16], opHSub[int16])
	case 4:
		doVCAdd(u.core, qd, qn, qm, 4, opHAdd[int32], opHSub[int32])
	default:
		panic(errBadESize)
	}
}
