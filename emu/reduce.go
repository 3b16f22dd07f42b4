package emu

// doLDAV folds active even/odd lane-pair products into a 64-bit wraparound
// accumulator. xchg swaps which lane of the pair is read from qn; sub
// selects subtraction of the odd-lane products.
func doLDAV[T lane](c *Core, qn, qm uint8, esize int, a uint64, xchg, sub bool) uint64 {
	n, m := &c.V[qn], &c.V[qm]
	mask := c.ElementMask()
	x := 0
	if xchg {
		x = 1
	}
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		if mask&1 == 0 {
			continue
		}
		if e&1 == 1 {
			p := int64(readLane[T](n, e-x, esize)) * int64(readLane[T](m, e, esize))
			if sub {
				a -= uint64(p)
			} else {
				a += uint64(p)
			}
		} else {
			a += uint64(int64(readLane[T](n, e+x, esize)) * int64(readLane[T](m, e, esize)))
		}
	}
	c.AdvanceVPT()
	return a
}

// VMLALDAVS is the signed multiply-add long dual accumulate across vector.
func (u *VecUnit) VMLALDAVS(esize int, qn, qm uint8, a uint64, xchg, sub bool) uint64 {
	switch esize {
	case 2:
		return doLDAV[int16](u.core, qn, qm, 2, a, xchg, sub)
	case 4:
		return doLDAV[int32](u.core, qn, qm, 4, a, xchg, sub)
	default:
		panic(errBadESize)
	}
}

// VMLALDAVU is the unsigned multiply-add long dual accumulate.
func (u *VecUnit) VMLALDAVU(esize int, qn, qm uint8, a uint64) uint64 {
	switch esize {
	case 2:
		return doLDAV[uint16](u.core, qn, qm, 2, a, false, false)
	case 4:
		return doLDAV[uint32](u.core, qn, qm, 4, a, false, false)
	default:
		panic(errBadESize)
	}
}

// doLDAVH is the rounding high variant: the accumulator gains 8 low bits
// of headroom, every active lane contributes its product plus a 1<<7
// rounding bias, and the final value is the 128-bit sum shifted right 8.
// Up to four 32x32 products plus biases need more than 64 bits, hence the
// 128-bit intermediate.
func doLDAVH(c *Core, qn, qm uint8, a uint64, signed, xchg, sub bool) uint64 {
	n, m := &c.V[qn], &c.V[qm]
	mask := c.ElementMask()
	x := 0
	if xchg {
		x = 1
	}

	var acc int128
	if signed {
		acc = int128FromS64(int64(a))
	} else {
		acc = int128FromU64(a)
	}
	acc = acc.shl8()

	for e := 0; e < 4; e, mask = e+1, mask>>4 {
		if mask&1 == 0 {
			continue
		}
		ni := e + x
		if e&1 == 1 {
			ni = e - x
		}
		var p int128
		if signed {
			p = int128FromS64(int64(readLane[int32](n, ni, 4)) * int64(readLane[int32](m, e, 4)))
		} else {
			p = int128FromU64(uint64(readLane[uint32](n, ni, 4)) * uint64(readLane[uint32](m, e, 4)))
		}
		if sub && e&1 == 1 {
			acc = acc.sub(p)
		} else {
			acc = acc.add(p)
		}
		acc = acc.add(int128FromU64(1 << 7))
	}

	c.AdvanceVPT()
	return acc.shr8().lo
}

// VRMLALDAVHS is the signed rounding multiply-add long dual accumulate
// high (32-bit lanes only).
func (u *VecUnit) VRMLALDAVHS(qn, qm uint8, a uint64, xchg, sub bool) uint64 {
	return doLDAVH(u.core, qn, qm, a, true, xchg, sub)
}

// VRMLALDAVHU is the unsigned variant.
func (u *VecUnit) VRMLALDAVHU(qn, qm uint8, a uint64) uint64 {
	return doLDAVH(u.core, qn, qm, a, false, false, false)
}

// doVADDV widens each active lane per T's signedness and accumulates.
func doVADDV[T lane](c *Core, qm uint8, esize int, a uint64) uint64 {
	m := &c.V[qm]
	mask := c.ElementMask()
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		if mask&1 != 0 {
			a += uint64(int64(readLane[T](m, e, esize)))
		}
	}
	c.AdvanceVPT()
	return a
}

// VADDV adds the active lanes of qm into the accumulator, sign- or
// zero-extending per signed. Inactive lanes contribute nothing.
func (u *VecUnit) VADDV(esize int, signed bool, qm uint8, a uint64) uint64 {
	switch {
	case esize == 1 && signed:
		return doVADDV[int8](u.core, qm, 1, a)
	case esize == 1:
		return doVADDV[uint8](u.core, qm, 1, a)
	case esize == 2 && signed:
		return doVADDV[int16](u.core, qm, 2, a)
	case esize == 2:
		return doVADDV[uint16](u.core, qm, 2, a)
	case esize == 4 && signed:
		return doVADDV[int32](u.core, qm, 4, a)
	case esize == 4:
		return doVADDV[uint32](u.core, qm, 4, a)
	default:
		panic(errBadESize)
	}
}
