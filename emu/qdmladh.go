package emu

import "math"

// doVQDMLADH runs the dual multiply-add/sub high pattern. Lane pairs
// (2i, 2i+1) combine; xchg selects whether the even or odd lane of the
// pair receives the result and which cross pairing feeds it. fn computes
// saturate_high_half((a*b ± c*d)*2 + rounding) for one result lane.
func doVQDMLADH[T signedLane](c *Core, qd, qn, qm uint8, esize, xchg int,
	round bool, fn func(a, b, cc, dd T, round bool, sat *bool) T) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	mask := c.ElementMask()
	qc := false
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		if e&1 != xchg {
			continue
		}
		sat := false
		r := fn(readLane[T](n, e, esize),
			readLane[T](m, e-xchg, esize),
			readLane[T](n, e+1-2*xchg, esize),
			readLane[T](m, e+1-xchg, esize),
			round, &sat)
		mergeMask(d, e, esize, r, mask)
		qc = qc || (sat && mask&1 != 0)
	}
	if qc {
		c.setQC()
	}
	c.AdvanceVPT()
}

// qdmladhNarrow handles the 8- and 16-bit widths, where a 64-bit
// intermediate has room for the whole doubled sum before saturating to
// twice the input width and keeping the high half.
func qdmladhNarrow[T signedLane](sub bool, bits int, min, max int64) func(a, b, cc, dd T, round bool, sat *bool) T {
	return func(a, b, cc, dd T, round bool, sat *bool) T {
		p2 := int64(cc) * int64(dd)
		if sub {
			p2 = -p2
		}
		r := (int64(a)*int64(b) + p2) * 2
		if round {
			r += 1 << (bits - 1)
		}
		return T(satRange(r, min, max, sat) >> bits)
	}
}

// qdmladhWide handles the 32-bit width, where the doubled sum can overflow
// 64 bits. The rounding bias is added to the half-sum before the doubling,
// using saturating adds throughout: if the half-sum already saturated, the
// doubling cannot bring it back in range, but a negative half-sum plus the
// bias can, so the order matters.
func qdmladhWide(sub bool) func(a, b, cc, dd int32, round bool, sat *bool) int32 {
	return func(a, b, cc, dd int32, round bool, sat *bool) int32 {
		m1 := int64(a) * int64(b)
		m2 := int64(cc) * int64(dd)
		var r int64
		var ov bool
		if sub {
			r, ov = ssubOverflow(m1, m2)
		} else {
			r, ov = saddOverflow(m1, m2)
		}
		if !ov && round {
			r, ov = saddOverflow(r, 1<<30)
		}
		if !ov {
			r, ov = saddOverflow(r, r)
		}
		if ov {
			*sat = true
			if r < 0 {
				return math.MaxInt32
			}
			return math.MinInt32
		}
		return int32(r >> 32)
	}
}

// VQDMLADH performs the saturating doubling dual multiply-add high; x
// selects the exchanged pairing and round the rounding variant.
func (u *VecUnit) VQDMLADH(esize int, x, round bool, qd, qn, qm uint8) {
	u.vqdmladh(esize, x, round, false, qd, qn, qm)
}

// VQDMLSDH performs the saturating doubling dual multiply-subtract high.
func (u *VecUnit) VQDMLSDH(esize int, x, round bool, qd, qn, qm uint8) {
	u.vqdmladh(esize, x, round, true, qd, qn, qm)
}

func (u *VecUnit) vqdmladh(esize int, x, round, sub bool, qd, qn, qm uint8) {
	xchg := 0
	if x {
		xchg = 1
	}
	switch esize {
	case 1:
		doVQDMLADH(u.core, qd, qn, qm, 1, xchg, round,
			qdmladhNarrow[int8](sub, 8, math.MinInt16, math.MaxInt16))
	case 2:
		doVQDMLADH(u.core, qd, qn, qm, 2, xchg, round,
			qdmladhNarrow[int16](sub, 16, math.MinInt32, math.MaxInt32))
	case 4:
		doVQDMLADH(u.core, qd, qn, qm, 4, xchg, round, qdmladhWide(sub))
	default:
		panic(errBadESize)
	}
}
