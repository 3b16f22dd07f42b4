package emu

import (
	"math"
	"math/bits"
)

// Scalar-operand forms: the scalar register value is truncated to the
// element width and combined with every active lane of qn.

// VADDScalar adds a broadcast scalar to each lane.
func (u *VecUnit) VADDScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, func(n, m uint8) uint8 { return n + m })
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, func(n, m uint16) uint16 { return n + m })
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, func(n, m uint32) uint32 { return n + m })
	default:
		panic(errBadESize)
	}
}

// VSUBScalar subtracts a broadcast scalar from each lane.
func (u *VecUnit) VSUBScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, func(n, m uint8) uint8 { return n - m })
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, func(n, m uint16) uint16 { return n - m })
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, func(n, m uint32) uint32 { return n - m })
	default:
		panic(errBadESize)
	}
}

// VMULScalar multiplies each lane by a broadcast scalar.
func (u *VecUnit) VMULScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, func(n, m uint8) uint8 { return n * m })
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, func(n, m uint16) uint16 { return n * m })
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, func(n, m uint32) uint32 { return n * m })
	default:
		panic(errBadESize)
	}
}

// VHADDSScalar performs the signed halving add against a broadcast scalar.
func (u *VecUnit) VHADDSScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, int8(rm), 1, opHAdd[int8])
	case 2:
		do2OpScalar(u.core, qd, qn, int16(rm), 2, opHAdd[int16])
	case 4:
		do2OpScalar(u.core, qd, qn, int32(rm), 4, opHAdd[int32])
	default:
		panic(errBadESize)
	}
}

// VHADDUScalar performs the unsigned halving add against a broadcast scalar.
func (u *VecUnit) VHADDUScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, opHAdd[uint8])
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, opHAdd[uint16])
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, opHAdd[uint32])
	default:
		panic(errBadESize)
	}
}

// VHSUBSScalar performs the signed halving subtract against a broadcast scalar.
func (u *VecUnit) VHSUBSScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, int8(rm), 1, opHSub[int8])
	case 2:
		do2OpScalar(u.core, qd, qn, int16(rm), 2, opHSub[int16])
	case 4:
		do2OpScalar(u.core, qd, qn, int32(rm), 4, opHSub[int32])
	default:
		panic(errBadESize)
	}
}

// VHSUBUScalar performs the unsigned halving subtract against a broadcast scalar.
func (u *VecUnit) VHSUBUScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, opHSub[uint8])
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, opHSub[uint16])
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, opHSub[uint32])
	default:
		panic(errBadESize)
	}
}

// VQADDSScalar performs signed saturating addition against a broadcast scalar.
func (u *VecUnit) VQADDSScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpSatScalar(u.core, qd, qn, int8(rm), 1, qaddS[int8](math.MinInt8, math.MaxInt8))
	case 2:
		do2OpSatScalar(u.core, qd, qn, int16(rm), 2, qaddS[int16](math.MinInt16, math.MaxInt16))
	case 4:
		do2OpSatScalar(u.core, qd, qn, int32(rm), 4, qaddS[int32](math.MinInt32, math.MaxInt32))
	default:
		panic(errBadESize)
	}
}

// VQADDUScalar performs unsigned saturating addition against a broadcast scalar.
func (u *VecUnit) VQADDUScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpSatScalar(u.core, qd, qn, uint8(rm), 1, qaddU[uint8](math.MaxUint8))
	case 2:
		do2OpSatScalar(u.core, qd, qn, uint16(rm), 2, qaddU[uint16](math.MaxUint16))
	case 4:
		do2OpSatScalar(u.core, qd, qn, rm, 4, qaddU[uint32](math.MaxUint32))
	default:
		panic(errBadESize)
	}
}

// VQSUBSScalar performs signed saturating subtraction against a broadcast scalar.
func (u *VecUnit) VQSUBSScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpSatScalar(u.core, qd, qn, int8(rm), 1, qsubS[int8](math.MinInt8, math.MaxInt8))
	case 2:
		do2OpSatScalar(u.core, qd, qn, int16(rm), 2, qsubS[int16](math.MinInt16, math.MaxInt16))
	case 4:
		do2OpSatScalar(u.core, qd, qn, int32(rm), 4, qsubS[int32](math.MinInt32, math.MaxInt32))
	default:
		panic(errBadESize)
	}
}

// VQSUBUScalar performs unsigned saturating subtraction against a broadcast scalar.
func (u *VecUnit) VQSUBUScalar(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpSatScalar(u.core, qd, qn, uint8(rm), 1, qsubU[uint8](math.MaxUint8))
	case 2:
		do2OpSatScalar(u.core, qd, qn, uint16(rm), 2, qsubU[uint16](math.MaxUint16))
	case 4:
		do2OpSatScalar(u.core, qd, qn, rm, 4, qsubU[uint32](math.MaxUint32))
	default:
		panic(errBadESize)
	}
}

// VQDMULHScalar performs the saturating doubling multiply-high against a
// broadcast scalar.
func (u *VecUnit) VQDMULHScalar(esize int, qd, qn uint8, rm uint32) {
	u.vqdmulhScalar(esize, qd, qn, rm, false)
}

// VQRDMULHScalar is the rounding variant of VQDMULHScalar.
func (u *VecUnit) VQRDMULHScalar(esize int, qd, qn uint8, rm uint32) {
	u.vqdmulhScalar(esize, qd, qn, rm, true)
}

func (u *VecUnit) vqdmulhScalar(esize int, qd, qn uint8, rm uint32, round bool) {
	switch esize {
	case 1:
		do2OpSatScalar(u.core, qd, qn, int8(rm), 1, qdmulh[int8](math.MinInt8, math.MaxInt8, 8, round))
	case 2:
		do2OpSatScalar(u.core, qd, qn, int16(rm), 2, qdmulh[int16](math.MinInt16, math.MaxInt16, 16, round))
	case 4:
		do2OpSatScalar(u.core, qd, qn, int32(rm), 4, qdmulh[int32](math.MinInt32, math.MaxInt32, 32, round))
	default:
		panic(errBadESize)
	}
}

// doSatScalarLong is the widening saturating scalar loop (VQDMULL scalar).
func doSatScalarLong[T lane, L lane](c *Core, qd, qn uint8, m L, esize, top int,
	satMask uint16, fn func(n, m L, sat *bool) L) {
	d, n := &c.V[qd], &c.V[qn]
	lesize := esize * 2
	mask := c.ElementMask()
	qc := false
	for le := 0; le < 16/lesize; le, mask = le+1, mask>>lesize {
		sat := false
		r := fn(L(readLane[T](n, le*2+top, esize)), m, &sat)
		mergeMask(d, le, lesize, r, mask)
		qc = qc || (sat && mask&satMask != 0)
	}
	if qc {
		c.setQC()
	}
	c.AdvanceVPT()
}

// VQDMULLBScalar performs the bottom-half saturating doubling widening
// multiply against a broadcast scalar.
func (u *VecUnit) VQDMULLBScalar(esize int, qd, qn uint8, rm uint32) {
	u.vqdmullScalar(esize, 0, qd, qn, rm)
}

// VQDMULLTScalar is the top-half form.
func (u *VecUnit) VQDMULLTScalar(esize int, qd, qn uint8, rm uint32) {
	u.vqdmullScalar(esize, 1, qd, qn, rm)
}

func (u *VecUnit) vqdmullScalar(esize, top int, qd, qn uint8, rm uint32) {
	switch esize {
	case 2:
		satMask := satMask16B
		if top == 1 {
			satMask = satMask16T
		}
		doSatScalarLong[int16](u.core, qd, qn, int32(int16(rm)), 2, top, satMask, qdmullH)
	case 4:
		doSatScalarLong[int32](u.core, qd, qn, int64(int32(rm)), 4, top, satMask32, qdmullW)
	default:
		panic(errBadESize)
	}
}

// VBRSR bit-reverses the low rm&0xFF bits of each lane. The reversal runs
// within the lane width, so a bit count at or above the width yields the
// whole lane reversed.
func (u *VecUnit) VBRSR(esize int, qd, qn uint8, rm uint32) {
	switch esize {
	case 1:
		do2OpScalar(u.core, qd, qn, uint8(rm), 1, brsr8)
	case 2:
		do2OpScalar(u.core, qd, qn, uint16(rm), 2, brsr16)
	case 4:
		do2OpScalar(u.core, qd, qn, rm, 4, brsr32)
	default:
		panic(errBadESize)
	}
}

func brsr8(n, m uint8) uint8 {
	if m == 0 {
		return 0
	}
	n = bits.Reverse8(n)
	if m < 8 {
		n >>= 8 - m
	}
	return n
}

func brsr16(n, m uint16) uint16 {
	m &= 0xff
	if m == 0 {
		return 0
	}
	n = bits.Reverse16(n)
	if m < 16 {
		n >>= 16 - m
	}
	return n
}

func brsr32(n, m uint32) uint32 {
	m &= 0xff
	if m == 0 {
		return 0
	}
	n = bits.Reverse32(n)
	if m < 32 {
		n >>= 32 - m
	}
	return n
}

// VDUP broadcasts a scalar into every active lane. The caller replicates
// 8- and 16-bit values across the 32-bit scalar, so one 32-bit merge per
// word covers all element sizes.
func (u *VecUnit) VDUP(qd uint8, val uint32) {
	c := u.core
	d := &c.V[qd]
	mask := c.ElementMask()
	for e := 0; e < 4; e, mask = e+1, mask>>4 {
		mergeMask(d, e, 4, val, mask)
	}
	c.AdvanceVPT()
}
