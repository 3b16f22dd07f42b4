package emu

import "math"

// Saturating add/sub/multiply-high lane primitives. Computation happens at
// 64-bit width, so one clamp routine covers all the narrower widths.

func qaddS[T signedLane](min, max int64) func(n, m T, sat *bool) T {
	return func(n, m T, sat *bool) T {
		return T(satRange(int64(n)+int64(m), min, max, sat))
	}
}

func qaddU[T lane](max int64) func(n, m T, sat *bool) T {
	return func(n, m T, sat *bool) T {
		return T(satRange(int64(n)+int64(m), 0, max, sat))
	}
}

func qsubS[T signedLane](min, max int64) func(n, m T, sat *bool) T {
	return func(n, m T, sat *bool) T {
		return T(satRange(int64(n)-int64(m), min, max, sat))
	}
}

func qsubU[T lane](max int64) func(n, m T, sat *bool) T {
	return func(n, m T, sat *bool) T {
		return T(satRange(int64(n)-int64(m), 0, max, sat))
	}
}

// qdmulh doubles the product and keeps the high half, folded into a single
// shift by bits-1; the rounding constant is pre-adjusted to match.
func qdmulh[T signedLane](min, max int64, bits int, round bool) func(n, m T, sat *bool) T {
	return func(n, m T, sat *bool) T {
		p := int64(n) * int64(m)
		if round {
			p += 1 << (bits - 2)
		}
		return T(satRange(p>>(bits-1), min, max, sat))
	}
}

// VQADDS performs signed saturating lane addition.
func (u *VecUnit) VQADDS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, qaddS[int8](math.MinInt8, math.MaxInt8))
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, qaddS[int16](math.MinInt16, math.MaxInt16))
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, qaddS[int32](math.MinInt32, math.MaxInt32))
	default:
		panic(errBadESize)
	}
}

// VQADDU performs unsigned saturating lane addition.
func (u *VecUnit) VQADDU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, qaddU[uint8](math.MaxUint8))
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, qaddU[uint16](math.MaxUint16))
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, qaddU[uint32](math.MaxUint32))
	default:
		panic(errBadESize)
	}
}

// VQSUBS performs signed saturating lane subtraction.
func (u *VecUnit) VQSUBS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, qsubS[int8](math.MinInt8, math.MaxInt8))
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, qsubS[int16](math.MinInt16, math.MaxInt16))
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, qsubS[int32](math.MinInt32, math.MaxInt32))
	default:
		panic(errBadESize)
	}
}

// VQSUBU performs unsigned saturating lane subtraction.
func (u *VecUnit) VQSUBU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, qsubU[uint8](math.MaxUint8))
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, qsubU[uint16](math.MaxUint16))
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, qsubU[uint32](math.MaxUint32))
	default:
		panic(errBadESize)
	}
}

// VQDMULH performs saturating doubling multiply returning the high half.
func (u *VecUnit) VQDMULH(esize int, qd, qn, qm uint8) {
	u.vqdmulh(esize, qd, qn, qm, false)
}

// VQRDMULH is VQDMULH with rounding before the high-half extraction.
func (u *VecUnit) VQRDMULH(esize int, qd, qn, qm uint8) {
	u.vqdmulh(esize, qd, qn, qm, true)
}

func (u *VecUnit) vqdmulh(esize int, qd, qn, qm uint8, round bool) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, qdmulh[int8](math.MinInt8, math.MaxInt8, 8, round))
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, qdmulh[int16](math.MinInt16, math.MaxInt16, 16, round))
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, qdmulh[int32](math.MinInt32, math.MaxInt32, 32, round))
	default:
		panic(errBadESize)
	}
}

// Shift families. The shift count is the low byte of the second operand,
// interpreted as signed: positive shifts left, negative shifts right.

// VSHLS performs a signed lane shift with wraparound.
func (u *VecUnit) VSHLS(esize int, qd, qn, qm uint8) {
	u.vshls(esize, qd, qn, qm, false)
}

// VRSHLS performs a signed rounding lane shift with wraparound.
func (u *VecUnit) VRSHLS(esize int, qd, qn, qm uint8) {
	u.vshls(esize, qd, qn, qm, true)
}

func (u *VecUnit) vshls(esize int, qd, qn, qm uint8, round bool) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m int8) int8 {
			return int8(sqrshl(int32(n), m, 8, round, nil))
		})
	case 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m int16) int16 {
			return int16(sqrshl(int32(n), int8(m), 16, round, nil))
		})
	case 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m int32) int32 {
			return sqrshl(n, int8(m), 32, round, nil)
		})
	default:
		panic(errBadESize)
	}
}

// VSHLU performs an unsigned lane shift with wraparound.
func (u *VecUnit) VSHLU(esize int, qd, qn, qm uint8) {
	u.vshlu(esize, qd, qn, qm, false)
}

// VRSHLU performs an unsigned rounding lane shift with wraparound.
func (u *VecUnit) VRSHLU(esize int, qd, qn, qm uint8) {
	u.vshlu(esize, qd, qn, qm, true)
}

func (u *VecUnit) vshlu(esize int, qd, qn, qm uint8, round bool) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m uint8) uint8 {
			return uint8(uqrshl(uint32(n), int8(m), 8, round, nil))
		})
	case 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m uint16) uint16 {
			return uint16(uqrshl(uint32(n), int8(m), 16, round, nil))
		})
	case 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m uint32) uint32 {
			return uqrshl(n, int8(m), 32, round, nil)
		})
	default:
		panic(errBadESize)
	}
}

// VQSHLS performs a signed saturating lane shift.
func (u *VecUnit) VQSHLS(esize int, qd, qn, qm uint8) {
	u.vqshls(esize, qd, qn, qm, false)
}

// VQRSHLS performs a signed saturating rounding lane shift.
func (u *VecUnit) VQRSHLS(esize int, qd, qn, qm uint8) {
	u.vqshls(esize, qd, qn, qm, true)
}

func (u *VecUnit) vqshls(esize int, qd, qn, qm uint8, round bool) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, func(n, m int8, sat *bool) int8 {
			return int8(sqrshl(int32(n), m, 8, round, sat))
		})
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, func(n, m int16, sat *bool) int16 {
			return int16(sqrshl(int32(n), int8(m), 16, round, sat))
		})
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, func(n, m int32, sat *bool) int32 {
			return sqrshl(n, int8(m), 32, round, sat)
		})
	default:
		panic(errBadESize)
	}
}

// VQSHLU performs an unsigned saturating lane shift.
func (u *VecUnit) VQSHLU(esize int, qd, qn, qm uint8) {
	u.vqshlu(esize, qd, qn, qm, false)
}

// VQRSHLU performs an unsigned saturating rounding lane shift.
func (u *VecUnit) VQRSHLU(esize int, qd, qn, qm uint8) {
	u.vqshlu(esize, qd, qn, qm, true)
}

func (u *VecUnit) vqshlu(esize int, qd, qn, qm uint8, round bool) {
	switch esize {
	case 1:
		do2OpSat(u.core, qd, qn, qm, 1, func(n, m uint8, sat *bool) uint8 {
			return uint8(uqrshl(uint32(n), int8(m), 8, round, sat))
		})
	case 2:
		do2OpSat(u.core, qd, qn, qm, 2, func(n, m uint16, sat *bool) uint16 {
			return uint16(uqrshl(uint32(n), int8(m), 16, round, sat))
		})
	case 4:
		do2OpSat(u.core, qd, qn, qm, 4, func(n, m uint32, sat *bool) uint32 {
			return uqrshl(n, int8(m), 32, round, sat)
		})
	default:
		panic(errBadESize)
	}
}

// qdmullH doubles the widened 16x16 product, saturating to 32 bits.
func qdmullH(n, m int32, sat *bool) int32 {
	return int32(satRange(int64(n)*int64(m)*2, math.MinInt32, math.MaxInt32, sat))
}

// qdmullW doubles the widened 32x32 product, saturating to 64 bits.
// The multiply cannot overflow, but the doubling might.
func qdmullW(n, m int64, sat *bool) int64 {
	r := n * m
	if r > math.MaxInt64/2 {
		*sat = true
		return math.MaxInt64
	}
	if r < math.MinInt64/2 {
		*sat = true
		return math.MinInt64
	}
	return r * 2
}

// VQDMULLB performs the bottom-half saturating doubling widening multiply.
func (u *VecUnit) VQDMULLB(esize int, qd, qn, qm uint8) {
	u.vqdmull(esize, 0, qd, qn, qm)
}

// VQDMULLT performs the top-half saturating doubling widening multiply.
func (u *VecUnit) VQDMULLT(esize int, qd, qn, qm uint8) {
	u.vqdmull(esize, 1, qd, qn, qm)
}

func (u *VecUnit) vqdmull(esize, top int, qd, qn, qm uint8) {
	switch esize {
	case 2:
		satMask := satMask16B
		if top == 1 {
			satMask = satMask16T
		}
		do2OpSatLong[int16](u.core, qd, qn, qm, 2, top, satMask, qdmullH)
	case 4:
		do2OpSatLong[int32](u.core, qd, qn, qm, 4, top, satMask32, qdmullW)
	default:
		panic(errBadESize)
	}
}
