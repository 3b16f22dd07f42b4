package emu

import "math/bits"

const errBadESize = "emu: unsupported element size"

// signedLane constrains the element types with a signed interpretation.
type signedLane interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Per-lane operation primitives. These are width- and sign-generic where
// the arithmetic permits; operations that need an explicit intermediate
// width take it as a parameter.

func opMax[T lane](n, m T) T {
	if n >= m {
		return n
	}
	return m
}

func opMin[T lane](n, m T) T {
	if n >= m {
		return m
	}
	return n
}

func opAbd[T lane](n, m T) T {
	if n >= m {
		return n - m
	}
	return m - n
}

// opHAdd halves the widened sum, truncating toward negative infinity.
// int64 widening sign- or zero-extends per T, so one body serves both
// signednesses at widths up to 32 bits.
func opHAdd[T lane](n, m T) T {
	return T((int64(n) + int64(m)) >> 1)
}

func opHSub[T lane](n, m T) T {
	return T((int64(n) - int64(m)) >> 1)
}

func opRHAdd[T lane](n, m T) T {
	return T((int64(n) + int64(m) + 1) >> 1)
}

// opMulH returns the high half of the product: (n*m [+ 1<<(shift-1)]) >> shift.
func opMulH[T lane](n, m T, shift int, round bool) T {
	p := int64(n) * int64(m)
	if round {
		p += 1 << (shift - 1)
	}
	return T(p >> shift)
}

func opAbs[T signedLane](n T) T {
	if n < 0 {
		return -n
	}
	return n
}

func opNeg[T signedLane](n T) T {
	return -n
}

// clrsb32 counts the leading redundant sign bits of x.
func clrsb32(x int32) int32 {
	return int32(bits.LeadingZeros32(uint32(x^(x>>31)))) - 1
}

func hswap32(x uint32) uint32 {
	return bits.RotateLeft32(x, 16)
}

func hswap64(x uint64) uint64 {
	const m = 0x0000ffff0000ffff
	x = bits.RotateLeft64(x, 32)
	return (x&m)<<16 | (x>>16)&m
}

func wswap64(x uint64) uint64 {
	return bits.RotateLeft64(x, 32)
}

// Bitwise operations commute with lane boundaries, so they run at 64-bit
// granularity regardless of the declared element size; predication still
// applies per byte through the merge path.

// VAND computes qd = qn & qm.
func (u *VecUnit) VAND(qd, qn, qm uint8) {
	do2Op(u.core, qd, qn, qm, 8, func(n, m uint64) uint64 { return n & m })
}

// VBIC computes qd = qn &^ qm.
func (u *VecUnit) VBIC(qd, qn, qm uint8) {
	do2Op(u.core, qd, qn, qm, 8, func(n, m uint64) uint64 { return n &^ m })
}

// VORR computes qd = qn | qm.
func (u *VecUnit) VORR(qd, qn, qm uint8) {
	do2Op(u.core, qd, qn, qm, 8, func(n, m uint64) uint64 { return n | m })
}

// VORN computes qd = qn | ^qm.
func (u *VecUnit) VORN(qd, qn, qm uint8) {
	do2Op(u.core, qd, qn, qm, 8, func(n, m uint64) uint64 { return n | ^m })
}

// VEOR computes qd = qn ^ qm.
func (u *VecUnit) VEOR(qd, qn, qm uint8) {
	do2Op(u.core, qd, qn, qm, 8, func(n, m uint64) uint64 { return n ^ m })
}

// VMVN computes qd = ^qm.
func (u *VecUnit) VMVN(qd, qm uint8) {
	do1Op(u.core, qd, qm, 8, func(n uint64) uint64 { return ^n })
}

// VADD performs modulo-2^width lane addition. Signed and unsigned share
// bit patterns.
func (u *VecUnit) VADD(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m uint8) uint8 { return n + m })
	case 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m uint16) uint16 { return n + m })
	case 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m uint32) uint32 { return n + m })
	default:
		panic(errBadESize)
	}
}

// VSUB performs modulo-2^width lane subtraction.
func (u *VecUnit) VSUB(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m uint8) uint8 { return n - m })
	case 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m uint16) uint16 { return n - m })
	case 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m uint32) uint32 { return n - m })
	default:
		panic(errBadESize)
	}
}

// VMUL performs modulo-2^width lane multiplication (low half).
func (u *VecUnit) VMUL(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m uint8) uint8 { return n * m })
	case 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m uint16) uint16 { return n * m })
	case 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m uint32) uint32 { return n * m })
	default:
		panic(errBadESize)
	}
}

// VMAXS performs signed lane maximum; ties resolve to the first operand.
func (u *VecUnit) VMAXS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opMax[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opMax[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opMax[int32])
	default:
		panic(errBadESize)
	}
}

// VMAXU performs unsigned lane maximum.
func (u *VecUnit) VMAXU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opMax[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opMax[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opMax[uint32])
	default:
		panic(errBadESize)
	}
}

// VMINS performs signed lane minimum; ties resolve to the second operand.
func (u *VecUnit) VMINS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opMin[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opMin[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opMin[int32])
	default:
		panic(errBadESize)
	}
}

// VMINU performs unsigned lane minimum.
func (u *VecUnit) VMINU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opMin[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opMin[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opMin[uint32])
	default:
		panic(errBadESize)
	}
}

// VABDS performs signed lane absolute difference.
func (u *VecUnit) VABDS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opAbd[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opAbd[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opAbd[int32])
	default:
		panic(errBadESize)
	}
}

// VABDU performs unsigned lane absolute difference.
func (u *VecUnit) VABDU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opAbd[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opAbd[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opAbd[uint32])
	default:
		panic(errBadESize)
	}
}

// VHADDS performs signed halving addition: (n+m)>>1 with the shift
// computed at double width.
func (u *VecUnit) VHADDS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opHAdd[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opHAdd[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opHAdd[int32])
	default:
		panic(errBadESize)
	}
}

// VHADDU performs unsigned halving addition.
func (u *VecUnit) VHADDU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opHAdd[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opHAdd[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opHAdd[uint32])
	default:
		panic(errBadESize)
	}
}

// VHSUBS performs signed halving subtraction.
func (u *VecUnit) VHSUBS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opHSub[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opHSub[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opHSub[int32])
	default:
		panic(errBadESize)
	}
}

// VHSUBU performs unsigned halving subtraction.
func (u *VecUnit) VHSUBU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opHSub[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opHSub[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opHSub[uint32])
	default:
		panic(errBadESize)
	}
}

// VRHADDS performs signed rounding halving addition: (n+m+1)>>1.
func (u *VecUnit) VRHADDS(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opRHAdd[int8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opRHAdd[int16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opRHAdd[int32])
	default:
		panic(errBadESize)
	}
}

// VRHADDU performs unsigned rounding halving addition.
func (u *VecUnit) VRHADDU(esize int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2Op(u.core, qd, qn, qm, 1, opRHAdd[uint8])
	case 2:
		do2Op(u.core, qd, qn, qm, 2, opRHAdd[uint16])
	case 4:
		do2Op(u.core, qd, qn, qm, 4, opRHAdd[uint32])
	default:
		panic(errBadESize)
	}
}

// VMULHS returns the high half of the signed lane product.
func (u *VecUnit) VMULHS(esize int, qd, qn, qm uint8) {
	u.vmulh(esize, qd, qn, qm, true, false)
}

// VMULHU returns the high half of the unsigned lane product.
func (u *VecUnit) VMULHU(esize int, qd, qn, qm uint8) {
	u.vmulh(esize, qd, qn, qm, false, false)
}

// VRMULHS returns the rounded high half of the signed lane product.
func (u *VecUnit) VRMULHS(esize int, qd, qn, qm uint8) {
	u.vmulh(esize, qd, qn, qm, true, true)
}

// VRMULHU returns the rounded high half of the unsigned lane product.
func (u *VecUnit) VRMULHU(esize int, qd, qn, qm uint8) {
	u.vmulh(esize, qd, qn, qm, false, true)
}

func (u *VecUnit) vmulh(esize int, qd, qn, qm uint8, signed, round bool) {
	switch {
	case esize == 1 && signed:
		do2Op(u.core, qd, qn, qm, 1, func(n, m int8) int8 { return opMulH(n, m, 8, round) })
	case esize == 1:
		do2Op(u.core, qd, qn, qm, 1, func(n, m uint8) uint8 { return opMulH(n, m, 8, round) })
	case esize == 2 && signed:
		do2Op(u.core, qd, qn, qm, 2, func(n, m int16) int16 { return opMulH(n, m, 16, round) })
	case esize == 2:
		do2Op(u.core, qd, qn, qm, 2, func(n, m uint16) uint16 { return opMulH(n, m, 16, round) })
	case esize == 4 && signed:
		do2Op(u.core, qd, qn, qm, 4, func(n, m int32) int32 { return opMulH(n, m, 32, round) })
	case esize == 4:
		do2Op(u.core, qd, qn, qm, 4, func(n, m uint32) uint32 { return opMulH(n, m, 32, round) })
	default:
		panic(errBadESize)
	}
}

// VMULLS performs a signed widening multiply; top selects the high (1) or
// low (0) half-width sub-lanes of each input lane. esize names the input
// element size; results are twice as wide.
func (u *VecUnit) VMULLS(esize, top int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpLong[int8](u.core, qd, qn, qm, 1, top, func(n, m int16) int16 { return n * m })
	case 2:
		do2OpLong[int16](u.core, qd, qn, qm, 2, top, func(n, m int32) int32 { return n * m })
	case 4:
		do2OpLong[int32](u.core, qd, qn, qm, 4, top, func(n, m int64) int64 { return n * m })
	default:
		panic(errBadESize)
	}
}

// VMULLU performs an unsigned widening multiply.
func (u *VecUnit) VMULLU(esize, top int, qd, qn, qm uint8) {
	switch esize {
	case 1:
		do2OpLong[uint8](u.core, qd, qn, qm, 1, top, func(n, m uint16) uint16 { return n * m })
	case 2:
		do2OpLong[uint16](u.core, qd, qn, qm, 2, top, func(n, m uint32) uint32 { return n * m })
	case 4:
		do2OpLong[uint32](u.core, qd, qn, qm, 4, top, func(n, m uint64) uint64 { return n * m })
	default:
		panic(errBadESize)
	}
}

// VABS computes the signed lane absolute value; the minimum value wraps.
func (u *VecUnit) VABS(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 1, opAbs[int8])
	case 2:
		do1Op(u.core, qd, qm, 2, opAbs[int16])
	case 4:
		do1Op(u.core, qd, qm, 4, opAbs[int32])
	default:
		panic(errBadESize)
	}
}

// VNEG computes the signed lane negation; the minimum value wraps.
func (u *VecUnit) VNEG(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 1, opNeg[int8])
	case 2:
		do1Op(u.core, qd, qm, 2, opNeg[int16])
	case 4:
		do1Op(u.core, qd, qm, 4, opNeg[int32])
	default:
		panic(errBadESize)
	}
}

// VCLS counts leading sign bits per lane.
func (u *VecUnit) VCLS(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 1, func(n int8) int8 { return int8(clrsb32(int32(n)) - 24) })
	case 2:
		do1Op(u.core, qd, qm, 2, func(n int16) int16 { return int16(clrsb32(int32(n)) - 16) })
	case 4:
		do1Op(u.core, qd, qm, 4, func(n int32) int32 { return clrsb32(n) })
	default:
		panic(errBadESize)
	}
}

// VCLZ counts leading zero bits per lane.
func (u *VecUnit) VCLZ(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 1, func(n uint8) uint8 { return uint8(bits.LeadingZeros8(n)) })
	case 2:
		do1Op(u.core, qd, qm, 2, func(n uint16) uint16 { return uint16(bits.LeadingZeros16(n)) })
	case 4:
		do1Op(u.core, qd, qm, 4, func(n uint32) uint32 { return uint32(bits.LeadingZeros32(n)) })
	default:
		panic(errBadESize)
	}
}

// VREV16 reverses the bytes within each 16-bit container.
func (u *VecUnit) VREV16(qd, qm uint8) {
	do1Op(u.core, qd, qm, 2, bits.ReverseBytes16)
}

// VREV32 reverses esize-byte elements within each 32-bit container.
func (u *VecUnit) VREV32(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 4, bits.ReverseBytes32)
	case 2:
		do1Op(u.core, qd, qm, 4, hswap32)
	default:
		panic(errBadESize)
	}
}

// VREV64 reverses esize-byte elements within each 64-bit container.
func (u *VecUnit) VREV64(esize int, qd, qm uint8) {
	switch esize {
	case 1:
		do1Op(u.core, qd, qm, 8, bits.ReverseBytes64)
	case 2:
		do1Op(u.core, qd, qm, 8, hswap64)
	case 4:
		do1Op(u.core, qd, qm, 8, wswap64)
	default:
		panic(errBadESize)
	}
}
