package emu

import "math/bits"

// int128 is a signed 128-bit accumulator, kept as a hi/lo pair. The
// rounding dual-accumulate reductions need 72 bits of headroom, which a
// 64-bit accumulator cannot provide.
type int128 struct {
	hi int64
	lo uint64
}

func int128FromS64(v int64) int128 {
	return int128{hi: v >> 63, lo: uint64(v)}
}

func int128FromU64(v uint64) int128 {
	return int128{lo: v}
}

func (a int128) add(b int128) int128 {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	return int128{hi: a.hi + b.hi + int64(carry), lo: lo}
}

func (a int128) sub(b int128) int128 {
	lo, borrow := bits.Sub64(a.lo, b.lo, 0)
	return int128{hi: a.hi - b.hi - int64(borrow), lo: lo}
}

// shl8 shifts left by 8 bits.
func (a int128) shl8() int128 {
	return int128{hi: a.hi<<8 | int64(a.lo>>56), lo: a.lo << 8}
}

// shr8 shifts right arithmetically by 8 bits.
func (a int128) shr8() int128 {
	return int128{hi: a.hi >> 8, lo: a.lo>>8 | uint64(a.hi)<<56}
}
