package emu

// lane constrains the element types a vector register can be viewed as.
type lane interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// expandPredB expands a bit-per-byte predicate into a byte-per-byte mask:
// entry i has byte k equal to 0xFF exactly when bit k of i is set. Lane
// widths 1, 2, 4 and 8 index it with the low 1, 2, 4 or 8 predicate bits.
var expandPredB = func() [256]uint64 {
	var t [256]uint64
	for i := range t {
		for b := 0; b < 8; b++ {
			if i&(1<<b) != 0 {
				t[i] |= 0xff << (8 * b)
			}
		}
	}
	return t
}()

// readRaw reads esize little-endian bytes at offset off as a uint64.
func readRaw(r *VecReg, off, esize int) uint64 {
	var v uint64
	for i := esize - 1; i >= 0; i-- {
		v = v<<8 | uint64(r[off+i])
	}
	return v
}

// writeRaw writes the low esize bytes of v at offset off.
func writeRaw(r *VecReg, off, esize int, v uint64) {
	for i := 0; i < esize; i++ {
		r[off+i] = byte(v >> (8 * i))
	}
}

// readLane reads element e of an esize-byte arrangement. Narrowing the
// raw value through T reinterprets the bit pattern, so signed views
// sign-extend naturally.
func readLane[T lane](r *VecReg, e, esize int) T {
	return T(readRaw(r, e*esize, esize))
}

// writeLane writes element e of an esize-byte arrangement unconditionally.
func writeLane[T lane](r *VecReg, e, esize int, v T) {
	writeRaw(r, e*esize, esize, uint64(v))
}

// mergeMask writes v into element e of an esize-byte arrangement, storing
// only the bytes whose predicate bit is set in the low esize bits of mask
// and leaving every other byte of the destination unchanged. A lane that is
// only partially covered by the mask is partially written.
func mergeMask[T lane](r *VecReg, e, esize int, v T, mask uint16) {
	off := e * esize
	bmask := expandPredB[int(mask)&(1<<esize-1)]
	old := readRaw(r, off, esize)
	writeRaw(r, off, esize, old&^bmask|uint64(v)&bmask)
}
