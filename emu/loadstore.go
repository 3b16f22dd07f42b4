package emu

// signExtend extends the low size*8 bits of v to 64 bits.
func signExtend(v uint64, size int, signed bool) uint64 {
	shift := 64 - 8*size
	if signed {
		return uint64(int64(v<<shift) >> shift)
	}
	return v << shift >> shift
}

// VLDR performs a contiguous, possibly widening, vector load into Qd.
// esize is the register element size, msize the memory footprint per
// element (msize < esize widens with sign or zero extension). The
// address steps by msize for every element, active or not, and the
// predicate bit at the element's base byte gates the whole element. A
// memory fault aborts the instruction before the predicate state
// advances; elements loaded so far remain committed.
func (u *VecUnit) VLDR(esize, msize int, signed bool, qd uint8, addr uint64) error {
	c := u.core
	mask := c.ElementMask()
	d := &c.V[qd]
	for b := 0; b < 16; b += esize {
		if mask&(1<<b) != 0 {
			v, err := u.mem.Load(addr, msize)
			if err != nil {
				return err
			}
			writeRaw(d, b, esize, signExtend(v, msize, signed))
		}
		addr += uint64(msize)
	}
	c.AdvanceVPT()
	return nil
}

// VSTR performs a contiguous, possibly narrowing, vector store from Qd.
// Each element writes its low msize bytes. Predication, address
// stepping, and fault behavior mirror VLDR.
func (u *VecUnit) VSTR(esize, msize int, qd uint8, addr uint64) error {
	c := u.core
	mask := c.ElementMask()
	d := &c.V[qd]
	for b := 0; b < 16; b += esize {
		if mask&(1<<b) != 0 {
			if err := u.mem.Store(addr, msize, readRaw(d, b, esize)); err != nil {
				return err
			}
		}
		addr += uint64(msize)
	}
	c.AdvanceVPT()
	return nil
}
