package emu

// VecUnit executes MVE vector instructions against one core's state.
// Every operation derives its active-lane mask from the core's predicate,
// loop and beat state, commits results through the byte-granular merge
// path, and advances the predication state exactly once on completion.
// Load/store operations go through the fault-raising memory primitives;
// a fault aborts the instruction before any state advance.
type VecUnit struct {
	core *Core
	mem  *Memory
}

// NewVecUnit creates a vector execution unit bound to a core and memory.
func NewVecUnit(core *Core, mem *Memory) *VecUnit {
	return &VecUnit{core: core, mem: mem}
}

// Core returns the core state this unit executes against.
func (u *VecUnit) Core() *Core {
	return u.core
}

// setQC sets the sticky saturation flag; it is never cleared implicitly.
func (c *Core) setQC() {
	c.FPSCR |= FPSCRQC
}

// do1Op applies fn to each active lane of qm and merges into qd.
func do1Op[T lane](c *Core, qd, qm uint8, esize int, fn func(T) T) {
	d, m := &c.V[qd], &c.V[qm]
	mask := c.ElementMask()
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		mergeMask(d, e, esize, fn(readLane[T](m, e, esize)), mask)
	}
	c.AdvanceVPT()
}

// do2Op applies fn lane-wise to qn and qm and merges into qd.
func do2Op[T lane](c *Core, qd, qn, qm uint8, esize int, fn func(n, m T) T) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	mask := c.ElementMask()
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		mergeMask(d, e, esize,
			fn(readLane[T](n, e, esize), readLane[T](m, e, esize)), mask)
	}
	c.AdvanceVPT()
}

// do2OpSat is do2Op for operations that may saturate: a lane that
// saturates while its low mask bit is active sets the sticky QC flag.
func do2OpSat[T lane](c *Core, qd, qn, qm uint8, esize int,
	fn func(n, m T, sat *bool) T) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	mask := c.ElementMask()
	qc := false
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		sat := false
		r := fn(readLane[T](n, e, esize), readLane[T](m, e, esize), &sat)
		mergeMask(d, e, esize, r, mask)
		qc = qc || (sat && mask&1 != 0)
	}
	if qc {
		c.setQC()
	}
	c.AdvanceVPT()
}

// do2OpScalar applies fn lane-wise between qn and a broadcast scalar.
func do2OpScalar[T lane](c *Core, qd, qn uint8, m T, esize int,
	fn func(n, m T) T) {
	d, n := &c.V[qd], &c.V[qn]
	mask := c.ElementMask()
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		mergeMask(d, e, esize, fn(readLane[T](n, e, esize), m), mask)
	}
	c.AdvanceVPT()
}

// do2OpSatScalar is do2OpScalar with sticky-QC accounting.
func do2OpSatScalar[T lane](c *Core, qd, qn uint8, m T, esize int,
	fn func(n, m T, sat *bool) T) {
	d, n := &c.V[qd], &c.V[qn]
	mask := c.ElementMask()
	qc := false
	for e := 0; e < 16/esize; e, mask = e+1, mask>>esize {
		sat := false
		mergeMask(d, e, esize, fn(readLane[T](n, e, esize), m, &sat), mask)
		qc = qc || (sat && mask&1 != 0)
	}
	if qc {
		c.setQC()
	}
	c.AdvanceVPT()
}

// do2OpLong reads half-width sub-lanes (top selects which half of each
// result-wide lane) and produces result lanes of twice the input width.
// T is the input element type, L the result type; lesize = 2*esize.
func do2OpLong[T lane, L lane](c *Core, qd, qn, qm uint8, esize, top int,
	fn func(n, m L) L) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	lesize := esize * 2
	mask := c.ElementMask()
	for le := 0; le < 16/lesize; le, mask = le+1, mask>>lesize {
		r := fn(L(readLane[T](n, le*2+top, esize)),
			L(readLane[T](m, le*2+top, esize)))
		mergeMask(d, le, lesize, r, mask)
	}
	c.AdvanceVPT()
}

// do2OpSatLong is the saturating widening form. satMask selects which bits
// of the per-lane mask slice gate saturation propagation into QC: for
// 16x16->32 only the bit of the half actually consumed matters, while for
// 32x32->64 either half's bit propagates.
func do2OpSatLong[T lane, L lane](c *Core, qd, qn, qm uint8, esize, top int,
	satMask uint16, fn func(n, m L, sat *bool) L) {
	d, n, m := &c.V[qd], &c.V[qn], &c.V[qm]
	lesize := esize * 2
	mask := c.ElementMask()
	qc := false
	for le := 0; le < 16/lesize; le, mask = le+1, mask>>lesize {
		sat := false
		r := fn(L(readLane[T](n, le*2+top, esize)),
			L(readLane[T](m, le*2+top, esize)), &sat)
		mergeMask(d, le, lesize, r, mask)
		qc = qc || (sat && mask&satMask != 0)
	}
	if qc {
		c.setQC()
	}
	c.AdvanceVPT()
}

// Saturation propagation masks for the widening saturating ops.
const (
	satMask16B uint16 = 1
	satMask16T uint16 = 1 << 2
	satMask32  uint16 = 1<<4 | 1
)
