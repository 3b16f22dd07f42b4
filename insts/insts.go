// Package insts provides MVE (Helium) vector instruction definitions.
//
// This package defines the descriptor form of a decoded predicated vector
// instruction: the operation family, element size, register numbers, and any
// scalar operand or modifier flags. Decoding of T32 machine code into these
// descriptors is performed upstream; the emu package consumes descriptors
// as-is.
//
// Usage:
//
//	inst := &insts.VecInst{Op: insts.OpVADD, ESize: insts.Size32, Qd: 0, Qn: 1, Qm: 2}
//	acc, err := vecUnit.Execute(inst)
package insts

// Op represents an MVE vector operation family.
type Op uint16

// MVE vector operation families.
const (
	OpUnknown Op = iota

	// Bitwise, width-independent.
	OpVAND
	OpVBIC
	OpVORR
	OpVORN
	OpVEOR

	// One-operand.
	OpVABS
	OpVNEG
	OpVMVN
	OpVCLS
	OpVCLZ
	OpVREV16
	OpVREV32
	OpVREV64
	OpVDUP

	// Wrapping arithmetic.
	OpVADD
	OpVSUB
	OpVMUL

	// Min/max/absolute difference.
	OpVMAX
	OpVMIN
	OpVABD

	// Halving and rounding-halving arithmetic.
	OpVHADD
	OpVHSUB
	OpVRHADD

	// Multiply returning high half.
	OpVMULH
	OpVRMULH

	// Widening multiply (B/T selects the half).
	OpVMULLB
	OpVMULLT

	// Shifts by per-lane signed shift count.
	OpVSHL
	OpVRSHL
	OpVQSHL
	OpVQRSHL

	// Saturating arithmetic.
	OpVQADD
	OpVQSUB
	OpVQDMULH
	OpVQRDMULH
	OpVQDMULLB
	OpVQDMULLT

	// Complex rotate-add.
	OpVCADD90
	OpVCADD270
	OpVHCADD90
	OpVHCADD270

	// Carry chain.
	OpVADC
	OpVSBC
	OpVADCI
	OpVSBCI

	// Saturating doubling multiply-add/sub dual high.
	OpVQDMLADH
	OpVQRDMLADH
	OpVQDMLSDH
	OpVQRDMLSDH

	// Scalar-operand forms.
	OpVADDScalar
	OpVSUBScalar
	OpVMULScalar
	OpVHADDScalar
	OpVHSUBScalar
	OpVQADDScalar
	OpVQSUBScalar
	OpVQDMULHScalar
	OpVQRDMULHScalar
	OpVQDMULLBScalar
	OpVQDMULLTScalar
	OpVBRSR

	// Cross-lane reductions.
	OpVMLALDAV
	OpVMLSLDAV
	OpVRMLALDAVH
	OpVRMLSLDAVH
	OpVADDV

	// Predicated load/store.
	OpVLDR
	OpVSTR
)

// ESize is the element size of a vector operation, in bytes.
type ESize uint8

// Element sizes. A 128-bit Q register holds 16/ESize lanes.
const (
	Size8  ESize = 1
	Size16 ESize = 2
	Size32 ESize = 4
	Size64 ESize = 8
)

// Bits returns the element width in bits.
func (e ESize) Bits() int {
	return int(e) * 8
}

// VecInst is a decoded MVE vector instruction descriptor.
type VecInst struct {
	// Op is the operation family.
	Op Op

	// ESize is the element size. For widening operations it names the
	// input element size; the result lanes are twice as wide.
	ESize ESize

	// Qd, Qn, Qm are vector register numbers (0-7).
	Qd, Qn, Qm uint8

	// Signed selects the signed variant for families that have one.
	Signed bool

	// X selects the exchanged lane pairing (VMLALDAVX, VQDMLADHX, ...).
	X bool

	// Scalar is the general-purpose register operand for scalar forms,
	// already read from the scalar register file by the dispatcher.
	Scalar uint32

	// Acc seeds the accumulator for reduction families; the dispatcher
	// writes the returned accumulator back to the scalar registers.
	Acc uint64

	// Addr is the base address for VLDR/VSTR, already computed by the
	// dispatcher from the base register and immediate offset.
	Addr uint64

	// MemSize is the memory element size in bytes for VLDR/VSTR. When it
	// is smaller than ESize the load widens (sign- or zero-extending per
	// Signed) and the store narrows.
	MemSize ESize
}
