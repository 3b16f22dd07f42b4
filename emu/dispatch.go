package emu

import (
	"fmt"

	"github.com/sarchlab/m55sim/insts"
)

// dupConst replicates the low esize bytes of v across a 32-bit word, the
// broadcast form VDUP stores into every lane.
func dupConst(v uint32, esize int) uint32 {
	switch esize {
	case 1:
		return (v & 0xff) * 0x01010101
	case 2:
		return (v & 0xffff) * 0x00010001
	case 4:
		return v
	default:
		panic(errBadESize)
	}
}

// Execute runs one decoded vector instruction against the unit's core and
// memory. For reduction families it returns the updated accumulator; the
// caller writes it back to the scalar register file. A memory fault from
// VLDR/VSTR is returned with the beat and predicate state unchanged.
func (u *VecUnit) Execute(inst *insts.VecInst) (uint64, error) {
	esize := int(inst.ESize)
	qd, qn, qm := inst.Qd, inst.Qn, inst.Qm

	switch inst.Op {
	case insts.OpVAND:
		u.VAND(qd, qn, qm)
	case insts.OpVBIC:
		u.VBIC(qd, qn, qm)
	case insts.OpVORR:
		u.VORR(qd, qn, qm)
	case insts.OpVORN:
		u.VORN(qd, qn, qm)
	case insts.OpVEOR:
		u.VEOR(qd, qn, qm)

	case insts.OpVABS:
		u.VABS(esize, qd, qm)
	case insts.OpVNEG:
		u.VNEG(esize, qd, qm)
	case insts.OpVMVN:
		u.VMVN(qd, qm)
	case insts.OpVCLS:
		u.VCLS(esize, qd, qm)
	case insts.OpVCLZ:
		u.VCLZ(esize, qd, qm)
	case insts.OpVREV16:
		u.VREV16(qd, qm)
	case insts.OpVREV32:
		u.VREV32(esize, qd, qm)
	case insts.OpVREV64:
		u.VREV64(esize, qd, qm)
	case insts.OpVDUP:
		u.VDUP(qd, dupConst(inst.Scalar, esize))

	case insts.OpVADD:
		u.VADD(esize, qd, qn, qm)
	case insts.OpVSUB:
		u.VSUB(esize, qd, qn, qm)
	case insts.OpVMUL:
		u.VMUL(esize, qd, qn, qm)

	case insts.OpVMAX:
		if inst.Signed {
			u.VMAXS(esize, qd, qn, qm)
		} else {
			u.VMAXU(esize, qd, qn, qm)
		}
	case insts.OpVMIN:
		if inst.Signed {
			u.VMINS(esize, qd, qn, qm)
		} else {
			u.VMINU(esize, qd, qn, qm)
		}
	case insts.OpVABD:
		if inst.Signed {
			u.VABDS(esize, qd, qn, qm)
		} else {
			u.VABDU(esize, qd, qn, qm)
		}

	case insts.OpVHADD:
		if inst.Signed {
			u.VHADDS(esize, qd, qn, qm)
		} else {
			u.VHADDU(esize, qd, qn, qm)
		}
	case insts.OpVHSUB:
		if inst.Signed {
			u.VHSUBS(esize, qd, qn, qm)
		} else {
			u.VHSUBU(esize, qd, qn, qm)
		}
	case insts.OpVRHADD:
		if inst.Signed {
			u.VRHADDS(esize, qd, qn, qm)
		} else {
			u.VRHADDU(esize, qd, qn, qm)
		}

	case insts.OpVMULH:
		if inst.Signed {
			u.VMULHS(esize, qd, qn, qm)
		} else {
			u.VMULHU(esize, qd, qn, qm)
		}
	case insts.OpVRMULH:
		if inst.Signed {
			u.VRMULHS(esize, qd, qn, qm)
		} else {
			u.VRMULHU(esize, qd, qn, qm)
		}

	case insts.OpVMULLB, insts.OpVMULLT:
		top := 0
		if inst.Op == insts.OpVMULLT {
			top = 1
		}
		if inst.Signed {
			u.VMULLS(esize, top, qd, qn, qm)
		} else {
			u.VMULLU(esize, top, qd, qn, qm)
		}

	case insts.OpVSHL:
		if inst.Signed {
			u.VSHLS(esize, qd, qn, qm)
		} else {
			u.VSHLU(esize, qd, qn, qm)
		}
	case insts.OpVRSHL:
		if inst.Signed {
			u.VRSHLS(esize, qd, qn, qm)
		} else {
			u.VRSHLU(esize, qd, qn, qm)
		}
	case insts.OpVQSHL:
		if inst.Signed {
			u.VQSHLS(esize, qd, qn, qm)
		} else {
			u.VQSHLU(esize, qd, qn, qm)
		}
	case insts.OpVQRSHL:
		if inst.Signed {
			u.VQRSHLS(esize, qd, qn, qm)
		} else {
			u.VQRSHLU(esize, qd, qn, qm)
		}

	case insts.OpVQADD:
		if inst.Signed {
			u.VQADDS(esize, qd, qn, qm)
		} else {
			u.VQADDU(esize, qd, qn, qm)
		}
	case insts.OpVQSUB:
		if inst.Signed {
			u.VQSUBS(esize, qd, qn, qm)
		} else {
			u.VQSUBU(esize, qd, qn, qm)
		}
	case insts.OpVQDMULH:
		u.VQDMULH(esize, qd, qn, qm)
	case insts.OpVQRDMULH:
		u.VQRDMULH(esize, qd, qn, qm)
	case insts.OpVQDMULLB:
		u.VQDMULLB(esize, qd, qn, qm)
	case insts.OpVQDMULLT:
		u.VQDMULLT(esize, qd, qn, qm)

	case insts.OpVCADD90:
		u.VCADD90(esize, qd, qn, qm)
	case insts.OpVCADD270:
		u.VCADD270(esize, qd, qn, qm)
	case insts.OpVHCADD90:
		u.VHCADD90(esize, qd, qn, qm)
	case insts.OpVHCADD270:
		u.VHCADD270(esize, qd, qn, qm)

	case insts.OpVADC:
		u.VADC(qd, qn, qm)
	case insts.OpVSBC:
		u.VSBC(qd, qn, qm)
	case insts.OpVADCI:
		u.VADCI(qd, qn, qm)
	case insts.OpVSBCI:
		u.VSBCI(qd, qn, qm)

	case insts.OpVQDMLADH:
		u.VQDMLADH(esize, inst.X, false, qd, qn, qm)
	case insts.OpVQRDMLADH:
		u.VQDMLADH(esize, inst.X, true, qd, qn, qm)
	case insts.OpVQDMLSDH:
		u.VQDMLSDH(esize, inst.X, false, qd, qn, qm)
	case insts.OpVQRDMLSDH:
		u.VQDMLSDH(esize, inst.X, true, qd, qn, qm)

	case insts.OpVADDScalar:
		u.VADDScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVSUBScalar:
		u.VSUBScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVMULScalar:
		u.VMULScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVHADDScalar:
		if inst.Signed {
			u.VHADDSScalar(esize, qd, qn, inst.Scalar)
		} else {
			u.VHADDUScalar(esize, qd, qn, inst.Scalar)
		}
	case insts.OpVHSUBScalar:
		if inst.Signed {
			u.VHSUBSScalar(esize, qd, qn, inst.Scalar)
		} else {
			u.VHSUBUScalar(esize, qd, qn, inst.Scalar)
		}
	case insts.OpVQADDScalar:
		if inst.Signed {
			u.VQADDSScalar(esize, qd, qn, inst.Scalar)
		} else {
			u.VQADDUScalar(esize, qd, qn, inst.Scalar)
		}
	case insts.OpVQSUBScalar:
		if inst.Signed {
			u.VQSUBSScalar(esize, qd, qn, inst.Scalar)
		} else {
			u.VQSUBUScalar(esize, qd, qn, inst.Scalar)
		}
	case insts.OpVQDMULHScalar:
		u.VQDMULHScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVQRDMULHScalar:
		u.VQRDMULHScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVQDMULLBScalar:
		u.VQDMULLBScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVQDMULLTScalar:
		u.VQDMULLTScalar(esize, qd, qn, inst.Scalar)
	case insts.OpVBRSR:
		u.VBRSR(esize, qd, qn, inst.Scalar)

	case insts.OpVMLALDAV:
		if inst.Signed {
			return u.VMLALDAVS(esize, qn, qm, inst.Acc, inst.X, false), nil
		}
		return u.VMLALDAVU(esize, qn, qm, inst.Acc), nil
	case insts.OpVMLSLDAV:
		return u.VMLALDAVS(esize, qn, qm, inst.Acc, inst.X, true), nil
	case insts.OpVRMLALDAVH:
		if inst.Signed {
			return u.VRMLALDAVHS(qn, qm, inst.Acc, inst.X, false), nil
		}
		return u.VRMLALDAVHU(qn, qm, inst.Acc), nil
	case insts.OpVRMLSLDAVH:
		return u.VRMLALDAVHS(qn, qm, inst.Acc, inst.X, true), nil
	case insts.OpVADDV:
		return u.VADDV(esize, inst.Signed, qm, inst.Acc), nil

	case insts.OpVLDR:
		return 0, u.VLDR(esize, int(inst.MemSize), inst.Signed, qd, inst.Addr)
	case insts.OpVSTR:
		return 0, u.VSTR(esize, int(inst.MemSize), qd, inst.Addr)

	default:
		return 0, fmt.Errorf("emu: unknown vector op %d", inst.Op)
	}
	return 0, nil
}
