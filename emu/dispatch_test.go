package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/emu"
	"github.com/sarchlab/m55sim/insts"
)

var _ = Describe("Execute", func() {
	var (
		core *emu.Core
		mem  *emu.Memory
		unit *emu.VecUnit
	)

	BeforeEach(func() {
		core = emu.NewCore()
		mem = emu.NewMemory()
		unit = emu.NewVecUnit(core, mem)
	})

	It("should route two-operand arithmetic", func() {
		core.WriteLane32(1, 0, 40)
		core.WriteLane32(2, 0, 2)

		_, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVADD, ESize: insts.Size32, Qd: 0, Qn: 1, Qm: 2,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(core.ReadLane32(0, 0)).To(Equal(uint32(42)))
	})

	It("should select the signed variant from the descriptor", func() {
		core.WriteLane8(1, 0, 0xFF) // -1 signed, 255 unsigned
		core.WriteLane8(2, 0, 1)

		_, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVMAX, ESize: insts.Size8, Qd: 0, Qn: 1, Qm: 2,
			Signed: true,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(core.ReadLane8(0, 0)).To(Equal(uint8(1)))
	})

	It("should select the exchanged reduction from the descriptor", func() {
		core.WriteLane16(1, 0, 2)
		core.WriteLane16(1, 1, 3)
		core.WriteLane16(2, 0, 10)
		core.WriteLane16(2, 1, 100)

		acc, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVMLALDAV, ESize: insts.Size16, Qn: 1, Qm: 2,
			Signed: true, X: true,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(acc).To(Equal(uint64(3*10 + 2*100)))
	})

	It("should thread the seed accumulator through reductions", func() {
		core.WriteLane8(1, 0, 5)

		acc, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVADDV, ESize: insts.Size8, Qm: 1, Acc: 1000,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(acc).To(Equal(uint64(1005)))
	})

	It("should replicate narrow VDUP scalars", func() {
		_, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVDUP, ESize: insts.Size8, Qd: 0, Scalar: 0xAB,
		})

		Expect(err).NotTo(HaveOccurred())
		for e := uint8(0); e < 16; e++ {
			Expect(core.ReadLane8(0, e)).To(Equal(uint8(0xAB)))
		}
	})

	It("should pass load faults through", func() {
		_, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVLDR, ESize: insts.Size32, MemSize: insts.Size32,
			Qd: 0, Addr: 0x8000,
		})

		Expect(err).To(HaveOccurred())
		var fault *emu.MemFault
		Expect(err).To(BeAssignableToTypeOf(fault))
	})

	It("should run a widening load from the descriptor", func() {
		mem.Write8(0x100, 0xFE)

		_, err := unit.Execute(&insts.VecInst{
			Op: insts.OpVLDR, ESize: insts.Size16, MemSize: insts.Size8,
			Signed: true, Qd: 0, Addr: 0x100,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(core.ReadLane16(0, 0)).To(Equal(uint16(0xFFFE)))
	})

	It("should reject an unknown operation", func() {
		_, err := unit.Execute(&insts.VecInst{Op: insts.OpUnknown})

		Expect(err).To(HaveOccurred())
	})
})
