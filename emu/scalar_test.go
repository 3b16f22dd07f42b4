package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/emu"
)

var _ = Describe("Scalar-operand forms", func() {
	var (
		core *emu.Core
		unit *emu.VecUnit
	)

	BeforeEach(func() {
		core = emu.NewCore()
		unit = emu.NewVecUnit(core, emu.NewMemory())
	})

	It("should broadcast the scalar across every lane", func() {
		for e := uint8(0); e < 16; e++ {
			core.WriteLane8(0, e, e)
		}

		unit.VADDScalar(1, 1, 0, 5)

		for e := uint8(0); e < 16; e++ {
			Expect(core.ReadLane8(1, e)).To(Equal(e + 5))
		}
	})

	It("should truncate the scalar to the element width", func() {
		core.WriteLane8(0, 0, 1)

		unit.VADDScalar(1, 1, 0, 0x1FF)

		// Low byte of the scalar only.
		Expect(core.ReadLane8(1, 0)).To(Equal(uint8(0)))
	})

	It("should subtract and multiply by the scalar", func() {
		core.WriteLane16(0, 0, 100)

		unit.VSUBScalar(2, 1, 0, 30)
		Expect(core.ReadLane16(1, 0)).To(Equal(uint16(70)))

		unit.VMULScalar(2, 2, 0, 3)
		Expect(core.ReadLane16(2, 0)).To(Equal(uint16(300)))
	})

	It("should halve the scalar sum per signedness", func() {
		core.WriteLane8(0, 0, 0xFB) // -5

		unit.VHADDSScalar(1, 1, 0, 2)
		Expect(core.ReadLane8(1, 0)).To(Equal(uint8(0xFE))) // -2

		core.WriteLane8(0, 0, 251)
		unit.VHADDUScalar(1, 2, 0, 2)
		Expect(core.ReadLane8(2, 0)).To(Equal(uint8(126)))
	})

	It("should saturate the scalar saturating forms and set QC", func() {
		core.WriteLane8(0, 0, 100)

		unit.VQADDSScalar(1, 1, 0, 100)

		Expect(core.ReadLane8(1, 0)).To(Equal(uint8(127)))
		Expect(core.QC()).To(BeTrue())
	})

	It("should compute the scalar doubling multiply high", func() {
		core.WriteLane16(0, 0, 0x4000)

		unit.VQDMULHScalar(2, 1, 0, 0x4000)

		Expect(core.ReadLane16(1, 0)).To(Equal(uint16(0x2000)))
	})

	Describe("VQDMULL scalar", func() {
		It("should widen the bottom sub-lanes against the scalar", func() {
			core.WriteLane16(0, 0, 1000)
			core.WriteLane16(0, 2, 2000)

			unit.VQDMULLBScalar(2, 1, 0, 3)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(6000)))
			Expect(core.ReadLane32(1, 1)).To(Equal(uint32(12000)))
		})

		It("should saturate and set QC on min times min", func() {
			core.WriteLane16(0, 0, 0x8000)

			unit.VQDMULLBScalar(2, 1, 0, 0x8000)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(0x7FFFFFFF)))
			Expect(core.QC()).To(BeTrue())
		})
	})

	Describe("VBRSR", func() {
		It("should reverse the requested number of bits", func() {
			core.WriteLane32(0, 0, 0b1101)

			unit.VBRSR(4, 1, 0, 4)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(0b1011)))
		})

		It("should reverse the full lane for a count of 32", func() {
			core.WriteLane32(0, 0, 0x80000001)

			unit.VBRSR(4, 1, 0, 32)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(0x80000001)))
		})

		It("should produce zero for a zero bit count", func() {
			core.WriteLane8(0, 0, 0xFF)

			unit.VBRSR(1, 1, 0, 0)

			Expect(core.ReadLane8(1, 0)).To(Equal(uint8(0)))
		})

		It("should reverse the whole lane when the count exceeds the width", func() {
			core.WriteLane8(0, 0, 0x01)
			core.WriteLane16(1, 0, 0x0001)

			unit.VBRSR(1, 2, 0, 9)
			unit.VBRSR(2, 3, 1, 20)

			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(0x80)))
			Expect(core.ReadLane16(3, 0)).To(Equal(uint16(0x8000)))
		})
	})

	Describe("VDUP", func() {
		It("should replicate the value into every active word", func() {
			unit.VDUP(0, 0xDEADBEEF)

			for e := uint8(0); e < 4; e++ {
				Expect(core.ReadLane32(0, e)).To(Equal(uint32(0xDEADBEEF)))
			}
		})

		It("should respect byte predication", func() {
			core.WriteQ(0, 0x1111111111111111, 0x1111111111111111)
			core.SetP0(0x000F)
			core.SetVPTMasks(0x8, 0x8)

			unit.VDUP(0, 0xDEADBEEF)

			Expect(core.ReadLane32(0, 0)).To(Equal(uint32(0xDEADBEEF)))
			Expect(core.ReadLane32(0, 1)).To(Equal(uint32(0x11111111)))
		})
	})
})
