package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/emu"
)

var _ = Describe("Carry chain", func() {
	var (
		core *emu.Core
		unit *emu.VecUnit
	)

	BeforeEach(func() {
		core = emu.NewCore()
		unit = emu.NewVecUnit(core, emu.NewMemory())
	})

	Describe("VADCI", func() {
		It("should propagate the carry across lanes", func() {
			core.WriteLane32(0, 0, 0xFFFFFFFF)
			core.WriteLane32(0, 1, 1)
			core.WriteLane32(1, 0, 1)

			unit.VADCI(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(2)))
			Expect(core.ReadLane32(2, 2)).To(Equal(uint32(0)))
			Expect(core.ReadLane32(2, 3)).To(Equal(uint32(0)))
			Expect(core.Carry()).To(BeFalse())
		})

		It("should report a carry out of the top lane", func() {
			core.WriteLane32(0, 3, 0xFFFFFFFF)
			core.WriteLane32(1, 3, 1)

			unit.VADCI(2, 0, 1)

			Expect(core.ReadLane32(2, 3)).To(Equal(uint32(0)))
			Expect(core.Carry()).To(BeTrue())
		})

		It("should ignore a stale carry flag", func() {
			core.SetCarry(true)
			core.WriteLane32(0, 0, 5)
			core.WriteLane32(1, 0, 5)

			unit.VADCI(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(10)))
		})
	})

	Describe("VADC", func() {
		It("should consume the incoming carry flag", func() {
			core.SetCarry(true)
			core.WriteLane32(0, 0, 5)
			core.WriteLane32(1, 0, 5)

			unit.VADC(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(11)))
		})

		It("should compute carries through masked-off lanes without capturing them", func() {
			core.WriteLane32(0, 0, 0xFFFFFFFF)
			core.WriteLane32(1, 0, 1)

			// Lane 0 predicated off: its wraparound is computed but its
			// carry is not latched into the chain.
			core.SetP0(0xFFF0)
			core.SetVPTMasks(0x8, 0x8)

			unit.VADC(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(0)))
			Expect(core.Carry()).To(BeFalse())
		})

		It("should not touch the flags when no 32-bit lane is active", func() {
			core.FPSCR = emu.FPSCRN | emu.FPSCRZ
			core.SetP0(0x0000)
			core.SetVPTMasks(0x8, 0x8)

			unit.VADC(2, 0, 1)

			Expect(core.FPSCR & emu.FPSCRNZCV).To(Equal(emu.FPSCRN | emu.FPSCRZ))
		})

		It("should clear N, Z and V when it updates flags", func() {
			core.FPSCR = emu.FPSCRN | emu.FPSCRZ | emu.FPSCRV

			unit.VADCI(2, 0, 1)

			Expect(core.FPSCR & emu.FPSCRNZCV).To(Equal(uint32(0)))
		})
	})

	Describe("VSBCI", func() {
		It("should subtract with an initial borrow-free carry", func() {
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(1, 0, 3)

			unit.VSBCI(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(7)))
			Expect(core.Carry()).To(BeTrue())
		})

		It("should borrow across lanes", func() {
			// 0x1_00000000 - 1 as a 128-bit quantity.
			core.WriteLane32(0, 1, 1)
			core.WriteLane32(1, 0, 1)

			unit.VSBCI(2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0xFFFFFFFF)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(0)))
		})
	})

	Describe("VSBC", func() {
		It("should apply an incoming borrow when carry is clear", func() {
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(1, 0, 3)
			core.SetCarry(false)

			unit.VSBC(2, 0, 1)

			// 10 - 3 - 1
			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(6)))
		})
	})
})
