package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/emu"
)

var _ = Describe("Vector ALU", func() {
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

	Describe("bitwise operations", func() {
		It("should AND across the full register", func() {
			core.WriteQ(0, 0xFF00FF00FF00FF00, 0x0123456789ABCDEF)
			core.WriteQ(1, 0xF0F0F0F0F0F0F0F0, 0xFFFFFFFF00000000)

			unit.VAND(2, 0, 1)

			lo, hi := core.ReadQ(2)
			Expect(lo).To(Equal(uint64(0xF000F000F000F000)))
			Expect(hi).To(Equal(uint64(0x0123456700000000)))
		})

		It("should clear bits with BIC", func() {
			core.WriteQ(0, 0xFFFFFFFFFFFFFFFF, 0)
			core.WriteQ(1, 0x00000000FFFFFFFF, 0)

			unit.VBIC(2, 0, 1)

			lo, _ := core.ReadQ(2)
			Expect(lo).To(Equal(uint64(0xFFFFFFFF00000000)))
		})

		It("should OR with complement", func() {
			core.WriteQ(0, 0, 0)
			core.WriteQ(1, 0x00FF00FF00FF00FF, 0xFFFFFFFFFFFFFFFF)

			unit.VORN(2, 0, 1)

			lo, hi := core.ReadQ(2)
			Expect(lo).To(Equal(uint64(0xFF00FF00FF00FF00)))
			Expect(hi).To(Equal(uint64(0)))
		})

		It("should invert with MVN", func() {
			core.WriteQ(0, 0x0123456789ABCDEF, 0xFFFFFFFFFFFFFFFF)

			unit.VMVN(1, 0)

			lo, hi := core.ReadQ(1)
			Expect(lo).To(Equal(uint64(0xFEDCBA9876543210)))
			Expect(hi).To(Equal(uint64(0)))
		})
	})

	Describe("VADD", func() {
		It("should add 8-bit lanes with wraparound", func() {
			core.WriteLane8(0, 0, 200)
			core.WriteLane8(1, 0, 100)
			core.WriteLane8(0, 5, 1)
			core.WriteLane8(1, 5, 2)

			unit.VADD(1, 2, 0, 1)

			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(44)))
			Expect(core.ReadLane8(2, 5)).To(Equal(uint8(3)))
		})

		It("should add 32-bit lanes", func() {
			core.WriteLane32(0, 0, 0xFFFFFFFF)
			core.WriteLane32(1, 0, 2)
			core.WriteLane32(0, 3, 1000)
			core.WriteLane32(1, 3, 2000)

			unit.VADD(4, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(1)))
			Expect(core.ReadLane32(2, 3)).To(Equal(uint32(3000)))
		})
	})

	Describe("VSUB", func() {
		It("should subtract 16-bit lanes with wraparound", func() {
			core.WriteLane16(0, 0, 5)
			core.WriteLane16(1, 0, 10)

			unit.VSUB(2, 2, 0, 1)

			Expect(core.ReadLane16(2, 0)).To(Equal(uint16(0xFFFB)))
		})
	})

	Describe("VMUL", func() {
		It("should keep the low half of the product", func() {
			core.WriteLane16(0, 1, 300)
			core.WriteLane16(1, 1, 300)

			unit.VMUL(2, 2, 0, 1)

			// 90000 mod 65536
			Expect(core.ReadLane16(2, 1)).To(Equal(uint16(24464)))
		})
	})

	Describe("min/max/abd", func() {
		It("should distinguish signed and unsigned maximum", func() {
			core.WriteLane8(0, 0, 0xFF) // -1 signed, 255 unsigned
			core.WriteLane8(1, 0, 1)

			unit.VMAXS(1, 2, 0, 1)
			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(1)))

			unit.VMAXU(1, 3, 0, 1)
			Expect(core.ReadLane8(3, 0)).To(Equal(uint8(0xFF)))
		})

		It("should distinguish signed and unsigned minimum", func() {
			core.WriteLane16(0, 0, 0x8000) // most negative signed
			core.WriteLane16(1, 0, 5)

			unit.VMINS(2, 2, 0, 1)
			Expect(core.ReadLane16(2, 0)).To(Equal(uint16(0x8000)))

			unit.VMINU(2, 3, 0, 1)
			Expect(core.ReadLane16(3, 0)).To(Equal(uint16(5)))
		})

		It("should compute the signed absolute difference", func() {
			core.WriteLane8(0, 0, 0xFB) // -5
			core.WriteLane8(1, 0, 3)

			unit.VABDS(1, 2, 0, 1)

			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(8)))
		})

		It("should compute the unsigned absolute difference", func() {
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(1, 0, 250)

			unit.VABDU(4, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(240)))
		})
	})

	Describe("halving arithmetic", func() {
		It("should halve toward negative infinity for signed inputs", func() {
			core.WriteLane8(0, 0, 0xFB) // -5
			core.WriteLane8(1, 0, 2)

			unit.VHADDS(1, 2, 0, 1)

			// (-5 + 2) >> 1 = -2
			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(0xFE)))
		})

		It("should not overflow the unsigned halving add", func() {
			core.WriteLane8(0, 0, 250)
			core.WriteLane8(1, 0, 250)

			unit.VHADDU(1, 2, 0, 1)

			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(250)))
		})

		It("should round the rounding halving add", func() {
			core.WriteLane16(0, 0, 5)
			core.WriteLane16(1, 0, 2)

			unit.VRHADDU(2, 2, 0, 1)

			// (5 + 2 + 1) >> 1 = 4
			Expect(core.ReadLane16(2, 0)).To(Equal(uint16(4)))
		})

		It("should halve the signed difference", func() {
			core.WriteLane32(0, 0, 3)
			core.WriteLane32(1, 0, 10)

			unit.VHSUBS(4, 2, 0, 1)

			// (3 - 10) >> 1 = -4
			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0xFFFFFFFC)))
		})
	})

	Describe("multiply high", func() {
		It("should return the high half of the signed product", func() {
			core.WriteLane16(0, 0, 0x8000)
			core.WriteLane16(1, 0, 0x8000)

			unit.VMULHS(2, 2, 0, 1)

			// (-32768)^2 >> 16
			Expect(core.ReadLane16(2, 0)).To(Equal(uint16(0x4000)))
		})

		It("should round the unsigned rounding variant", func() {
			core.WriteLane8(0, 0, 200)
			core.WriteLane8(1, 0, 200)

			unit.VRMULHU(1, 2, 0, 1)

			// (200*200 + 128) >> 8
			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(156)))
		})
	})

	Describe("widening multiply", func() {
		It("should multiply the bottom sub-lanes", func() {
			core.WriteLane16(0, 0, 0xFFFF) // -1 signed
			core.WriteLane16(1, 0, 7)

			unit.VMULLS(2, 0, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0xFFFFFFF9)))
		})

		It("should multiply the top sub-lanes", func() {
			core.WriteLane16(0, 1, 100)
			core.WriteLane16(1, 1, 200)

			unit.VMULLU(2, 1, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(20000)))
		})

		It("should widen 32-bit lanes to 64 bits", func() {
			core.WriteLane32(0, 0, 0x80000000)
			core.WriteLane32(1, 0, 0x80000000)

			unit.VMULLU(4, 0, 2, 0, 1)

			Expect(core.ReadLane64(2, 0)).To(Equal(uint64(0x4000000000000000)))
		})
	})

	Describe("one-operand forms", func() {
		It("should compute the absolute value, wrapping the minimum", func() {
			core.WriteLane8(0, 0, 0xFB) // -5
			core.WriteLane8(0, 1, 0x80) // -128

			unit.VABS(1, 1, 0)

			Expect(core.ReadLane8(1, 0)).To(Equal(uint8(5)))
			Expect(core.ReadLane8(1, 1)).To(Equal(uint8(0x80)))
		})

		It("should negate", func() {
			core.WriteLane16(0, 0, 7)

			unit.VNEG(2, 1, 0)

			Expect(core.ReadLane16(1, 0)).To(Equal(uint16(0xFFF9)))
		})

		It("should count leading sign bits", func() {
			core.WriteLane8(0, 0, 0xFF) // -1: all bits redundant
			core.WriteLane8(0, 1, 1)

			unit.VCLS(1, 1, 0)

			Expect(core.ReadLane8(1, 0)).To(Equal(uint8(7)))
			Expect(core.ReadLane8(1, 1)).To(Equal(uint8(6)))
		})

		It("should count leading zeros", func() {
			core.WriteLane32(0, 0, 0x0F000000)
			core.WriteLane32(0, 1, 0)

			unit.VCLZ(4, 1, 0)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(4)))
			Expect(core.ReadLane32(1, 1)).To(Equal(uint32(32)))
		})

		It("should reverse bytes within halfwords", func() {
			core.WriteLane16(0, 0, 0x1234)

			unit.VREV16(1, 0)

			Expect(core.ReadLane16(1, 0)).To(Equal(uint16(0x3412)))
		})

		It("should reverse halfwords within words", func() {
			core.WriteLane32(0, 0, 0x11223344)

			unit.VREV32(2, 1, 0)

			Expect(core.ReadLane32(1, 0)).To(Equal(uint32(0x33441122)))
		})

		It("should reverse words within doublewords", func() {
			core.WriteLane64(0, 0, 0x1122334455667788)

			unit.VREV64(4, 1, 0)

			Expect(core.ReadLane64(1, 0)).To(Equal(uint64(0x5566778811223344)))
		})
	})

	Describe("complex rotate-add", func() {
		It("should rotate by 90 degrees", func() {
			// Pairs (real, imag): n = (10, 20), m = (1, 2).
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(0, 1, 20)
			core.WriteLane32(1, 0, 1)
			core.WriteLane32(1, 1, 2)

			unit.VCADD90(4, 2, 0, 1)

			// even: n[0] - m[1]; odd: n[1] + m[0]
			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(8)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(21)))
		})

		It("should rotate by 270 degrees", func() {
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(0, 1, 20)
			core.WriteLane32(1, 0, 1)
			core.WriteLane32(1, 1, 2)

			unit.VCADD270(4, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(12)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(19)))
		})

		It("should tolerate the destination aliasing a source", func() {
			core.WriteLane16(0, 0, 100)
			core.WriteLane16(0, 1, 50)
			core.WriteLane16(1, 0, 7)
			core.WriteLane16(1, 1, 3)

			unit.VCADD90(2, 1, 0, 1)

			Expect(core.ReadLane16(1, 0)).To(Equal(uint16(97)))
			Expect(core.ReadLane16(1, 1)).To(Equal(uint16(57)))
		})

		It("should halve in the halving form", func() {
			core.WriteLane32(0, 0, 10)
			core.WriteLane32(0, 1, 20)
			core.WriteLane32(1, 0, 2)
			core.WriteLane32(1, 1, 4)

			unit.VHCADD90(4, 2, 0, 1)

			// even: (10-4)>>1; odd: (20+2)>>1
			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(3)))
			Expect(core.ReadLane32(2, 1)).To(Equal(uint32(11)))
		})
	})

	Describe("predicated write-back", func() {
		It("should leave inactive byte lanes untouched", func() {
			core.WriteQ(2, 0xAAAAAAAAAAAAAAAA, 0xAAAAAAAAAAAAAAAA)
			core.WriteLane8(0, 0, 1)
			core.WriteLane8(1, 0, 2)
			core.WriteLane8(0, 15, 10)
			core.WriteLane8(1, 15, 20)

			core.SetP0(0x8001)
			core.SetVPTMasks(0x8, 0x8)

			unit.VADD(1, 2, 0, 1)

			Expect(core.ReadLane8(2, 0)).To(Equal(uint8(3)))
			Expect(core.ReadLane8(2, 15)).To(Equal(uint8(30)))
			for e := uint8(1); e < 15; e++ {
				Expect(core.ReadLane8(2, e)).To(Equal(uint8(0xAA)))
			}
		})

		It("should merge partial bytes of a wide lane", func() {
			core.WriteQ(2, 0xAAAAAAAAAAAAAAAA, 0xAAAAAAAAAAAAAAAA)
			core.WriteLane32(0, 0, 0x01020304)
			core.WriteLane32(1, 0, 0)

			// Only the low two bytes of lane 0 are active.
			core.SetP0(0x0003)
			core.SetVPTMasks(0x8, 0x8)

			unit.VADD(4, 2, 0, 1)

			Expect(core.ReadLane32(2, 0)).To(Equal(uint32(0xAAAA0304)))
		})

		It("should be equivalent to a plain write when fully active", func() {
			core.WriteQ(2, 0x5555555555555555, 0x5555555555555555)
			core.WriteQ(0, 0x0101010101010101, 0x0101010101010101)
			core.WriteQ(1, 0x0202020202020202, 0x0202020202020202)

			unit.VADD(1, 2, 0, 1)

			lo, hi := core.ReadQ(2)
			Expect(lo).To(Equal(uint64(0x0303030303030303)))
			Expect(hi).To(Equal(uint64(0x0303030303030303)))
		})
	})
})
