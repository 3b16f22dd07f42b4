package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/insts"
)

var _ = Describe("ESize", func() {
	It("should report the element width in bits", func() {
		Expect(insts.Size8.Bits()).To(Equal(8))
		Expect(insts.Size16.Bits()).To(Equal(16))
		Expect(insts.Size32.Bits()).To(Equal(32))
		Expect(insts.Size64.Bits()).To(Equal(64))
	})
})

var _ = Describe("VecInst", func() {
	It("should default to the unknown operation", func() {
		var inst insts.VecInst
		Expect(inst.Op).To(Equal(insts.OpUnknown))
	})
})
