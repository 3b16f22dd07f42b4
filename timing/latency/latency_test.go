package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m55sim/insts"
	"github.com/sarchlab/m55sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("default timing values", func() {
		It("should retire two beats per cycle", func() {
			Expect(table.Config().BeatsPerCycle).To(Equal(uint64(2)))
		})

		It("should take two cycles for a simple vector op", func() {
			inst := &insts.VecInst{Op: insts.OpVADD, ESize: insts.Size32}
			Expect(table.GetLatency(inst)).To(Equal(uint64(2)))
		})

		It("should add the multiply penalty", func() {
			inst := &insts.VecInst{Op: insts.OpVMUL, ESize: insts.Size16}
			Expect(table.GetLatency(inst)).To(Equal(uint64(3)))
		})

		It("should add the saturation penalty", func() {
			inst := &insts.VecInst{Op: insts.OpVQRDMULH, ESize: insts.Size16}
			Expect(table.GetLatency(inst)).To(Equal(uint64(3)))
		})

		It("should add the reduction penalty", func() {
			inst := &insts.VecInst{Op: insts.OpVMLALDAV, ESize: insts.Size16}
			Expect(table.GetLatency(inst)).To(Equal(uint64(4)))
		})

		It("should charge loads the per-beat memory latency", func() {
			inst := &insts.VecInst{Op: insts.OpVLDR, ESize: insts.Size32}
			Expect(table.GetLatency(inst)).To(Equal(uint64(3)))
		})

		It("should default to one cycle for a nil instruction", func() {
			Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
		})
	})

	Describe("instruction classification", func() {
		It("should classify memory operations", func() {
			Expect(table.IsMemoryOp(&insts.VecInst{Op: insts.OpVLDR})).To(BeTrue())
			Expect(table.IsMemoryOp(&insts.VecInst{Op: insts.OpVSTR})).To(BeTrue())
			Expect(table.IsMemoryOp(&insts.VecInst{Op: insts.OpVADD})).To(BeFalse())
		})

		It("should distinguish loads from stores", func() {
			Expect(table.IsLoadOp(&insts.VecInst{Op: insts.OpVLDR})).To(BeTrue())
			Expect(table.IsLoadOp(&insts.VecInst{Op: insts.OpVSTR})).To(BeFalse())
			Expect(table.IsStoreOp(&insts.VecInst{Op: insts.OpVSTR})).To(BeTrue())
		})
	})

	Describe("custom configuration", func() {
		It("should honor a single-beat datapath", func() {
			config := latency.DefaultTimingConfig()
			config.BeatsPerCycle = 1
			table = latency.NewTableWithConfig(config)

			inst := &insts.VecInst{Op: insts.OpVADD, ESize: insts.Size32}
			Expect(table.GetLatency(inst)).To(Equal(uint64(4)))
		})

		It("should round up a quad-beat datapath to one cycle", func() {
			config := latency.DefaultTimingConfig()
			config.BeatsPerCycle = 4
			table = latency.NewTableWithConfig(config)

			inst := &insts.VecInst{Op: insts.OpVAND, ESize: insts.Size8}
			Expect(table.GetLatency(inst)).To(Equal(uint64(1)))
		})
	})

	Describe("configuration files", func() {
		It("should round-trip through JSON", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "timing.json")

			config := latency.DefaultTimingConfig()
			config.MulExtraCycles = 5
			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MulExtraCycles).To(Equal(uint64(5)))
			Expect(loaded.BeatsPerCycle).To(Equal(uint64(2)))
		})

		It("should keep defaults for absent fields", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "timing.json")
			Expect(os.WriteFile(path, []byte(`{"beats_per_cycle": 1}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.BeatsPerCycle).To(Equal(uint64(1)))
			Expect(loaded.LoadBeatLatency).To(Equal(uint64(2)))
		})

		It("should fail for a missing file", func() {
			_, err := latency.LoadConfig("/nonexistent/timing.json")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("validation", func() {
		It("should accept the defaults", func() {
			Expect(latency.DefaultTimingConfig().Validate()).To(Succeed())
		})

		It("should reject zero beats per cycle", func() {
			config := latency.DefaultTimingConfig()
			config.BeatsPerCycle = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject more than four beats per cycle", func() {
			config := latency.DefaultTimingConfig()
			config.BeatsPerCycle = 8
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should produce an independent copy", func() {
			config := latency.DefaultTimingConfig()
			clone := config.Clone()
			clone.MemoryLatency = 99

			Expect(config.MemoryLatency).To(Equal(uint64(8)))
		})
	})
})
