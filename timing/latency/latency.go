// Package latency provides beat-level timing models for the vector
// pipeline.
//
// An MVE instruction executes as four 32-bit beats. The table converts an
// instruction descriptor into a cycle count from the number of beats the
// datapath retires per cycle plus per-class extra latency, following
// Cortex-M55 estimates. Values are configurable via TimingConfig.
package latency

import (
	"github.com/sarchlab/m55sim/insts"
)

// beatsPerInst is the number of 32-bit beats in a 128-bit vector
// instruction.
const beatsPerInst = 4

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a latency table with default M55 timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a latency table with a custom timing
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// baseCycles is the cycles needed to retire all beats of one instruction.
func (t *Table) baseCycles() uint64 {
	return (beatsPerInst + t.config.BeatsPerCycle - 1) / t.config.BeatsPerCycle
}

// GetLatency returns the execution latency in cycles for the given
// instruction, assuming L1 hits for memory operations.
func (t *Table) GetLatency(inst *insts.VecInst) uint64 {
	if inst == nil {
		return 1
	}

	base := t.baseCycles()

	switch inst.Op {
	case insts.OpVMUL, insts.OpVMULH, insts.OpVRMULH,
		insts.OpVMULLB, insts.OpVMULLT, insts.OpVMULScalar:
		return base + t.config.MulExtraCycles

	case insts.OpVQADD, insts.OpVQSUB, insts.OpVQSHL, insts.OpVQRSHL,
		insts.OpVQDMULH, insts.OpVQRDMULH,
		insts.OpVQDMULLB, insts.OpVQDMULLT,
		insts.OpVQDMLADH, insts.OpVQRDMLADH,
		insts.OpVQDMLSDH, insts.OpVQRDMLSDH,
		insts.OpVQADDScalar, insts.OpVQSUBScalar,
		insts.OpVQDMULHScalar, insts.OpVQRDMULHScalar,
		insts.OpVQDMULLBScalar, insts.OpVQDMULLTScalar:
		return base + t.config.SatExtraCycles

	case insts.OpVMLALDAV, insts.OpVMLSLDAV,
		insts.OpVRMLALDAVH, insts.OpVRMLSLDAVH, insts.OpVADDV:
		return base + t.config.ReduceExtraCycles

	case insts.OpVLDR:
		return base + t.config.LoadBeatLatency - 1

	case insts.OpVSTR:
		return base + t.config.StoreBeatLatency - 1

	default:
		return base
	}
}

// IsMemoryOp returns true if the instruction accesses memory.
func (t *Table) IsMemoryOp(inst *insts.VecInst) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpVLDR || inst.Op == insts.OpVSTR
}

// IsLoadOp returns true if the instruction is a vector load.
func (t *Table) IsLoadOp(inst *insts.VecInst) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpVLDR
}

// IsStoreOp returns true if the instruction is a vector store.
func (t *Table) IsStoreOp(inst *insts.VecInst) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpVSTR
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
