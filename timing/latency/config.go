package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds beat and latency parameters for the vector pipeline.
// Values follow Cortex-M55 (Helium) estimates: a 128-bit instruction is
// four 32-bit beats, and the vector datapath retires two beats per cycle.
type TimingConfig struct {
	// BeatsPerCycle is the number of 32-bit beats the vector datapath
	// retires each cycle. Default: 2 (dual-beat M55 configuration).
	BeatsPerCycle uint64 `json:"beats_per_cycle"`

	// MulExtraCycles is the additional latency of multiply-class beats
	// over simple ALU beats. Default: 1 cycle.
	MulExtraCycles uint64 `json:"mul_extra_cycles"`

	// SatExtraCycles is the additional latency of saturating and
	// doubling-multiply beats. Default: 1 cycle.
	SatExtraCycles uint64 `json:"sat_extra_cycles"`

	// ReduceExtraCycles is the additional latency of cross-lane
	// accumulating reductions. Default: 2 cycles.
	ReduceExtraCycles uint64 `json:"reduce_extra_cycles"`

	// LoadBeatLatency is the per-beat latency of a vector load assuming
	// an L1 hit. Default: 2 cycles.
	LoadBeatLatency uint64 `json:"load_beat_latency"`

	// StoreBeatLatency is the per-beat latency of a vector store.
	// Default: 1 cycle.
	StoreBeatLatency uint64 `json:"store_beat_latency"`

	// L1HitLatency is the L1 data cache hit latency. Default: 1 cycle.
	L1HitLatency uint64 `json:"l1_hit_latency"`

	// MemoryLatency is the latency of a miss serviced by backing memory.
	// Default: 8 cycles (on-chip SRAM behind the M55 AXI port).
	MemoryLatency uint64 `json:"memory_latency"`
}

// DefaultTimingConfig returns a TimingConfig with M55-based default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		BeatsPerCycle:     2,
		MulExtraCycles:    1,
		SatExtraCycles:    1,
		ReduceExtraCycles: 2,
		LoadBeatLatency:   2,
		StoreBeatLatency:  1,
		L1HitLatency:      1,
		MemoryLatency:     8,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all timing values are usable.
func (c *TimingConfig) Validate() error {
	if c.BeatsPerCycle == 0 {
		return fmt.Errorf("beats_per_cycle must be > 0")
	}
	if c.BeatsPerCycle > 4 {
		return fmt.Errorf("beats_per_cycle must be <= 4")
	}
	if c.LoadBeatLatency == 0 {
		return fmt.Errorf("load_beat_latency must be > 0")
	}
	if c.StoreBeatLatency == 0 {
		return fmt.Errorf("store_beat_latency must be > 0")
	}
	if c.L1HitLatency == 0 {
		return fmt.Errorf("l1_hit_latency must be > 0")
	}
	if c.MemoryLatency == 0 {
		return fmt.Errorf("memory_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
