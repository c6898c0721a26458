package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vellum-eda/tpgcore/valkind"
)

// Config is the top-level configuration for a tpgcore run: network
// construction, fault-simulator parallelism, and DTPG/solver knobs.
type Config struct {
	Network NetworkConfig `yaml:"network"`
	Fsim    FsimConfig    `yaml:"fsim"`
	Dtpg    DtpgConfig    `yaml:"dtpg"`
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig controls netbuild.Builder.Finish.
type NetworkConfig struct {
	// FaultType selects which fault catalogue Finish generates: "stuck-at",
	// "transition-delay", or "gate-exhaustive".
	FaultType string `yaml:"fault_type"`
	// WarnUnreachable is loaded from YAML but not read by Finish: the
	// §7 "unreachable logic" diagnostic is always emitted.
	WarnUnreachable bool `yaml:"warn_unreachable"`
}

// FsimConfig controls the reference fault simulator (SPEC_FULL.md §4.8/§5).
type FsimConfig struct {
	// PackedBitlen is PV_BITLEN, patterns-per-word. Ppsfp does not read it;
	// it always packs 64 patterns per word.
	PackedBitlen int `yaml:"packed_bitlen"`
	// Workers > 1 enables the pooled Sppfp/Ppsfp sharding mode backed by
	// JekaMas/workerpool; Workers <= 1 runs single-threaded.
	Workers int `yaml:"workers"`
}

// DtpgConfig controls DtpgEngine.
type DtpgConfig struct {
	// CubeCap bounds GenerateDetCond's per-fault PPO enumeration before it
	// reports DetCond.Overflow (SPEC_FULL.md §7/test scenario 6).
	CubeCap int `yaml:"cube_cap"`
	// UseFFREncoder selects the cheap FFR-local propagation encoder when the
	// fault's FFR root is also a PPO-dominating MFFC root; otherwise the
	// full twin-circuit ConeEnc is used.
	UseFFREncoder bool `yaml:"use_ffr_encoder"`
}

// SolverConfig controls the backing SAT solver.
type SolverConfig struct {
	// MaxDecisions caps satsolver's search before it reports SatBool3Unknown
	// (SPEC_FULL.md §5 cancellation/timeout model: expressed only at the SAT
	// boundary, no internal deadline otherwise).
	MaxDecisions int `yaml:"max_decisions"`
}

// LoggingConfig controls diag.Logger construction.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when the caller supplies none.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{FaultType: "stuck-at", WarnUnreachable: true},
		Fsim:    FsimConfig{PackedBitlen: 64, Workers: 1},
		Dtpg:    DtpgConfig{CubeCap: 64, UseFFREncoder: true},
		Solver:  SolverConfig{MaxDecisions: 1_000_000},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// ParseFaultType maps NetworkConfig.FaultType's three accepted spellings to
// a valkind.FaultType.
func ParseFaultType(s string) (valkind.FaultType, error) {
	switch s {
	case "stuck-at":
		return valkind.StuckAt, nil
	case "transition-delay":
		return valkind.TransitionDelay, nil
	case "gate-exhaustive":
		return valkind.GateExhaustive, nil
	default:
		return 0, fmt.Errorf("config: unknown fault_type %q", s)
	}
}

// Load reads and parses a YAML configuration file, merging it over
// DefaultConfig so unset fields keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
