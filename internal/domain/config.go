package domain

import (
	"fmt"
	"runtime"
)

// Score component names used as weight keys.
const (
	ComponentComplexity    = "complexity"
	ComponentLineLength    = "line_length"
	ComponentDocumentation = "documentation"
)

// ValidComponents enumerates all weighted score component names.
var ValidComponents = []string{
	ComponentComplexity, ComponentLineLength, ComponentDocumentation,
}

// LintConfig configures the external linter subprocess.
type LintConfig struct {
	Command        string `yaml:"command"          json:"command"`
	TimeoutMs      int    `yaml:"timeout_ms"       json:"timeout_ms"`
	MaxOutputBytes int    `yaml:"max_output_bytes" json:"max_output_bytes"`
}

// Config holds the analysis configuration loaded from .prlens.yaml.
type Config struct {
	Concurrency   int                `yaml:"concurrency"     json:"concurrency"`
	MaxFileBytes  int                `yaml:"max_file_bytes"  json:"max_file_bytes"`
	MaxLineLength int                `yaml:"max_line_length" json:"max_line_length"`
	Lint          LintConfig         `yaml:"lint"            json:"lint"`
	Weights       map[string]float64 `yaml:"weights"         json:"weights,omitempty"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:   runtime.NumCPU(),
		MaxFileBytes:  1 << 20,
		MaxLineLength: 100,
		Lint: LintConfig{
			Command:        "eslint",
			TimeoutMs:      10_000,
			MaxOutputBytes: 4 << 20,
		},
		Weights: map[string]float64{
			ComponentComplexity:    0.4,
			ComponentLineLength:    0.3,
			ComponentDocumentation: 0.3,
		},
	}
}

// Validate checks the config for invalid values and returns a descriptive
// error. An invalid config is the only fatal condition in the pipeline and
// is surfaced before any work begins.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got %d)", c.Concurrency)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be > 0 (got %d)", c.MaxFileBytes)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be > 0 (got %d)", c.MaxLineLength)
	}
	if c.Lint.Command == "" {
		return fmt.Errorf("lint.command must not be empty")
	}
	if c.Lint.TimeoutMs < 0 {
		return fmt.Errorf("lint.timeout_ms must be >= 0 (got %d)", c.Lint.TimeoutMs)
	}
	if c.Lint.MaxOutputBytes <= 0 {
		return fmt.Errorf("lint.max_output_bytes must be > 0 (got %d)", c.Lint.MaxOutputBytes)
	}

	sum := 0.0
	for k, w := range c.Weights {
		if !isValidComponent(k) {
			return fmt.Errorf("unknown component %q in weights (valid: complexity, line_length, documentation)", k)
		}
		if w < 0 {
			return fmt.Errorf("weights[%q] = %.2f (must be >= 0)", k, w)
		}
		sum += w
	}
	if len(c.Weights) > 0 && sum <= 0 {
		return fmt.Errorf("weights sum to %.2f (must be > 0)", sum)
	}

	return nil
}

// PoolSize resolves the effective worker pool size: the configured
// concurrency, or one worker per available core when unset.
func (c Config) PoolSize() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}

// EffectiveWeights returns the configured component weights, falling back to
// the documented defaults when none are set.
func (c Config) EffectiveWeights() map[string]float64 {
	if len(c.Weights) > 0 {
		return c.Weights
	}
	return DefaultConfig().Weights
}

func isValidComponent(name string) bool {
	for _, c := range ValidComponents {
		if c == name {
			return true
		}
	}
	return false
}
