package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no config path is given.
const DefaultFileName = ".migration-coverage.yaml"

type Config struct {
	Legacy    []string `yaml:"legacy"`
	Target    []string `yaml:"target"`
	Exclude   []string `yaml:"exclude"`
	OutputDir string   `yaml:"output_dir"`
	Workers   int      `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Legacy: []string{"js", "jsx"},
		Target: []string{"ts", "tsx"},
		Exclude: []string{
			"node_modules",
			".git",
			"build",
		},
		OutputDir: "coverage-report",
		Workers:   runtime.NumCPU() * 2,
	}
}

// LoadConfig reads path, falling back to DefaultConfig when the file does not
// exist. Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.Legacy = normalizeExtensions(cfg.Legacy)
	cfg.Target = normalizeExtensions(cfg.Target)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that both families are non-empty and disjoint.
func (c *Config) Validate() error {
	if len(c.Legacy) == 0 {
		return fmt.Errorf("config: legacy extension family is empty")
	}
	if len(c.Target) == 0 {
		return fmt.Errorf("config: target extension family is empty")
	}

	legacy := make(map[string]bool, len(c.Legacy))
	for _, ext := range c.Legacy {
		legacy[ext] = true
	}
	for _, ext := range c.Target {
		if legacy[ext] {
			return fmt.Errorf("config: extension %q is in both legacy and target families", ext)
		}
	}

	if c.Workers <= 0 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output_dir must not be empty")
	}
	return nil
}

// normalizeExtensions strips a leading dot so ".ts" and "ts" are equivalent.
// Case is preserved.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}
