package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, DefaultFileName)

	configContent := `legacy:
  - .js
  - mjs
target:
  - ts
exclude:
  - node_modules
  - "dist*"
output_dir: out/report
workers: 3
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expectedLegacy := []string{"js", "mjs"}
	if len(cfg.Legacy) != len(expectedLegacy) {
		t.Fatalf("Expected %d legacy extensions, got %d", len(expectedLegacy), len(cfg.Legacy))
	}
	for i, expected := range expectedLegacy {
		if cfg.Legacy[i] != expected {
			t.Errorf("Legacy[%d]: expected %q, got %q", i, expected, cfg.Legacy[i])
		}
	}

	if len(cfg.Target) != 1 || cfg.Target[0] != "ts" {
		t.Errorf("Expected target [ts], got %v", cfg.Target)
	}

	if len(cfg.Exclude) != 2 || cfg.Exclude[1] != "dist*" {
		t.Errorf("Unexpected exclude list: %v", cfg.Exclude)
	}

	if cfg.OutputDir != "out/report" {
		t.Errorf("Expected output_dir %q, got %q", "out/report", cfg.OutputDir)
	}

	if cfg.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", cfg.Workers)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	if len(cfg.Exclude) == 0 {
		t.Error("Default config should have some exclusions")
	}

	if cfg.OutputDir != "coverage-report" {
		t.Errorf("Expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := "legacy: [js, jsx\nworkers: many\n"

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed for empty config: %v", err)
	}

	def := DefaultConfig()
	if len(cfg.Legacy) != len(def.Legacy) || len(cfg.Target) != len(def.Target) {
		t.Errorf("Empty config should keep default families, got legacy=%v target=%v", cfg.Legacy, cfg.Target)
	}
}

func TestLoadConfig_OverlappingFamilies(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "overlap.yaml")

	content := "legacy: [js, ts]\ntarget: [.ts]\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should reject an extension in both families")
	}
}

func TestValidate_Workers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject zero workers")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	expectedExcludes := []string{".git", "node_modules", "build"}
	for _, pattern := range expectedExcludes {
		found := false
		for _, ex := range cfg.Exclude {
			if ex == pattern {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Default config should exclude %q", pattern)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}
