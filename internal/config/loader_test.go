package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/polarity/internal/magnet"
)

func TestEmbeddedDefaultMatchesDefaultConfig(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestDefaultParamsAgree(t *testing.T) {
	if got := DefaultConfig().Params(); got != magnet.DefaultParams() {
		t.Errorf("Params() = %+v, expected %+v", got, magnet.DefaultParams())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  max_speed: 4\ntolerances:\n  goal: 0.25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Physics.MaxSpeed != 4 {
		t.Errorf("MaxSpeed = %v, expected 4", cfg.Physics.MaxSpeed)
	}
	if cfg.Tolerances.Goal != 0.25 {
		t.Errorf("Goal = %v, expected 0.25", cfg.Tolerances.Goal)
	}
	if cfg.Physics.Damping != 0.95 {
		t.Errorf("Damping = %v, expected default 0.95", cfg.Physics.Damping)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, expected default 60", cfg.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestLoadRejectsBadTuning(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"damping at one", "physics:\n  damping: 1\n"},
		{"damping above one", "physics:\n  damping: 1.2\n"},
		{"negative max speed", "physics:\n  max_speed: -3\n"},
		{"negative timestep", "physics:\n  timestep: -0.016\n"},
		{"negative tick rate", "tick_rate: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted %q", tc.yaml)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
