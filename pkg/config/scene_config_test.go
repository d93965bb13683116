package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSceneConfig_Valid(t *testing.T) {
	cfg := DefaultSceneConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultSceneConfig().Validate() error: %v", err)
	}

	if cfg.Initial.Count != 200 || cfg.Initial.Radius != 90 {
		t.Errorf("initial = %+v, want count=200 radius=90", cfg.Initial)
	}
	if cfg.Composition.Period.Min != 50 || cfg.Composition.Period.Max != 80 {
		t.Errorf("period = %+v, want 50..80", cfg.Composition.Period)
	}
	if cfg.Trail.Points != 100 {
		t.Errorf("trail points = %d, want 100", cfg.Trail.Points)
	}
	if cfg.Bloom.Strength != 1.2 {
		t.Errorf("bloom strength = %v, want 1.2", cfg.Bloom.Strength)
	}
}

// TestEmbeddedSceneYAMLMatchesDefaults 确保 data/scene.yaml 与 DefaultSceneConfig 一致
func TestEmbeddedSceneYAMLMatchesDefaults(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "scene.yaml"))
	if err != nil {
		t.Skipf("data/scene.yaml not found: %v", err)
	}

	cfg, err := ParseSceneConfig(data)
	if err != nil {
		t.Fatalf("ParseSceneConfig() error: %v", err)
	}
	if *cfg != *DefaultSceneConfig() {
		t.Errorf("data/scene.yaml differs from defaults:\n got  %+v\n want %+v", *cfg, *DefaultSceneConfig())
	}
}

func TestLoadSceneConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SceneConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
initial:
  count: 12
  radius: 40
  center: [5, 0, -5]
bloom:
  strength: 0.5
`,
			validate: func(t *testing.T, cfg *SceneConfig) {
				if cfg.Initial.Count != 12 || cfg.Initial.Radius != 40 {
					t.Errorf("initial = %+v", cfg.Initial)
				}
				if cfg.Initial.Center != [3]float64{5, 0, -5} {
					t.Errorf("center = %v", cfg.Initial.Center)
				}
				if cfg.Bloom.Strength != 0.5 {
					t.Errorf("bloom strength = %v, want 0.5", cfg.Bloom.Strength)
				}
				if cfg.Bloom.Exposure != 1 {
					t.Errorf("bloom exposure default lost: %v", cfg.Bloom.Exposure)
				}
				if cfg.Composition.Period.Min != 50 {
					t.Errorf("period default lost: %+v", cfg.Composition.Period)
				}
			},
		},
		{
			name: "invalid period range",
			yamlContent: `
composition:
  period:
    min: 80
    max: 50
`,
			wantErr:     true,
			errContains: "period",
		},
		{
			name: "zero radius",
			yamlContent: `
initial:
  radius: 0
`,
			wantErr:     true,
			errContains: "radius",
		},
		{
			name: "invalid direction",
			yamlContent: `
composition:
  direction: 0
`,
			wantErr:     true,
			errContains: "direction",
		},
		{
			name: "bloom out of range",
			yamlContent: `
bloom:
  strength: 3
`,
			wantErr:     true,
			errContains: "strength",
		},
		{
			name: "trail too short",
			yamlContent: `
trail:
  points: 1
`,
			wantErr:     true,
			errContains: "trail points",
		},
		{
			name:        "malformed yaml",
			yamlContent: "initial: [unclosed",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadSceneConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSceneConfig_MissingFile(t *testing.T) {
	_, err := LoadSceneConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestBloomConfig_ToneMappingExposure(t *testing.T) {
	tests := []struct {
		exposure float64
		want     float64
	}{
		{1, 1},
		{0.5, 0.0625},
		{2, 16},
	}
	for _, tt := range tests {
		b := BloomConfig{Exposure: tt.exposure}
		if got := b.ToneMappingExposure(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ToneMappingExposure(%v) = %v, want %v", tt.exposure, got, tt.want)
		}
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 1, Max: 2}
	if !r.Contains(1) || !r.Contains(2) || !r.Contains(1.5) {
		t.Error("Contains should include bounds")
	}
	if r.Contains(0.99) || r.Contains(2.01) {
		t.Error("Contains should exclude values outside range")
	}
}

func TestRange_Clamp(t *testing.T) {
	r := Range{Min: 0.1, Max: 2}
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"区间内", 1.5, 1.5},
		{"低于下限", -3, 0.1},
		{"高于上限", 5, 2},
		{"NaN", math.NaN(), 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
