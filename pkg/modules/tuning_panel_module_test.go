package modules

import (
	"math"
	"testing"

	"github.com/gonewx/rainbow/pkg/config"
)

func TestAdjustBloom(t *testing.T) {
	base := config.BloomConfig{Exposure: 1, Threshold: 0, Strength: 1.2, Radius: 0}

	tests := []struct {
		name  string
		param BloomParam
		delta float64
		want  config.BloomConfig
	}{
		{"增加曝光", ParamExposure, TuningStep, config.BloomConfig{Exposure: 1.01, Threshold: 0, Strength: 1.2, Radius: 0}},
		{"阈值下限截断", ParamThreshold, -TuningStep, base},
		{"强度减少", ParamStrength, -TuningStep, config.BloomConfig{Exposure: 1, Threshold: 0, Strength: 1.19, Radius: 0}},
		{"半径增加", ParamRadius, TuningStep, config.BloomConfig{Exposure: 1, Threshold: 0, Strength: 1.2, Radius: 0.01}},
		{"曝光上限截断", ParamExposure, 5, config.BloomConfig{Exposure: 2, Threshold: 0, Strength: 1.2, Radius: 0}},
		{"曝光下限截断", ParamExposure, -5, config.BloomConfig{Exposure: 0.1, Threshold: 0, Strength: 1.2, Radius: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustBloom(base, tt.param, tt.delta)
			if !bloomApproxEqual(got, tt.want) {
				t.Errorf("AdjustBloom(%v, %v) = %+v, want %+v", tt.param, tt.delta, got, tt.want)
			}
		})
	}
}

// TestAdjustBloom_NoDrift 反复调整不累积浮点误差
func TestAdjustBloom_NoDrift(t *testing.T) {
	cfg := config.BloomConfig{Exposure: 1}
	for i := 0; i < 50; i++ {
		cfg = AdjustBloom(cfg, ParamRadius, TuningStep)
	}
	for i := 0; i < 30; i++ {
		cfg = AdjustBloom(cfg, ParamRadius, -TuningStep)
	}
	if math.Abs(cfg.Radius-0.2) > 1e-12 {
		t.Errorf("Radius = %v, want 0.2", cfg.Radius)
	}
}

func TestTuningPanelModule_AdjustCallsApply(t *testing.T) {
	var applied []config.BloomConfig
	m := NewTuningPanelModule(config.DefaultSceneConfig().Bloom, func(c config.BloomConfig) {
		applied = append(applied, c)
	})

	if !m.Adjust(ParamStrength, TuningStep) {
		t.Fatal("Adjust should report a change")
	}
	if len(applied) != 1 || applied[0] != m.Config() {
		t.Fatalf("apply calls = %v", applied)
	}

	// 阈值已在下限，不再触发回调
	if m.Adjust(ParamThreshold, -TuningStep) {
		t.Error("Adjust at lower bound should report no change")
	}
	if len(applied) != 1 {
		t.Errorf("apply called %d times, want 1", len(applied))
	}
}

func TestTuningPanelModule_Toggle(t *testing.T) {
	m := NewTuningPanelModule(config.BloomConfig{Exposure: 1}, nil)
	if m.Visible() {
		t.Fatal("panel should start hidden")
	}
	m.Toggle()
	if !m.Visible() {
		t.Error("panel should be visible after Toggle")
	}
	m.Adjust(ParamExposure, TuningStep) // nil 回调不应崩溃
}

func TestBloomParam_Range(t *testing.T) {
	if ParamExposure.Range() != config.BloomExposureRange || ParamRadius.Range() != config.BloomRadiusRange {
		t.Error("parameter ranges do not match config ranges")
	}
	if ParamThreshold.String() != "threshold" {
		t.Errorf("String() = %q", ParamThreshold.String())
	}
}

func bloomApproxEqual(a, b config.BloomConfig) bool {
	const eps = 1e-9
	return math.Abs(a.Exposure-b.Exposure) < eps &&
		math.Abs(a.Threshold-b.Threshold) < eps &&
		math.Abs(a.Strength-b.Strength) < eps &&
		math.Abs(a.Radius-b.Radius) < eps
}
