package utils

import (
	"image/color"
	"testing"
)

func TestHueForRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"最小半径为紫色", 0, 300},
		{"最大半径为红色", 1, 0},
		{"中点", 0.5, 150},
		{"四舍五入", 0.123, 263}, // 300 - 36.9 = 263.1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HueForRate(tt.rate, HueMinRadius, HueMaxRadius); got != tt.want {
				t.Errorf("HueForRate(%v) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}

// TestHueForRate_ThroughEasing 半径比例先经过 ease-in-out 再映射色相
func TestHueForRate_ThroughEasing(t *testing.T) {
	rMin, rMax := 64.0, 80.0

	hueAt := func(r float64) float64 {
		rate := (r - rMin) / (rMax - rMin)
		return HueForRate(EaseInOutBezier(rate), HueMinRadius, HueMaxRadius)
	}

	if got := hueAt(rMin); got != 300 {
		t.Errorf("hue at rMin = %v, want 300", got)
	}
	if got := hueAt(rMax); got != 0 {
		t.Errorf("hue at rMax = %v, want 0", got)
	}

	// 四分之一处：缓动值约 0.129，色相约 261，而线性插值会得到 225
	got := hueAt(rMin + (rMax-rMin)*0.25)
	if got != 261 {
		t.Errorf("hue at quarter band = %v, want 261 (eased)", got)
	}
}

func TestHSLColor(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
		want color.RGBA
	}{
		{"红", 0, color.RGBA{255, 0, 0, 255}},
		{"绿", 120, color.RGBA{0, 255, 0, 255}},
		{"蓝", 240, color.RGBA{0, 0, 255, 255}},
		{"品红", 300, color.RGBA{255, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLColor(tt.hue, 1, 0.5); got != tt.want {
				t.Errorf("HSLColor(%v) = %+v, want %+v", tt.hue, got, tt.want)
			}
		})
	}
}

func TestHueColor(t *testing.T) {
	if got := HueColor(0, HueMinRadius, HueMaxRadius); got != (color.RGBA{255, 0, 255, 255}) {
		t.Errorf("HueColor(0) = %+v, want magenta", got)
	}
	if got := HueColor(1, HueMinRadius, HueMaxRadius); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("HueColor(1) = %+v, want red", got)
	}
}
