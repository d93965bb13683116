package systems

import (
	"math"
	"testing"
)

func TestBloomLevelWeights(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   [BloomMipLevels]float64
	}{
		{"半径 0 使用基础权重", 0, [BloomMipLevels]float64{1.0, 0.8, 0.6, 0.4, 0.2}},
		{"半径 1 权重翻转", 1, [BloomMipLevels]float64{0.2, 0.4, 0.6, 0.8, 1.0}},
		{"半径 2 负权重截断为 0", 2, [BloomMipLevels]float64{0, 0, 0.6, 1.2, 1.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BloomLevelWeights(tt.radius)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("weights = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestBloomMipSizes(t *testing.T) {
	sizes := BloomMipSizes(1280, 720)
	want := [BloomMipLevels][2]int{{640, 360}, {320, 180}, {160, 90}, {80, 45}, {40, 22}}
	if sizes != want {
		t.Errorf("BloomMipSizes(1280, 720) = %v, want %v", sizes, want)
	}

	tiny := BloomMipSizes(3, 1)
	for i, s := range tiny {
		if s[0] < 1 || s[1] < 1 {
			t.Errorf("level %d size %v below 1 pixel", i, s)
		}
	}
}
