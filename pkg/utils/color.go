package utils

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// HueMinRadius 最内侧（最小半径）对应的色相（度）
	HueMinRadius = 300.0
	// HueMaxRadius 最外侧（最大半径）对应的色相（度）
	HueMaxRadius = 0.0
)

// HueForRate 根据缓动后的比例计算色相（整数度）
//
// rate=0 → 300°（紫），rate=1 → 0°（红），中间线性插值后四舍五入。
func HueForRate(rate, minHue, maxHue float64) float64 {
	return math.Round(rate*(maxHue-minHue) + minHue)
}

// HSLColor 把 HSL 颜色转换为 RGBA（饱和度/亮度取值 0~1）
func HSLColor(hue, saturation, lightness float64) color.RGBA {
	c := colorful.Hsl(hue, saturation, lightness).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// HueColor 返回 hsl(hue, 100%, 50%) 对应的纯色
func HueColor(rate, minHue, maxHue float64) color.RGBA {
	return HSLColor(HueForRate(rate, minHue, maxHue), 1.0, 0.5)
}
