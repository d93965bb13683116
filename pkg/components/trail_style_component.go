package components

import "image/color"

// TrailStyleComponent 拖尾的绘制样式
//
// 颜色在生成时由半径计算一次，之后不再改变。
type TrailStyleComponent struct {
	Color color.RGBA

	// LineWidth 世界坐标下的基础线宽（乘以 Trail.WidthWeight 得到各点宽度）
	LineWidth float64

	// Additive 使用加法混合绘制
	Additive bool
}
