// Package vmath 提供轨迹与相机计算使用的最小向量/矩阵类型
//
// 只包含本项目需要的运算：三维点、二维屏幕坐标和 4x4 列主序矩阵。
package vmath

import "math"

// Vec2 二维向量（屏幕坐标、视口分辨率）
type Vec2 struct {
	X, Y float64
}

// Vec3 三维向量（世界坐标）
type Vec3 struct {
	X, Y, Z float64
}

// V3 是 Vec3 的简写构造函数
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ApproxEqual 判断两个向量在容差内是否相等
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// IsFinite 检查所有分量都不是 NaN/Inf
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
