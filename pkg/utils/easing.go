package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 半径到色相的映射使用 CSS 风格的三次贝塞尔 ease-in-out。
//
// 参考：https://cubic-bezier.com/

// EasingFunc 缓动函数签名
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutBezier 标准 ease-in-out 曲线 cubic-bezier(0.42, 0, 0.58, 1)
// 特点：开始慢，中间快，结束慢；关于 (0.5, 0.5) 中心对称
var EaseInOutBezier = CubicBezier(0.42, 0.0, 0.58, 1.0)

const (
	bezierNewtonIterations = 8
	bezierNewtonEpsilon    = 1e-7
	bezierBisectIterations = 40
)

// CubicBezier 创建以 (0,0)、(x1,y1)、(x2,y2)、(1,1) 为控制点的缓动函数
//
// x1、x2 会被限制在 [0, 1] 内，以保证 x(s) 单调、反解唯一。
// 求解：先用牛顿迭代由 x 反解参数 s，导数过小时改用二分法。
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	x1 = Clamp01(x1)
	x2 = Clamp01(x2)

	// 线性控制点直接退化为线性缓动
	if x1 == y1 && x2 == y2 {
		return EaseLinear
	}

	// B(s) = 3(1-s)²s·p1 + 3(1-s)s²·p2 + s³，展开为多项式系数
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solveS := func(x float64) float64 {
		s := x
		for i := 0; i < bezierNewtonIterations; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < bezierNewtonEpsilon {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < bezierBisectIterations; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < bezierNewtonEpsilon {
				return s
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solveS(t))
	}
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
