// Package orbit 实现彗星轨迹的核心模型
//
// 包含三部分：
//   - Path: 椭圆轨道，把相位映射到三维坐标
//   - Trail: 固定长度的点缓冲（拖尾），每帧推入新点、淘汰最旧点
//   - Star: 相位/停留状态机，驱动 Trail 前进
//
// 本包不依赖任何渲染框架，所有操作都是同步的纯计算。
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/rainbow/pkg/vmath"
)

// EllipseStretch 垂直方向（Y 轴）的拉伸系数，轨道是椭圆而不是正圆
const EllipseStretch = 1.2

var (
	// ErrInvalidRadius 半径必须为正的有限值
	ErrInvalidRadius = errors.New("orbit: radius must be a positive finite number")
	// ErrInvalidDirection 方向只能是 +1 或 -1
	ErrInvalidDirection = errors.New("orbit: direction must be +1 or -1")
)

// Path 椭圆轨道
//
// 创建后不可变，可以在多个 Star 之间只读共享。
type Path struct {
	center    vmath.Vec3
	radius    float64
	direction int
}

// NewPath 创建椭圆轨道
//
// 参数:
//   - center: 轨道中心
//   - radius: X 方向半径（Y 方向为 radius*EllipseStretch）
//   - direction: 行进方向，+1 逆时针，-1 顺时针
func NewPath(center vmath.Vec3, radius float64, direction int) (*Path, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if direction != 1 && direction != -1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("orbit: center must be finite, got %+v", center)
	}
	return &Path{center: center, radius: radius, direction: direction}, nil
}

// Center 轨道中心
func (p *Path) Center() vmath.Vec3 { return p.center }

// Radius 轨道半径
func (p *Path) Radius() float64 { return p.radius }

// Direction 行进方向（+1 / -1）
func (p *Path) Direction() int { return p.direction }

// PositionAt 返回相位对应的轨道坐标
//
// 相位可以是任意实数，只有对 1 取模后的值有意义。
// 轨道位于 z = center.Z 的平面内。
func (p *Path) PositionAt(phase float64) vmath.Vec3 {
	angle := phase * 2 * math.Pi * float64(p.direction)
	return vmath.Vec3{
		X: p.center.X + math.Cos(angle)*p.radius,
		Y: p.center.Y + math.Sin(angle)*p.radius*EllipseStretch,
		Z: p.center.Z,
	}
}
