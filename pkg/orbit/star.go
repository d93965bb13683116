package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/rainbow/pkg/vmath"
)

const (
	// MaxDwell 停留阶段的最长时长（秒）
	MaxDwell = 2.0

	// TravelFraction 每个周期中实际行进的比例
	// t 超过 speedSec*TravelFraction 后进入停留，所以彗星只走半圈椭圆
	TravelFraction = 0.5
)

var (
	// ErrNilPath Star 必须关联一条轨道
	ErrNilPath = errors.New("orbit: star requires a path")
	// ErrInvalidPeriod 周期必须为正的有限值
	ErrInvalidPeriod = errors.New("orbit: period must be a positive finite number")
	// ErrInvalidPhase 初始相位累加值不能为负
	ErrInvalidPhase = errors.New("orbit: initial phase must be a non-negative finite number")
)

// StarState 彗星运动状态
type StarState int

const (
	// StateAdvancing 沿轨道前进
	StateAdvancing StarState = iota
	// StateDwelling 原地停留，拖尾逐渐收缩为一个点
	StateDwelling
	// StateResetting 瞬时状态：回到相位 0 并硬对齐拖尾
	StateResetting
)

// String 返回状态名称（用于日志）
func (s StarState) String() string {
	switch s {
	case StateAdvancing:
		return "Advancing"
	case StateDwelling:
		return "Dwelling"
	case StateResetting:
		return "Resetting"
	default:
		return fmt.Sprintf("StarState(%d)", int(s))
	}
}

// Star 沿轨道运动的彗星
//
// 状态机：
//   - dwell == 0 且 t <= speedSec*0.5：前进，t += dt
//   - 否则 dwell < MaxDwell：停留，dwell += dt，t 冻结
//   - 否则：重置 t = 0, dwell = 0，拖尾重新填充为 PositionAt(0)
//
// 每个 tick（重置除外）都会把当前位置推入拖尾。
type Star struct {
	path     *Path
	t        float64
	speedSec float64
	dwell    float64
	trail    *Trail
}

// NewStar 创建彗星
//
// 参数:
//   - path: 轨道（只读引用）
//   - initialT: 初始相位累加值（秒），通常在 [0, speedSec*0.5] 内随机
//   - speedSec: 完整周期（秒）
//   - trailPoints: 拖尾点数，<= 0 时使用 TrailPointCount
func NewStar(path *Path, initialT, speedSec float64, trailPoints int) (*Star, error) {
	if path == nil {
		return nil, ErrNilPath
	}
	if !(speedSec > 0) || math.IsInf(speedSec, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, speedSec)
	}
	if !(initialT >= 0) || math.IsInf(initialT, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhase, initialT)
	}

	s := &Star{
		path:     path,
		t:        initialT,
		speedSec: speedSec,
	}
	s.trail = NewTrail(trailPoints, s.Position())
	return s, nil
}

// Advance 推进一帧
//
// dt 为负数或 NaN 时按 0 处理。返回本帧执行的状态分支。
func (s *Star) Advance(dt float64) StarState {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}

	switch s.State() {
	case StateAdvancing:
		s.t += dt
		s.trail.Push(s.Position())
		return StateAdvancing
	case StateDwelling:
		s.dwell += dt
		s.trail.Push(s.Position())
		return StateDwelling
	default:
		s.t = 0
		s.dwell = 0
		s.trail.Seed(s.Position())
		return StateResetting
	}
}

// State 返回下一次 Advance 将执行的分支
func (s *Star) State() StarState {
	if s.dwell == 0 && s.t <= s.speedSec*TravelFraction {
		return StateAdvancing
	}
	if s.dwell < MaxDwell {
		return StateDwelling
	}
	return StateResetting
}

// Position 当前相位对应的轨道坐标
func (s *Star) Position() vmath.Vec3 {
	return s.path.PositionAt(s.Phase())
}

// Phase 归一化相位 t/speedSec
func (s *Star) Phase() float64 {
	return s.t / s.speedSec
}

// T 相位累加值（秒）
func (s *Star) T() float64 { return s.t }

// Dwell 已停留时长（秒）
func (s *Star) Dwell() float64 { return s.dwell }

// SpeedSec 周期（秒）
func (s *Star) SpeedSec() float64 { return s.speedSec }

// Path 关联的轨道
func (s *Star) Path() *Path { return s.path }

// Trail 拖尾缓冲
func (s *Star) Trail() *Trail { return s.trail }
