package orbit

import "github.com/gonewx/rainbow/pkg/vmath"

// TrailPointCount 拖尾缓冲的默认点数
const TrailPointCount = 100

// Trail 固定长度的拖尾点缓冲（环形缓冲区）
//
// 逻辑顺序：索引 0 是最旧的点（尾部，最细），索引 N-1 是最新的点（头部，最粗）。
// 长度始终等于 N，创建后不会改变。
type Trail struct {
	points     []vmath.Vec3
	head       int // 最旧点在 points 中的物理下标
	resolution vmath.Vec2
}

// NewTrail 创建拖尾并用 seed 填满所有槽位（初始时拖尾收缩为一个点）
//
// n <= 0 时使用 TrailPointCount。
func NewTrail(n int, seed vmath.Vec3) *Trail {
	if n <= 0 {
		n = TrailPointCount
	}
	t := &Trail{points: make([]vmath.Vec3, n)}
	t.Seed(seed)
	return t
}

// Seed 用同一个点填满所有槽位
//
// 用于生成时和重置时的硬对齐，避免新周期开始时残留旧拖尾。
func (t *Trail) Seed(p vmath.Vec3) {
	for i := range t.points {
		t.points[i] = p
	}
	t.head = 0
}

// Push 淘汰最旧的点并把 p 追加到最新端
func (t *Trail) Push(p vmath.Vec3) {
	t.points[t.head] = p
	t.head++
	if t.head == len(t.points) {
		t.head = 0
	}
}

// Len 点数 N
func (t *Trail) Len() int {
	return len(t.points)
}

// At 返回逻辑下标 i 处的点（0 = 最旧）
func (t *Trail) At(i int) vmath.Vec3 {
	idx := t.head + i
	if idx >= len(t.points) {
		idx -= len(t.points)
	}
	return t.points[idx]
}

// Oldest 最旧的点
func (t *Trail) Oldest() vmath.Vec3 {
	return t.points[t.head]
}

// Newest 最新的点
func (t *Trail) Newest() vmath.Vec3 {
	return t.At(len(t.points) - 1)
}

// Points 按从旧到新的顺序返回所有点的副本
func (t *Trail) Points() []vmath.Vec3 {
	return t.AppendPoints(make([]vmath.Vec3, 0, len(t.points)))
}

// AppendPoints 把从旧到新的点追加到 dst 并返回（渲染时复用缓冲，避免每帧分配）
func (t *Trail) AppendPoints(dst []vmath.Vec3) []vmath.Vec3 {
	dst = append(dst, t.points[t.head:]...)
	return append(dst, t.points[:t.head]...)
}

// WidthWeight 返回逻辑下标 index 处的线宽权重
//
// 公式：0.6*(index/N) + 0.4，尾部 0.4，越靠近头部越粗。
func (t *Trail) WidthWeight(index int) float64 {
	return 0.6*(float64(index)/float64(len(t.points))) + 0.4
}

// SetResolution 更新视口分辨率（渲染器据此保持屏幕空间线宽）
//
// 非正尺寸会被忽略。
func (t *Trail) SetResolution(w, h float64) {
	if !(w > 0) || !(h > 0) {
		return
	}
	t.resolution = vmath.Vec2{X: w, Y: h}
}

// Resolution 当前视口分辨率；未设置时为零值
func (t *Trail) Resolution() vmath.Vec2 {
	return t.resolution
}
