// Package camera 提供透视相机的投影/反投影计算
//
// 所有函数都是纯计算，不依赖渲染框架，便于在没有 GPU 的环境下测试。
package camera

import (
	"math"

	"github.com/gonewx/rainbow/pkg/vmath"
)

// Camera 透视相机快照
type Camera struct {
	Position vmath.Vec3
	Target   vmath.Vec3
	Up       vmath.Vec3
	FOVDeg   float64 // 垂直视场角（度）
	Aspect   float64 // 宽 / 高
	Near     float64
	Far      float64
}

// View 视图矩阵
func (c Camera) View() vmath.Mat4 {
	up := c.Up
	if up == (vmath.Vec3{}) {
		up = vmath.V3(0, 1, 0)
	}
	return vmath.LookAt(c.Position, c.Target, up)
}

// Projection 投影矩阵
func (c Camera) Projection() vmath.Mat4 {
	aspect := c.Aspect
	if !(aspect > 0) {
		aspect = 1
	}
	return vmath.Perspective(c.FOVDeg, aspect, c.Near, c.Far)
}

// ViewProjection 投影 * 视图
func (c Camera) ViewProjection() vmath.Mat4 {
	return c.Projection().Mul(c.View())
}

// Projector 缓存 ViewProjection，批量投影时避免重复计算矩阵
type Projector struct {
	vp     vmath.Mat4
	width  float64
	height float64
	near   float64
}

// NewProjector 创建投影器
//
// 参数:
//   - c: 相机
//   - width, height: 视口尺寸（像素）
func NewProjector(c Camera, width, height float64) Projector {
	return Projector{vp: c.ViewProjection(), width: width, height: height, near: c.Near}
}

// Project 把世界坐标投影到屏幕像素坐标
//
// 返回:
//   - screen: 屏幕坐标（左上角为原点，Y 向下）
//   - depth: 视图空间深度（到相机平面的距离）
//   - ok: 点位于近裁剪面之后时为 false
func (p Projector) Project(world vmath.Vec3) (screen vmath.Vec2, depth float64, ok bool) {
	clip, w := p.vp.MulPoint(world)
	if w < p.near {
		return vmath.Vec2{}, w, false
	}
	ndcX := clip.X / w
	ndcY := clip.Y / w
	return vmath.Vec2{
		X: (ndcX + 1) / 2 * p.width,
		Y: (1 - ndcY) / 2 * p.height,
	}, w, true
}

// Project 单点投影（内部构造 Projector）
func (c Camera) Project(world vmath.Vec3, width, height float64) (vmath.Vec2, float64, bool) {
	return NewProjector(c, width, height).Project(world)
}

// Unproject 把 NDC 坐标（[-1,1]³）反投影回世界坐标
func (c Camera) Unproject(ndc vmath.Vec3) (vmath.Vec3, bool) {
	inv, ok := c.ViewProjection().Inverse()
	if !ok {
		return vmath.Vec3{}, false
	}
	p, w := inv.MulPoint(ndc)
	if w == 0 {
		return vmath.Vec3{}, false
	}
	return p.Scale(1 / w), true
}

// ScreenToWorld 把屏幕点击位置换算为世界坐标
//
// 从相机位置经过点击点（NDC 深度 0.5）发出射线，与 z = planeZ 平面求交。
// 射线与平面平行或交点在相机后方时返回 false。
func ScreenToWorld(screenX, screenY, width, height float64, c Camera, planeZ float64) (vmath.Vec3, bool) {
	if !(width > 0) || !(height > 0) {
		return vmath.Vec3{}, false
	}

	ndc := vmath.V3(
		(screenX/width)*2-1,
		-(screenY/height)*2+1,
		0.5,
	)
	p, ok := c.Unproject(ndc)
	if !ok {
		return vmath.Vec3{}, false
	}

	dir := p.Sub(c.Position).Normalize()
	if math.Abs(dir.Z) < 1e-9 {
		return vmath.Vec3{}, false
	}

	distance := (planeZ - c.Position.Z) / dir.Z
	if distance < 0 {
		return vmath.Vec3{}, false
	}
	return c.Position.Add(dir.Scale(distance)), true
}

// PixelsPerUnit 指定深度处一个世界单位对应的屏幕像素数
//
// 拖尾线宽按此比例随距离衰减。
func PixelsPerUnit(fovDeg, depth, viewportHeight float64) float64 {
	if !(depth > 0) {
		return 0
	}
	return viewportHeight / (2 * math.Tan(fovDeg*math.Pi/360) * depth)
}
