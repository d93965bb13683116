package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/rainbow/pkg/camera"
	"github.com/gonewx/rainbow/pkg/components"
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/vmath"
)

// 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = math.MaxUint16

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// additiveBlend 加法混合（拖尾叠加发光）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// RibbonSample 拖尾上一个已投影的点
type RibbonSample struct {
	Screen    vmath.Vec2 // 屏幕坐标（像素）
	HalfWidth float64    // 半线宽（像素）
}

// BuildRibbon 把一串屏幕点扩展成三角形条带，追加到 vertices/indices
//
// 每个点沿切线的法向两侧各生成一个顶点，相邻两点之间两个三角形。
// 少于两个点或所有点重合（停留末期拖尾收缩为一点）时不生成任何几何。
func BuildRibbon(samples []RibbonSample, clr color.RGBA, vertices []ebiten.Vertex, indices []uint16) ([]ebiten.Vertex, []uint16) {
	n := len(samples)
	if n < 2 {
		return vertices, indices
	}

	normals := make([]vmath.Vec2, n)
	valid := make([]bool, n)
	first := -1
	for i := range samples {
		prev := samples[max(i-1, 0)].Screen
		next := samples[min(i+1, n-1)].Screen
		dx, dy := next.X-prev.X, next.Y-prev.Y
		l := math.Hypot(dx, dy)
		if l < 1e-6 {
			continue
		}
		normals[i] = vmath.Vec2{X: -dy / l, Y: dx / l}
		valid[i] = true
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return vertices, indices
	}

	// 重合点沿用相邻点的法向
	last := first
	for i := range normals {
		if valid[i] {
			last = i
		} else {
			normals[i] = normals[last]
		}
	}

	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255

	base := uint16(len(vertices))
	for i, s := range samples {
		off := normals[i]
		ox, oy := off.X*s.HalfWidth, off.Y*s.HalfWidth
		vertices = append(vertices,
			ebiten.Vertex{
				DstX: float32(s.Screen.X + ox), DstY: float32(s.Screen.Y + oy),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			},
			ebiten.Vertex{
				DstX: float32(s.Screen.X - ox), DstY: float32(s.Screen.Y - oy),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			},
		)
	}
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		indices = append(indices,
			v, v+1, v+2,
			v+1, v+3, v+2,
		)
	}
	return vertices, indices
}

// RenderStats 上一帧的绘制统计
type RenderStats struct {
	Stars     int
	Ribbons   int
	Vertices  int
	Triangles int
	DrawCalls int
	Culled    int // 位于相机后方被跳过的拖尾点
}

// TrailRenderSystem 把每颗彗星的拖尾绘制成带宽度的条带
type TrailRenderSystem struct {
	entityManager *ecs.EntityManager
	width         float64
	height        float64
	axesLength    float64

	vertices []ebiten.Vertex // 复用，避免每帧分配
	indices  []uint16
	samples  []RibbonSample
	points   []vmath.Vec3

	stats RenderStats
}

// NewTrailRenderSystem 创建拖尾渲染系统
func NewTrailRenderSystem(em *ecs.EntityManager, width, height, axesLength float64) *TrailRenderSystem {
	return &TrailRenderSystem{
		entityManager: em,
		width:         width,
		height:        height,
		axesLength:    axesLength,
		vertices:      make([]ebiten.Vertex, 0, 8192),
		indices:       make([]uint16, 0, 12288),
	}
}

// SetResolution 更新视口尺寸并同步到所有拖尾
func (s *TrailRenderSystem) SetResolution(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	s.width = width
	s.height = height
	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.entityManager) {
		sc, ok := ecs.GetComponent[*components.StarComponent](s.entityManager, id)
		if !ok || sc.Star == nil {
			continue
		}
		sc.Star.Trail().SetResolution(width, height)
	}
}

// Stats 上一帧的绘制统计
func (s *TrailRenderSystem) Stats() RenderStats {
	return s.stats
}

// Draw 绘制所有拖尾与坐标轴辅助线
//
// 先绘制普通混合的拖尾，再绘制加法混合的拖尾。
func (s *TrailRenderSystem) Draw(dst *ebiten.Image, cam camera.Camera) {
	s.stats = RenderStats{}
	projector := camera.NewProjector(cam, s.width, s.height)

	s.drawAxes(dst, projector)

	ids := ecs.GetEntitiesWith2[*components.StarComponent, *components.TrailStyleComponent](s.entityManager)
	s.stats.Stars = len(ids)
	s.drawPass(dst, ids, projector, cam.FOVDeg, false)
	s.drawPass(dst, ids, projector, cam.FOVDeg, true)
}

func (s *TrailRenderSystem) drawPass(dst *ebiten.Image, ids []ecs.EntityID, projector camera.Projector, fov float64, additive bool) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, id := range ids {
		style, _ := ecs.GetComponent[*components.TrailStyleComponent](s.entityManager, id)
		if style.Additive != additive {
			continue
		}
		sc, _ := ecs.GetComponent[*components.StarComponent](s.entityManager, id)
		if sc.Star == nil {
			continue
		}

		trail := sc.Star.Trail()
		res := trail.Resolution()
		if !(res.Y > 0) {
			res.Y = s.height
		}
		s.points = trail.AppendPoints(s.points[:0])

		// 位于相机后方的点把条带切成多段
		s.samples = s.samples[:0]
		for i, p := range s.points {
			screen, depth, ok := projector.Project(p)
			if !ok {
				s.stats.Culled++
				s.appendRibbon(dst, style.Color, additive)
				s.samples = s.samples[:0]
				continue
			}
			ppu := camera.PixelsPerUnit(fov, depth, res.Y)
			s.samples = append(s.samples, RibbonSample{
				Screen:    screen,
				HalfWidth: style.LineWidth * trail.WidthWeight(i) * ppu / 2,
			})
		}
		s.appendRibbon(dst, style.Color, additive)
	}

	s.flush(dst, additive)
}

func (s *TrailRenderSystem) appendRibbon(dst *ebiten.Image, clr color.RGBA, additive bool) {
	if len(s.samples) < 2 {
		return
	}
	if len(s.vertices)+len(s.samples)*2 > maxBatchVertices {
		s.flush(dst, additive)
	}
	before := len(s.vertices)
	s.vertices, s.indices = BuildRibbon(s.samples, clr, s.vertices, s.indices)
	if len(s.vertices) > before {
		s.stats.Ribbons++
	}
}

func (s *TrailRenderSystem) flush(dst *ebiten.Image, additive bool) {
	if len(s.indices) == 0 {
		s.vertices = s.vertices[:0]
		return
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if additive {
		op.Blend = additiveBlend
	}
	dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)

	s.stats.Vertices += len(s.vertices)
	s.stats.Triangles += len(s.indices) / 3
	s.stats.DrawCalls++
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// drawAxes 原点处的 XYZ 坐标轴（红/绿/蓝）
func (s *TrailRenderSystem) drawAxes(dst *ebiten.Image, projector camera.Projector) {
	if s.axesLength <= 0 {
		return
	}
	origin, _, ok := projector.Project(vmath.Vec3{})
	if !ok {
		return
	}

	axes := []struct {
		dir vmath.Vec3
		clr color.RGBA
	}{
		{vmath.V3(s.axesLength, 0, 0), color.RGBA{R: 255, A: 255}},
		{vmath.V3(0, s.axesLength, 0), color.RGBA{G: 255, A: 255}},
		{vmath.V3(0, 0, s.axesLength), color.RGBA{B: 255, A: 255}},
	}
	for _, axis := range axes {
		end, _, ok := projector.Project(axis.dir)
		if !ok {
			continue
		}
		vector.StrokeLine(dst,
			float32(origin.X), float32(origin.Y),
			float32(end.X), float32(end.Y),
			1, axis.clr, true)
	}
}
