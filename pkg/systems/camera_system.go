package systems

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/gonewx/rainbow/pkg/camera"
	"github.com/gonewx/rainbow/pkg/components"
	"github.com/gonewx/rainbow/pkg/config"
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/utils"
	"github.com/gonewx/rainbow/pkg/vmath"
)

// 俯仰角限制，避免越过极点导致 LookAt 的 up 向量退化
const maxPitch = math.Pi/2 - 0.01

// CameraSystem 轨道相机控制。
// 拖动改变偏航/俯仰，滚轮改变距离；当前值由弹簧平滑逼近目标值。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
	cfg           config.CameraConfig

	spring   harmonica.Spring
	springDt float64
}

// NewCameraSystem 创建轨道相机系统。
//
// 初始偏航/俯仰/距离由配置中的相机位置相对目标点的偏移换算得到。
func NewCameraSystem(em *ecs.EntityManager, cfg config.CameraConfig, viewportWidth, viewportHeight float64) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		cfg:           cfg,
	}

	target := vmath.V3(cfg.Target[0], cfg.Target[1], cfg.Target[2])
	offset := vmath.V3(cfg.Position[0], cfg.Position[1], cfg.Position[2]).Sub(target)
	distance := utils.Clamp(offset.Len(), cfg.MinDistance, cfg.MaxDistance)

	yaw := math.Atan2(offset.X, offset.Z)
	pitch := 0.0
	if l := offset.Len(); l > 0 {
		pitch = utils.Clamp(math.Asin(offset.Y/l), -maxPitch, maxPitch)
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Target:         target,
		Yaw:            yaw,
		GoalYaw:        yaw,
		Pitch:          pitch,
		GoalPitch:      pitch,
		Distance:       distance,
		GoalDistance:   distance,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	})

	cs.resetSpring(1.0 / 60.0)
	return cs
}

func (cs *CameraSystem) resetSpring(dt float64) {
	cs.springDt = dt
	cs.spring = harmonica.NewSpring(dt, cs.cfg.SpringFrequency, cs.cfg.SpringDamping)
}

func (cs *CameraSystem) component() *components.CameraComponent {
	comp, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return comp
}

// Rotate 按拖动的像素位移旋转相机
func (cs *CameraSystem) Rotate(dxPixels, dyPixels float64) {
	comp := cs.component()
	if comp == nil {
		return
	}
	comp.GoalYaw -= dxPixels * cs.cfg.RotateSpeed
	comp.GoalPitch = utils.Clamp(comp.GoalPitch+dyPixels*cs.cfg.RotateSpeed, -maxPitch, maxPitch)
}

// Zoom 按滚轮刻度缩放（正值拉近）
func (cs *CameraSystem) Zoom(wheel float64) {
	comp := cs.component()
	if comp == nil || wheel == 0 {
		return
	}
	factor := math.Pow(1-cs.cfg.ZoomSpeed, wheel)
	comp.GoalDistance = utils.Clamp(comp.GoalDistance*factor, cs.cfg.MinDistance, cs.cfg.MaxDistance)
}

// SetViewport 窗口尺寸变化时更新宽高比
func (cs *CameraSystem) SetViewport(width, height float64) {
	comp := cs.component()
	if comp == nil || !(width > 0) || !(height > 0) {
		return
	}
	comp.ViewportWidth = width
	comp.ViewportHeight = height
}

// Update 弹簧平滑：当前值逼近目标值
func (cs *CameraSystem) Update(dt float64) {
	comp := cs.component()
	if comp == nil || !(dt > 0) {
		return
	}
	if dt != cs.springDt {
		cs.resetSpring(dt)
	}

	comp.Yaw, comp.YawVel = cs.spring.Update(comp.Yaw, comp.YawVel, comp.GoalYaw)
	comp.Pitch, comp.PitchVel = cs.spring.Update(comp.Pitch, comp.PitchVel, comp.GoalPitch)
	comp.Distance, comp.DistanceVel = cs.spring.Update(comp.Distance, comp.DistanceVel, comp.GoalDistance)

	comp.Pitch = utils.Clamp(comp.Pitch, -maxPitch, maxPitch)
	comp.Distance = utils.Clamp(comp.Distance, cs.cfg.MinDistance, cs.cfg.MaxDistance)
}

// Snap 立即跳到目标值（无平滑）
func (cs *CameraSystem) Snap() {
	comp := cs.component()
	if comp == nil {
		return
	}
	comp.Yaw, comp.YawVel = comp.GoalYaw, 0
	comp.Pitch, comp.PitchVel = comp.GoalPitch, 0
	comp.Distance, comp.DistanceVel = comp.GoalDistance, 0
}

// Camera 返回当前相机快照
func (cs *CameraSystem) Camera() camera.Camera {
	comp := cs.component()
	if comp == nil {
		return camera.Camera{}
	}

	cosPitch := math.Cos(comp.Pitch)
	offset := vmath.V3(
		comp.Distance*cosPitch*math.Sin(comp.Yaw),
		comp.Distance*math.Sin(comp.Pitch),
		comp.Distance*cosPitch*math.Cos(comp.Yaw),
	)

	aspect := 1.0
	if comp.ViewportHeight > 0 {
		aspect = comp.ViewportWidth / comp.ViewportHeight
	}

	return camera.Camera{
		Position: comp.Target.Add(offset),
		Target:   comp.Target,
		Up:       vmath.V3(0, 1, 0),
		FOVDeg:   cs.cfg.FOV,
		Aspect:   aspect,
		Near:     cs.cfg.Near,
		Far:      cs.cfg.Far,
	}
}

// Viewport 当前视口尺寸
func (cs *CameraSystem) Viewport() (float64, float64) {
	comp := cs.component()
	if comp == nil {
		return 0, 0
	}
	return comp.ViewportWidth, comp.ViewportHeight
}
