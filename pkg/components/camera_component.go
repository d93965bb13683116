package components

import "github.com/gonewx/rainbow/pkg/vmath"

// CameraComponent 轨道相机状态
//
// 相机绕 Target 旋转：Goal* 是输入设定的目标值，
// 当前值由弹簧平滑地逼近目标（避免拖动时画面跳变）。
type CameraComponent struct {
	Target vmath.Vec3

	// 偏航角（绕 Y 轴，弧度）
	Yaw     float64
	YawVel  float64
	GoalYaw float64

	// 俯仰角（弧度），限制在 (-π/2, π/2) 内
	Pitch     float64
	PitchVel  float64
	GoalPitch float64

	// 到目标点的距离
	Distance     float64
	DistanceVel  float64
	GoalDistance float64

	// 视口尺寸（像素）
	ViewportWidth  float64
	ViewportHeight float64
}
