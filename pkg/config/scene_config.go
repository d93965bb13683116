package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig 场景配置
//
// 包含窗口、初始星环、随机范围、点击生成、相机、拖尾和辉光参数。
//
// 配置文件位置: data/scene.yaml（默认内嵌，可通过 --config 覆盖）
type SceneConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Initial     CompositionSpec   `yaml:"initial"`
	Composition CompositionConfig `yaml:"composition"`
	ClickSpawn  ClickSpawnConfig  `yaml:"clickSpawn"`
	Camera      CameraConfig      `yaml:"camera"`
	Trail       TrailConfig       `yaml:"trail"`
	Bloom       BloomConfig       `yaml:"bloom"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CompositionSpec 一个星环的生成请求（数量、半径、中心）
type CompositionSpec struct {
	Count  int        `yaml:"count"`
	Radius float64    `yaml:"radius"`
	Center [3]float64 `yaml:"center"`
}

// CompositionConfig 星环内每颗星的随机范围
type CompositionConfig struct {
	// RadiusMinRatio 最小半径 = radius * RadiusMinRatio，最大半径 = radius
	RadiusMinRatio float64 `yaml:"radiusMinRatio"`

	// Period 周期范围（秒）
	Period Range `yaml:"period"`

	// HueAtMinRadius / HueAtMaxRadius 半径两端对应的色相（度）
	HueAtMinRadius float64 `yaml:"hueAtMinRadius"`
	HueAtMaxRadius float64 `yaml:"hueAtMaxRadius"`

	// Direction 行进方向（+1 / -1）
	Direction int `yaml:"direction"`
}

// ClickSpawnConfig 点击生成星环的参数
type ClickSpawnConfig struct {
	// Radius 随机半径范围
	Radius Range `yaml:"radius"`

	// ReferenceRadius / ReferenceCount 数量按半径比例缩放：count = round(r / ReferenceRadius * ReferenceCount)
	ReferenceRadius float64 `yaml:"referenceRadius"`
	ReferenceCount  int     `yaml:"referenceCount"`

	// PlaneZ 点击射线与 z = PlaneZ 平面求交
	PlaneZ float64 `yaml:"planeZ"`
}

// CameraConfig 透视相机与轨道控制参数
type CameraConfig struct {
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`

	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`

	// RotateSpeed 每像素拖动对应的弧度
	RotateSpeed float64 `yaml:"rotateSpeed"`
	// ZoomSpeed 每格滚轮的缩放比例
	ZoomSpeed float64 `yaml:"zoomSpeed"`

	// SpringFrequency / SpringDamping 相机平滑弹簧参数
	SpringFrequency float64 `yaml:"springFrequency"`
	SpringDamping   float64 `yaml:"springDamping"`

	// AxesLength 坐标轴辅助线长度，0 表示不绘制
	AxesLength float64 `yaml:"axesLength"`
}

// TrailConfig 拖尾配置
type TrailConfig struct {
	Points    int     `yaml:"points"`
	LineWidth float64 `yaml:"lineWidth"`
	Additive  bool    `yaml:"additive"`
}

// BloomConfig 辉光后处理参数（可运行时调整，通过 Apply 生效）
type BloomConfig struct {
	Exposure  float64 `yaml:"exposure"`
	Threshold float64 `yaml:"threshold"`
	Strength  float64 `yaml:"strength"`
	Radius    float64 `yaml:"radius"`
}

// Range 闭区间
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains 判断 v 是否在区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp 把 v 截断到区间内（NaN 取下限）
func (r Range) Clamp(v float64) float64 {
	if !(v >= r.Min) {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// 辉光参数可调范围（与调参面板一致）
var (
	BloomExposureRange  = Range{Min: 0.1, Max: 2.0}
	BloomThresholdRange = Range{Min: 0.0, Max: 1.0}
	BloomStrengthRange  = Range{Min: 0.0, Max: 2.0}
	BloomRadiusRange    = Range{Min: 0.0, Max: 2.0}
)

// DefaultSceneConfig 返回默认配置（与 data/scene.yaml 保持一致）
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Rainbow"},
		Initial: CompositionSpec{
			Count:  200,
			Radius: 90,
		},
		Composition: CompositionConfig{
			RadiusMinRatio: 0.8,
			Period:         Range{Min: 50, Max: 80},
			HueAtMinRadius: 300,
			HueAtMaxRadius: 0,
			Direction:      1,
		},
		ClickSpawn: ClickSpawnConfig{
			Radius:          Range{Min: 50, Max: 150},
			ReferenceRadius: 80,
			ReferenceCount:  150,
			PlaneZ:          0,
		},
		Camera: CameraConfig{
			FOV:             80,
			Near:            1,
			Far:             300,
			Position:        [3]float64{0, 0, -100},
			Target:          [3]float64{0, 0, 0},
			MinDistance:     10,
			MaxDistance:     280,
			RotateSpeed:     0.005,
			ZoomSpeed:       0.1,
			SpringFrequency: 8,
			SpringDamping:   1,
			AxesLength:      25,
		},
		Trail: TrailConfig{
			Points:    100,
			LineWidth: 0.4,
			Additive:  true,
		},
		Bloom: BloomConfig{
			Exposure:  1,
			Threshold: 0,
			Strength:  1.2,
			Radius:    0,
		},
	}
}

// LoadSceneConfig 从文件加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析 YAML 数据
//
// 未出现在 YAML 中的字段保留默认值。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸、星环数量和半径为正
//   - 周期和点击半径范围有效（0 < min <= max）
//   - 拖尾点数为正，线宽为正
//   - 方向为 ±1
//   - 相机参数合理
//   - 辉光参数在可调范围内
func (c *SceneConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Initial.Count < 0 {
		return fmt.Errorf("initial count must be >= 0, got %d", c.Initial.Count)
	}
	if !positive(c.Initial.Radius) {
		return fmt.Errorf("initial radius must be > 0, got %v", c.Initial.Radius)
	}

	comp := c.Composition
	if !(comp.RadiusMinRatio > 0 && comp.RadiusMinRatio <= 1) {
		return fmt.Errorf("composition radiusMinRatio must be in (0, 1], got %v", comp.RadiusMinRatio)
	}
	if err := validatePositiveRange("composition period", comp.Period); err != nil {
		return err
	}
	if !(Range{Min: 0, Max: 360}).Contains(comp.HueAtMinRadius) || !(Range{Min: 0, Max: 360}).Contains(comp.HueAtMaxRadius) {
		return fmt.Errorf("composition hue must be in [0, 360], got %v..%v", comp.HueAtMinRadius, comp.HueAtMaxRadius)
	}
	if comp.Direction != 1 && comp.Direction != -1 {
		return fmt.Errorf("composition direction must be +1 or -1, got %d", comp.Direction)
	}

	if err := validatePositiveRange("clickSpawn radius", c.ClickSpawn.Radius); err != nil {
		return err
	}
	if !positive(c.ClickSpawn.ReferenceRadius) || c.ClickSpawn.ReferenceCount <= 0 {
		return fmt.Errorf("clickSpawn reference radius/count must be positive, got %v/%d",
			c.ClickSpawn.ReferenceRadius, c.ClickSpawn.ReferenceCount)
	}

	cam := c.Camera
	if !(cam.FOV > 0 && cam.FOV < 180) {
		return fmt.Errorf("camera fov must be in (0, 180), got %v", cam.FOV)
	}
	if !positive(cam.Near) || cam.Far <= cam.Near {
		return fmt.Errorf("camera near/far invalid: near=%v far=%v", cam.Near, cam.Far)
	}
	if !positive(cam.MinDistance) || cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera distance range invalid: %v..%v", cam.MinDistance, cam.MaxDistance)
	}
	if !positive(cam.SpringFrequency) || cam.SpringDamping < 0 {
		return fmt.Errorf("camera spring invalid: frequency=%v damping=%v", cam.SpringFrequency, cam.SpringDamping)
	}

	if c.Trail.Points <= 1 {
		return fmt.Errorf("trail points must be > 1, got %d", c.Trail.Points)
	}
	if !positive(c.Trail.LineWidth) {
		return fmt.Errorf("trail lineWidth must be > 0, got %v", c.Trail.LineWidth)
	}

	return c.Bloom.Validate()
}

// Validate 验证辉光参数在可调范围内
func (b BloomConfig) Validate() error {
	checks := []struct {
		name  string
		value float64
		rng   Range
	}{
		{"exposure", b.Exposure, BloomExposureRange},
		{"threshold", b.Threshold, BloomThresholdRange},
		{"strength", b.Strength, BloomStrengthRange},
		{"radius", b.Radius, BloomRadiusRange},
	}
	for _, ch := range checks {
		if !ch.rng.Contains(ch.value) {
			return fmt.Errorf("bloom %s must be in [%v, %v], got %v", ch.name, ch.rng.Min, ch.rng.Max, ch.value)
		}
	}
	return nil
}

// ToneMappingExposure 色调映射曝光值（exposure 的四次方）
func (b BloomConfig) ToneMappingExposure() float64 {
	return math.Pow(b.Exposure, 4)
}

func validatePositiveRange(name string, r Range) error {
	if !positive(r.Min) || r.Max < r.Min {
		return fmt.Errorf("%s range invalid: min=%v max=%v", name, r.Min, r.Max)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
