package modules

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/rainbow/pkg/config"
)

// TuningStep 每次按键的调整步长
const TuningStep = 0.01

// 按住按键时的重复节奏（帧）
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// BloomParam 可调的泛光参数
type BloomParam int

const (
	ParamExposure BloomParam = iota
	ParamThreshold
	ParamStrength
	ParamRadius
)

// String 参数名称
func (p BloomParam) String() string {
	switch p {
	case ParamExposure:
		return "exposure"
	case ParamThreshold:
		return "threshold"
	case ParamStrength:
		return "strength"
	case ParamRadius:
		return "radius"
	default:
		return fmt.Sprintf("BloomParam(%d)", int(p))
	}
}

// Range 参数的允许范围
func (p BloomParam) Range() config.Range {
	switch p {
	case ParamExposure:
		return config.BloomExposureRange
	case ParamThreshold:
		return config.BloomThresholdRange
	case ParamStrength:
		return config.BloomStrengthRange
	default:
		return config.BloomRadiusRange
	}
}

// tuningBinding 按键 → 参数调整
type tuningBinding struct {
	key   ebiten.Key
	param BloomParam
	delta float64
}

var tuningBindings = []tuningBinding{
	{ebiten.Key1, ParamExposure, -TuningStep},
	{ebiten.Key2, ParamExposure, TuningStep},
	{ebiten.Key3, ParamThreshold, -TuningStep},
	{ebiten.Key4, ParamThreshold, TuningStep},
	{ebiten.Key5, ParamStrength, -TuningStep},
	{ebiten.Key6, ParamStrength, TuningStep},
	{ebiten.Key7, ParamRadius, -TuningStep},
	{ebiten.Key8, ParamRadius, TuningStep},
}

// AdjustBloom 调整单个参数，结果截断到允许范围并对齐到步长
func AdjustBloom(cfg config.BloomConfig, param BloomParam, delta float64) config.BloomConfig {
	field := bloomField(&cfg, param)
	v := param.Range().Clamp(*field + delta)
	*field = param.Range().Clamp(math.Round(v/TuningStep) * TuningStep)
	return cfg
}

func bloomField(cfg *config.BloomConfig, param BloomParam) *float64 {
	switch param {
	case ParamExposure:
		return &cfg.Exposure
	case ParamThreshold:
		return &cfg.Threshold
	case ParamStrength:
		return &cfg.Strength
	default:
		return &cfg.Radius
	}
}

// TuningPanelModule 泛光调参面板
//
// Tab 显示/隐藏；显示时数字键 1-8 成对调整 exposure/threshold/strength/radius。
// 每次修改后通过 apply 回调把完整参数交给渲染端。
type TuningPanelModule struct {
	cfg     config.BloomConfig
	visible bool
	apply   func(config.BloomConfig)
}

// NewTuningPanelModule 创建调参面板
//
// 参数:
//   - initial: 初始参数
//   - apply: 参数变化回调（可为 nil）
func NewTuningPanelModule(initial config.BloomConfig, apply func(config.BloomConfig)) *TuningPanelModule {
	return &TuningPanelModule{
		cfg:   initial,
		apply: apply,
	}
}

// Config 当前参数
func (m *TuningPanelModule) Config() config.BloomConfig {
	return m.cfg
}

// Visible 面板是否显示
func (m *TuningPanelModule) Visible() bool {
	return m.visible
}

// Toggle 切换显示状态
func (m *TuningPanelModule) Toggle() {
	m.visible = !m.visible
}

// Adjust 调整参数并触发 apply 回调；值未变化（已到边界）时不触发
func (m *TuningPanelModule) Adjust(param BloomParam, delta float64) bool {
	next := AdjustBloom(m.cfg, param, delta)
	if next == m.cfg {
		return false
	}
	m.cfg = next
	log.Printf("[TuningPanel] %s = %.2f", param, *bloomField(&m.cfg, param))
	if m.apply != nil {
		m.apply(m.cfg)
	}
	return true
}

// Update 处理键盘输入
func (m *TuningPanelModule) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		m.Toggle()
	}
	if !m.visible {
		return
	}
	for _, b := range tuningBindings {
		if keyRepeated(b.key) {
			m.Adjust(b.param, b.delta)
		}
	}
}

// keyRepeated 刚按下或按住超过延迟后按固定间隔重复
func keyRepeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// Draw 在左下角绘制参数列表
func (m *TuningPanelModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}
	msg := fmt.Sprintf("Bloom [Tab]\n1/2 exposure  %.2f\n3/4 threshold %.2f\n5/6 strength  %.2f\n7/8 radius    %.2f",
		m.cfg.Exposure, m.cfg.Threshold, m.cfg.Strength, m.cfg.Radius)
	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, msg, 8, h-5*16-8)
}
