package systems

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/rainbow/pkg/config"
)

// BloomMipLevels 降采样层数
const BloomMipLevels = 5

// 每层的基础权重，越粗糙的层越弱
var bloomLevelFactors = [BloomMipLevels]float64{1.0, 0.8, 0.6, 0.4, 0.2}

var (
	//go:embed shaders/bright_pass.kage
	brightPassShaderSrc []byte

	//go:embed shaders/composite.kage
	compositeShaderSrc []byte
)

// BloomLevelWeights 按 radius 计算每层上采样权重
//
// radius = 0 时使用基础权重，radius 增大时粗糙层的权重上升。负权重按 0 处理。
func BloomLevelWeights(radius float64) [BloomMipLevels]float64 {
	var w [BloomMipLevels]float64
	for i, f := range bloomLevelFactors {
		v := f + (1.2-2*f)*radius
		if v < 0 {
			v = 0
		}
		w[i] = v
	}
	return w
}

// BloomMipSizes 每层降采样缓冲的尺寸（逐层减半，最小 1 像素）
func BloomMipSizes(width, height int) [BloomMipLevels][2]int {
	var sizes [BloomMipLevels][2]int
	w, h := width, height
	for i := range sizes {
		w = max(w/2, 1)
		h = max(h/2, 1)
		sizes[i] = [2]int{w, h}
	}
	return sizes
}

// BloomSystem 泛光后处理
//
// 流程：场景缓冲 → 亮度提取 → 逐层降采样 → 按权重加法上采样 → 与场景合成并做色调映射。
type BloomSystem struct {
	cfg config.BloomConfig

	brightShader    *ebiten.Shader
	compositeShader *ebiten.Shader

	width, height int
	scene         *ebiten.Image
	bright        *ebiten.Image
	glow          *ebiten.Image
	mips          [BloomMipLevels]*ebiten.Image
}

// NewBloomSystem 编译着色器并分配缓冲
func NewBloomSystem(cfg config.BloomConfig, width, height int) (*BloomSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bloom config: %w", err)
	}

	brightShader, err := ebiten.NewShader(brightPassShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile bright pass shader: %w", err)
	}
	compositeShader, err := ebiten.NewShader(compositeShaderSrc)
	if err != nil {
		brightShader.Deallocate()
		return nil, fmt.Errorf("failed to compile composite shader: %w", err)
	}

	b := &BloomSystem{
		cfg:             cfg,
		brightShader:    brightShader,
		compositeShader: compositeShader,
	}
	b.Resize(width, height)
	return b, nil
}

// Apply 应用新的泛光参数（越界值被截断到允许范围）
func (b *BloomSystem) Apply(cfg config.BloomConfig) {
	b.cfg = config.BloomConfig{
		Exposure:  config.BloomExposureRange.Clamp(cfg.Exposure),
		Threshold: config.BloomThresholdRange.Clamp(cfg.Threshold),
		Strength:  config.BloomStrengthRange.Clamp(cfg.Strength),
		Radius:    config.BloomRadiusRange.Clamp(cfg.Radius),
	}
	log.Printf("[Bloom] Applied exposure=%.2f threshold=%.2f strength=%.2f radius=%.2f",
		b.cfg.Exposure, b.cfg.Threshold, b.cfg.Strength, b.cfg.Radius)
}

// Config 当前泛光参数
func (b *BloomSystem) Config() config.BloomConfig {
	return b.cfg
}

// Resize 按新的视口尺寸重建所有缓冲；尺寸未变化时不做任何事
func (b *BloomSystem) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == b.width && height == b.height) {
		return
	}
	b.deallocate()

	b.width, b.height = width, height
	b.scene = ebiten.NewImage(width, height)
	b.bright = ebiten.NewImage(width, height)
	b.glow = ebiten.NewImage(width, height)
	for i, size := range BloomMipSizes(width, height) {
		b.mips[i] = ebiten.NewImage(size[0], size[1])
	}
	log.Printf("[Bloom] Resized buffers to %dx%d", width, height)
}

func (b *BloomSystem) deallocate() {
	for _, img := range []*ebiten.Image{b.scene, b.bright, b.glow} {
		if img != nil {
			img.Deallocate()
		}
	}
	for i, img := range b.mips {
		if img != nil {
			img.Deallocate()
			b.mips[i] = nil
		}
	}
}

// Scene 返回场景缓冲（已清空），调用方把拖尾画到这里
func (b *BloomSystem) Scene() *ebiten.Image {
	b.scene.Clear()
	return b.scene
}

// Draw 对场景缓冲做泛光并合成到 dst
func (b *BloomSystem) Draw(dst *ebiten.Image) {
	// 亮度提取
	b.bright.Clear()
	brightOp := &ebiten.DrawRectShaderOptions{}
	brightOp.Images[0] = b.scene
	brightOp.Uniforms = map[string]any{
		"Threshold": float32(b.cfg.Threshold),
	}
	b.bright.DrawRectShader(b.width, b.height, b.brightShader, brightOp)

	// 降采样
	src := b.bright
	for _, mip := range b.mips {
		mip.Clear()
		drawScaled(mip, src, 1, ebiten.Blend{})
		src = mip
	}

	// 按权重叠加各层
	b.glow.Clear()
	weights := BloomLevelWeights(b.cfg.Radius)
	for i, mip := range b.mips {
		if weights[i] == 0 {
			continue
		}
		drawScaled(b.glow, mip, float32(weights[i]), ebiten.BlendLighter)
	}

	// 合成与色调映射
	compositeOp := &ebiten.DrawRectShaderOptions{}
	compositeOp.Images[0] = b.scene
	compositeOp.Images[1] = b.glow
	compositeOp.Uniforms = map[string]any{
		"Strength": float32(b.cfg.Strength),
		"Exposure": float32(b.cfg.ToneMappingExposure()),
	}
	dst.DrawRectShader(b.width, b.height, b.compositeShader, compositeOp)
}

// drawScaled 把 src 线性缩放到 dst 的尺寸
func drawScaled(dst, src *ebiten.Image, weight float32, blend ebiten.Blend) {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dw)/float64(sw), float64(dh)/float64(sh))
	op.Filter = ebiten.FilterLinear
	op.ColorScale.Scale(weight, weight, weight, weight)
	op.Blend = blend
	dst.DrawImage(src, op)
}
