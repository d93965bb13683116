// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/rainbow/pkg/camera"
	"github.com/gonewx/rainbow/pkg/components"
	"github.com/gonewx/rainbow/pkg/config"
	"github.com/gonewx/rainbow/pkg/ecs"
	"github.com/gonewx/rainbow/pkg/embedded"
	"github.com/gonewx/rainbow/pkg/entities"
	"github.com/gonewx/rainbow/pkg/modules"
	"github.com/gonewx/rainbow/pkg/systems"
	"github.com/gonewx/rainbow/pkg/utils"
	"github.com/gonewx/rainbow/pkg/vmath"
)

// SceneConfigPath 嵌入的默认场景配置路径
const SceneConfigPath = "data/scene.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空则使用嵌入的 data/scene.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// Count 覆盖初始星环的彗星数量（> 0 时生效）
	Count int
	// Radius 覆盖初始星环半径（> 0 时生效）
	Radius float64
}

// App 应用上下文，实现 ebiten.Game 接口
//
// 持有实体管理器、各系统、随机源和场景配置，不使用任何全局状态。
type App struct {
	scene   *config.SceneConfig
	verbose bool
	seed    uint64
	rng     *rand.Rand

	entityManager     *ecs.EntityManager
	starSystem        *systems.StarSystem
	cameraSystem      *systems.CameraSystem
	trailRenderSystem *systems.TrailRenderSystem
	bloomSystem       *systems.BloomSystem
	tuningPanel       *modules.TuningPanelModule

	width, height int

	// 右键拖动 / 单指拖动旋转相机，单指轻点生成星环
	mouseDrag utils.DragTracker
	touchDrag utils.DragTracker
	touchIDs  []ebiten.TouchID

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadSceneConfig 按优先级加载场景配置：
// 指定路径 → 嵌入的 data/scene.yaml → 内置默认值
func LoadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		cfg, err := config.LoadSceneConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded scene config from %s", path)
		return cfg, nil
	}

	if embedded.IsInitialized() {
		data, err := embedded.ReadFile(SceneConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
		}
		cfg, err := config.ParseSceneConfig(data)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded embedded %s", SceneConfigPath)
		return cfg, nil
	}

	log.Printf("[Config] Embedded resources unavailable, using built-in defaults")
	return config.DefaultSceneConfig(), nil
}

// 移动端初始星环的彗星数量上限（未显式指定 Count 时生效）
const mobileInitialCount = 120

// applyOverrides 把命令行覆盖项写入场景配置
func applyOverrides(scene *config.SceneConfig, cfg Config, mobile bool) error {
	if mobile && cfg.Count <= 0 {
		scene.Initial.Count = min(scene.Initial.Count, mobileInitialCount)
	}
	if cfg.Count > 0 {
		scene.Initial.Count = cfg.Count
	}
	if cfg.Radius > 0 {
		scene.Initial.Radius = cfg.Radius
	}
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("invalid overrides: %w", err)
	}
	return nil
}

// NewApp 创建并初始化应用
//
// 桌面端应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用内置默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	scene, err := LoadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	if err := applyOverrides(scene, cfg, utils.IsMobile()); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	width, height := scene.Window.Width, scene.Window.Height
	em := ecs.NewEntityManager()

	bloomSystem, err := systems.NewBloomSystem(scene.Bloom, width, height)
	if err != nil {
		return nil, fmt.Errorf("泛光初始化失败: %w", err)
	}

	a := &App{
		scene:             scene,
		verbose:           cfg.Verbose,
		seed:              seed,
		rng:               utils.NewRandom(seed),
		entityManager:     em,
		starSystem:        systems.NewStarSystem(em),
		cameraSystem:      systems.NewCameraSystem(em, scene.Camera, float64(width), float64(height)),
		trailRenderSystem: systems.NewTrailRenderSystem(em, float64(width), float64(height), scene.Camera.AxesLength),
		bloomSystem:       bloomSystem,
		width:             width,
		height:            height,
	}
	a.tuningPanel = modules.NewTuningPanelModule(scene.Bloom, a.bloomSystem.Apply)

	if err := a.spawnInitial(); err != nil {
		return nil, err
	}

	log.Printf("[App] Started: seed=%d, window=%dx%d", seed, width, height)
	return a, nil
}

func (a *App) spawnInitial() error {
	params := entities.InitialParams(a.scene.Initial)
	if _, err := entities.SpawnComposition(a.entityManager, a.rng, params, a.scene, a.resolution()); err != nil {
		return fmt.Errorf("初始星环创建失败: %w", err)
	}
	return nil
}

func (a *App) resolution() vmath.Vec2 {
	return vmath.Vec2{X: float64(a.width), Y: float64(a.height)}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()
	a.tuningPanel.Update()
	a.handleInput()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.starSystem.Update(deltaTime)
	a.cameraSystem.Update(deltaTime)
	a.entityManager.RemoveMarkedEntities()
	return nil
}

func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.scene.Window.Width, a.scene.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.scene.Window.Width, a.scene.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

func (a *App) handleInput() {
	// 左键：在点击位置生成星环
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.spawnAt(float64(x), float64(y))
	}

	// 右键拖动旋转相机
	x, y := ebiten.CursorPosition()
	if dx, dy := a.mouseDrag.Step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight), x, y); dx != 0 || dy != 0 {
		a.cameraSystem.Rotate(float64(dx), float64(dy))
	}

	// 触摸：拖动旋转，轻点生成
	var pressed bool
	a.touchIDs, pressed, x, y = utils.PrimaryTouch(a.touchIDs)
	if dx, dy := a.touchDrag.Step(pressed, x, y); dx != 0 || dy != 0 {
		a.cameraSystem.Rotate(float64(dx), float64(dy))
	}
	if a.touchDrag.IsTap() {
		tx, ty := a.touchDrag.Start()
		a.spawnAt(float64(tx), float64(ty))
	}

	// 滚轮缩放
	if _, wy := ebiten.Wheel(); wy != 0 {
		a.cameraSystem.Zoom(wy)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.logStats()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.Reset()
	}
}

// spawnAt 屏幕坐标 → 世界坐标 → 生成星环
func (a *App) spawnAt(screenX, screenY float64) {
	cam := a.cameraSystem.Camera()
	world, ok := camera.ScreenToWorld(screenX, screenY, float64(a.width), float64(a.height), cam, a.scene.ClickSpawn.PlaneZ)
	if !ok {
		log.Printf("[App] Click (%.0f, %.0f) does not hit the spawn plane", screenX, screenY)
		return
	}

	params := entities.ClickSpawnParams(a.rng, world, a.scene.ClickSpawn)
	if _, err := entities.SpawnComposition(a.entityManager, a.rng, params, a.scene, a.resolution()); err != nil {
		log.Printf("[App] Warning: spawn failed: %v", err)
	}
}

// Reset 移除所有星环并重新生成初始星环
func (a *App) Reset() {
	n := entities.DestroyAllCompositions(a.entityManager)
	a.entityManager.RemoveMarkedEntities()
	log.Printf("[App] Cleared %d compositions", n)

	if err := a.spawnInitial(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

func (a *App) logStats() {
	rs := a.trailRenderSystem.Stats()
	compositions := len(ecs.GetEntitiesWith1[*components.CompositionComponent](a.entityManager))
	log.Printf("[App] Stats: compositions=%d stars=%d ribbons=%d vertices=%d triangles=%d drawCalls=%d culled=%d resets=%d entities=%d",
		compositions, a.starSystem.StarCount(), rs.Ribbons, rs.Vertices, rs.Triangles, rs.DrawCalls, rs.Culled,
		a.starSystem.TotalResets(), a.entityManager.EntityCount())
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	sceneImage := a.bloomSystem.Scene()
	a.trailRenderSystem.Draw(sceneImage, a.cameraSystem.Camera())
	a.bloomSystem.Draw(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  Stars: %d\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), a.starSystem.StarCount(), a.controlsHint()))
	a.tuningPanel.Draw(screen)
}

func (a *App) controlsHint() string {
	if utils.IsMobile() {
		return "Tap: spawn  Drag: orbit"
	}
	return "LMB: spawn  RMB drag: orbit  Wheel: zoom  Tab: bloom  C: reset  P: stats"
}

// Layout 返回逻辑屏幕尺寸（与窗口尺寸一致）
// 尺寸变化时同步相机宽高比、拖尾分辨率和泛光缓冲
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != a.width || outsideHeight != a.height) {
		a.resize(outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.cameraSystem.SetViewport(float64(width), float64(height))
	a.trailRenderSystem.SetResolution(float64(width), float64(height))
	a.bloomSystem.Resize(width, height)
	log.Printf("[App] Resized to %dx%d", width, height)
}

// SceneConfig 返回当前场景配置
func (a *App) SceneConfig() *config.SceneConfig {
	return a.scene
}

// Seed 返回使用的随机种子
func (a *App) Seed() uint64 {
	return a.seed
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
