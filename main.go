package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/rainbow/pkg/app"
	"github.com/gonewx/rainbow/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Scene config YAML path (default: embedded data/scene.yaml)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = current time)")
	countFlag   = flag.Int("count", 0, "Override initial composition star count")
	radiusFlag  = flag.Float64("radius", 0, "Override initial composition radius")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Count:      *countFlag,
		Radius:     *radiusFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := gameApp.SceneConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
