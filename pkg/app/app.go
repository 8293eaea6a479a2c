// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	sfx "github.com/mjohnson139/expo-animations/internal/audio"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/game"
	"github.com/mjohnson139/expo-animations/pkg/scenes"
)

// gdataAppName 存储目录名
const gdataAppName = "board_animations"

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	state                    *game.GameState
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
// cfg 为 nil 时使用默认配置。
func NewApp(cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultAppConfig()
	}

	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// gdata 打开失败时降级为内存存储
	gdataManager, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, presets will not persist: %v", err)
		gdataManager = nil
	}

	settings := game.NewSettingsManager(gdataManager)
	state := &game.GameState{
		Config:    cfg,
		Catalog:   config.DefaultCatalog(),
		Settings:  settings,
		Presets:   game.NewPresetManager(gdataManager),
		Resources: game.NewResourceManager(),
		Scenes:    game.NewSceneManager(),
	}

	if cfg.Playback.Mute {
		state.Audio = game.NewAudioManager(nil, settings)
	} else {
		audioManager := game.NewAudioManager(game.NewAudioContext(), settings)
		audioManager.Preload(sfx.CueTrumpet, sfx.CueApplause, sfx.CueChime)
		state.Audio = audioManager
	}
	log.Printf("[App] AudioManager initialized (mute=%v)", cfg.Playback.Mute)

	state.Scenes.SetSceneFactory(func(animationID string) game.Scene {
		return scenes.NewDetailScene(state, animationID)
	})
	state.Scenes.SetHomeFactory(func() game.Scene {
		return scenes.NewCatalogScene(state)
	})

	if cfg.Playback.Start != "" {
		log.Printf("[App] Opening animation: %s", cfg.Playback.Start)
		state.Scenes.Open(cfg.Playback.Start)
	} else {
		state.Scenes.GoHome()
	}

	return &App{
		state:   state,
		verbose: cfg.Verbose,
	}, nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	cfg := a.state.Config

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
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
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// M 切换提示音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		settings := a.state.Settings
		settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
		log.Printf("[App] Sound enabled: %v", settings.GetSettings().SoundEnabled)
	}

	a.state.Scenes.Update(1.0 / float64(cfg.Playback.TPS))
	return nil
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.state.Scenes.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.state.Config.Window.Width, a.state.Config.Window.Height
}

// SaveOnExit 保存当前场景的状态（窗口关闭时调用）
func (a *App) SaveOnExit() {
	if s, ok := a.state.Scenes.GetCurrentScene().(game.Saveable); ok {
		s.SaveOnExit()
	}
	if err := a.state.Settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
