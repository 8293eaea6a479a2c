package scenes

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	sfx "github.com/mjohnson139/expo-animations/internal/audio"
	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/game"
	"github.com/mjohnson139/expo-animations/pkg/modules"
	"github.com/mjohnson139/expo-animations/pkg/systems"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// 详情页布局
const (
	previewRatio      = 0.5 // 预览区域占屏幕高度的比例
	detailButtonH     = 40.0
	detailButtonGap   = 10.0
	detailMargin      = 16.0
	detailDescription = 52
)

var previewColor = color.RGBA{R: 8, G: 8, B: 16, A: 255}

// DetailScene 动画详情
//
// 布局（自上而下）：
//   - 预览区域：播放中的粒子、光效与标题
//   - 按钮行：返回 / 播放·停止 / 恢复默认
//   - 描述文字
//   - 参数控制面板
//
// 键盘：空格播放/停止，Esc 返回，R 恢复默认，方向键调整参数。
// 未知动画 ID 显示 "Animation not found" 与返回按钮。
type DetailScene struct {
	state       *game.GameState
	animationID string
	def         config.AnimationDefinition
	notFound    bool

	values        *config.Values
	entityManager *ecs.EntityManager
	controller    *systems.PlaybackController
	sliderSystem  *systems.SliderSystem
	renderSystem  *systems.RenderSystem
	panel         *modules.ControlPanelModule

	preview      utils.Rect
	backButton   utils.Rect
	playButton   utils.Rect
	resetButton  utils.Rect
	descriptionY float64

	completedRuns int

	titleFont *text.GoTextFace
	bodyFont  *text.GoTextFace
}

// NewDetailScene 创建详情场景
// 已保存的预设会在创建时恢复到参数值中。
func NewDetailScene(state *game.GameState, animationID string) *DetailScene {
	s := &DetailScene{
		state:       state,
		animationID: animationID,
		titleFont:   loadFace(state.Resources, game.FontBold, 20),
		bodyFont:    loadFace(state.Resources, game.FontRegular, 14),
	}

	w, h := state.Config.Viewport()
	s.preview = utils.Rect{X: 0, Y: 0, W: w, H: h * previewRatio}
	buttonY := s.preview.H + detailButtonGap
	buttonW := (w - 2*detailMargin - 2*detailButtonGap) / 3
	s.backButton = utils.Rect{X: detailMargin, Y: buttonY, W: buttonW, H: detailButtonH}
	s.playButton = utils.Rect{X: detailMargin + buttonW + detailButtonGap, Y: buttonY, W: buttonW, H: detailButtonH}
	s.resetButton = utils.Rect{X: detailMargin + 2*(buttonW+detailButtonGap), Y: buttonY, W: buttonW, H: detailButtonH}
	s.descriptionY = buttonY + detailButtonH + detailButtonGap

	def, err := state.Catalog.Get(animationID)
	if err != nil {
		if !errors.Is(err, config.ErrAnimationNotFound) {
			log.Printf("[DetailScene] 加载动画失败: %v", err)
		}
		log.Printf("[DetailScene] 动画不存在: %s", animationID)
		s.notFound = true
		return s
	}
	s.def = def

	s.values = config.InitialValues(def)
	if n, err := state.Presets.Restore(s.values); err != nil {
		log.Printf("[DetailScene] 恢复预设失败: %v", err)
	} else if n > 0 {
		log.Printf("[DetailScene] 从预设恢复 %d 个参数", n)
	}

	s.entityManager = ecs.NewEntityManager()
	generator := particle.NewGenerator(particle.SourceFor(state.Config.Playback.Seed), s.preview.W, s.preview.H)
	s.controller = systems.NewPlaybackController(s.entityManager, generator, def.Kind, state.Config.Playback.TPS,
		systems.PlaybackCallbacks{
			OnStart:    s.onStart,
			OnComplete: s.onComplete,
		})
	s.sliderSystem = systems.NewSliderSystem(s.entityManager)
	s.renderSystem = systems.NewRenderSystem(state.Resources)

	panelY := s.descriptionY + 64
	s.panel = modules.NewControlPanelModule(s.entityManager, s.values,
		utils.Rect{X: detailMargin, Y: panelY, W: w - 2*detailMargin, H: h - panelY},
		s.bodyFont,
		modules.ControlPanelCallbacks{OnChange: s.onParameterChange})

	return s
}

// IsNotFound 动画 ID 是否不存在
func (s *DetailScene) IsNotFound() bool {
	return s.notFound
}

// Values 当前参数值（不存在的动画返回 nil）
func (s *DetailScene) Values() *config.Values {
	return s.values
}

// Controller 播放控制器（不存在的动画返回 nil）
func (s *DetailScene) Controller() *systems.PlaybackController {
	return s.controller
}

// Panel 参数控制面板（不存在的动画返回 nil）
func (s *DetailScene) Panel() *modules.ControlPanelModule {
	return s.panel
}

// CompletedRuns 自然播放完成的次数
func (s *DetailScene) CompletedRuns() int {
	return s.completedRuns
}

// TogglePlay 播放/停止
func (s *DetailScene) TogglePlay() error {
	if s.notFound {
		return fmt.Errorf("toggle %s: %w", s.animationID, config.ErrAnimationNotFound)
	}
	state, err := s.controller.Toggle(s.values)
	if err != nil {
		return err
	}
	if state == systems.StateStopped {
		s.state.Audio.Stop()
	}
	return nil
}

// Reset 停止播放并恢复默认参数
func (s *DetailScene) Reset() {
	if s.notFound {
		return
	}
	s.controller.Stop()
	s.values = config.InitialValues(s.def)
	s.panel.SetValues(s.values)
	log.Printf("[DetailScene] %s 恢复默认参数", s.def.ID)
}

// Back 返回目录
func (s *DetailScene) Back() {
	if s.controller != nil {
		s.controller.Stop()
	}
	s.state.Audio.Stop()
	s.state.Scenes.GoHome()
}

// SaveOnExit 保存当前参数为预设
func (s *DetailScene) SaveOnExit() bool {
	if s.notFound {
		return true
	}
	if err := s.state.Presets.Save(s.values); err != nil {
		log.Printf("[DetailScene] 保存预设失败: %v", err)
		return false
	}
	if err := s.state.Settings.Save(); err != nil {
		log.Printf("[DetailScene] 保存设置失败: %v", err)
	}
	return true
}

func (s *DetailScene) onStart(info systems.RunInfo) {
	if info.Kind != config.KindCelebration || s.state.Config.Playback.Mute {
		return
	}
	if cue, ok := sfx.ParseCue(info.Values.Choice(config.ParamSound)); ok {
		s.state.Audio.PlayCue(cue)
	}
}

// onComplete 自然结束与手动停止一样，同时停止提示音
func (s *DetailScene) onComplete(runID string) {
	s.completedRuns++
	s.state.Audio.Stop()
}

// onParameterChange 参数在播放开始时已快照，修改只影响下一次播放
func (s *DetailScene) onParameterChange(id string, values *config.Values) {
	log.Printf("[DetailScene] %s.%s = %v", s.def.ID, id, values.Map()[id])
}

// step 推进播放与控件状态（不读取键盘）
func (s *DetailScene) step(deltaTime float64) {
	if s.notFound {
		return
	}
	s.controller.Update(deltaTime)
}

// Update 处理输入并推进播放
func (s *DetailScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.Back()
		return
	}
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		switch {
		case s.backButton.Contains(x, y):
			s.Back()
			return
		case s.playButton.Contains(x, y):
			s.logError(s.TogglePlay())
		case s.resetButton.Contains(x, y):
			s.Reset()
		}
	}
	if s.notFound {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.logError(s.TogglePlay())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset()
	}
	s.panel.Update(deltaTime)
	s.sliderSystem.Update(deltaTime)
	s.step(deltaTime)
}

func (s *DetailScene) logError(err error) {
	if err != nil {
		log.Printf("[DetailScene] %v", err)
	}
}

// Draw 绘制详情页
func (s *DetailScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.notFound {
		drawText(screen, "Animation not found", s.titleFont, detailMargin, s.preview.H/2, titleColor)
		drawText(screen, fmt.Sprintf("No animation with id %q", s.animationID), s.bodyFont, detailMargin, s.preview.H/2+34, bodyColor)
		drawButton(screen, s.backButton, "Back", s.bodyFont, panelColor)
		return
	}

	p := s.preview
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), previewColor, false)
	previewImage := screen.SubImage(image.Rect(int(p.X), int(p.Y), int(p.X+p.W), int(p.Y+p.H))).(*ebiten.Image)
	s.renderSystem.Draw(previewImage, s.controller.Snapshot())

	drawText(screen, s.def.Title, s.titleFont, detailMargin, 12, titleColor)
	status := s.controller.State().String()
	if s.controller.IsPlaying() {
		status = fmt.Sprintf("%s  %d particles", status, s.controller.ParticleCount())
	}
	drawText(screen, status, s.bodyFont, detailMargin, 40, bodyColor)

	playLabel, playFill := "Play", color.Color(accentColor)
	if s.controller.IsPlaying() {
		playLabel, playFill = "Stop", highlightColor
	}
	drawButton(screen, s.backButton, "Back", s.bodyFont, panelColor)
	drawButton(screen, s.playButton, playLabel, s.bodyFont, playFill)
	drawButton(screen, s.resetButton, "Reset", s.bodyFont, panelColor)

	drawText(screen, wrapText(s.def.Description, detailDescription), s.bodyFont, detailMargin, s.descriptionY, bodyColor)
	s.panel.Draw(screen)
}
