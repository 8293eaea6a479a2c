package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/game"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// 目录布局
const (
	catalogHeaderHeight = 96.0
	catalogCardHeight   = 110.0
	catalogCardGap      = 14.0
	catalogMargin       = 16.0
)

// iconTints 预览图标对应的颜色
var iconTints = map[string]color.RGBA{
	"sparkles": {R: 255, G: 215, B: 0, A: 255},
	"trophy":   {R: 255, G: 105, B: 180, A: 255},
	"flame":    {R: 255, G: 80, B: 0, A: 255},
}

type catalogCard struct {
	def  config.AnimationDefinition
	rect utils.Rect
}

// CatalogScene 动画目录
// 按目录声明顺序列出每个动画的标题、描述和图标，点击或回车打开详情。
type CatalogScene struct {
	state    *game.GameState
	cards    []catalogCard
	selected int
	hovered  int

	titleFont *text.GoTextFace
	bodyFont  *text.GoTextFace
}

// NewCatalogScene 创建目录场景
func NewCatalogScene(state *game.GameState) *CatalogScene {
	s := &CatalogScene{
		state:     state,
		hovered:   -1,
		titleFont: loadFace(state.Resources, game.FontBold, 22),
		bodyFont:  loadFace(state.Resources, game.FontRegular, 14),
	}

	width := float64(state.Config.Window.Width)
	for i, def := range state.Catalog.List() {
		y := catalogHeaderHeight + float64(i)*(catalogCardHeight+catalogCardGap)
		s.cards = append(s.cards, catalogCard{
			def:  def,
			rect: utils.Rect{X: catalogMargin, Y: y, W: width - 2*catalogMargin, H: catalogCardHeight},
		})
	}

	// 默认选中上次打开的动画
	last := state.Settings.GetSettings().LastOpened
	for i, c := range s.cards {
		if c.def.ID == last {
			s.selected = i
		}
	}
	return s
}

// Selected 当前键盘选中的卡片
func (s *CatalogScene) Selected() int {
	return s.selected
}

// CardAt 返回坐标所在的卡片下标，没有时返回 -1
func (s *CatalogScene) CardAt(x, y int) int {
	for i, c := range s.cards {
		if c.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Select 打开第 index 个动画的详情
func (s *CatalogScene) Select(index int) bool {
	if index < 0 || index >= len(s.cards) {
		return false
	}
	id := s.cards[index].def.ID
	log.Printf("[CatalogScene] 选择动画 %s", id)
	s.state.Settings.SetLastOpened(id)
	s.state.Scenes.Open(id)
	return true
}

// Update 处理键盘与指针输入
func (s *CatalogScene) Update(deltaTime float64) {
	n := len(s.cards)
	if n == 0 {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.selected = (s.selected + 1) % n
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.selected = (s.selected - 1 + n) % n
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.Select(s.selected)
		return
	}

	x, y := utils.GetPointerPosition()
	s.hovered = s.CardAt(x, y)
	if clicked, cx, cy := utils.IsJustTouchedOrClicked(); clicked {
		s.Select(s.CardAt(cx, cy))
	}
}

// Draw 绘制目录
func (s *CatalogScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawText(screen, "Board Animations", s.titleFont, catalogMargin, 28, titleColor)
	hint := "Click an animation or use ↑↓ and Enter to preview it"
	if utils.IsMobile() {
		hint = "Tap an animation to preview and tune it"
	}
	drawText(screen, hint, s.bodyFont, catalogMargin, 62, bodyColor)

	for i, c := range s.cards {
		fill := panelColor
		if i == s.hovered || i == s.selected {
			fill = highlightColor
		}
		r := c.rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)

		tint, ok := iconTints[c.def.PreviewIcon]
		if !ok {
			tint = accentColor
		}
		vector.DrawFilledCircle(screen, float32(r.X+36), float32(r.Y+r.H/2), 20, tint, true)

		drawText(screen, c.def.Title, s.titleFont, r.X+72, r.Y+14, titleColor)
		drawText(screen, wrapText(c.def.Description, 34), s.bodyFont, r.X+72, r.Y+46, bodyColor)
	}
}
