// Package scenes 包含应用的两个界面：动画目录与动画详情
package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mjohnson139/expo-animations/pkg/game"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 界面配色
var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 30, A: 255}
	panelColor      = color.RGBA{R: 34, G: 34, B: 54, A: 255}
	highlightColor  = color.RGBA{R: 58, G: 58, B: 92, A: 255}
	titleColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bodyColor       = color.RGBA{R: 190, G: 190, B: 205, A: 255}
	accentColor     = color.RGBA{R: 255, G: 200, B: 60, A: 255}
)

// drawText 在 (x, y) 左上角绘制文字，face 为 nil 时跳过
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = face.Size * 1.3
	text.Draw(screen, s, face, op)
}

// drawButton 绘制带文字的按钮
func drawButton(screen *ebiten.Image, r utils.Rect, label string, face *text.GoTextFace, fill color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
	if face == nil {
		return
	}
	w, h := text.Measure(label, face, 0)
	drawText(screen, label, face, r.X+(r.W-w)/2, r.Y+(r.H-h)/2, titleColor)
}

// loadFace 加载字体，失败时返回 nil（只影响文字显示）
func loadFace(rm *game.ResourceManager, name string, size float64) *text.GoTextFace {
	if rm == nil {
		return nil
	}
	face, err := rm.LoadFont(name, size)
	if err != nil {
		return nil
	}
	return face
}

// wrapText 按字符数粗略换行
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []rune
	line := 0
	lastSpace := -1
	for _, r := range s {
		out = append(out, r)
		line++
		if r == ' ' {
			lastSpace = len(out) - 1
		}
		if line > width && lastSpace >= 0 {
			out[lastSpace] = '\n'
			line = len(out) - lastSpace - 1
			lastSpace = -1
		}
	}
	return string(out)
}
