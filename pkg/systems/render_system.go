package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mjohnson139/expo-animations/internal/particle"
)

// glowRingCount 径向光晕由多少层同心圆叠加
const glowRingCount = 6

// FontSource 提供指定字号的字体（可为 nil，此时不绘制标题文字）
type FontSource interface {
	Face(size float64) *text.GoTextFace
}

// RenderSystem 动画帧渲染系统
//
// 只读取 PlaybackController.Snapshot() 产出的 Frame，不访问实体。
// 绘制顺序：全屏光效 → 径向光晕 → 粒子（按下标）→ 标题文字。
//
// 形状：
//   - 火花与火焰粒子：实心圆
//   - 庆祝星星：旋转的菱形（DrawTriangles 批量绘制）
//   - 烟雾：放大 1.5 倍的半透明圆
type RenderSystem struct {
	fonts FontSource

	whitePixel *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(fonts FontSource) *RenderSystem {
	return &RenderSystem{
		fonts:    fonts,
		vertices: make([]ebiten.Vertex, 0, 4*64),
		indices:  make([]uint16, 0, 6*64),
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, frame Frame) {
	bounds := screen.Bounds()

	for _, g := range frame.Glows {
		if g.FullScreen {
			s.drawFullScreenGlow(screen, g, bounds)
		}
	}
	for _, g := range frame.Glows {
		if !g.FullScreen {
			s.drawRadialGlow(screen, g)
		}
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, p := range frame.Particles {
		if !p.Visible || p.Opacity <= 0 || p.Scale <= 0 {
			continue
		}
		switch p.Shape {
		case particle.ShapeDiamond:
			s.appendDiamond(p)
		case particle.ShapeSmoke:
			vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y),
				float32(p.Size*p.Scale*0.75), tintColor(p.Color, p.Opacity), true)
		default:
			vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y),
				float32(p.Size*p.Scale/2), tintColor(p.Color, p.Opacity), true)
		}
	}
	if len(s.indices) > 0 {
		op := &ebiten.DrawTrianglesOptions{}
		op.AntiAlias = true
		screen.DrawTriangles(s.vertices, s.indices, s.pixel(), op)
	}

	if frame.Banner != nil {
		s.drawBanner(screen, *frame.Banner)
	}
}

func (s *RenderSystem) drawFullScreenGlow(screen *ebiten.Image, g particle.GlowState, bounds image.Rectangle) {
	if g.Opacity <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Dx()), float32(bounds.Dy()), tintColor(g.Color, g.Opacity), false)
}

func (s *RenderSystem) drawRadialGlow(screen *ebiten.Image, g particle.GlowState) {
	for _, ring := range glowRings(g.Radius, g.Opacity*g.Color.A) {
		vector.DrawFilledCircle(screen, float32(g.Position.X), float32(g.Position.Y),
			float32(ring.radius), tintColor(g.Color.WithAlpha(1), ring.alpha), true)
	}
}

// appendDiamond 把一个菱形（2 个三角形）追加到批次
func (s *RenderSystem) appendDiamond(p particle.State) {
	if len(s.vertices)+4 > math.MaxUint16 {
		return
	}
	base := uint16(len(s.vertices))
	verts := diamondVertices(p.Position.X, p.Position.Y, p.Size*p.Scale/2, p.Rotation, p.Color, p.Opacity)
	s.vertices = append(s.vertices, verts[:]...)
	s.indices = append(s.indices,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

func (s *RenderSystem) drawBanner(screen *ebiten.Image, b particle.BannerState) {
	if s.fonts == nil || b.Opacity <= 0 || b.Scale <= 0 {
		return
	}
	face := s.fonts.Face(b.FontSize)
	if face == nil {
		return
	}

	width, height := text.Measure(b.Text, face, 0)
	draw := func(dx, dy float64, c color.Color) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(-width/2+dx, -height/2+dy)
		op.GeoM.Scale(b.Scale, b.Scale)
		op.GeoM.Translate(b.Position.X, b.Position.Y)
		op.ColorScale.ScaleWithColor(c)
		text.Draw(screen, b.Text, face, op)
	}

	// 黑色描边
	stroke := tintColor(particle.Opaque(0, 0, 0), b.Opacity*0.6)
	for _, offset := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		draw(offset[0], offset[1], stroke)
	}
	draw(0, 0, tintColor(b.Color, b.Opacity))
}

// pixel 1x1 白色贴图，取自 3x3 图片中心以避免边缘采样
func (s *RenderSystem) pixel() *ebiten.Image {
	if s.whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.whitePixel
}

type glowRing struct {
	radius float64
	alpha  float64
}

// glowRings 由外到内的同心圆，每层透明度相同，叠加后中心最亮
func glowRings(radius, opacity float64) []glowRing {
	if radius <= 0 || opacity <= 0 {
		return nil
	}
	rings := make([]glowRing, glowRingCount)
	for i := range rings {
		rings[i] = glowRing{
			radius: radius * float64(glowRingCount-i) / glowRingCount,
			alpha:  opacity / glowRingCount,
		}
	}
	return rings
}

// diamondVertices 以 (cx, cy) 为中心、half 为半对角线、旋转 rotation 度的菱形顶点
// 顶点顺序：上、右、下、左
func diamondVertices(cx, cy, half, rotation float64, tint particle.Tint, opacity float64) [4]ebiten.Vertex {
	rad := rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	alpha := float32(tint.A * opacity)
	r, g, b := float32(tint.R)/255, float32(tint.G)/255, float32(tint.B)/255

	corners := [4][2]float64{{0, -half}, {half, 0}, {0, half}, {-half, 0}}
	var out [4]ebiten.Vertex
	for i, c := range corners {
		out[i] = ebiten.Vertex{
			DstX:   float32(cx + c[0]*cos - c[1]*sin),
			DstY:   float32(cy + c[0]*sin + c[1]*cos),
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: alpha,
		}
	}
	return out
}

// tintColor 把粒子颜色与不透明度合成为非预乘颜色
func tintColor(t particle.Tint, opacity float64) color.NRGBA {
	a := math.Max(0, math.Min(1, t.A*opacity))
	return color.NRGBA{R: t.R, G: t.G, B: t.B, A: uint8(math.Round(a * 255))}
}
