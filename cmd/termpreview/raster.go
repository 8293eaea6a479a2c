package main

import (
	"math"

	"github.com/mjohnson139/expo-animations/internal/particle"
	"github.com/mjohnson139/expo-animations/pkg/systems"
)

// 一个终端字符对应的像素尺寸（字符约为 1:2）
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// minVisibleOpacity 低于此不透明度的粒子不绘制
const minVisibleOpacity = 0.05

type cell struct {
	ch   rune
	fg   particle.Tint
	bg   particle.Tint
	bold bool
}

// raster 把一帧渲染描述栅格化为字符网格
type raster struct {
	cols, rows int
	background particle.Tint
	cells      []cell
}

func newRaster(cols, rows int, background particle.Tint) *raster {
	r := &raster{background: background}
	r.resize(cols, rows)
	return r
}

func (r *raster) resize(cols, rows int) {
	r.cols, r.rows = max(cols, 0), max(rows, 0)
	r.cells = make([]cell, r.cols*r.rows)
	r.clear()
}

// viewport 网格对应的像素视口
func (r *raster) viewport() (width, height float64) {
	return float64(r.cols) * cellWidth, float64(r.rows) * cellHeight
}

func (r *raster) clear() {
	for i := range r.cells {
		r.cells[i] = cell{ch: ' ', fg: r.background, bg: r.background}
	}
}

func (r *raster) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return nil
	}
	return &r.cells[row*r.cols+col]
}

// cellOf 像素坐标所在的格子
func cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

func (r *raster) draw(frame systems.Frame) {
	r.clear()

	for _, g := range frame.Glows {
		r.drawGlow(g)
	}
	for _, p := range frame.Particles {
		r.drawParticle(p)
	}
	if frame.Banner != nil {
		r.drawBanner(*frame.Banner)
	}
}

func (r *raster) drawGlow(g particle.GlowState) {
	if g.Opacity <= 0 {
		return
	}
	tint := g.Color.WithAlpha(1)
	strength := g.Opacity * g.Color.A

	if g.FullScreen {
		for i := range r.cells {
			r.cells[i].bg = r.cells[i].bg.Blend(tint, strength)
		}
		return
	}

	c0, r0 := cellOf(g.Position.X-g.Radius, g.Position.Y-g.Radius)
	c1, r1 := cellOf(g.Position.X+g.Radius, g.Position.Y+g.Radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c := r.at(col, row)
			if c == nil {
				continue
			}
			cx := (float64(col) + 0.5) * cellWidth
			cy := (float64(row) + 0.5) * cellHeight
			d := math.Hypot(cx-g.Position.X, cy-g.Position.Y)
			if d >= g.Radius {
				continue
			}
			c.bg = c.bg.Blend(tint, strength*(1-d/g.Radius))
		}
	}
}

func (r *raster) drawParticle(p particle.State) {
	if !p.Visible || p.Opacity < minVisibleOpacity || p.Scale <= 0 {
		return
	}
	c := r.at(cellOf(p.Position.X, p.Position.Y))
	if c == nil {
		return
	}
	c.ch = glyphFor(p)
	c.fg = c.bg.Blend(p.Color.WithAlpha(1), p.Opacity*p.Color.A)
	c.bold = p.Shape == particle.ShapeDiamond
}

func (r *raster) drawBanner(b particle.BannerState) {
	if b.Opacity < minVisibleOpacity || b.Scale <= 0 {
		return
	}
	col, row := cellOf(b.Position.X, b.Position.Y)
	text := []rune(b.Text)
	start := col - len(text)/2
	for i, ch := range text {
		c := r.at(start+i, row)
		if c == nil {
			continue
		}
		c.ch = ch
		c.fg = c.bg.Blend(b.Color.WithAlpha(1), b.Opacity)
		c.bold = true
	}
}

// glyphFor 粒子形状对应的字符，缩放越大字符越"重"
func glyphFor(p particle.State) rune {
	switch p.Shape {
	case particle.ShapeDiamond:
		return '◆'
	case particle.ShapeSmoke:
		return '░'
	}
	switch {
	case p.Size*p.Scale >= 12:
		return '●'
	case p.Size*p.Scale >= 6:
		return '•'
	}
	return '·'
}
