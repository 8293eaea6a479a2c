package particle

import (
	ebimath "github.com/edwinsyarief/ebi-math"

	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// Glow is a continuous secondary effect: the flame edge glows and the
// celebration background wash. Glows are not part of the particle count
// and never signal completion.
type Glow struct {
	Name     string
	Position ebimath.Vector
	Radius   float64 // 0 表示铺满整个视口
	Tint     Tint
	Opacity  Track // 淡入/淡出包络
	Pulse    Loop  // 乘在 Opacity 上的脉动
}

// GlowState is the observable state of a glow.
type GlowState struct {
	Name       string
	Position   ebimath.Vector
	Radius     float64
	Color      Tint
	Opacity    float64
	FullScreen bool
}

// StateAt evaluates the glow at elapsed run time (ms).
func (g Glow) StateAt(elapsed float64) GlowState {
	return GlowState{
		Name:       g.Name,
		Position:   g.Position,
		Radius:     g.Radius,
		Color:      g.Tint,
		Opacity:    clamp01(g.Opacity.Evaluate(elapsed) * g.Pulse.Evaluate(elapsed)),
		FullScreen: g.Radius <= 0,
	}
}

// edgeGlowSpots 边缘光晕位置（视口比例）
var edgeGlowSpots = []struct {
	name   string
	fx, fy float64
}{
	{"left", 0, 0.7},
	{"right", 1, 0.7},
	{"bottom-left", 0.2, 1},
	{"bottom-right", 0.8, 1},
}

// EdgeGlows returns the looping glows framing a flame run, tinted with the
// flame's base color. They render whether or not edge-only is set.
func (g *Generator) EdgeGlows(p Params) []Glow {
	height := positiveOr(p.Number(config.ParamFlameHeight), 5)
	tint := GradientFor(p.Choice(config.ParamFlameColor)).Base

	// 各光晕脉动周期错开
	glows := make([]Glow, 0, len(edgeGlowSpots))
	for i, spot := range edgeGlowSpots {
		glows = append(glows, Glow{
			Name:     spot.name,
			Position: ebimath.V(g.width*spot.fx, g.height*spot.fy),
			Radius:   40 + 8*height,
			Tint:     tint,
			Opacity:  Track{}.Then(appearTime, 0.6, utils.EaseOutCubic),
			Pulse:    Loop{Period: 600 + 150*float64(i), From: 0.5, To: 1, Yoyo: true, Ease: utils.EaseInOutQuad},
		})
	}
	return glows
}

// BackgroundGlow returns the full-viewport wash of a celebration run:
// 0→0.3 over 300ms, back to 0 over the last 300ms of duration.
func (g *Generator) BackgroundGlow(p Params) Glow {
	duration := positiveOr(p.Number(config.ParamDuration), 3) * 1000
	fadeAt := max(appearTime, duration-appearTime)
	return Glow{
		Name:    "background",
		Tint:    GlowTint,
		Opacity: Track{}.Then(appearTime, 0.3, utils.EaseLinear).At(fadeAt, appearTime, 0, utils.EaseLinear),
		Pulse:   Still(1),
	}
}

// Glows returns every secondary glow of a run of kind.
func (g *Generator) Glows(kind config.AnimationKind, p Params) []Glow {
	switch kind {
	case config.KindFlame:
		return g.EdgeGlows(p)
	case config.KindCelebration:
		return []Glow{g.BackgroundGlow(p)}
	}
	return nil
}

// Banner is the headline text shown over a run.
type Banner struct {
	Text     string
	Position ebimath.Vector
	Tint     Tint
	Scale    Track // 弹出：0 → 1.2 → 1
	Pulse    Loop  // 弹出后的呼吸缩放
	Opacity  Track
	OffsetY  Track
	FontSize float64
}

// BannerState is the observable state of a banner.
type BannerState struct {
	Text     string
	Position ebimath.Vector
	Scale    float64
	Opacity  float64
	Color    Tint
	FontSize float64
}

// StateAt evaluates the banner at elapsed run time (ms).
func (b Banner) StateAt(elapsed float64) BannerState {
	scale := b.Scale.Evaluate(elapsed)
	if b.Pulse.Period > 0 && elapsed >= b.Pulse.Start {
		scale = b.Pulse.Evaluate(elapsed)
	}
	return BannerState{
		Text:     b.Text,
		Position: ebimath.V(b.Position.X, b.Position.Y+b.OffsetY.Evaluate(elapsed)),
		Scale:    scale,
		Opacity:  clamp01(b.Opacity.Evaluate(elapsed)),
		Color:    b.Tint,
		FontSize: b.FontSize,
	}
}

// popIn returns the scale/pulse pair shared by both banners.
func popIn(peak float64) (Track, Loop) {
	scale := Track{}.Then(300, 1.2, utils.EaseOutBack(2)).Then(200, 1, utils.EaseInOutQuad)
	pulse := Loop{Start: 500, Period: 300, From: 1, To: peak, Yoyo: true, Ease: utils.EaseInOutQuad}
	return scale, pulse
}

// Banner returns the headline of a run of kind; fireworks have none.
func (g *Generator) Banner(kind config.AnimationKind, p Params) (Banner, bool) {
	switch kind {
	case config.KindCelebration:
		intensity := p.Number(config.ParamIntensity)
		alpha := positiveOr(p.Number(config.ParamOpacity), 0.9)
		x, y := config.AnchorPoint(p.Choice(config.ParamPosition), g.width, g.height)
		scale, pulse := popIn(1 + intensity/20)
		return Banner{
			Text:     "HIGH SCORE!",
			Position: ebimath.V(x, y-50),
			Tint:     mustHex("#FFD700"),
			Scale:    scale,
			Pulse:    pulse,
			Opacity:  Track{}.Then(appearTime, alpha, utils.EaseInOutQuad),
			OffsetY:  Const(20).Then(appearTime, 0, utils.EaseOutBack(2)),
			FontSize: 36,
		}, true

	case config.KindFlame:
		scale, pulse := popIn(1.1)
		return Banner{
			Text:     "YOU'RE ON FIRE!",
			Position: ebimath.V(g.width/2, g.height*0.3),
			Tint:     mustHex("#FF3300"),
			Scale:    scale,
			Pulse:    pulse,
			Opacity:  Track{}.Then(appearTime, 1, utils.EaseInOutQuad),
			OffsetY:  Const(0),
			FontSize: 36,
		}, true
	}
	return Banner{}, false
}
