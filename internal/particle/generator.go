package particle

import (
	"math"

	ebimath "github.com/edwinsyarief/ebi-math"

	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// Params is the read side of a parameter set. *config.Values satisfies it.
type Params interface {
	Number(id string) float64
	Choice(id string) string
}

// 粒子时间常量（毫秒）
const (
	starStagger  = 100.0 // 星星之间的出生间隔
	flameStagger = 10.0  // 火焰粒子之间的出生间隔
	appearTime   = 300.0 // 星星/火焰出现时长
)

// Generator expands a parameter set into particle descriptors.
// All randomness comes from the injected Source.
type Generator struct {
	rng    Source
	width  float64
	height float64
}

// NewGenerator creates a generator for a viewport of the given size.
func NewGenerator(rng Source, width, height float64) *Generator {
	if rng == nil {
		rng = NewTimeSource()
	}
	return &Generator{rng: rng, width: width, height: height}
}

// SetViewport updates the viewport used for anchors and scatter radius.
func (g *Generator) SetViewport(width, height float64) {
	g.width, g.height = width, height
}

// Viewport returns the current viewport size.
func (g *Generator) Viewport() (width, height float64) {
	return g.width, g.height
}

// CountFor returns how many particles a run of kind produces.
//
//	fireworks:   particles
//	celebration: floor(intensity × 3)
//	flame:       floor(flame-height × 20), 0 when edge-only is On
func CountFor(kind config.AnimationKind, p Params) int {
	var n float64
	switch kind {
	case config.KindFireworks:
		n = p.Number(config.ParamParticles)
	case config.KindCelebration:
		n = p.Number(config.ParamIntensity) * 3
	case config.KindFlame:
		if p.Choice(config.ParamEdgeOnly) == config.EdgeOnlyOn {
			return 0
		}
		n = p.Number(config.ParamFlameHeight) * 20
	}
	// 1e-9 吸收 0.1 步长带来的浮点误差
	return max(0, int(math.Floor(n+1e-9)))
}

// Generate produces exactly count particles with indices 0..count-1.
// Exactly one particle, the one whose fade-out finishes last, is flagged as
// the completion particle. count ≤ 0 yields no particles.
func (g *Generator) Generate(kind config.AnimationKind, p Params, count int) []Particle {
	if count <= 0 {
		return []Particle{}
	}

	particles := make([]Particle, count)
	for i := range particles {
		switch kind {
		case config.KindCelebration:
			particles[i] = g.star(i, p)
		case config.KindFlame:
			particles[i] = g.flame(i, p)
		default:
			particles[i] = g.spark(i, count, p)
		}
		particles[i].Index = i
		particles[i].Kind = kind
	}

	particles[CompletionIndex(particles)].Completion = true
	return particles
}

// CompletionIndex returns the index of the particle whose fade-out finishes
// last, preferring the highest index on ties. Returns -1 for an empty slice.
func CompletionIndex(particles []Particle) int {
	idx := -1
	end := math.Inf(-1)
	for i, p := range particles {
		if e := p.FadeEnd(); e >= end {
			idx, end = i, e
		}
	}
	return idx
}

// spark 烟花火花：沿 2π·i/n 方向爆开，先上跳 20px 再落到目标点
func (g *Generator) spark(i, count int, p Params) Particle {
	speed := positiveOr(p.Number(config.ParamSpeed), 1)
	ox, oy := config.AnchorPoint(p.Choice(config.ParamPosition), g.width, g.height)

	angle := 2 * math.Pi * float64(i) / float64(count)
	distance := randomInRange(g.rng, 50, 150)
	target := ebimath.V(math.Cos(angle)*distance, math.Sin(angle)*distance)

	size := randomInRange(g.rng, 4, 10)
	tint := fireworkTint(g.rng, p.Choice(config.ParamColors))

	return Particle{
		Origin:       ebimath.V(ox, oy),
		TargetOffset: target,
		Tint:         tint,
		TopTint:      tint,
		Size:         size,
		Motion: Motion{
			X:        Track{}.Then(1000/speed, target.X, utils.EaseOutQuad),
			Y:        Track{}.Then(200/speed, -20, utils.EaseOutQuad).Then(800/speed, target.Y, utils.EaseOutQuad),
			Scale:    Track{}.Then(200/speed, 1, utils.EaseOutQuad),
			Opacity:  Const(1).At(800/speed, 200/speed, 0, utils.EaseInQuad),
			ColorMix: Const(0),
		},
	}
}

// star 庆祝星星：围绕锚点随机散布，弹出、旋转，持续 duration 秒后淡出
func (g *Generator) star(i int, p Params) Particle {
	duration := positiveOr(p.Number(config.ParamDuration), 3) * 1000
	intensity := p.Number(config.ParamIntensity)
	alpha := positiveOr(p.Number(config.ParamOpacity), 0.9)
	sizeScale := positiveOr(p.Number(config.ParamSize), 1)
	ox, oy := config.AnchorPoint(p.Choice(config.ParamPosition), g.width, g.height)

	radius := math.Min(g.width, g.height) * 0.3
	angle := g.rng.Float64() * 2 * math.Pi
	distance := g.rng.Float64() * radius
	offset := ebimath.V(math.Cos(angle)*distance, math.Sin(angle)*distance)

	size := randomInRange(g.rng, 20, 30) * sizeScale
	tint := starTint(g.rng, alpha)

	rotation := Still(0)
	if intensity > 0 {
		rotation = Loop{Period: 2000 / (intensity / 5), From: 0, To: 360}
	}

	// 淡出不早于出现结束
	fadeAt := math.Max(appearTime, duration-appearTime)

	return Particle{
		Origin:       ebimath.V(ox, oy),
		TargetOffset: offset,
		Tint:         tint,
		TopTint:      tint,
		Size:         size,
		SpawnDelay:   starStagger * float64(i),
		Motion: Motion{
			X:        Const(offset.X),
			Y:        Const(offset.Y),
			Scale:    Track{}.Then(appearTime, 1+intensity/10, utils.EaseOutBack(2)),
			Opacity:  Track{}.Then(appearTime, 1, utils.EaseInOutQuad).At(fadeAt, appearTime, 0, utils.EaseInQuad),
			ColorMix: Const(0),
			Rotation: rotation,
		},
	}
}

// flame 火焰粒子：从底部锚点向上飘散，颜色从底色渐变到顶色
func (g *Generator) flame(i int, p Params) Particle {
	height := positiveOr(p.Number(config.ParamFlameHeight), 5)
	gradient := GradientFor(p.Choice(config.ParamFlameColor))
	smoke := p.Choice(config.ParamSmoke)
	ox, oy := config.AnchorPoint(config.AnchorFlameBase, g.width, g.height)

	startX := randomInRange(g.rng, -10, 10)
	moveX := startX + randomInRange(g.rng, -15, 15)
	rise := -(50 + g.rng.Float64()*50) * height / 5
	driftX := randomInRange(g.rng, 1000, 1500)
	driftY := randomInRange(g.rng, 1000, 1500)

	peakScale := randomInRange(g.rng, 1, 1.5)
	shrink := randomInRange(g.rng, 700, 1000)

	isSmoke := smoke != "" && smoke != config.SmokeNone && i%10 == 0
	peakOpacity := randomInRange(g.rng, 0.8, 1)
	if isSmoke {
		peakOpacity = 0.4
		if smoke == config.SmokeHeavy {
			peakOpacity = 0.7
		}
	}
	fade := randomInRange(g.rng, 700, 1000)
	mix := randomInRange(g.rng, 1000, 1500)

	base, top := gradient.Base, gradient.Top
	colorMix := Track{}.Then(mix, 1, utils.EaseInOutQuad)
	if isSmoke {
		base, top = SmokeTint, SmokeTint
		colorMix = Const(0)
	}

	return Particle{
		Origin:       ebimath.V(ox, oy),
		TargetOffset: ebimath.V(moveX, rise),
		Tint:         base,
		TopTint:      top,
		Size:         math.Max(5, 20-float64(i%5)*3),
		SpawnDelay:   flameStagger * float64(i),
		Smoke:        isSmoke,
		Motion: Motion{
			X:        Const(startX).Then(driftX, moveX, utils.EaseOutSine),
			Y:        Track{}.Then(driftY, rise, utils.EaseOutSine),
			Scale:    Track{}.Then(appearTime, peakScale, utils.EaseOutQuad).Then(shrink, 0, utils.EaseInQuad),
			Opacity:  Track{}.Then(appearTime, peakOpacity, utils.EaseOutQuad).Then(fade, 0, utils.EaseInQuad),
			ColorMix: colorMix,
		},
	}
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
