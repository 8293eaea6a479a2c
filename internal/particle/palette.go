package particle

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Tint is an sRGB color with straight alpha.
type Tint struct {
	R, G, B uint8
	A       float64 // 0..1
}

// Opaque returns a fully opaque tint.
func Opaque(r, g, b uint8) Tint {
	return Tint{R: r, G: g, B: b, A: 1}
}

// String renders the tint in CSS notation: rgb(r, g, b) when opaque,
// rgba(r, g, b, a) otherwise.
func (t Tint) String() string {
	if t.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", t.R, t.G, t.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", t.R, t.G, t.B, strconv.FormatFloat(t.A, 'f', -1, 64))
}

// WithAlpha returns a copy with a different alpha.
func (t Tint) WithAlpha(a float64) Tint {
	t.A = math.Max(0, math.Min(1, a))
	return t
}

// RGBA returns premultiplied components in [0, 1], ready for a GPU color scale.
func (t Tint) RGBA() (r, g, b, a float32) {
	a = float32(t.A)
	return float32(t.R) / 255 * a, float32(t.G) / 255 * a, float32(t.B) / 255 * a, a
}

// Blend interpolates in RGB space, alpha included.
func (t Tint) Blend(to Tint, ratio float64) Tint {
	ratio = math.Max(0, math.Min(1, ratio))
	c := t.color().BlendRgb(to.color(), ratio).Clamped()
	r, g, b := c.RGB255()
	return Tint{R: r, G: g, B: b, A: t.A + (to.A-t.A)*ratio}
}

func (t Tint) color() colorful.Color {
	return colorful.Color{R: float64(t.R) / 255, G: float64(t.G) / 255, B: float64(t.B) / 255}
}

func tintOf(c colorful.Color, a float64) Tint {
	r, g, b := c.Clamped().RGB255()
	return Tint{R: r, G: g, B: b, A: a}
}

// mustHex parses a #rrggbb literal from the static palette tables.
func mustHex(s string) Tint {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("particle: bad palette color %q: %v", s, err))
	}
	return tintOf(c, 1)
}

// 烟花配色方案
const (
	SchemeRainbow = "Rainbow"
	SchemeGold    = "Gold"
	SchemeBlue    = "Blue"
	SchemeCustom  = "Custom"
)

// fireworkTint picks a random color for a firework spark.
// Unknown schemes fall back to Rainbow.
func fireworkTint(rng Source, scheme string) Tint {
	switch scheme {
	case SchemeGold:
		return Opaque(255, uint8(180+randomInt(rng, 75)), uint8(randomInt(rng, 100)))
	case SchemeBlue:
		return Opaque(uint8(randomInt(rng, 100)), uint8(100+randomInt(rng, 155)), 255)
	case SchemeCustom:
		// 固定饱和度与亮度，只随机色相
		return tintOf(colorful.Hsl(float64(randomInt(rng, 360)), 1, 0.6), 1)
	default:
		return Opaque(uint8(randomInt(rng, 255)), uint8(randomInt(rng, 255)), uint8(randomInt(rng, 255)))
	}
}

// starColors 星星固定六色
var starColors = []Tint{
	Opaque(255, 215, 0),  // gold
	Opaque(255, 165, 0),  // orange
	Opaque(255, 69, 0),   // red-orange
	Opaque(255, 99, 71),  // tomato
	Opaque(0, 191, 255),  // deep sky blue
	Opaque(30, 144, 255), // dodger blue
}

// starTint picks one of the star colors with the given alpha.
func starTint(rng Source, alpha float64) Tint {
	return starColors[randomInt(rng, len(starColors))].WithAlpha(alpha)
}

// FlameGradient is the base→top color pair of a flame particle.
type FlameGradient struct {
	Base Tint
	Top  Tint
}

// 火焰颜色
const (
	FlameRedOrange = "Red-Orange"
	FlameBlue      = "Blue"
	FlameGreen     = "Green"
	FlamePurple    = "Purple"
)

var flameGradients = map[string]FlameGradient{
	FlameRedOrange: {Base: mustHex("#FF3300"), Top: mustHex("#FFCC00")},
	FlameBlue:      {Base: mustHex("#0066FF"), Top: mustHex("#66CCFF")},
	FlameGreen:     {Base: mustHex("#00CC66"), Top: mustHex("#66FFCC")},
	FlamePurple:    {Base: mustHex("#9933FF"), Top: mustHex("#CC99FF")},
}

// GradientFor returns the gradient of a flame color choice.
// Unknown names fall back to Red-Orange.
func GradientFor(name string) FlameGradient {
	if g, ok := flameGradients[name]; ok {
		return g
	}
	return flameGradients[FlameRedOrange]
}

// SmokeTint 烟雾粒子颜色
var SmokeTint = Tint{R: 100, G: 100, B: 100, A: 0.5}

// GlowTint 高分背景光晕颜色
var GlowTint = Tint{R: 255, G: 215, B: 0, A: 0.2}
