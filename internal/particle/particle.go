package particle

import (
	"math"

	ebimath "github.com/edwinsyarief/ebi-math"

	"github.com/mjohnson139/expo-animations/pkg/config"
)

// Shape is the primitive a particle is drawn as.
type Shape int

const (
	ShapeCircle  Shape = iota // 烟花火花、火焰
	ShapeDiamond              // 星星（旋转 45° 的圆角方块）
	ShapeSmoke                // 烟雾（更圆、更柔和）
)

func (s Shape) String() string {
	switch s {
	case ShapeDiamond:
		return "diamond"
	case ShapeSmoke:
		return "smoke"
	default:
		return "circle"
	}
}

// Motion holds the keyframe tracks of one particle.
// X and Y are offsets from the particle origin; Rotation is in degrees.
type Motion struct {
	X        Track
	Y        Track
	Scale    Track
	Opacity  Track
	ColorMix Track // 0 = Tint, 1 = TopTint
	Rotation Loop
}

// End returns when the last finite track finishes (loops never end).
func (m Motion) End() float64 {
	end := 0.0
	for _, tr := range []Track{m.X, m.Y, m.Scale, m.Opacity, m.ColorMix} {
		end = math.Max(end, tr.End())
	}
	return end
}

// Particle is an immutable descriptor produced by a Generator.
type Particle struct {
	Index        int
	Kind         config.AnimationKind
	Origin       ebimath.Vector // 锚点（像素）
	TargetOffset ebimath.Vector // 相对锚点的最终位移
	Tint         Tint
	TopTint      Tint // 火焰渐变终点色，其它类型等于 Tint
	Size         float64
	SpawnDelay   float64 // ms
	Smoke        bool
	Completion   bool // 该粒子淡出结束即为整个动画结束
	Motion       Motion
}

// EndTime returns the run time (ms) at which the particle's timeline finishes.
func (p Particle) EndTime() float64 {
	return p.SpawnDelay + p.Motion.End()
}

// FadeEnd returns the run time (ms) at which the particle's opacity reaches
// its final value. Position and color tracks may keep running after it.
func (p Particle) FadeEnd() float64 {
	return p.SpawnDelay + p.Motion.Opacity.End()
}

// State is the observable state of a particle at a point in time.
type State struct {
	Index    int
	Position ebimath.Vector
	Scale    float64
	Opacity  float64
	Rotation float64
	Color    Tint
	Size     float64
	Shape    Shape
	Visible  bool // 已过出生延迟
	Done     bool // 时间线已结束
}

// StateAt evaluates the particle at elapsed run time (ms).
// Before SpawnDelay the particle holds its initial values and is not visible.
func (p Particle) StateAt(elapsed float64) State {
	local := elapsed - p.SpawnDelay
	m := p.Motion

	pos := ebimath.V(p.Origin.X+m.X.Evaluate(local), p.Origin.Y+m.Y.Evaluate(local))

	return State{
		Index:    p.Index,
		Position: pos,
		Scale:    m.Scale.Evaluate(local),
		Opacity:  clamp01(m.Opacity.Evaluate(local)),
		Rotation: m.Rotation.Evaluate(math.Max(0, local)),
		Color:    p.Tint.Blend(p.TopTint, m.ColorMix.Evaluate(local)),
		Size:     p.Size,
		Shape:    p.shape(),
		Visible:  local >= 0,
		Done:     local >= m.End(),
	}
}

func (p Particle) shape() Shape {
	switch {
	case p.Smoke:
		return ShapeSmoke
	case p.Kind == config.KindCelebration:
		return ShapeDiamond
	}
	return ShapeCircle
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
