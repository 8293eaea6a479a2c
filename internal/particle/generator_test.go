package particle

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/mjohnson139/expo-animations/pkg/config"
)

const (
	testWidth  = 400.0
	testHeight = 800.0
)

// constSource 每次返回相同值，便于断言确定性结果
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func valuesFor(t *testing.T, id string) *config.Values {
	t.Helper()
	def, err := config.DefaultCatalog().Get(id)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", id, err)
	}
	return config.InitialValues(def)
}

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(NewSource(seed), testWidth, testHeight)
}

func TestCountFor(t *testing.T) {
	fireworks := valuesFor(t, "board-completed")
	celebration := valuesFor(t, "high-score")
	flame := valuesFor(t, "on-fire")

	if got := CountFor(config.KindFireworks, fireworks); got != 50 {
		t.Errorf("fireworks count = %d, want 50", got)
	}
	if got := CountFor(config.KindCelebration, celebration); got != 15 {
		t.Errorf("celebration count (intensity 5) = %d, want 15", got)
	}
	if got := CountFor(config.KindFlame, flame); got != 100 {
		t.Errorf("flame count (height 5) = %d, want 100", got)
	}

	celebration.SetNumber(config.ParamIntensity, 7)
	if got := CountFor(config.KindCelebration, celebration); got != 21 {
		t.Errorf("celebration count (intensity 7) = %d, want 21", got)
	}

	flame.SetChoice(config.ParamEdgeOnly, config.EdgeOnlyOn)
	if got := CountFor(config.KindFlame, flame); got != 0 {
		t.Errorf("flame count (edge-only) = %d, want 0", got)
	}
}

func TestGenerate_ExactCount(t *testing.T) {
	kinds := map[config.AnimationKind]string{
		config.KindFireworks:   "board-completed",
		config.KindCelebration: "high-score",
		config.KindFlame:       "on-fire",
	}

	for kind, id := range kinds {
		values := valuesFor(t, id)
		for _, n := range []int{0, 1, 50, 500} {
			particles := newTestGenerator(1).Generate(kind, values, n)
			if len(particles) != n {
				t.Errorf("%s: Generate(%d) returned %d particles", kind, n, len(particles))
			}
			for i, p := range particles {
				if p.Index != i {
					t.Errorf("%s: particles[%d].Index = %d", kind, i, p.Index)
				}
			}
		}
		if got := newTestGenerator(1).Generate(kind, values, -3); len(got) != 0 {
			t.Errorf("%s: Generate(-3) returned %d particles", kind, len(got))
		}
	}
}

func TestGenerate_FireworksScenario(t *testing.T) {
	values := valuesFor(t, "board-completed")
	particles := newTestGenerator(42).Generate(config.KindFireworks, values, CountFor(config.KindFireworks, values))

	if len(particles) != 50 {
		t.Fatalf("len = %d, want 50", len(particles))
	}

	seen := make(map[int]bool)
	for _, p := range particles {
		if seen[p.Index] || p.Index < 0 || p.Index > 49 {
			t.Errorf("index %d duplicated or out of range", p.Index)
		}
		seen[p.Index] = true

		if p.Origin.X != testWidth/2 || p.Origin.Y != testHeight/2 {
			t.Errorf("particle %d origin = (%v, %v), want center", p.Index, p.Origin.X, p.Origin.Y)
		}
		if !rgbPattern.MatchString(p.Tint.String()) {
			t.Errorf("particle %d color %q does not match rgb pattern", p.Index, p.Tint.String())
		}
		if p.SpawnDelay != 0 {
			t.Errorf("particle %d spawn delay = %v, want 0", p.Index, p.SpawnDelay)
		}
		if p.Size < 4 || p.Size >= 10 {
			t.Errorf("particle %d size = %v, want [4, 10)", p.Index, p.Size)
		}
		d := math.Hypot(p.TargetOffset.X, p.TargetOffset.Y)
		if d < 50-1e-9 || d > 150+1e-9 {
			t.Errorf("particle %d distance = %v, want [50, 150)", p.Index, d)
		}
	}
}

func TestGenerate_FireworksPosition(t *testing.T) {
	values := valuesFor(t, "board-completed")
	values.SetChoice(config.ParamPosition, config.AnchorTop)

	p := newTestGenerator(1).Generate(config.KindFireworks, values, 1)[0]
	if p.Origin.X != 200 || p.Origin.Y != 200 {
		t.Errorf("origin = (%v, %v), want (200, 200)", p.Origin.X, p.Origin.Y)
	}
}

func TestGenerate_FireworksAngles(t *testing.T) {
	values := valuesFor(t, "board-completed")
	particles := NewGenerator(constSource(0.5), testWidth, testHeight).Generate(config.KindFireworks, values, 4)

	// 距离固定为 100，方向依次为 0, π/2, π, 3π/2
	want := [][2]float64{{100, 0}, {0, 100}, {-100, 0}, {0, -100}}
	for i, p := range particles {
		if !approx(p.TargetOffset.X, want[i][0]) || !approx(p.TargetOffset.Y, want[i][1]) {
			t.Errorf("particle %d target = (%v, %v), want %v", i, p.TargetOffset.X, p.TargetOffset.Y, want[i])
		}
	}
}

func TestFireworksMotion(t *testing.T) {
	values := valuesFor(t, "board-completed")
	p := NewGenerator(constSource(0.5), testWidth, testHeight).Generate(config.KindFireworks, values, 1)[0]

	start := p.StateAt(0)
	if start.Position != p.Origin || start.Scale != 0 || start.Opacity != 1 || !start.Visible {
		t.Errorf("state at 0 = %+v", start)
	}

	hop := p.StateAt(200)
	if !approx(hop.Position.Y-p.Origin.Y, -20) || hop.Scale != 1 {
		t.Errorf("state at 200 = %+v, want y offset -20 and scale 1", hop)
	}

	fading := p.StateAt(900)
	if !approx(fading.Opacity, 0.75) {
		t.Errorf("opacity at 900 = %v, want 0.75 (inQuad)", fading.Opacity)
	}

	end := p.StateAt(1000)
	if !end.Done || end.Opacity != 0 {
		t.Errorf("state at 1000 = %+v, want done and transparent", end)
	}
	if !approx(end.Position.X, p.Origin.X+p.TargetOffset.X) || !approx(end.Position.Y, p.Origin.Y+p.TargetOffset.Y) {
		t.Errorf("final position = %v, want origin+target", end.Position)
	}
	if p.StateAt(999).Done {
		t.Error("Done before the fade finished")
	}
}

func TestFireworksMotion_Speed(t *testing.T) {
	values := valuesFor(t, "board-completed")
	values.SetNumber(config.ParamSpeed, 2)

	p := newTestGenerator(5).Generate(config.KindFireworks, values, 1)[0]
	if !approx(p.EndTime(), 500) {
		t.Errorf("EndTime() at speed 2 = %v, want 500", p.EndTime())
	}
}

func TestGenerate_CelebrationScenario(t *testing.T) {
	values := valuesFor(t, "high-score")
	particles := newTestGenerator(9).Generate(config.KindCelebration, values, CountFor(config.KindCelebration, values))

	if len(particles) != 15 {
		t.Fatalf("len = %d, want 15", len(particles))
	}

	radius := math.Min(testWidth, testHeight) * 0.3
	for i, p := range particles {
		if p.SpawnDelay != float64(i)*100 {
			t.Errorf("star %d delay = %v, want %v", i, p.SpawnDelay, float64(i)*100)
		}
		if d := math.Hypot(p.TargetOffset.X, p.TargetOffset.Y); d > radius+1e-9 {
			t.Errorf("star %d distance %v exceeds %v", i, d, radius)
		}
		if p.Size < 20 || p.Size >= 30 {
			t.Errorf("star %d size = %v, want [20, 30)", i, p.Size)
		}
		if !strings.HasPrefix(p.Tint.String(), "rgba(") || !strings.HasSuffix(p.Tint.String(), ", 0.9)") {
			t.Errorf("star %d color = %q, want rgba with alpha 0.9", i, p.Tint.String())
		}
	}
}

func TestStarMotion(t *testing.T) {
	values := valuesFor(t, "high-score") // duration 3, intensity 5
	p := NewGenerator(constSource(0.5), testWidth, testHeight).Generate(config.KindCelebration, values, 3)[2]

	before := p.StateAt(100)
	if before.Visible || before.Opacity != 0 || before.Scale != 0 {
		t.Errorf("state before delay = %+v", before)
	}

	shown := p.StateAt(p.SpawnDelay + 300)
	if !approx(shown.Opacity, 1) || !approx(shown.Scale, 1.5) {
		t.Errorf("state after appear = %+v, want opacity 1 and scale 1.5", shown)
	}
	if shown.Shape != ShapeDiamond {
		t.Errorf("shape = %v, want diamond", shown.Shape)
	}

	// 强度 5 时旋转周期 2000ms
	if got := p.StateAt(p.SpawnDelay + 500).Rotation; !approx(got, 90) {
		t.Errorf("rotation at +500 = %v, want 90", got)
	}

	if got := p.StateAt(p.SpawnDelay + 2700).Opacity; !approx(got, 1) {
		t.Errorf("opacity before fade = %v, want 1", got)
	}
	end := p.StateAt(p.SpawnDelay + 3000)
	if !end.Done || end.Opacity != 0 {
		t.Errorf("state at +3000 = %+v, want done", end)
	}
	if !approx(p.EndTime(), 200+3000) {
		t.Errorf("EndTime() = %v, want 3200", p.EndTime())
	}
}

func TestStarMotion_SizeScale(t *testing.T) {
	values := valuesFor(t, "high-score")
	values.SetNumber(config.ParamSize, 2)

	p := NewGenerator(constSource(0.5), testWidth, testHeight).Generate(config.KindCelebration, values, 1)[0]
	if !approx(p.Size, 50) {
		t.Errorf("size = %v, want 50", p.Size)
	}
}

func TestGenerate_FlameScenario(t *testing.T) {
	values := valuesFor(t, "on-fire")
	particles := newTestGenerator(11).Generate(config.KindFlame, values, CountFor(config.KindFlame, values))

	if len(particles) != 100 {
		t.Fatalf("len = %d, want 100", len(particles))
	}

	sizes := []float64{20, 17, 14, 11, 8}
	for i, p := range particles {
		if p.Origin.X != 200 || p.Origin.Y != 560 {
			t.Errorf("flame %d origin = %v, want (200, 560)", i, p.Origin)
		}
		if p.Size != sizes[i%5] {
			t.Errorf("flame %d size = %v, want %v", i, p.Size, sizes[i%5])
		}
		if p.SpawnDelay != float64(i)*10 {
			t.Errorf("flame %d delay = %v", i, p.SpawnDelay)
		}
		// smoke=Light：每 10 个一个烟雾粒子
		if p.Smoke != (i%10 == 0) {
			t.Errorf("flame %d smoke = %v", i, p.Smoke)
		}
		if rise := -p.TargetOffset.Y; rise < 50 || rise > 100 {
			t.Errorf("flame %d rise = %v, want [50, 100]", i, rise)
		}
	}
}

func TestGenerate_FlameEdgeOnly(t *testing.T) {
	values := valuesFor(t, "on-fire")
	values.SetChoice(config.ParamEdgeOnly, config.EdgeOnlyOn)

	g := newTestGenerator(1)
	if got := g.Generate(config.KindFlame, values, CountFor(config.KindFlame, values)); len(got) != 0 {
		t.Errorf("edge-only generated %d particles, want 0", len(got))
	}
	if got := g.EdgeGlows(values); len(got) != 4 {
		t.Errorf("EdgeGlows() = %d glows, want 4", len(got))
	}
}

func TestFlameMotion_Smoke(t *testing.T) {
	tests := []struct {
		smoke string
		peak  float64
	}{
		{config.SmokeLight, 0.4},
		{config.SmokeHeavy, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.smoke, func(t *testing.T) {
			values := valuesFor(t, "on-fire")
			values.SetChoice(config.ParamSmoke, tt.smoke)

			p := newTestGenerator(2).Generate(config.KindFlame, values, 1)[0]
			if !p.Smoke {
				t.Fatal("particle 0 is not smoke")
			}
			s := p.StateAt(300)
			if !approx(s.Opacity, tt.peak) {
				t.Errorf("peak opacity = %v, want %v", s.Opacity, tt.peak)
			}
			if s.Color != SmokeTint || s.Shape != ShapeSmoke {
				t.Errorf("smoke state = %+v", s)
			}
		})
	}

	values := valuesFor(t, "on-fire")
	values.SetChoice(config.ParamSmoke, config.SmokeNone)
	for _, p := range newTestGenerator(2).Generate(config.KindFlame, values, 30) {
		if p.Smoke {
			t.Errorf("particle %d is smoke with smoke=None", p.Index)
		}
	}
}

func TestFlameMotion_ColorShift(t *testing.T) {
	values := valuesFor(t, "on-fire")
	p := NewGenerator(constSource(0.5), testWidth, testHeight).Generate(config.KindFlame, values, 2)[1]

	g := GradientFor(FlameRedOrange)
	if got := p.StateAt(p.SpawnDelay).Color; got != g.Base {
		t.Errorf("color at spawn = %v, want %v", got, g.Base)
	}
	// constSource(0.5)：颜色过渡 1250ms
	if got := p.StateAt(p.SpawnDelay + 1250).Color; got != g.Top {
		t.Errorf("color after mix = %v, want %v", got, g.Top)
	}
}

func TestFadeEnd(t *testing.T) {
	gen := func() *Generator { return NewGenerator(constSource(0.5), testWidth, testHeight) }

	// 烟花与星星的不透明度轨道最后结束
	fw := gen().Generate(config.KindFireworks, valuesFor(t, "board-completed"), 4)[3]
	if !approx(fw.FadeEnd(), fw.EndTime()) || !approx(fw.FadeEnd(), 1000) {
		t.Errorf("firework FadeEnd/EndTime = %v/%v, want 1000/1000", fw.FadeEnd(), fw.EndTime())
	}
	star := gen().Generate(config.KindCelebration, valuesFor(t, "high-score"), 3)[2]
	if !approx(star.FadeEnd(), 200+3000) {
		t.Errorf("star FadeEnd = %v, want 3200", star.FadeEnd())
	}

	// 火焰：淡出 300+850ms，漂移 1250ms
	flame := gen().Generate(config.KindFlame, valuesFor(t, "on-fire"), 2)[1]
	if !approx(flame.FadeEnd(), 10+300+850) {
		t.Errorf("flame FadeEnd = %v, want 1160", flame.FadeEnd())
	}
	if flame.FadeEnd() >= flame.EndTime() {
		t.Errorf("flame FadeEnd %v not before EndTime %v", flame.FadeEnd(), flame.EndTime())
	}
	if s := flame.StateAt(flame.FadeEnd()); !approx(s.Opacity, 0) {
		t.Errorf("opacity at FadeEnd = %v, want 0", s.Opacity)
	}
}

func TestGenerate_SingleCompletionParticle(t *testing.T) {
	cases := []struct {
		kind config.AnimationKind
		id   string
	}{
		{config.KindFireworks, "board-completed"},
		{config.KindCelebration, "high-score"},
		{config.KindFlame, "on-fire"},
	}

	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			values := valuesFor(t, c.id)
			particles := newTestGenerator(3).Generate(c.kind, values, CountFor(c.kind, values))

			flagged := -1
			latest := 0.0
			for _, p := range particles {
				latest = math.Max(latest, p.FadeEnd())
				if p.Completion {
					if flagged >= 0 {
						t.Fatalf("particles %d and %d both flagged", flagged, p.Index)
					}
					flagged = p.Index
				}
			}
			if flagged < 0 {
				t.Fatal("no completion particle")
			}
			if particles[flagged].FadeEnd() != latest {
				t.Errorf("completion particle fades out at %v, last fade ends at %v", particles[flagged].FadeEnd(), latest)
			}
		})
	}
}

func TestCompletionIndex_TiePrefersHighestIndex(t *testing.T) {
	values := valuesFor(t, "board-completed")
	particles := newTestGenerator(1).Generate(config.KindFireworks, values, 10)

	if got := CompletionIndex(particles); got != 9 {
		t.Errorf("CompletionIndex() = %d, want 9", got)
	}
	if !particles[9].Completion {
		t.Error("last firework is not the completion particle")
	}
	if got := CompletionIndex(nil); got != -1 {
		t.Errorf("CompletionIndex(nil) = %d, want -1", got)
	}
}

func TestGenerate_SeededDeterminism(t *testing.T) {
	values := valuesFor(t, "on-fire")

	a := newTestGenerator(99).Generate(config.KindFlame, values, 20)
	b := newTestGenerator(99).Generate(config.KindFlame, values, 20)

	for i := range a {
		for _, at := range []float64{0, 150, 600, 1200, 2000} {
			if sa, sb := a[i].StateAt(at), b[i].StateAt(at); !reflect.DeepEqual(sa, sb) {
				t.Fatalf("particle %d differs at %v: %+v vs %+v", i, at, sa, sb)
			}
		}
	}
}
