package particle

import (
	"testing"

	"github.com/mjohnson139/expo-animations/pkg/config"
)

func TestEdgeGlows(t *testing.T) {
	values := valuesFor(t, "on-fire")
	values.SetChoice(config.ParamFlameColor, FlameBlue)

	glows := newTestGenerator(1).EdgeGlows(values)
	if len(glows) != 4 {
		t.Fatalf("len = %d, want 4", len(glows))
	}

	base := GradientFor(FlameBlue).Base
	for _, g := range glows {
		if g.Tint != base {
			t.Errorf("%s tint = %v, want %v", g.Name, g.Tint, base)
		}
		s := g.StateAt(0)
		if s.Opacity != 0 || s.FullScreen {
			t.Errorf("%s state at 0 = %+v", g.Name, s)
		}
		// 循环效果没有终点
		for _, at := range []float64{1000, 5000, 60000} {
			if op := g.StateAt(at).Opacity; op < 0.3-1e-9 || op > 0.6+1e-9 {
				t.Errorf("%s opacity at %v = %v, want within [0.3, 0.6]", g.Name, at, op)
			}
		}
	}
	if glows[0].Position.X != 0 || glows[1].Position.X != testWidth {
		t.Errorf("left/right glows at x=%v, %v", glows[0].Position.X, glows[1].Position.X)
	}
}

func TestBackgroundGlow(t *testing.T) {
	values := valuesFor(t, "high-score") // duration 3
	g := newTestGenerator(1).BackgroundGlow(values)

	tests := []struct {
		at   float64
		want float64
	}{
		{0, 0},
		{150, 0.15},
		{300, 0.3},
		{2700, 0.3},
		{2850, 0.15},
		{3000, 0},
	}
	for _, tt := range tests {
		if got := g.StateAt(tt.at).Opacity; !approx(got, tt.want) {
			t.Errorf("opacity at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
	if !g.StateAt(0).FullScreen {
		t.Error("background glow is not full screen")
	}
}

func TestGlows_ByKind(t *testing.T) {
	g := newTestGenerator(1)

	if got := g.Glows(config.KindFireworks, valuesFor(t, "board-completed")); len(got) != 0 {
		t.Errorf("fireworks glows = %d, want 0", len(got))
	}
	if got := g.Glows(config.KindCelebration, valuesFor(t, "high-score")); len(got) != 1 {
		t.Errorf("celebration glows = %d, want 1", len(got))
	}
	if got := g.Glows(config.KindFlame, valuesFor(t, "on-fire")); len(got) != 4 {
		t.Errorf("flame glows = %d, want 4", len(got))
	}
}

func TestBanner_Celebration(t *testing.T) {
	values := valuesFor(t, "high-score") // intensity 5, opacity 0.9
	b, ok := newTestGenerator(1).Banner(config.KindCelebration, values)
	if !ok {
		t.Fatal("no celebration banner")
	}
	if b.Text != "HIGH SCORE!" {
		t.Errorf("Text = %q", b.Text)
	}

	tests := []struct {
		at      float64
		scale   float64
		opacity float64
	}{
		{0, 0, 0},
		{300, 1.2, 0.9},
		{500, 1, 0.9},
		{800, 1.25, 0.9},
		{1100, 1, 0.9},
	}
	for _, tt := range tests {
		s := b.StateAt(tt.at)
		if !approx(s.Scale, tt.scale) || !approx(s.Opacity, tt.opacity) {
			t.Errorf("state at %v = scale %v opacity %v, want %v %v", tt.at, s.Scale, s.Opacity, tt.scale, tt.opacity)
		}
	}

	if s := b.StateAt(0); !approx(s.Position.Y, testHeight/2-50+20) {
		t.Errorf("start y = %v, want %v", s.Position.Y, testHeight/2-50+20)
	}
	if s := b.StateAt(300); !approx(s.Position.Y, testHeight/2-50) {
		t.Errorf("settled y = %v, want %v", s.Position.Y, testHeight/2-50)
	}
}

func TestBanner_Flame(t *testing.T) {
	b, ok := newTestGenerator(1).Banner(config.KindFlame, valuesFor(t, "on-fire"))
	if !ok || b.Text != "YOU'RE ON FIRE!" {
		t.Fatalf("Banner() = %+v, %v", b, ok)
	}
	if got := b.StateAt(800).Scale; !approx(got, 1.1) {
		t.Errorf("pulse peak = %v, want 1.1", got)
	}

	if _, ok := newTestGenerator(1).Banner(config.KindFireworks, valuesFor(t, "board-completed")); ok {
		t.Error("fireworks should have no banner")
	}
}
