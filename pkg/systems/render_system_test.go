package systems

import (
	"math"
	"testing"

	"github.com/mjohnson139/expo-animations/internal/particle"
)

func TestGlowRings(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		opacity float64
		want    int
	}{
		{"正常光晕", 60, 0.6, glowRingCount},
		{"零半径", 0, 0.6, 0},
		{"完全透明", 60, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings := glowRings(tt.radius, tt.opacity)
			if len(rings) != tt.want {
				t.Fatalf("len = %d, want %d", len(rings), tt.want)
			}
			if tt.want == 0 {
				return
			}
			if rings[0].radius != tt.radius {
				t.Errorf("outer radius = %v, want %v", rings[0].radius, tt.radius)
			}
			total := 0.0
			for i, r := range rings {
				if i > 0 && r.radius >= rings[i-1].radius {
					t.Errorf("ring %d radius %v not shrinking", i, r.radius)
				}
				total += r.alpha
			}
			if math.Abs(total-tt.opacity) > 1e-9 {
				t.Errorf("summed alpha = %v, want %v", total, tt.opacity)
			}
		})
	}
}

func TestDiamondVertices(t *testing.T) {
	tint := particle.Opaque(255, 0, 0)

	t.Run("无旋转", func(t *testing.T) {
		v := diamondVertices(100, 100, 10, 0, tint, 0.5)
		want := [4][2]float32{{100, 90}, {110, 100}, {100, 110}, {90, 100}}
		for i, w := range want {
			if math.Abs(float64(v[i].DstX-w[0])) > 1e-4 || math.Abs(float64(v[i].DstY-w[1])) > 1e-4 {
				t.Errorf("vertex %d = (%v, %v), want %v", i, v[i].DstX, v[i].DstY, w)
			}
		}
		if v[0].ColorR != 1 || v[0].ColorG != 0 || v[0].ColorA != 0.5 {
			t.Errorf("color = (%v, %v, %v, %v)", v[0].ColorR, v[0].ColorG, v[0].ColorB, v[0].ColorA)
		}
	})

	t.Run("旋转90度", func(t *testing.T) {
		v := diamondVertices(0, 0, 10, 90, tint, 1)
		// 上顶点 (0,-10) 旋转 90° 后到 (10,0)
		if math.Abs(float64(v[0].DstX-10)) > 1e-4 || math.Abs(float64(v[0].DstY)) > 1e-4 {
			t.Errorf("top vertex = (%v, %v), want (10, 0)", v[0].DstX, v[0].DstY)
		}
	})
}

func TestTintColor(t *testing.T) {
	tests := []struct {
		name    string
		tint    particle.Tint
		opacity float64
		wantA   uint8
	}{
		{"不透明", particle.Opaque(1, 2, 3), 1, 255},
		{"半透明粒子", particle.Opaque(1, 2, 3), 0.5, 128},
		{"半透明颜色", particle.Tint{R: 1, G: 2, B: 3, A: 0.5}, 0.5, 64},
		{"越界", particle.Opaque(1, 2, 3), 2, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tintColor(tt.tint, tt.opacity)
			if c.A != tt.wantA || c.R != 1 || c.G != 2 || c.B != 3 {
				t.Errorf("tintColor() = %+v, want A=%d", c, tt.wantA)
			}
		})
	}
}
