package config

import (
	"errors"
	"math"
	"testing"
)

func mustDefinition(t *testing.T, id string) AnimationDefinition {
	t.Helper()
	def, err := DefaultCatalog().Get(id)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", id, err)
	}
	return def
}

func TestInitialValues_Defaults(t *testing.T) {
	for _, def := range DefaultCatalog().List() {
		t.Run(def.ID, func(t *testing.T) {
			v := InitialValues(def)
			for _, p := range def.Parameters {
				if p.IsNumeric() {
					if got := v.Number(p.ID); got != p.Default {
						t.Errorf("Number(%q) = %v, want %v", p.ID, got, p.Default)
					}
				} else if got := v.Choice(p.ID); got != p.DefaultOption {
					t.Errorf("Choice(%q) = %q, want %q", p.ID, got, p.DefaultOption)
				}
			}
			if v.Revision() != 0 {
				t.Errorf("Revision() = %d, want 0", v.Revision())
			}
		})
	}
}

func TestValues_SetNumberClampAndQuantize(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		input float64
		want  float64
	}{
		{"超过上限", "speed", 5, 2},
		{"低于下限", "speed", -1, 0.1},
		{"量化到步长", "speed", 1.26, 1.3},
		{"步长网格从最小值开始", "speed", 0.14, 0.1},
		{"整数步长", "particles", 37, 40},
		{"负无穷", "particles", math.Inf(-1), 10},
		{"正无穷", "particles", math.Inf(1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := InitialValues(mustDefinition(t, "board-completed"))
			if _, err := v.SetNumber(tt.id, tt.input); err != nil {
				t.Fatalf("SetNumber() error: %v", err)
			}
			if got := v.Number(tt.id); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Number(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValues_SetNumberIdempotent(t *testing.T) {
	v := InitialValues(mustDefinition(t, "board-completed"))

	changed, err := v.SetNumber("speed", 1.5)
	if err != nil || !changed {
		t.Fatalf("first SetNumber = (%v, %v), want (true, nil)", changed, err)
	}
	rev := v.Revision()

	changed, err = v.SetNumber("speed", 1.5)
	if err != nil || changed {
		t.Errorf("repeated SetNumber = (%v, %v), want (false, nil)", changed, err)
	}
	// 量化后等于当前值也视为未变化
	changed, _ = v.SetNumber("speed", 1.52)
	if changed {
		t.Error("SetNumber to a value quantizing to the current one reported a change")
	}
	if v.Revision() != rev {
		t.Errorf("Revision() = %d, want %d", v.Revision(), rev)
	}
}

func TestValues_Errors(t *testing.T) {
	v := InitialValues(mustDefinition(t, "high-score"))

	tests := []struct {
		name string
		call func() (bool, error)
		want error
	}{
		{"未知数值参数", func() (bool, error) { return v.SetNumber("nope", 1) }, ErrUnknownParameter},
		{"未知选项参数", func() (bool, error) { return v.SetChoice("nope", "x") }, ErrUnknownParameter},
		{"对选项参数设数值", func() (bool, error) { return v.SetNumber("sound", 1) }, ErrParameterKind},
		{"对数值参数设选项", func() (bool, error) { return v.SetChoice("duration", "3") }, ErrParameterKind},
		{"非法选项", func() (bool, error) { return v.SetChoice("sound", "Kazoo") }, ErrInvalidOption},
		{"NaN", func() (bool, error) { return v.SetNumber("duration", math.NaN()) }, ErrInvalidNumber},
		{"未知参数步进", func() (bool, error) { return v.Step("nope", 1) }, ErrUnknownParameter},
		{"选项参数步进", func() (bool, error) { return v.Step("sound", 1) }, ErrParameterKind},
		{"数值参数循环", func() (bool, error) { return v.Cycle("duration", 1) }, ErrParameterKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if changed {
				t.Error("changed = true on error")
			}
		})
	}

	// 出错后原值保持不变
	if v.Choice("sound") != "Applause" || v.Number("duration") != 3 {
		t.Errorf("values changed after errors: sound=%q duration=%v", v.Choice("sound"), v.Number("duration"))
	}
	if v.Revision() != 0 {
		t.Errorf("Revision() = %d after failed updates, want 0", v.Revision())
	}
}

func TestValues_SetChoice(t *testing.T) {
	v := InitialValues(mustDefinition(t, "on-fire"))

	changed, err := v.SetChoice("flame-color", "Blue")
	if err != nil || !changed {
		t.Fatalf("SetChoice = (%v, %v), want (true, nil)", changed, err)
	}
	if v.Choice("flame-color") != "Blue" {
		t.Errorf("Choice = %q, want Blue", v.Choice("flame-color"))
	}
	changed, _ = v.SetChoice("flame-color", "Blue")
	if changed {
		t.Error("setting the current option reported a change")
	}
}

func TestValues_StepAndCycle(t *testing.T) {
	v := InitialValues(mustDefinition(t, "on-fire"))

	if _, err := v.Step("flame-height", 1); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if v.Number("flame-height") != 6 {
		t.Errorf("flame-height = %v, want 6", v.Number("flame-height"))
	}
	for i := 0; i < 20; i++ {
		v.Step("flame-height", 1)
	}
	if v.Number("flame-height") != 10 {
		t.Errorf("flame-height = %v, want clamped 10", v.Number("flame-height"))
	}

	// smoke: [None, Light, Heavy]，默认 Light
	v.Cycle("smoke", 1)
	if v.Choice("smoke") != "Heavy" {
		t.Errorf("smoke = %q, want Heavy", v.Choice("smoke"))
	}
	v.Cycle("smoke", 1)
	if v.Choice("smoke") != "None" {
		t.Errorf("smoke = %q, want wrap to None", v.Choice("smoke"))
	}
	v.Cycle("smoke", -1)
	if v.Choice("smoke") != "Heavy" {
		t.Errorf("smoke = %q, want wrap back to Heavy", v.Choice("smoke"))
	}
}

func TestValues_CloneIsIndependent(t *testing.T) {
	v := InitialValues(mustDefinition(t, "board-completed"))
	snapshot := v.Clone()

	v.SetNumber("particles", 100)
	v.SetChoice("colors", "Gold")

	if snapshot.Number("particles") != 50 || snapshot.Choice("colors") != "Rainbow" {
		t.Errorf("snapshot changed: particles=%v colors=%q", snapshot.Number("particles"), snapshot.Choice("colors"))
	}
	if got := v.Map()["particles"]; got != 100.0 {
		t.Errorf("Map()[particles] = %v, want 100", got)
	}
}

func TestQuantize_Precision(t *testing.T) {
	spec := ParameterSpec{Type: ParameterNumeric, Min: 0.1, Max: 2, Step: 0.1}
	for i := 0; i <= 19; i++ {
		want := math.Round((0.1+float64(i)*0.1)*10) / 10
		got := Quantize(spec, want)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Quantize(%v) = %v", want, got)
		}
	}
}
