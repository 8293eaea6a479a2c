package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// mockSliderMouseInput 用于测试的 mock 鼠标输入
type mockSliderMouseInput struct {
	mouseX       int
	mouseY       int
	mousePressed bool
}

func (m *mockSliderMouseInput) CursorPosition() (int, int) {
	return m.mouseX, m.mouseY
}

func (m *mockSliderMouseInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return m.mousePressed
}

// newNumericSlider 创建一个范围 0~10、滑槽 x∈[100,200] y∈[50,70] 的数值控件
func newNumericSlider(em *ecs.EntityManager, got *[]float64) *components.SliderComponent {
	entity := em.CreateEntity()
	slider := &components.SliderComponent{
		ParameterID: "speed",
		Numeric:     true,
		Min:         0,
		Max:         10,
		Step:        1,
		Value:       3,
		Slot:        utils.Rect{X: 100, Y: 50, W: 100, H: 20},
	}
	slider.OnValueChange = func(value float64) bool {
		*got = append(*got, value)
		slider.Value = value
		return true
	}
	ecs.AddComponent(em, entity, slider)
	return slider
}

func TestSliderSystem_calculateValue(t *testing.T) {
	system := NewSliderSystem(ecs.NewEntityManager())
	slider := &components.SliderComponent{
		Numeric: true,
		Min:     1,
		Max:     5,
		Slot:    utils.Rect{X: 100, W: 200},
	}

	tests := []struct {
		name     string
		mouseX   float64
		expected float64
	}{
		{"左边界", 100, 1},
		{"右边界", 300, 5},
		{"中间位置", 200, 3},
		{"25%位置", 150, 2},
		{"左侧越界", 20, 1},
		{"右侧越界", 999, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := system.calculateValue(tt.mouseX, slider); got != tt.expected {
				t.Errorf("calculateValue() = %v, want %v", got, tt.expected)
			}
		})
	}

	t.Run("零宽度滑槽", func(t *testing.T) {
		zero := &components.SliderComponent{Min: 2, Max: 4}
		if got := system.calculateValue(150, zero); got != 2 {
			t.Errorf("calculateValue() = %v, want 2", got)
		}
	})
}

func TestSliderSystem_ClickInSlot(t *testing.T) {
	em := ecs.NewEntityManager()
	input := &mockSliderMouseInput{mouseX: 150, mouseY: 55, mousePressed: true}
	system := NewSliderSystemWithInput(em, input)

	var got []float64
	slider := newNumericSlider(em, &got)

	system.Update(0.016)

	if !slider.IsDragging {
		t.Error("IsDragging should be true after pressing inside the slot")
	}
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("OnValueChange calls = %v, want [5]", got)
	}
}

func TestSliderSystem_ClickOutsideSlot(t *testing.T) {
	em := ecs.NewEntityManager()
	input := &mockSliderMouseInput{mouseX: 50, mouseY: 55, mousePressed: true}
	system := NewSliderSystemWithInput(em, input)

	var got []float64
	slider := newNumericSlider(em, &got)

	system.Update(0.016)

	// 在外部按下后再移入滑槽也不会开始拖拽
	input.mouseX = 150
	system.Update(0.016)

	if slider.IsDragging || len(got) != 0 {
		t.Errorf("dragging=%v calls=%v, want no interaction", slider.IsDragging, got)
	}
	if !slider.IsHovered {
		t.Error("IsHovered should follow the pointer")
	}
}

func TestSliderSystem_DraggingAndRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	input := &mockSliderMouseInput{mouseX: 150, mouseY: 55, mousePressed: true}
	system := NewSliderSystemWithInput(em, input)

	var got []float64
	slider := newNumericSlider(em, &got)

	system.Update(0.016)

	// 拖出滑槽右下方仍然更新，值被限制在最大值
	input.mouseX, input.mouseY = 260, 120
	system.Update(0.016)
	if slider.Value != 10 {
		t.Errorf("Value = %v, want 10", slider.Value)
	}

	// 相同位置不重复回调
	system.Update(0.016)
	if len(got) != 2 {
		t.Errorf("OnValueChange calls = %v, want 2 calls", got)
	}

	input.mousePressed = false
	system.Update(0.016)
	if slider.IsDragging {
		t.Error("IsDragging should be false after release")
	}
}

func TestSliderSystem_ChoiceCycles(t *testing.T) {
	tests := []struct {
		name   string
		mouseX int
		want   int
	}{
		{"左半部分后退", 110, -1},
		{"右半部分前进", 190, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			input := &mockSliderMouseInput{mouseX: tt.mouseX, mouseY: 60, mousePressed: true}
			system := NewSliderSystemWithInput(em, input)

			var directions []int
			entity := em.CreateEntity()
			ecs.AddComponent(em, entity, &components.SliderComponent{
				ParameterID: "colors",
				Option:      "Rainbow",
				Slot:        utils.Rect{X: 100, Y: 50, W: 100, H: 20},
				OnCycle: func(direction int) bool {
					directions = append(directions, direction)
					return true
				},
			})

			// 按住多帧只触发一次
			system.Update(0.016)
			system.Update(0.016)
			if len(directions) != 1 || directions[0] != tt.want {
				t.Errorf("OnCycle calls = %v, want [%d]", directions, tt.want)
			}

			input.mousePressed = false
			system.Update(0.016)
			input.mousePressed = true
			system.Update(0.016)
			if len(directions) != 2 {
				t.Errorf("second click: OnCycle calls = %v", directions)
			}
		})
	}
}
