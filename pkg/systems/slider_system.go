package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// SliderMouseInput 滑块系统鼠标输入接口
// 用于依赖注入，支持测试时 mock
type SliderMouseInput interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

// ebitenSliderMouseInput Ebitengine 默认实现
type ebitenSliderMouseInput struct{}

func (e *ebitenSliderMouseInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenSliderMouseInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	// 使用支持触摸的按下检测
	return utils.IsPointerPressed()
}

// defaultSliderMouseInput 默认鼠标输入实例
var defaultSliderMouseInput SliderMouseInput = &ebitenSliderMouseInput{}

// SliderSystem 参数控件交互系统
//
// 职责：
//   - 数值控件：在滑槽内按下开始拖拽，拖拽中把指针位置换算为参数值并调用 OnValueChange
//   - 选项控件：在滑槽内按下的那一帧调用 OnCycle（左半部分 -1，右半部分 +1）
//   - 维护悬停与拖拽状态
//
// 控件只上报意图，参数值的量化与校验由回调方完成，再由回调方同步回 Value/Option。
type SliderSystem struct {
	entityManager *ecs.EntityManager
	mouseInput    SliderMouseInput
	wasPressed    bool
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		mouseInput:    defaultSliderMouseInput,
	}
}

// NewSliderSystemWithInput 创建带自定义鼠标输入的滑块交互系统（用于测试）
func NewSliderSystemWithInput(em *ecs.EntityManager, input SliderMouseInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		mouseInput:    input,
	}
}

// Update 更新控件交互状态
func (s *SliderSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.mouseInput.CursorPosition()
	mousePressed := s.mouseInput.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := mousePressed && !s.wasPressed
	s.wasPressed = mousePressed

	for _, entityID := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		if slider == nil {
			continue
		}

		isInSlot := slider.Slot.Contains(mouseX, mouseY)
		slider.IsHovered = isInSlot

		if !mousePressed {
			slider.IsDragging = false
			continue
		}

		if !slider.Numeric {
			if justPressed && isInSlot && slider.OnCycle != nil {
				direction := 1
				if float64(mouseX) < slider.Slot.X+slider.Slot.W/2 {
					direction = -1
				}
				slider.OnCycle(direction)
			}
			continue
		}

		// 只有在滑槽内按下才开始拖拽，拖拽中允许指针移出滑槽
		if justPressed && isInSlot {
			slider.IsDragging = true
		}
		if !slider.IsDragging {
			continue
		}

		value := s.calculateValue(float64(mouseX), slider)
		if value != slider.Value && slider.OnValueChange != nil {
			slider.OnValueChange(value)
		}
	}
}

// calculateValue 根据鼠标X坐标计算参数值（未量化）
func (s *SliderSystem) calculateValue(mouseX float64, slider *components.SliderComponent) float64 {
	if slider.Slot.W <= 0 {
		return slider.Min
	}
	fraction := utils.Clamp((mouseX-slider.Slot.X)/slider.Slot.W, 0, 1)
	return slider.Min + fraction*(slider.Max-slider.Min)
}
