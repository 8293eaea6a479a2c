package components

import "github.com/mjohnson139/expo-animations/pkg/utils"

// SliderComponent 参数控件（数值滑动条或选项选择器）
// 每个动画参数对应一个控件实体，由 ControlPanelModule 创建
type SliderComponent struct {
	ParameterID string
	Label       string
	Numeric     bool

	// 数值参数范围（仅 Numeric 时有效）
	Min  float64
	Max  float64
	Step float64

	// 当前显示值，由模块在参数变化后同步
	Value  float64
	Option string

	// 布局：整行区域与滑槽区域
	Bounds utils.Rect
	Slot   utils.Rect

	// 状态
	IsDragging bool
	IsHovered  bool
	IsFocused  bool // 键盘焦点

	// 回调函数：返回值表示参数是否真的发生了变化
	OnValueChange func(value float64) bool // 拖动滑块
	OnCycle       func(direction int) bool // 点击选择器
}

// Fraction 当前值在滑槽中的位置（0.0 - 1.0）
func (s *SliderComponent) Fraction() float64 {
	if !s.Numeric || s.Max <= s.Min {
		return 0
	}
	return utils.Clamp((s.Value-s.Min)/(s.Max-s.Min), 0, 1)
}
