package modules

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mjohnson139/expo-animations/pkg/components"
	"github.com/mjohnson139/expo-animations/pkg/config"
	"github.com/mjohnson139/expo-animations/pkg/ecs"
	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// 控件行布局
const (
	controlRowHeight  = 44.0
	controlSlotHeight = 12.0
	controlLabelRatio = 0.45 // 标签占整行宽度的比例
)

// PanelKey 控制面板键盘命令
type PanelKey int

const (
	PanelKeyUp PanelKey = iota
	PanelKeyDown
	PanelKeyLeft
	PanelKeyRight
)

// ControlPanelCallbacks 控制面板回调函数集合
type ControlPanelCallbacks struct {
	// OnChange 参数发生可观察变化时调用（值未变化时不调用）
	OnChange func(parameterID string, values *config.Values)
}

// ControlPanelModule 动画参数控制面板
//
// 职责：
//   - 按动画定义的参数顺序创建控件实体：数值参数为滑动条，选项参数为选择器
//   - 指针输入由 SliderSystem 处理，键盘输入由本模块处理（上下切换焦点，左右调整）
//   - 只通过 Values.SetNumber / Step / Cycle 修改参数，修改后同步控件显示
//
// 面板不持有播放状态，变更通过 OnChange 通知外部。
type ControlPanelModule struct {
	entityManager *ecs.EntityManager
	values        *config.Values
	bounds        utils.Rect

	rows  []ecs.EntityID
	focus int

	labelFont *text.GoTextFace
	onChange  func(parameterID string, values *config.Values)
}

// NewControlPanelModule 创建控制面板
//
// 参数:
//   - em: EntityManager 实例
//   - values: 当前会话的参数值
//   - bounds: 面板区域
//   - labelFont: 标签字体（可为 nil，此时只绘制控件图形）
//   - callbacks: 回调函数集合
func NewControlPanelModule(em *ecs.EntityManager, values *config.Values, bounds utils.Rect, labelFont *text.GoTextFace, callbacks ControlPanelCallbacks) *ControlPanelModule {
	m := &ControlPanelModule{
		entityManager: em,
		bounds:        bounds,
		labelFont:     labelFont,
		onChange:      callbacks.OnChange,
	}
	m.SetValues(values)
	return m
}

// SetValues 切换到另一组参数值（例如恢复预设后），重建控件
func (m *ControlPanelModule) SetValues(values *config.Values) {
	m.destroyRows()
	m.values = values
	m.focus = 0

	def := values.Definition()
	for i, spec := range def.Parameters {
		m.rows = append(m.rows, m.createRow(i, spec))
	}
	log.Printf("[ControlPanel] 创建 %d 个参数控件 (%s)", len(m.rows), def.ID)
}

func (m *ControlPanelModule) createRow(index int, spec config.ParameterSpec) ecs.EntityID {
	rowY := m.bounds.Y + float64(index)*controlRowHeight
	slotX := m.bounds.X + m.bounds.W*controlLabelRatio
	slotW := m.bounds.W - m.bounds.W*controlLabelRatio

	slider := &components.SliderComponent{
		ParameterID: spec.ID,
		Label:       spec.Label,
		Numeric:     spec.IsNumeric(),
		Min:         spec.Min,
		Max:         spec.Max,
		Step:        spec.Step,
		Bounds:      utils.Rect{X: m.bounds.X, Y: rowY, W: m.bounds.W, H: controlRowHeight},
		Slot: utils.Rect{
			X: slotX,
			Y: rowY + (controlRowHeight-controlSlotHeight)/2,
			W: slotW,
			H: controlSlotHeight,
		},
		IsFocused: index == 0,
	}

	id := spec.ID
	slider.OnValueChange = func(value float64) bool {
		return m.apply(id, func() (bool, error) { return m.values.SetNumber(id, value) })
	}
	slider.OnCycle = func(direction int) bool {
		return m.apply(id, func() (bool, error) { return m.values.Cycle(id, direction) })
	}
	m.sync(slider)

	entity := m.entityManager.CreateEntity()
	ecs.AddComponent(m.entityManager, entity, slider)
	return entity
}

// apply 执行一次参数修改，只有真正变化时同步控件并通知外部
func (m *ControlPanelModule) apply(id string, mutate func() (bool, error)) bool {
	changed, err := mutate()
	if err != nil {
		log.Printf("[ControlPanel] 参数 %s 修改失败: %v", id, err)
		return false
	}
	if !changed {
		return false
	}
	if slider := m.sliderFor(id); slider != nil {
		m.sync(slider)
	}
	if m.onChange != nil {
		m.onChange(id, m.values)
	}
	return true
}

func (m *ControlPanelModule) sync(slider *components.SliderComponent) {
	if slider.Numeric {
		slider.Value = m.values.Number(slider.ParameterID)
	} else {
		slider.Option = m.values.Choice(slider.ParameterID)
	}
}

// Values 当前参数值
func (m *ControlPanelModule) Values() *config.Values {
	return m.values
}

// Rows 按参数顺序返回控件
func (m *ControlPanelModule) Rows() []*components.SliderComponent {
	out := make([]*components.SliderComponent, 0, len(m.rows))
	for _, id := range m.rows {
		if slider, ok := ecs.GetComponent[*components.SliderComponent](m.entityManager, id); ok {
			out = append(out, slider)
		}
	}
	return out
}

// Focused 当前键盘焦点所在的行
func (m *ControlPanelModule) Focused() int {
	return m.focus
}

// Height 面板内容高度
func (m *ControlPanelModule) Height() float64 {
	return float64(len(m.rows)) * controlRowHeight
}

// HandleKey 处理一个键盘命令，返回参数是否发生变化
func (m *ControlPanelModule) HandleKey(key PanelKey) bool {
	rows := m.Rows()
	if len(rows) == 0 {
		return false
	}

	switch key {
	case PanelKeyUp, PanelKeyDown:
		delta := 1
		if key == PanelKeyUp {
			delta = -1
		}
		rows[m.focus].IsFocused = false
		m.focus = (m.focus + delta + len(rows)) % len(rows)
		rows[m.focus].IsFocused = true
		return false
	}

	direction := 1
	if key == PanelKeyLeft {
		direction = -1
	}
	slider := rows[m.focus]
	id := slider.ParameterID
	if slider.Numeric {
		return m.apply(id, func() (bool, error) { return m.values.Step(id, direction) })
	}
	return m.apply(id, func() (bool, error) { return m.values.Cycle(id, direction) })
}

// Update 读取键盘输入
func (m *ControlPanelModule) Update(deltaTime float64) {
	keys := []struct {
		key     ebiten.Key
		command PanelKey
	}{
		{ebiten.KeyArrowUp, PanelKeyUp},
		{ebiten.KeyArrowDown, PanelKeyDown},
		{ebiten.KeyArrowLeft, PanelKeyLeft},
		{ebiten.KeyArrowRight, PanelKeyRight},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			m.HandleKey(k.command)
		}
	}
}

// Draw 绘制控件行
func (m *ControlPanelModule) Draw(screen *ebiten.Image) {
	trackColor := color.RGBA{R: 70, G: 70, B: 90, A: 255}
	fillColor := color.RGBA{R: 255, G: 200, B: 60, A: 255}
	focusColor := color.RGBA{R: 255, G: 255, B: 255, A: 40}
	labelColor := color.RGBA{R: 230, G: 230, B: 240, A: 255}

	for _, s := range m.Rows() {
		if s.IsFocused {
			vector.DrawFilledRect(screen, float32(s.Bounds.X), float32(s.Bounds.Y),
				float32(s.Bounds.W), float32(s.Bounds.H), focusColor, false)
		}

		if s.Numeric {
			slot := s.Slot
			vector.DrawFilledRect(screen, float32(slot.X), float32(slot.Y), float32(slot.W), float32(slot.H), trackColor, false)
			vector.DrawFilledRect(screen, float32(slot.X), float32(slot.Y), float32(slot.W*s.Fraction()), float32(slot.H), fillColor, false)
			knobX := slot.X + slot.W*s.Fraction()
			vector.DrawFilledCircle(screen, float32(knobX), float32(slot.Y+slot.H/2), float32(slot.H), fillColor, true)
		}

		if m.labelFont == nil {
			continue
		}
		label := s.Label
		if s.Numeric {
			label = fmt.Sprintf("%s  %s", s.Label, DisplayValue(s))
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(s.Bounds.X+8, s.Bounds.Y+8)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, label, m.labelFont, op)

		if !s.Numeric {
			op := &text.DrawOptions{}
			op.GeoM.Translate(s.Slot.X, s.Bounds.Y+8)
			op.ColorScale.ScaleWithColor(fillColor)
			text.Draw(screen, "<  "+s.Option+"  >", m.labelFont, op)
		}
	}
}

// Destroy 销毁控件实体
func (m *ControlPanelModule) Destroy() {
	m.destroyRows()
}

func (m *ControlPanelModule) destroyRows() {
	for _, id := range m.rows {
		m.entityManager.DestroyEntityNow(id)
	}
	m.rows = nil
}

func (m *ControlPanelModule) sliderFor(id string) *components.SliderComponent {
	for _, s := range m.Rows() {
		if s.ParameterID == id {
			return s
		}
	}
	return nil
}

// DisplayValue 控件当前值的显示文本，小数位数与步长一致
func DisplayValue(s *components.SliderComponent) string {
	if !s.Numeric {
		return s.Option
	}
	return strconv.FormatFloat(s.Value, 'f', stepDecimals(s.Step), 64)
}

func stepDecimals(step float64) int {
	str := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}
