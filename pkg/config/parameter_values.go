package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// 参数修改错误，出错时保留原值
var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrParameterKind    = errors.New("parameter kind mismatch")
	ErrInvalidOption    = errors.New("option not allowed")
	ErrInvalidNumber    = errors.New("invalid numeric value")
)

// valueTolerance 数值比较容差，用于量化与幂等判断
const valueTolerance = 1e-9

// Values 一个详情会话中的当前参数值
//
// 每个参数定义都有对应条目；数值始终在 [Min, Max] 内且按 Step 从 Min 起量化。
// 只能通过 SetNumber / SetChoice / Step / Cycle 修改，只有可观察的变化才会递增 Revision。
type Values struct {
	def      AnimationDefinition
	numbers  map[string]float64
	choices  map[string]string
	revision uint64
}

// InitialValues 创建参数值，每个参数取其默认值
func InitialValues(def AnimationDefinition) *Values {
	v := &Values{
		def:     def.clone(),
		numbers: make(map[string]float64),
		choices: make(map[string]string),
	}
	for _, p := range def.Parameters {
		if p.IsNumeric() {
			v.numbers[p.ID] = p.Default
		} else {
			v.choices[p.ID] = p.DefaultOption
		}
	}
	return v
}

// Definition 返回值所属的动画定义
func (v *Values) Definition() AnimationDefinition {
	return v.def.clone()
}

// Revision 可观察修改的计数
func (v *Values) Revision() uint64 {
	return v.revision
}

// Number 返回数值参数，未知参数返回 0
func (v *Values) Number(id string) float64 {
	return v.numbers[id]
}

// Choice 返回选项参数，未知参数返回空字符串
func (v *Values) Choice(id string) string {
	return v.choices[id]
}

// Has 是否存在该参数
func (v *Values) Has(id string) bool {
	_, ok := v.def.Parameter(id)
	return ok
}

// SetNumber 设置数值参数，值会被限制到 [Min, Max] 并按 Step 量化
// changed=false 表示值未发生可观察变化（不需要重新渲染）
func (v *Values) SetNumber(id string, n float64) (changed bool, err error) {
	spec, ok := v.def.Parameter(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	if !spec.IsNumeric() {
		return false, fmt.Errorf("%w: %q is a choice parameter", ErrParameterKind, id)
	}
	if math.IsNaN(n) {
		return false, fmt.Errorf("%w: %q = NaN", ErrInvalidNumber, id)
	}

	q := Quantize(spec, n)
	if math.Abs(q-v.numbers[id]) <= valueTolerance {
		return false, nil
	}
	v.numbers[id] = q
	v.revision++
	return true, nil
}

// SetChoice 设置选项参数
func (v *Values) SetChoice(id, option string) (changed bool, err error) {
	spec, ok := v.def.Parameter(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	if spec.IsNumeric() {
		return false, fmt.Errorf("%w: %q is a numeric parameter", ErrParameterKind, id)
	}
	if !spec.HasOption(option) {
		return false, fmt.Errorf("%w: %q for %q (options %v)", ErrInvalidOption, option, id, spec.Options)
	}
	if v.choices[id] == option {
		return false, nil
	}
	v.choices[id] = option
	v.revision++
	return true, nil
}

// Step 数值参数增减一个步长（direction > 0 增加，< 0 减少）
func (v *Values) Step(id string, direction int) (bool, error) {
	spec, ok := v.def.Parameter(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	if !spec.IsNumeric() {
		return false, fmt.Errorf("%w: %q is a choice parameter", ErrParameterKind, id)
	}
	return v.SetNumber(id, v.numbers[id]+float64(sign(direction))*spec.Step)
}

// Cycle 选项参数切换到下一个/上一个选项（循环）
func (v *Values) Cycle(id string, direction int) (bool, error) {
	spec, ok := v.def.Parameter(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	if spec.IsNumeric() {
		return false, fmt.Errorf("%w: %q is a numeric parameter", ErrParameterKind, id)
	}
	n := len(spec.Options)
	i := slices.Index(spec.Options, v.choices[id])
	next := ((i+sign(direction))%n + n) % n
	return v.SetChoice(id, spec.Options[next])
}

// Clone 返回独立快照（播放开始时使用）
func (v *Values) Clone() *Values {
	out := &Values{
		def:      v.def.clone(),
		numbers:  make(map[string]float64, len(v.numbers)),
		choices:  make(map[string]string, len(v.choices)),
		revision: v.revision,
	}
	for k, n := range v.numbers {
		out.numbers[k] = n
	}
	for k, c := range v.choices {
		out.choices[k] = c
	}
	return out
}

// Map 以参数 ID 为键导出全部值（数值为 float64，选项为 string）
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.numbers)+len(v.choices))
	for k, n := range v.numbers {
		out[k] = n
	}
	for k, c := range v.choices {
		out[k] = c
	}
	return out
}

// Quantize 将数值限制在 [Min, Max] 并对齐到从 Min 开始的 Step 网格
func Quantize(spec ParameterSpec, n float64) float64 {
	maxSteps := math.Floor((spec.Max-spec.Min)/spec.Step + valueTolerance)
	steps := math.Round((n - spec.Min) / spec.Step)
	if steps < 0 {
		steps = 0
	}
	if steps > maxSteps {
		steps = maxSteps
	}
	q := spec.Min + steps*spec.Step
	// 消除 0.1+0.2 之类的浮点噪声，保持显示值干净
	return math.Round(q*1e9) / 1e9
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
