package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"gopkg.in/yaml.v3"
)

// AnimationKind 动画类别，决定粒子生成器和运动曲线的变体
type AnimationKind string

const (
	KindFireworks   AnimationKind = "fireworks"   // 烟花爆发（Board Completed）
	KindCelebration AnimationKind = "celebration" // 星星庆祝（High Score）
	KindFlame       AnimationKind = "flame"       // 火焰连胜（You're On Fire）
)

// ParameterType 参数类型
type ParameterType int

const (
	// ParameterNumeric 数值参数（滑块）
	ParameterNumeric ParameterType = iota
	// ParameterChoice 选项参数（选择器）
	ParameterChoice
)

// 目录相关错误
var (
	ErrAnimationNotFound = errors.New("animation not found")
	ErrInvalidCatalog    = errors.New("invalid animation catalog")
)

// ParameterSpec 描述一个可调参数
//
// 数值参数使用 Min/Max/Step/Default，满足 Min ≤ Default ≤ Max 且 Step > 0；
// 选项参数使用 Options/DefaultOption，DefaultOption 必须在 Options 中。
type ParameterSpec struct {
	ID    string
	Label string
	Type  ParameterType

	Min     float64
	Max     float64
	Step    float64
	Default float64

	Options       []string
	DefaultOption string
}

// IsNumeric 是否为数值参数
func (p ParameterSpec) IsNumeric() bool {
	return p.Type == ParameterNumeric
}

// HasOption 检查选项是否属于该参数
func (p ParameterSpec) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// AnimationDefinition 目录中的一个动画变体，定义后不可变
type AnimationDefinition struct {
	ID          string
	Title       string
	Description string
	Kind        AnimationKind
	PreviewIcon string
	Parameters  []ParameterSpec
}

// Parameter 按 ID 查找参数定义
func (d AnimationDefinition) Parameter(id string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.ID == id {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// clone 深拷贝，调用者拿到的定义无法修改目录内部状态
func (d AnimationDefinition) clone() AnimationDefinition {
	out := d
	out.Parameters = make([]ParameterSpec, len(d.Parameters))
	for i, p := range d.Parameters {
		if p.Options != nil {
			p.Options = append([]string(nil), p.Options...)
		}
		out.Parameters[i] = p
	}
	return out
}

// Catalog 动画目录：启动时构建一次，之后只读
type Catalog struct {
	order []string
	byID  map[string]AnimationDefinition
}

// catalogFile YAML 文件结构
type catalogFile struct {
	Animations []struct {
		ID          string `yaml:"id"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Kind        string `yaml:"kind"`
		PreviewIcon string `yaml:"preview_icon"`
		Parameters  []struct {
			ID      string   `yaml:"id"`
			Label   string   `yaml:"label"`
			Min     *float64 `yaml:"min"`
			Max     *float64 `yaml:"max"`
			Step    *float64 `yaml:"step"`
			Options []string `yaml:"options"`
			Default any      `yaml:"default"`
		} `yaml:"parameters"`
	} `yaml:"animations"`
}

// LoadCatalog 解析并校验 YAML 目录
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	catalog := &Catalog{byID: make(map[string]AnimationDefinition)}

	for _, a := range file.Animations {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: animation without id", ErrInvalidCatalog)
		}
		if _, dup := catalog.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate animation id %q", ErrInvalidCatalog, a.ID)
		}

		kind := AnimationKind(a.Kind)
		switch kind {
		case KindFireworks, KindCelebration, KindFlame:
		default:
			return nil, fmt.Errorf("%w: animation %q has unknown kind %q", ErrInvalidCatalog, a.ID, a.Kind)
		}

		def := AnimationDefinition{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Kind:        kind,
			PreviewIcon: a.PreviewIcon,
		}

		seen := make(map[string]bool)
		for _, raw := range a.Parameters {
			if raw.ID == "" || seen[raw.ID] {
				return nil, fmt.Errorf("%w: animation %q has empty or duplicate parameter id %q", ErrInvalidCatalog, a.ID, raw.ID)
			}
			seen[raw.ID] = true

			spec := ParameterSpec{ID: raw.ID, Label: raw.Label}
			if len(raw.Options) > 0 {
				spec.Type = ParameterChoice
				spec.Options = raw.Options
				option, ok := raw.Default.(string)
				if !ok || !spec.HasOption(option) {
					return nil, fmt.Errorf("%w: %s/%s default %v is not one of %v", ErrInvalidCatalog, a.ID, raw.ID, raw.Default, raw.Options)
				}
				spec.DefaultOption = option
			} else {
				if raw.Min == nil || raw.Max == nil || raw.Step == nil {
					return nil, fmt.Errorf("%w: %s/%s needs min, max and step", ErrInvalidCatalog, a.ID, raw.ID)
				}
				spec.Type = ParameterNumeric
				spec.Min, spec.Max, spec.Step = *raw.Min, *raw.Max, *raw.Step
				dv, ok := toFloat(raw.Default)
				if !ok {
					return nil, fmt.Errorf("%w: %s/%s default %v is not a number", ErrInvalidCatalog, a.ID, raw.ID, raw.Default)
				}
				spec.Default = dv
				if spec.Step <= 0 || spec.Min > spec.Default || spec.Default > spec.Max {
					return nil, fmt.Errorf("%w: %s/%s violates min ≤ default ≤ max, step > 0", ErrInvalidCatalog, a.ID, raw.ID)
				}
			}
			def.Parameters = append(def.Parameters, spec)
		}

		catalog.order = append(catalog.order, def.ID)
		catalog.byID[def.ID] = def
	}

	return catalog, nil
}

// toFloat YAML 解码到 any 时整数为 int，小数为 float64
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Get 按 ID 查找动画定义，未找到返回 ErrAnimationNotFound
func (c *Catalog) Get(id string) (AnimationDefinition, error) {
	def, ok := c.byID[id]
	if !ok {
		return AnimationDefinition{}, fmt.Errorf("%w: %q", ErrAnimationNotFound, id)
	}
	return def.clone(), nil
}

// List 按声明顺序返回全部动画定义
func (c *Catalog) List() []AnimationDefinition {
	out := make([]AnimationDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].clone())
	}
	return out
}

// Len 目录中的动画数量
func (c *Catalog) Len() int {
	return len(c.order)
}

//go:embed data/catalog.yaml
var catalogYAML []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	catalog, err := LoadCatalog(catalogYAML)
	if err != nil {
		log.Fatalf("[Catalog] 内置动画目录无效: %v", err)
	}
	log.Printf("[Catalog] 加载 %d 个动画定义", catalog.Len())
	return catalog
})

// DefaultCatalog 返回编译期嵌入的动画目录（首次调用时解析）
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}
