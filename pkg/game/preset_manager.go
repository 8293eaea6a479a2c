package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/mjohnson139/expo-animations/pkg/config"
)

// presetObject gdata 中保存预设的对象名，属性名为动画 ID
const presetObject = "presets"

// Preset 一个动画保存下来的参数值
type Preset struct {
	Numbers map[string]float64 `yaml:"numbers,omitempty"`
	Choices map[string]string  `yaml:"choices,omitempty"`
}

// PresetManager 参数预设管理器
//
// 每个动画保存一份预设。恢复时逐个通过 SetNumber / SetChoice 写入，
// 因此过期或被篡改的值会被重新量化或跳过，不会破坏参数不变量。
// gdataManager 为 nil 时只保存在内存中。
type PresetManager struct {
	gdataManager *gdata.Manager
	presets      map[string]Preset
}

// NewPresetManager 创建预设管理器
func NewPresetManager(gdataManager *gdata.Manager) *PresetManager {
	return &PresetManager{
		gdataManager: gdataManager,
		presets:      make(map[string]Preset),
	}
}

// Save 保存 values 为其动画的预设
func (pm *PresetManager) Save(values *config.Values) error {
	def := values.Definition()
	preset := Preset{
		Numbers: make(map[string]float64),
		Choices: make(map[string]string),
	}
	for _, p := range def.Parameters {
		if p.IsNumeric() {
			preset.Numbers[p.ID] = values.Number(p.ID)
		} else {
			preset.Choices[p.ID] = values.Choice(p.ID)
		}
	}
	pm.presets[def.ID] = preset

	if pm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("failed to marshal preset %s: %w", def.ID, err)
	}
	if err := pm.gdataManager.SaveObjectProp(presetObject, def.ID, data); err != nil {
		return fmt.Errorf("failed to save preset %s: %w", def.ID, err)
	}
	log.Printf("[PresetManager] 已保存预设 %s", def.ID)
	return nil
}

// Has 是否存在该动画的预设
func (pm *PresetManager) Has(animationID string) bool {
	if _, ok := pm.presets[animationID]; ok {
		return true
	}
	return pm.gdataManager != nil && pm.gdataManager.ObjectPropExists(presetObject, animationID)
}

// Restore 把保存的预设写入 values，返回发生变化的参数数量
// 没有预设时返回 (0, nil)；无效的条目被跳过并记录日志。
func (pm *PresetManager) Restore(values *config.Values) (int, error) {
	id := values.Definition().ID
	preset, ok, err := pm.lookup(id)
	if err != nil || !ok {
		return 0, err
	}

	changed := 0
	for pid, n := range preset.Numbers {
		ok, err := values.SetNumber(pid, n)
		if err != nil {
			log.Printf("[PresetManager] 跳过 %s.%s: %v", id, pid, err)
			continue
		}
		if ok {
			changed++
		}
	}
	for pid, option := range preset.Choices {
		ok, err := values.SetChoice(pid, option)
		if err != nil {
			log.Printf("[PresetManager] 跳过 %s.%s: %v", id, pid, err)
			continue
		}
		if ok {
			changed++
		}
	}
	return changed, nil
}

func (pm *PresetManager) lookup(animationID string) (Preset, bool, error) {
	if p, ok := pm.presets[animationID]; ok {
		return p, true, nil
	}
	if pm.gdataManager == nil || !pm.gdataManager.ObjectPropExists(presetObject, animationID) {
		return Preset{}, false, nil
	}

	data, err := pm.gdataManager.LoadObjectProp(presetObject, animationID)
	if err != nil {
		return Preset{}, false, fmt.Errorf("failed to load preset %s: %w", animationID, err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, false, fmt.Errorf("failed to unmarshal preset %s: %w", animationID, err)
	}
	pm.presets[animationID] = p
	return p, true, nil
}
