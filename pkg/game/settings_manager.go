package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppSettings 全局设置（与具体动画无关）
type AppSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 提示音音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 提示音开关
	LastOpened   string  `yaml:"lastOpened"`   // 上次打开的动画 ID
}

// DefaultSettings 返回默认设置
func DefaultSettings() *AppSettings {
	return &AppSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *AppSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *AppSettings {
	return sm.settings
}

// SetSoundVolume 设置音量（限制在 0.0 ~ 1.0），需调用 Save() 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置提示音开关，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetLastOpened 记录上次打开的动画
func (sm *SettingsManager) SetLastOpened(animationID string) {
	sm.settings.LastOpened = animationID
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
