package game

import (
	"github.com/mjohnson139/expo-animations/pkg/config"
)

// GameState 跨场景共享的服务
// 由 app 在启动时创建一次，场景通过构造参数拿到同一个实例
type GameState struct {
	Config    *config.AppConfig
	Catalog   *config.Catalog
	Settings  *SettingsManager
	Presets   *PresetManager
	Audio     CuePlayer
	Resources *ResourceManager
	Scenes    *SceneManager
}

// NewHeadlessGameState 创建不依赖存储与音频设备的状态（测试与终端预览使用）
func NewHeadlessGameState(cfg *config.AppConfig) *GameState {
	if cfg == nil {
		cfg = config.DefaultAppConfig()
	}
	settings := NewSettingsManager(nil)
	return &GameState{
		Config:    cfg,
		Catalog:   config.DefaultCatalog(),
		Settings:  settings,
		Presets:   NewPresetManager(nil),
		Audio:     NewAudioManager(nil, settings),
		Resources: NewResourceManager(),
		Scenes:    NewSceneManager(),
	}
}

// GetAudioManager 返回提示音播放器
func (gs *GameState) GetAudioManager() CuePlayer {
	return gs.Audio
}
