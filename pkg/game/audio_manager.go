package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	sfx "github.com/mjohnson139/expo-animations/internal/audio"
)

// CuePlayer 场景使用的提示音接口，AudioManager 为默认实现
type CuePlayer interface {
	PlayCue(c sfx.Cue) bool
	Stop()
}

// AudioManager 音频管理器
// 职责：
//   - 合成并缓存庆祝提示音（Trumpet / Applause / Chime）的 PCM 数据
//   - 从 SettingsManager 读取开关与音量
//   - 同一时间只播放一个提示音，新的播放会停止旧的
//
// context 为 nil 时为静音模式（测试与终端预览），只做合成不播放。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	pcm             map[sfx.Cue][]byte
	current         *audio.Player
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil
//   - sm: SettingsManager 实例，可为 nil
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm:             make(map[sfx.Cue][]byte),
	}
}

// NewAudioContext 返回进程内唯一的音频上下文
func NewAudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(int(sfx.DefaultSampleRate))
}

// PlayCue 播放提示音，返回是否真正开始播放
func (am *AudioManager) PlayCue(c sfx.Cue) bool {
	if c == sfx.CueNone || !am.soundEnabled() {
		return false
	}

	data := am.pcmFor(c)
	if data == nil || am.context == nil {
		return false
	}

	am.Stop()
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.soundVolume())
	player.Play()
	am.current = player

	log.Printf("[AudioManager] Playing cue: %s (volume: %.2f)", c, am.soundVolume())
	return true
}

// Stop 停止当前提示音
func (am *AudioManager) Stop() {
	if am.current != nil {
		am.current.Pause()
		am.current = nil
	}
}

// Preload 预先合成提示音，避免首次播放时的卡顿
func (am *AudioManager) Preload(cues ...sfx.Cue) {
	for _, c := range cues {
		am.pcmFor(c)
	}
	log.Printf("[AudioManager] Preloaded %d cues", len(cues))
}

// pcmFor 获取或合成提示音的 PCM 数据（单位音量，播放时再调节）
func (am *AudioManager) pcmFor(c sfx.Cue) []byte {
	if data, ok := am.pcm[c]; ok {
		return data
	}

	stream, err := sfx.RenderCue(c, 1.0, sfx.DefaultSampleRate)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to render cue %s: %v", c, err)
		return nil
	}
	if stream == nil {
		return nil
	}
	am.pcm[c] = stream.Bytes()
	return am.pcm[c]
}

func (am *AudioManager) soundEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}
