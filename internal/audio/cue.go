// Package audio synthesizes the short sound cues that accompany overlay
// animations and renders them to 16-bit PCM for playback.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue identifies a synthesized sound that can accompany an animation.
type Cue string

// 可选提示音（与 high-score 的 sound 参数选项一致）
const (
	CueTrumpet  Cue = "Trumpet"
	CueApplause Cue = "Applause"
	CueChime    Cue = "Chime"
	CueNone     Cue = "None"
)

// DefaultSampleRate is the rate cues are rendered at.
const DefaultSampleRate beep.SampleRate = 44100

// 各提示音时长
const (
	trumpetNote     = 140 * time.Millisecond
	trumpetFinal    = 420 * time.Millisecond
	applauseClap    = 45 * time.Millisecond
	applauseGap     = 35 * time.Millisecond
	applauseClaps   = 14
	chimeDuration   = 700 * time.Millisecond
	chimeSecondNote = 120 * time.Millisecond
)

// ParseCue maps a sound option to a cue. Unknown names and None yield
// (CueNone, false).
func ParseCue(name string) (Cue, bool) {
	switch c := Cue(name); c {
	case CueTrumpet, CueApplause, CueChime:
		return c, true
	}
	return CueNone, false
}

// Duration returns the length of a cue.
func (c Cue) Duration() time.Duration {
	switch c {
	case CueTrumpet:
		return 3*trumpetNote + trumpetFinal
	case CueApplause:
		return applauseClaps * (applauseClap + applauseGap)
	case CueChime:
		return chimeSecondNote + chimeDuration
	}
	return 0
}

// Synthesize builds the streamer for a cue at the given volume (0..1).
// CueNone returns nil.
func Synthesize(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueTrumpet:
		s = trumpet(rate)
	case CueApplause:
		s = applause(rate)
	case CueChime:
		s = chime(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// trumpet 上行号角：G4 C5 E5 → G5（锯齿波 + 方波泛音）
func trumpet(rate beep.SampleRate) beep.Streamer {
	horn := func(freq float64, d time.Duration) beep.Streamer {
		return beep.Mix(
			note{freq: freq, length: d, attack: 10 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.6, shape: saw}.streamer(rate),
			note{freq: freq * 2, length: d, attack: 10 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.15, shape: square}.streamer(rate),
		)
	}
	return beep.Seq(
		horn(392.00, trumpetNote),
		horn(523.25, trumpetNote),
		horn(659.25, trumpetNote),
		horn(783.99, trumpetFinal),
	)
}

// applause 掌声：一串短促的噪声爆发，每次拍手的噪声种子不同
func applause(rate beep.SampleRate) beep.Streamer {
	claps := make([]beep.Streamer, 0, applauseClaps*2)
	for i := 0; i < applauseClaps; i++ {
		clap := note{length: applauseClap, attack: 2 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.5, seed: int64(i + 1)}
		claps = append(claps, clap.streamer(rate), beep.Silence(rate.N(applauseGap)))
	}
	return beep.Seq(claps...)
}

// chime 铃声：C6 后接 E6，各带一个八度泛音
func chime(rate beep.SampleRate) beep.Streamer {
	bell := func(freq float64, d time.Duration) beep.Streamer {
		return beep.Mix(
			note{freq: freq, length: d, attack: 5 * time.Millisecond, release: d - 50*time.Millisecond, gain: 0.7, shape: sine}.streamer(rate),
			note{freq: freq * 2, length: d, attack: 5 * time.Millisecond, release: d / 2, gain: 0.3, shape: sine}.streamer(rate),
		)
	}
	return beep.Seq(
		bell(1046.50, chimeSecondNote),
		bell(1318.51, chimeDuration),
	)
}

// waveform 返回一个周期内相位 [0, 1) 处的采样值
type waveform func(phase float64) float64

func sine(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

func square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

func saw(phase float64) float64 { return 2*phase - 1 }

// note 一个带线性起音/释音的音符；shape 为 nil 时发出以 seed 固定的噪声
type note struct {
	freq    float64
	length  time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
	shape   waveform
	seed    int64
}

// streamer 渲染恰好 rate.N(length) 个采样后结束
func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(n.length)
	attack, release := rate.N(n.attack), rate.N(n.release)
	step := n.freq / float64(rate)
	noise := rand.New(rand.NewSource(n.seed))

	pos, phase := 0, 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < total; i++ {
			var v float64
			if n.shape != nil {
				v = n.shape(phase)
			} else {
				v = noise.Float64()*2 - 1
			}
			v *= n.gain * envelopeLevel(pos, total, attack, release)
			samples[i] = [2]float64{v, v}

			phase += step
			phase -= math.Floor(phase)
			pos++
		}
		return i, true
	})
}

// envelopeLevel 第 pos 个采样的包络增益：起音段线性上升，最后 release 个采样线性衰减
func envelopeLevel(pos, total, attack, release int) float64 {
	switch {
	case attack > 0 && pos < attack:
		return float64(pos) / float64(attack)
	case release > 0 && pos >= total-release:
		return math.Max(0, float64(total-pos)/float64(release))
	}
	return 1
}

// newVolume 线性缩放整段提示音，0 及以下静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
