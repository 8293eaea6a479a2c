// Package particle generates overlay particle descriptors and evaluates their
// motion by elapsed time.
//
// A particle never holds mutable animation state. Its Motion is a set of
// keyframe tracks computed once at generation time; every frame simply asks
// for the state at the current elapsed time, so the same particle evaluated
// twice at the same instant always yields the same result.
package particle

import (
	"math"

	"github.com/mjohnson139/expo-animations/pkg/utils"
)

// Key is one timed segment of a Track.
// All times are in milliseconds relative to the particle's own clock
// (i.e. after its spawn delay has elapsed).
type Key struct {
	At       float64        // segment start
	Duration float64        // segment length, 0 means jump
	To       float64        // value reached at At+Duration
	Ease     utils.EaseFunc // nil means linear
}

// End returns the time at which the segment finishes.
func (k Key) End() float64 {
	return k.At + k.Duration
}

// Track animates a single scalar channel.
//
// Keys run in sequence: each segment starts from the value the previous one
// reached (or Initial for the first), so Keys must be ordered by At and must
// not overlap. Before the first key, and between keys, the value holds.
type Track struct {
	Initial float64
	Keys    []Key
}

// Const returns a track that never changes.
func Const(v float64) Track {
	return Track{Initial: v}
}

// Then appends a segment starting where the previous one ended.
func (tr Track) Then(duration, to float64, ease utils.EaseFunc) Track {
	return tr.At(tr.End(), duration, to, ease)
}

// At appends a segment starting at an absolute time.
// A start earlier than the current end is moved to the current end.
func (tr Track) At(at, duration, to float64, ease utils.EaseFunc) Track {
	if end := tr.End(); at < end {
		at = end
	}
	keys := make([]Key, len(tr.Keys), len(tr.Keys)+1)
	copy(keys, tr.Keys)
	tr.Keys = append(keys, Key{At: at, Duration: math.Max(0, duration), To: to, Ease: ease})
	return tr
}

// End returns the time at which the last segment finishes.
func (tr Track) End() float64 {
	if len(tr.Keys) == 0 {
		return 0
	}
	return tr.Keys[len(tr.Keys)-1].End()
}

// Final returns the value the track settles on.
func (tr Track) Final() float64 {
	if len(tr.Keys) == 0 {
		return tr.Initial
	}
	return tr.Keys[len(tr.Keys)-1].To
}

// Evaluate returns the track value at time t (ms).
func (tr Track) Evaluate(t float64) float64 {
	value := tr.Initial
	for _, k := range tr.Keys {
		if t < k.At {
			return value
		}
		if k.Duration <= 0 || t >= k.End() {
			value = k.To
			continue
		}

		ratio := (t - k.At) / k.Duration
		ease := k.Ease
		if ease == nil {
			ease = utils.EaseLinear
		}
		return utils.Lerp(value, k.To, ease(ratio))
	}
	return value
}

// Loop animates a channel that repeats forever, such as rotation or a pulse.
type Loop struct {
	Start  float64 // ms before the first cycle begins
	Period float64 // length of one From→To sweep, ≤ 0 disables the loop
	From   float64
	To     float64
	Yoyo   bool // sweep back To→From instead of jumping
	Ease   utils.EaseFunc
}

// Still returns a loop that always evaluates to v.
func Still(v float64) Loop {
	return Loop{From: v, To: v}
}

// Evaluate returns the loop value at time t (ms).
func (l Loop) Evaluate(t float64) float64 {
	if l.Period <= 0 || t < l.Start {
		return l.From
	}

	cycles := (t - l.Start) / l.Period
	n := math.Floor(cycles)
	ratio := cycles - n
	if l.Yoyo && int64(n)%2 == 1 {
		ratio = 1 - ratio
	}

	ease := l.Ease
	if ease == nil {
		ease = utils.EaseLinear
	}
	return utils.Lerp(l.From, l.To, ease(ratio))
}
