package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMStream holds rendered 16-bit little-endian stereo PCM.
// It implements io.ReadSeeker and Length, which is what Ebitengine's
// audio player expects from a decoded stream.
type PCMStream struct {
	data       []byte
	sampleRate int64
	offset     int64
}

// maxRenderSamples 单个提示音的上限（约 10 秒），防止无限流
const maxRenderSamples = 10 * 44100

// Render drains s into a PCMStream.
// Streams that do not end within about ten seconds are rejected.
func Render(s beep.Streamer, rate beep.SampleRate) (*PCMStream, error) {
	if s == nil {
		return nil, fmt.Errorf("render: nil streamer")
	}

	var data []byte
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				pcm := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				data = append(data, byte(pcm), byte(pcm>>8))
			}
		}
		total += n
		if total > maxRenderSamples {
			return nil, fmt.Errorf("render: stream longer than %d samples", maxRenderSamples)
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &PCMStream{data: data, sampleRate: int64(rate)}, nil
}

// RenderCue synthesizes and renders a cue. CueNone returns (nil, nil).
func RenderCue(c Cue, volume float64, rate beep.SampleRate) (*PCMStream, error) {
	s := Synthesize(c, volume, rate)
	if s == nil {
		return nil, nil
	}
	pcm, err := Render(s, rate)
	if err != nil {
		return nil, fmt.Errorf("cue %s: %w", c, err)
	}
	return pcm, nil
}

// Read implements io.Reader.
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Length returns the total length in bytes.
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}

// Bytes returns the raw PCM data.
func (p *PCMStream) Bytes() []byte {
	return p.data
}

// SampleRate returns the sample rate in Hz.
func (p *PCMStream) SampleRate() int64 {
	return p.sampleRate
}

// Samples returns the number of stereo frames.
func (p *PCMStream) Samples() int {
	return len(p.data) / 4
}
