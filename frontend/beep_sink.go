package frontend

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// BeepSink plays samples through faiface/beep's speaker package,
// grounded on the teacher's speaker_beep.go: a buffered channel feeds
// a beep.StreamerFunc that speaker.Play drains on its own goroutine.
type BeepSink struct {
	rate    beep.SampleRate
	samples chan float32
	once    sync.Once
}

// NewBeepSink opens a beep speaker at the given sample rate with a
// tenth-of-a-second buffer, matching the teacher's buffering choice.
func NewBeepSink(sampleRate float64) (*BeepSink, error) {
	s := &BeepSink{rate: beep.SampleRate(sampleRate)}
	bufSize := s.rate.N(time.Second / 10)
	s.samples = make(chan float32, bufSize)
	if err := speaker.Init(s.rate, bufSize); err != nil {
		return nil, err
	}
	speaker.Play(s.stream())
	return s, nil
}

func (s *BeepSink) stream() beep.Streamer {
	return beep.StreamerFunc(func(out [][2]float64) (n int, ok bool) {
		for i := range out {
			var v float64
			select {
			case sample := <-s.samples:
				v = float64(sample)
			default:
			}
			out[i][0], out[i][1] = v, v
		}
		return len(out), true
	})
}

// SampleRate implements AudioSink.
func (s *BeepSink) SampleRate() float64 { return float64(s.rate) }

// Push implements AudioSink, dropping the sample if the buffer is full
// rather than blocking the emulation loop's goroutine.
func (s *BeepSink) Push(sample float32) {
	select {
	case s.samples <- sample:
	default:
	}
}

// Close implements AudioSink.
func (s *BeepSink) Close() error {
	s.once.Do(func() { speaker.Close() })
	return nil
}
