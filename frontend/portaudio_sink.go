package frontend

import (
	"github.com/gordonklaus/portaudio"
)

// PortaudioSink plays samples through gordonklaus/portaudio, grounded
// on the teacher's speaker_port.go: a buffered channel feeds a
// callback stream that portaudio drives on its own audio thread.
type PortaudioSink struct {
	stream     *portaudio.Stream
	sampleRate float64
	samples    chan float32
	last       float32
}

// NewPortaudioSink opens the default output device's high-latency
// stream, mirroring the teacher's HighLatencyParameters choice (it
// favors glitch-free playback over low latency, which an emulator's
// audio pull doesn't need anyway).
func NewPortaudioSink() (*PortaudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	host, err := portaudio.DefaultHostApi()
	if err != nil {
		return nil, err
	}
	s := &PortaudioSink{}
	params := portaudio.HighLatencyParameters(nil, host.DefaultOutputDevice)
	params.Output.Channels = 1
	s.sampleRate = params.SampleRate
	s.samples = make(chan float32, int(s.sampleRate))

	stream, err := portaudio.OpenStream(params, s.process)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	if err := s.stream.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PortaudioSink) process(out []float32) {
	for i := range out {
		select {
		case sample := <-s.samples:
			s.last = sample
		default:
		}
		out[i] = s.last
	}
}

// SampleRate implements AudioSink.
func (s *PortaudioSink) SampleRate() float64 { return s.sampleRate }

// Push implements AudioSink.
func (s *PortaudioSink) Push(sample float32) {
	select {
	case s.samples <- sample:
	default:
	}
}

// Close implements AudioSink.
func (s *PortaudioSink) Close() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
