// Package frontend holds the thin adapters between the core and the
// outside world: audio backends here, the window/input loop in
// cmd/gones. Neither package is imported by apu, ppu, cpu, bus,
// cartridge or nes — the core never depends on how a frontend chooses
// to play it back.
package frontend

// AudioSink accepts mixed mono samples pulled from apu.APU.PullSample
// and plays them back. The teacher carries two interchangeable audio
// backends (speaker_beep.go, speaker_port.go) selected by a single
// flag; this interface is the seam that keeps both without coupling
// cmd/gones to either library directly.
type AudioSink interface {
	// SampleRate reports the rate, in Hz, that the sink wants samples
	// pulled at.
	SampleRate() float64
	// Push enqueues one mixed sample in [-1, 1]. Implementations must
	// not block the caller indefinitely; a full buffer drops the
	// incoming sample rather than stalling the emulation loop.
	Push(sample float32)
	// Close stops playback and releases backend resources.
	Close() error
}
