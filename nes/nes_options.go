package nes

import "github.com/nesgo/core/internal/trace"

// WithVerbose turns on nestest-log-style CPU step tracing, following
// the teacher's nes_options.go Verbose(bool) functional option.
func WithVerbose(verbose bool) Option {
	return func(n *NES) error {
		n.cpu.SetTracer(trace.New(verbose))
		return nil
	}
}

// WithSpriteLimit toggles the PPU's 8-sprites-per-scanline hardware
// limit; disabling it is a common accuracy/compatibility trade made
// by several public NES cores, mirrored here from the teacher's
// SpriteLimit(bool) option.
func WithSpriteLimit(limit bool) Option {
	return func(n *NES) error {
		n.ppu.SetSpriteLimit(limit)
		return nil
	}
}

// WithSampleRate is consumed by a frontend pulling audio through
// APU().PullSample; the core has no fixed rate of its own (spec.md
// §6: "sample rate configurable"), so this option just documents the
// intended rate for callers that want it threaded through at
// construction instead of passed to every PullSample call.
func WithSampleRate(hz float64) Option {
	return func(n *NES) error {
		n.sampleRate = hz
		return nil
	}
}
