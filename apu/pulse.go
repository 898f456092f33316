package apu

// pulseDutyTable holds the four duty-cycle waveforms, 8 steps each,
// indexed [dutyMode][step].
var pulseDutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 75% (25% inverted)
}

// pulse is one of the two square-wave channels. Grounded on
// nes/waves/pulse.go's register layout, resynthesized against a
// phase accumulator instead of a CPU-cycle-ticked sequencer per the
// pull-based sample generation spec.md §4.6 calls for.
type pulse struct {
	pulseOne bool // selects pulse 1's ones'-complement sweep adder

	dutyMode    uint8
	constVolume bool
	volume      uint8
	period      uint16

	duration durationCounter
	envelope envelope
	sweep    sweep

	phase float64
}

func newPulse(pulseOne bool) *pulse {
	p := &pulse{pulseOne: pulseOne}
	p.duration.halt = true
	p.sweep.pulse = p
	p.sweep.onesComplement = pulseOne
	return p
}

func (p *pulse) setPeriod(period uint16) { p.period = period }
func (p *pulse) getPeriod() uint16       { return p.period }

// write handles $4000-$4003 (pulse 1) or $4004-$4007 (pulse 2); the
// caller passes the register index 0-3 within the channel's block,
// regardless of channel.
func (p *pulse) write(reg uint8, val uint8) {
	switch reg {
	case 0:
		p.dutyMode = (val & 0xC0) >> 6
		p.duration.set(val&0x20 != 0)
		p.constVolume = val&0x10 != 0
		p.volume = val & 0x0F
		p.envelope.loop = p.duration.halt
		p.envelope.reload = p.volume
	case 1:
		p.sweep.enabled = val&0x80 != 0
		p.sweep.dividerReload = (val & 0x70) >> 4
		p.sweep.negate = val&0x08 != 0
		p.sweep.shift = val & 0x07
		p.sweep.reload = true
	case 2:
		p.period = (p.period & 0x0700) | uint16(val)
	case 3:
		p.period = (p.period & 0x00FF) | uint16(val&0x07)<<8
		p.duration.reload((val & 0xF8) >> 3)
		p.envelope.start = true
	}
}

func (p *pulse) quarterFrameTick() { p.envelope.tick() }
func (p *pulse) halfFrameTick() {
	p.duration.tick()
	p.sweep.tick()
}

// sample advances the phase accumulator by one audio-sample's worth
// of cycles and returns the channel's current 4-bit digital output.
func (p *pulse) sample(sampleRate float64) uint8 {
	if p.duration.mute() || p.sweep.mute() || p.period < 8 {
		return 0
	}
	freq := apuCPUClockHz / (16 * (float64(p.period) + 1))
	p.phase += freq / sampleRate
	for p.phase >= 1 {
		p.phase -= 1
	}
	step := int(p.phase*8) % 8
	if pulseDutyTable[p.dutyMode][step] == 0 {
		return 0
	}
	return p.envelope.volume(p.constVolume, p.volume)
}
