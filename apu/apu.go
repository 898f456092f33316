// Package apu implements the approximate audio processing unit: the
// frame sequencer, the five channels, and the piecewise-rational
// mixer (spec.md §4.6).
//
// The channel registers and their $4000-range write layout are
// grounded on nes/apu.go and nes/waves/*.go; the waveform synthesis
// itself is rebuilt on a phase accumulator pulled at the output
// sample rate, since the teacher's own Apu.tick/Pulse.tick samples a
// CPU-cycle-ticked sequencer instead of exposing a callback a
// frontend can pull from.
package apu

const apuCPUClockHz = 1789773.0

// frameStep is one entry of the frame sequencer's cycle table: at the
// given CPU-cycle offset, fire a quarter-frame and/or half-frame
// clock, optionally raise the frame IRQ, and wrap back to cycle 0.
type frameStep struct {
	cycle   int
	quarter bool
	half    bool
	irq     bool
	wrap    bool
}

var fourStepSequence = [4]frameStep{
	{cycle: 3729, quarter: true},
	{cycle: 7457, quarter: true, half: true},
	{cycle: 11186, quarter: true},
	{cycle: 14916, quarter: true, half: true, irq: true, wrap: true},
}

// fiveStepSequence follows the spec's REDESIGN FLAGS recipe for a
// true 5-step mode (3729, 7457, 11186, 18641 with no IRQ) rather than
// stubbing it out as a 4-step clone.
var fiveStepSequence = [4]frameStep{
	{cycle: 3729, quarter: true},
	{cycle: 7457, quarter: true, half: true},
	{cycle: 11186, quarter: true},
	{cycle: 18641, quarter: true, half: true, wrap: true},
}

// quarterHalfChannel is implemented by every channel the frame
// sequencer drives except DMC, which runs its own cycle-stepped
// state machine.
type quarterHalfChannel interface {
	quarterFrameTick()
	halfFrameTick()
}

// APU owns the frame sequencer and all five channels. Its registers
// are decoded by the bus through the narrow bus.APUPorts view;
// everything else (Tick, PullSample, SetDMAReader) is called directly
// by the shell that owns it.
type APU struct {
	pulse1 *pulse
	pulse2 *pulse
	tri    *triangle
	noi    *noise
	dm     *dmc

	fiveStepMode bool
	irqInhibit   bool
	cycleAcc     int
	step         int
	frameIRQ     bool
}

// New returns a power-on APU with every channel silenced.
func New() *APU {
	return &APU{
		pulse1: newPulse(true),
		pulse2: newPulse(false),
		tri:    newTriangle(),
		noi:    newNoise(),
		dm:     newDMC(),
	}
}

// SetDMAReader wires the narrow callback the DMC channel uses to
// refill its sample buffer from the CPU's address space. The shell
// passes bus.Read; the APU never stores anything wider.
func (a *APU) SetDMAReader(read func(addr uint16) uint8) {
	a.dm.dmaRead = read
}

// IRQ reports whether either the frame sequencer or the DMC channel
// currently wants to assert the CPU's IRQ line.
func (a *APU) IRQ() bool {
	return a.frameIRQ || a.dm.irq
}

func (a *APU) sequence() *[4]frameStep {
	if a.fiveStepMode {
		return &fiveStepSequence
	}
	return &fourStepSequence
}

// Tick advances the frame sequencer and the DMC's DMA/bitstream state
// machine by cpuCycles CPU cycles.
func (a *APU) Tick(cpuCycles int) {
	for i := 0; i < cpuCycles; i++ {
		a.tickOneCycle()
		a.dm.tick()
	}
}

func (a *APU) tickOneCycle() {
	a.cycleAcc++
	seq := a.sequence()
	s := seq[a.step]
	if a.cycleAcc < s.cycle {
		return
	}

	a.clockFrame(s)
	if s.wrap {
		a.cycleAcc = 0
		a.step = 0
	} else {
		a.step++
	}
}

func (a *APU) clockFrame(s frameStep) {
	if s.quarter {
		a.pulse1.quarterFrameTick()
		a.pulse2.quarterFrameTick()
		a.tri.quarterFrameTick()
		a.noi.quarterFrameTick()
	}
	if s.half {
		a.pulse1.halfFrameTick()
		a.pulse2.halfFrameTick()
		a.tri.halfFrameTick()
		a.noi.halfFrameTick()
	}
	if s.irq && !a.irqInhibit {
		a.frameIRQ = true
	}
}

// WriteRegister handles a CPU write to $4000-$4013, $4015 or $4017.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch {
	case addr >= 0x4000 && addr <= 0x4003:
		a.pulse1.write(uint8(addr-0x4000), val)
	case addr >= 0x4004 && addr <= 0x4007:
		a.pulse2.write(uint8(addr-0x4004), val)
	case addr >= 0x4008 && addr <= 0x400B:
		a.tri.write(addr, val)
	case addr >= 0x400C && addr <= 0x400F:
		a.noi.write(addr, val)
	case addr >= 0x4010 && addr <= 0x4013:
		a.dm.write(addr, val)
	case addr == 0x4015:
		a.writeStatus(val)
	case addr == 0x4017:
		a.writeFrameCounter(val)
	}
}

func (a *APU) writeStatus(val uint8) {
	if val&0x01 == 0 {
		a.pulse1.duration.counter = 0
	}
	if val&0x02 == 0 {
		a.pulse2.duration.counter = 0
	}
	if val&0x04 == 0 {
		a.tri.duration.counter = 0
	}
	if val&0x08 == 0 {
		a.noi.duration.counter = 0
	}
	a.dm.setEnabled(val&0x10 != 0)
}

// writeFrameCounter handles $4017: bit7 selects 4-step/5-step mode,
// bit6 inhibits the frame IRQ. A write with bit7 set immediately
// fires a quarter+half clock, per the REDESIGN FLAGS recipe.
func (a *APU) writeFrameCounter(val uint8) {
	a.fiveStepMode = val&0x80 != 0
	a.irqInhibit = val&0x40 != 0
	a.cycleAcc = 0
	a.step = 0
	if a.irqInhibit {
		a.frameIRQ = false
	}
	if a.fiveStepMode {
		a.clockFrame(frameStep{quarter: true, half: true})
	}
}

// ReadRegister handles a CPU read; only $4015 is readable, per real
// hardware's write-only channel registers.
func (a *APU) ReadRegister(addr uint16) uint8 {
	if addr != 0x4015 {
		return 0
	}
	return a.readStatus()
}

func (a *APU) readStatus() uint8 {
	var status uint8
	if a.pulse1.duration.counter > 0 {
		status |= 0x01
	}
	if a.pulse2.duration.counter > 0 {
		status |= 0x02
	}
	if a.tri.duration.counter > 0 {
		status |= 0x04
	}
	if a.noi.duration.counter > 0 {
		status |= 0x08
	}
	if a.dm.active() {
		status |= 0x10
	}
	if a.frameIRQ {
		status |= 0x40
	}
	if a.dm.irq {
		status |= 0x80
	}
	a.frameIRQ = false
	a.dm.irq = false
	return status
}

// PullSample synthesizes one mono sample at the given output sample
// rate (Hz), mixing all five channels with the standard NES
// piecewise-rational mixer, clamped to [0,1] then mapped to [-1,1].
func (a *APU) PullSample(sampleRate float64) float32 {
	p1 := float64(a.pulse1.sample(sampleRate))
	p2 := float64(a.pulse2.sample(sampleRate))
	tri := float64(a.tri.sample(sampleRate))
	noi := float64(a.noi.sample(sampleRate))
	dmc := float64(a.dm.sample())

	var pulseOut float64
	if pulseSum := p1 + p2; pulseSum > 0 {
		pulseOut = 95.88 / (8128/pulseSum + 100)
	}

	var tndOut float64
	if tri > 0 || noi > 0 || dmc > 0 {
		tndOut = 159.79 / (1/(tri/8227+noi/12241+dmc/22638) + 100)
	}

	out := pulseOut + tndOut
	switch {
	case out < 0:
		out = 0
	case out > 1:
		out = 1
	}
	return float32(out*2 - 1)
}
