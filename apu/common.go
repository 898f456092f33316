package apu

// lengthTable converts a 5-bit length-counter load value (the top 5
// bits of a $4003/$4007/$400B/$400F write) into the number of
// half-frame ticks before the channel mutes.
//
// https://wiki.nesdev.com/w/index.php/APU_Length_Counter
func lengthTable(load uint8) uint8 {
	table := [32]uint8{
		10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
		12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
	}
	return table[load&0x1F]
}

// durationCounter is the length counter shared by pulse, triangle and
// noise: it mutes the channel once it decays to zero unless halted.
type durationCounter struct {
	counter uint8
	halt    bool
}

func (d *durationCounter) tick() {
	if !d.halt && d.counter > 0 {
		d.counter--
	}
}

func (d *durationCounter) set(halt bool)     { d.halt = halt }
func (d *durationCounter) reload(load uint8) { d.counter = lengthTable(load) }
func (d *durationCounter) mute() bool        { return d.counter == 0 }

// envelope is the volume envelope unit: start flag, divider and decay
// level counter, shared by pulse and noise.
type envelope struct {
	start   bool
	loop    bool
	divider uint8
	reload  uint8
	decay   uint8
}

func (e *envelope) tick() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.reload
		return
	}
	if e.divider == 0 {
		e.divider = e.reload
		if e.decay > 0 {
			e.decay--
		} else if e.loop {
			e.decay = 15
		}
	} else {
		e.divider--
	}
}

func (e *envelope) volume(constVolume bool, vol uint8) uint8 {
	if constVolume {
		return vol
	}
	return e.decay
}

// periodHolder is the narrow view a sweep unit needs of its pulse
// channel's 11-bit timer period.
type periodHolder interface {
	setPeriod(uint16)
	getPeriod() uint16
}

// sweep periodically adjusts a pulse channel's period up or down.
// onesComplement distinguishes pulse 1's (-c-1) adder wiring from
// pulse 2's (-c).
type sweep struct {
	reload         bool
	enabled        bool
	negate         bool
	onesComplement bool
	shift          uint8
	divider        uint8
	dividerReload  uint8

	pulse periodHolder
}

func (s *sweep) tick() {
	if s.divider == 0 && s.enabled && !s.mute() {
		s.pulse.setPeriod(s.targetPeriod())
	}
	if s.divider == 0 || s.reload {
		s.reload = false
		s.divider = s.dividerReload
	} else {
		s.divider--
	}
}

func (s *sweep) mute() bool {
	return s.targetPeriod() > 0x7FF || s.pulse.getPeriod() < 8
}

func (s *sweep) targetPeriod() uint16 {
	period := s.pulse.getPeriod()
	change := period >> s.shift
	if !s.negate {
		return period + change
	}
	if s.onesComplement {
		return period - change - 1
	}
	return period - change
}

// linearCounter is the triangle channel's own length-style counter,
// reloaded independently of the shared duration counter.
type linearCounter struct {
	reloadValue uint8
	counter     uint8
	reloadFlag  bool
	control     bool
}

func (l *linearCounter) start() { l.reloadFlag = true }

func (l *linearCounter) tick() {
	if l.reloadFlag {
		l.counter = l.reloadValue
	} else if l.counter > 0 {
		l.counter--
	}
	if !l.control {
		l.reloadFlag = false
	}
}

func (l *linearCounter) mute() bool { return l.counter == 0 }

// timer is a plain down-counter clocked once per call; it reports
// true the cycle it rolls over and reloads. Used by the one channel
// that stays cycle-driven instead of phase-accumulator driven: the
// DMC bitstream.
type timer struct {
	counter uint16
	period  uint16
}

func (t *timer) tick() bool {
	if t.counter > 0 {
		t.counter--
		return false
	}
	t.counter = t.period
	return true
}
