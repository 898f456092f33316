package apu

import "testing"

func TestStatusWriteZerosDisabledChannelLengthCounters(t *testing.T) {
	a := New()
	a.pulse1.write(0, 0x00) // halt=false so the counter would otherwise decay on its own
	a.pulse1.duration.counter = 20

	a.writeStatus(0x00) // clear every enable bit
	if a.pulse1.duration.counter != 0 {
		t.Fatalf("pulse1 length counter = %d, want 0 after disable", a.pulse1.duration.counter)
	}
}

func TestFourStepSequenceAssertsIRQAtFourthStep(t *testing.T) {
	a := New()
	a.Tick(14916)
	if !a.IRQ() {
		t.Fatalf("expected frame IRQ asserted after 14916 cycles in 4-step mode")
	}
}

func TestFourStepSequenceRespectsInhibitBit(t *testing.T) {
	a := New()
	a.writeFrameCounter(0x40) // inhibit, stay in 4-step mode
	a.Tick(14916)
	if a.IRQ() {
		t.Fatalf("frame IRQ should not assert while the inhibit bit is set")
	}
}

func TestFiveStepSequenceNeverAssertsIRQ(t *testing.T) {
	a := New()
	a.writeFrameCounter(0x80) // 5-step mode
	a.Tick(18641)
	if a.IRQ() {
		t.Fatalf("5-step mode must never assert the frame IRQ")
	}
}

func TestFiveStepWriteClocksQuarterAndHalfImmediately(t *testing.T) {
	a := New()
	a.pulse1.duration.counter = 5
	a.pulse1.duration.halt = false
	a.pulse1.envelope.start = true

	a.writeFrameCounter(0x80)

	if a.pulse1.duration.counter != 4 {
		t.Fatalf("length counter = %d, want 4 after immediate half-frame clock", a.pulse1.duration.counter)
	}
	if a.pulse1.envelope.start {
		t.Fatalf("envelope start flag should be consumed by the immediate quarter-frame clock")
	}
}

func TestStatusReadReportsAndClearsFrameIRQ(t *testing.T) {
	a := New()
	a.frameIRQ = true

	got := a.ReadRegister(0x4015)
	if got&0x40 == 0 {
		t.Fatalf("status byte missing frame-IRQ bit")
	}
	if a.frameIRQ {
		t.Fatalf("reading $4015 should clear the frame-IRQ flag")
	}
}

func TestSilentMixOutputIsFullNegativeOne(t *testing.T) {
	a := New()
	if got := a.PullSample(44100); got != -1 {
		t.Fatalf("silent mix = %v, want -1", got)
	}
}

func TestPulseMixedOutputRisesAboveSilentFloorWhenAudible(t *testing.T) {
	a := New()
	a.pulse1.write(0, 0xDF) // duty 3 (first step high), constant volume 15
	a.pulse1.period = 254   // well above the <8 mute floor, in range for a real tone
	a.pulse1.duration.counter = 10

	got := a.PullSample(44100)
	if got <= -1 {
		t.Fatalf("expected an audible pulse to move the mix above the silent floor, got %v", got)
	}
}

func TestDMCFetchesSampleViaCallbackAndDecrementsRemaining(t *testing.T) {
	a := New()
	reads := 0
	a.SetDMAReader(func(addr uint16) uint8 {
		reads++
		return 0xFF
	})

	a.dm.write(0x4010, 0x0F) // fastest rate, no loop, no IRQ
	a.dm.write(0x4012, 0x00) // sample address = 0xC000
	a.dm.write(0x4013, 0x00) // sample length = 1 byte
	a.dm.setEnabled(true)

	for i := 0; i < 200; i++ {
		a.dm.tick()
	}

	if reads == 0 {
		t.Fatalf("DMC never called the DMA read callback")
	}
	if a.dm.active() {
		t.Fatalf("DMC should have exhausted its one-byte sample")
	}
}

func TestDMCRaisesIRQWhenSampleExhaustedAndIRQEnabled(t *testing.T) {
	a := New()
	a.SetDMAReader(func(addr uint16) uint8 { return 0x00 })
	a.dm.write(0x4010, 0x8F) // IRQ enable, fastest rate
	a.dm.write(0x4012, 0x00)
	a.dm.write(0x4013, 0x00) // 1 byte
	a.dm.setEnabled(true)

	for i := 0; i < 200; i++ {
		a.dm.tick()
	}

	if !a.dm.irq {
		t.Fatalf("expected DMC IRQ after the sample ran out with IRQ enabled")
	}
}
