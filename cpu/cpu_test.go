package cpu

import "testing"

// flatMem is a 64KiB flat address space, standing in for the bus in
// unit tests so each case can be expressed as a literal program
// instead of depending on cartridge/bus wiring.
type flatMem [0x10000]byte

func (m *flatMem) Read(addr uint16) uint8       { return m[addr] }
func (m *flatMem) Write(addr uint16, val uint8) { m[addr] = val }

func newTestCPU(mem *flatMem, pc uint16, code ...uint8) *CPU {
	copy(mem[pc:], code)
	c := New()
	c.PC = pc
	return c
}

type regCheck struct {
	a, x, y, s uint8
	pc         uint16
	p          uint8
}

func checkRegs(t *testing.T, c *CPU, want regCheck) {
	t.Helper()
	if c.A != want.a || c.X != want.x || c.Y != want.y || c.S != want.s || c.PC != want.pc || c.P != want.p {
		t.Fatalf("registers: got A=%#02x X=%#02x Y=%#02x S=%#02x PC=%#04x P=%#02x, want A=%#02x X=%#02x Y=%#02x S=%#02x PC=%#04x P=%#02x",
			c.A, c.X, c.Y, c.S, c.PC, c.P, want.a, want.x, want.y, want.s, want.pc, want.p)
	}
}

func TestLDAAddressingModes(t *testing.T) {
	tests := []struct {
		name   string
		code   []uint8
		prefix func(mem *flatMem, c *CPU)
		want   regCheck
		cycles int
	}{
		{
			name: "immediate",
			code: []uint8{0xA9, 0xAA},
			want: regCheck{a: 0xAA, s: 0xFD, pc: 0x0602, p: FlagU | FlagI | FlagN},
			cycles: 2,
		},
		{
			name:   "zero page",
			code:   []uint8{0xA5, 0xBB},
			prefix: func(mem *flatMem, c *CPU) { mem.Write(0xBB, 0x77) },
			want:   regCheck{a: 0x77, s: 0xFD, pc: 0x0602, p: FlagU | FlagI},
			cycles: 3,
		},
		{
			name: "absolute,X with page cross",
			code: []uint8{0xBD, 0xFF, 0x00},
			prefix: func(mem *flatMem, c *CPU) {
				c.X = 1
				mem.Write(0x0100, 0x42)
			},
			want:   regCheck{a: 0x42, x: 1, s: 0xFD, pc: 0x0603, p: FlagU | FlagI},
			cycles: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var mem flatMem
			c := newTestCPU(&mem, 0x0600, tc.code...)
			if tc.prefix != nil {
				tc.prefix(&mem, c)
			}
			got := c.Step(&mem)
			if got != tc.cycles {
				t.Errorf("cycles = %d, want %d", got, tc.cycles)
			}
			checkRegs(t, c, tc.want)
		})
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	tests := []struct {
		name       string
		a, operand uint8
		carryIn    bool
		wantA      uint8
		wantC, wantV, wantZ, wantN bool
	}{
		{name: "no carry no overflow", a: 0x10, operand: 0x20, wantA: 0x30},
		{name: "unsigned overflow sets carry", a: 0xFF, operand: 0x01, wantA: 0x00, wantC: true, wantZ: true},
		{name: "signed overflow sets V", a: 0x7F, operand: 0x01, wantA: 0x80, wantV: true, wantN: true},
		{name: "carry in propagates", a: 0x01, operand: 0x01, carryIn: true, wantA: 0x03},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var mem flatMem
			c := newTestCPU(&mem, 0x0600, 0x69, tc.operand) // ADC #imm
			c.A = tc.a
			c.setFlag(FlagC, tc.carryIn)
			c.Step(&mem)
			if c.A != tc.wantA {
				t.Errorf("A = %#02x, want %#02x", c.A, tc.wantA)
			}
			if c.flag(FlagC) != tc.wantC {
				t.Errorf("C = %v, want %v", c.flag(FlagC), tc.wantC)
			}
			if c.flag(FlagV) != tc.wantV {
				t.Errorf("V = %v, want %v", c.flag(FlagV), tc.wantV)
			}
			if c.flag(FlagZ) != tc.wantZ {
				t.Errorf("Z = %v, want %v", c.flag(FlagZ), tc.wantZ)
			}
			if c.flag(FlagN) != tc.wantN {
				t.Errorf("N = %v, want %v", c.flag(FlagN), tc.wantN)
			}
		})
	}
}

func TestSBCBorrow(t *testing.T) {
	var mem flatMem
	c := newTestCPU(&mem, 0x0600, 0xE9, 0x01) // SBC #1
	c.A = 0x05
	c.setFlag(FlagC, true) // no borrow going in
	c.Step(&mem)
	if c.A != 0x04 || !c.flag(FlagC) {
		t.Fatalf("A=%#02x C=%v, want A=0x04 C=true", c.A, c.flag(FlagC))
	}
}

func TestBRKPushesStatusWithBreakFlagAndJumpsVector(t *testing.T) {
	var mem flatMem
	mem.Write(0xFFFE, 0x00)
	mem.Write(0xFFFF, 0x80)
	c := newTestCPU(&mem, 0x0600, 0x00, 0xEA) // BRK, then a padding NOP
	cycles := c.Step(&mem)
	if cycles != 7 {
		t.Fatalf("BRK cost %d cycles, want 7", cycles)
	}
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
	pushedP := mem.Read(0x01FB)
	if pushedP&FlagB == 0 {
		t.Fatalf("pushed status %#02x missing B flag", pushedP)
	}
	if !c.flag(FlagI) {
		t.Fatalf("I flag not set after BRK")
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	var mem flatMem
	c := newTestCPU(&mem, 0x0600, 0x20, 0x00, 0x06) // JSR $0600 (infinite but fine for one step)
	c.Step(&mem)
	if c.PC != 0x0600 {
		t.Fatalf("PC after JSR = %#04x, want 0x0600", c.PC)
	}
	mem.Write(0x0600, 0x60) // RTS
	c.Step(&mem)
	if c.PC != 0x0603 {
		t.Fatalf("PC after RTS = %#04x, want 0x0603", c.PC)
	}
}

func TestBranchTakenSamePageCycles(t *testing.T) {
	var mem flatMem
	// BNE +3, landing within the same page: PC after fetch = 0x0602,
	// target 0x0605, no page cross.
	c := newTestCPU(&mem, 0x0600, 0xD0, 0x03)
	c.setFlag(FlagZ, false)
	cycles := c.Step(&mem)
	if cycles != 3 {
		t.Fatalf("taken same-page branch cost %d cycles, want 3", cycles)
	}
	if c.PC != 0x0605 {
		t.Fatalf("PC = %#04x, want 0x0605", c.PC)
	}
}

func TestNMIServicingTakesASeparateStep(t *testing.T) {
	var mem flatMem
	mem.Write(0xFFFA, 0x00)
	mem.Write(0xFFFB, 0x90)
	c := newTestCPU(&mem, 0x0600, 0xEA) // NOP sitting at PC, should not run yet
	c.RaiseNMI()
	cycles := c.Step(&mem)
	if cycles != 7 {
		t.Fatalf("NMI service cost %d cycles, want 7", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
}

func TestIRQIgnoredWhileInterruptDisableSet(t *testing.T) {
	var mem flatMem
	c := newTestCPU(&mem, 0x0600, 0xEA)
	c.setFlag(FlagI, true)
	c.RaiseIRQ()
	c.Step(&mem)
	if c.PC != 0x0601 {
		t.Fatalf("IRQ serviced despite I flag set: PC = %#04x", c.PC)
	}
}
