package cpu

import "github.com/nesgo/core/internal/bitutil"

type execFn func(c *CPU, mem Memory, addr uint16)

// adcCore implements both ADC and SBC (spec.md §4.4: "SBC is the same
// with ~M"). Flags: C from the 9th bit, V from the sign-disagreement
// formula ~(A^M) & (A^R) & 0x80, Z/N from the result.
func adcCore(c *CPU, operand uint8) {
	a := c.A
	carryIn := uint16(0)
	if c.flag(FlagC) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(operand) + carryIn
	result := uint8(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (^(a^operand)&(a^result)&0x80) != 0)
	c.A = result
	c.setZN(result)
}

func opADC(c *CPU, mem Memory, addr uint16) { adcCore(c, mem.Read(addr)) }
func opSBC(c *CPU, mem Memory, addr uint16) { adcCore(c, ^mem.Read(addr)) }

func cmpCore(c *CPU, reg, m uint8) {
	c.setFlag(FlagC, reg >= m)
	c.setZN(reg - m)
}

func opCMP(c *CPU, mem Memory, addr uint16) { cmpCore(c, c.A, mem.Read(addr)) }
func opCPX(c *CPU, mem Memory, addr uint16) { cmpCore(c, c.X, mem.Read(addr)) }
func opCPY(c *CPU, mem Memory, addr uint16) { cmpCore(c, c.Y, mem.Read(addr)) }

func opLDA(c *CPU, mem Memory, addr uint16) { c.A = mem.Read(addr); c.setZN(c.A) }
func opLDX(c *CPU, mem Memory, addr uint16) { c.X = mem.Read(addr); c.setZN(c.X) }
func opLDY(c *CPU, mem Memory, addr uint16) { c.Y = mem.Read(addr); c.setZN(c.Y) }
func opSTA(c *CPU, mem Memory, addr uint16) { mem.Write(addr, c.A) }
func opSTX(c *CPU, mem Memory, addr uint16) { mem.Write(addr, c.X) }
func opSTY(c *CPU, mem Memory, addr uint16) { mem.Write(addr, c.Y) }

func opTAX(c *CPU, mem Memory, addr uint16) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, mem Memory, addr uint16) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, mem Memory, addr uint16) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, mem Memory, addr uint16) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, mem Memory, addr uint16) { c.X = c.S; c.setZN(c.X) }
func opTXS(c *CPU, mem Memory, addr uint16) { c.S = c.X }

func opPHA(c *CPU, mem Memory, addr uint16) { c.push8(mem, c.A) }
func opPHP(c *CPU, mem Memory, addr uint16) { c.pushStatus(mem, true) }
func opPLA(c *CPU, mem Memory, addr uint16) { c.A = c.pull8(mem); c.setZN(c.A) }
func opPLP(c *CPU, mem Memory, addr uint16) {
	c.P = (c.pull8(mem) &^ FlagB) | FlagU
}

func opORA(c *CPU, mem Memory, addr uint16) { c.A |= mem.Read(addr); c.setZN(c.A) }
func opAND(c *CPU, mem Memory, addr uint16) { c.A &= mem.Read(addr); c.setZN(c.A) }
func opEOR(c *CPU, mem Memory, addr uint16) { c.A ^= mem.Read(addr); c.setZN(c.A) }
func opBIT(c *CPU, mem Memory, addr uint16) {
	m := mem.Read(addr)
	c.setFlag(FlagZ, c.A&m == 0)
	c.setFlag(FlagN, m&0x80 != 0)
	c.setFlag(FlagV, m&0x40 != 0)
}

func opINC(c *CPU, mem Memory, addr uint16) { v := mem.Read(addr) + 1; mem.Write(addr, v); c.setZN(v) }
func opDEC(c *CPU, mem Memory, addr uint16) { v := mem.Read(addr) - 1; mem.Write(addr, v); c.setZN(v) }
func opINX(c *CPU, mem Memory, addr uint16) { c.X++; c.setZN(c.X) }
func opINY(c *CPU, mem Memory, addr uint16) { c.Y++; c.setZN(c.Y) }
func opDEX(c *CPU, mem Memory, addr uint16) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU, mem Memory, addr uint16) { c.Y--; c.setZN(c.Y) }

func opASLAcc(c *CPU, mem Memory, addr uint16) {
	v := c.A
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.A = v
	c.setZN(v)
}
func opASLMem(c *CPU, mem Memory, addr uint16) {
	v := mem.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	mem.Write(addr, v)
	c.setZN(v)
}
func opLSRAcc(c *CPU, mem Memory, addr uint16) {
	v := c.A
	c.setFlag(FlagC, v&1 != 0)
	v >>= 1
	c.A = v
	c.setZN(v)
}
func opLSRMem(c *CPU, mem Memory, addr uint16) {
	v := mem.Read(addr)
	c.setFlag(FlagC, v&1 != 0)
	v >>= 1
	mem.Write(addr, v)
	c.setZN(v)
}
func opROLAcc(c *CPU, mem Memory, addr uint16) {
	v := c.A
	carryIn := uint8(0)
	if c.flag(FlagC) {
		carryIn = 1
	}
	newC := v&0x80 != 0
	v = (v << 1) | carryIn
	c.A = v
	c.setFlag(FlagC, newC)
	c.setZN(v)
}
func opROLMem(c *CPU, mem Memory, addr uint16) {
	v := mem.Read(addr)
	carryIn := uint8(0)
	if c.flag(FlagC) {
		carryIn = 1
	}
	newC := v&0x80 != 0
	v = (v << 1) | carryIn
	mem.Write(addr, v)
	c.setFlag(FlagC, newC)
	c.setZN(v)
}
func opRORAcc(c *CPU, mem Memory, addr uint16) {
	v := c.A
	carryIn := uint8(0)
	if c.flag(FlagC) {
		carryIn = 0x80
	}
	newC := v&1 != 0
	v = (v >> 1) | carryIn
	c.A = v
	c.setFlag(FlagC, newC)
	c.setZN(v)
}
func opRORMem(c *CPU, mem Memory, addr uint16) {
	v := mem.Read(addr)
	carryIn := uint8(0)
	if c.flag(FlagC) {
		carryIn = 0x80
	}
	newC := v&1 != 0
	v = (v >> 1) | carryIn
	mem.Write(addr, v)
	c.setFlag(FlagC, newC)
	c.setZN(v)
}

func opJMP(c *CPU, mem Memory, addr uint16) { c.PC = addr }
func opJSR(c *CPU, mem Memory, addr uint16) {
	c.push16(mem, c.PC-1)
	c.PC = addr
}
func opRTS(c *CPU, mem Memory, addr uint16) { c.PC = c.pull16(mem) + 1 }
func opRTI(c *CPU, mem Memory, addr uint16) {
	c.P = (c.pull8(mem) &^ FlagB) | FlagU
	c.PC = c.pull16(mem)
}
func opBRK(c *CPU, mem Memory, addr uint16) {
	c.PC++ // the byte after BRK's opcode is skipped, never executed
	c.serviceInterrupt(mem, 0xFFFE, true)
}

// branch is shared by all eight conditional branches: +1 cycle if
// taken, +1 more if the target lands on a different page (spec.md §4.4).
func (c *CPU) branch(addr uint16, taken bool) {
	if !taken {
		return
	}
	if bitutil.PageCrossed(c.PC, addr) {
		c.extraCycles++
	}
	c.extraCycles++
	c.PC = addr
}

func opBPL(c *CPU, mem Memory, addr uint16) { c.branch(addr, !c.flag(FlagN)) }
func opBMI(c *CPU, mem Memory, addr uint16) { c.branch(addr, c.flag(FlagN)) }
func opBVC(c *CPU, mem Memory, addr uint16) { c.branch(addr, !c.flag(FlagV)) }
func opBVS(c *CPU, mem Memory, addr uint16) { c.branch(addr, c.flag(FlagV)) }
func opBCC(c *CPU, mem Memory, addr uint16) { c.branch(addr, !c.flag(FlagC)) }
func opBCS(c *CPU, mem Memory, addr uint16) { c.branch(addr, c.flag(FlagC)) }
func opBNE(c *CPU, mem Memory, addr uint16) { c.branch(addr, !c.flag(FlagZ)) }
func opBEQ(c *CPU, mem Memory, addr uint16) { c.branch(addr, c.flag(FlagZ)) }

func opCLC(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagC, false) }
func opSEC(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagC, true) }
func opCLI(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagI, false) }
func opSEI(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagI, true) }
func opCLV(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagV, false) }
func opCLD(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagD, false) }
func opSED(c *CPU, mem Memory, addr uint16) { c.setFlag(FlagD, true) }

func opNOP(c *CPU, mem Memory, addr uint16) {}

// opUnofficial covers every opcode byte spec.md §4.4/§7 leaves
// undocumented: 2 cycles, PC advances by the opcode byte only.
func opUnofficial(c *CPU, mem Memory, addr uint16) {}
