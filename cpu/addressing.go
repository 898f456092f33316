package cpu

import "github.com/nesgo/core/internal/bitutil"

type mode uint8

const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

func (c *CPU) imm8(mem Memory) uint8 {
	v := mem.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) imm16(mem Memory) uint16 {
	lo := c.imm8(mem)
	hi := c.imm8(mem)
	return bitutil.Word(lo, hi)
}

// readZP16 reads a little-endian word from zero page with wraparound
// at the page boundary (0xFF -> 0x00, not 0x100) — needed by the
// (indirect,X) and (indirect),Y addressing modes.
func readZP16(mem Memory, zp uint8) uint16 {
	lo := mem.Read(uint16(zp))
	hi := mem.Read(uint16(zp + 1))
	return bitutil.Word(lo, hi)
}

// resolve computes the effective address for every mode except
// Implied and Accumulator, and reports whether a page boundary was
// crossed (relevant to abs,X / abs,Y / (ind),Y and to branch targets).
func (c *CPU) resolve(mem Memory, m mode) (addr uint16, crossed bool) {
	switch m {
	case modeImmediate:
		addr = c.PC
		c.PC++
	case modeZeroPage:
		addr = uint16(c.imm8(mem))
	case modeZeroPageX:
		addr = uint16(c.imm8(mem) + c.X)
	case modeZeroPageY:
		addr = uint16(c.imm8(mem) + c.Y)
	case modeAbsolute:
		addr = c.imm16(mem)
	case modeAbsoluteX:
		base := c.imm16(mem)
		addr = base + uint16(c.X)
		crossed = bitutil.PageCrossed(base, addr)
	case modeAbsoluteY:
		base := c.imm16(mem)
		addr = base + uint16(c.Y)
		crossed = bitutil.PageCrossed(base, addr)
	case modeIndirect:
		ptr := c.imm16(mem)
		// JMP (indirect) page-wrap bug (spec.md §4.4): if the pointer's
		// low byte is 0xFF, the high byte is fetched from ptr & 0xFF00
		// instead of crossing into the next page.
		lo := mem.Read(ptr)
		hiAddr := (ptr & 0xFF00) | uint16(bitutil.Lo(ptr)+1)
		hi := mem.Read(hiAddr)
		addr = bitutil.Word(lo, hi)
	case modeIndirectX:
		zp := c.imm8(mem) + c.X
		addr = readZP16(mem, zp)
	case modeIndirectY:
		zp := c.imm8(mem)
		base := readZP16(mem, zp)
		addr = base + uint16(c.Y)
		crossed = bitutil.PageCrossed(base, addr)
	case modeRelative:
		off := int8(c.imm8(mem))
		addr = uint16(int32(c.PC) + int32(off))
	}
	return addr, crossed
}
