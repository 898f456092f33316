package cpu

// instr is one row of the dispatch table: the addressing mode to
// resolve before the call, the base cycle count, whether a crossed
// page adds one more cycle, and the exec function itself.
type instr struct {
	name      string
	mode      mode
	cycles    uint8
	pageCycle bool
	fn        execFn
}

// opcodeTable is indexed directly by opcode byte. Every slot starts as
// a 2-cycle implied no-op (spec.md §4.4's allowance for unofficial
// opcodes); define below fills in the 151 official 6502 opcodes.
var opcodeTable [256]instr

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = instr{name: "UNOFFICIAL", mode: modeImplied, cycles: 2, fn: opUnofficial}
	}

	def := func(op uint8, name string, m mode, cycles uint8, pageCycle bool, fn execFn) {
		opcodeTable[op] = instr{name: name, mode: m, cycles: cycles, pageCycle: pageCycle, fn: fn}
	}

	def(0x00, "BRK", modeImplied, 7, false, opBRK)
	def(0x01, "ORA", modeIndirectX, 6, false, opORA)
	def(0x05, "ORA", modeZeroPage, 3, false, opORA)
	def(0x06, "ASL", modeZeroPage, 5, false, opASLMem)
	def(0x08, "PHP", modeImplied, 3, false, opPHP)
	def(0x09, "ORA", modeImmediate, 2, false, opORA)
	def(0x0A, "ASL", modeAccumulator, 2, false, opASLAcc)
	def(0x0D, "ORA", modeAbsolute, 4, false, opORA)
	def(0x0E, "ASL", modeAbsolute, 6, false, opASLMem)

	def(0x10, "BPL", modeRelative, 2, false, opBPL)
	def(0x11, "ORA", modeIndirectY, 5, true, opORA)
	def(0x15, "ORA", modeZeroPageX, 4, false, opORA)
	def(0x16, "ASL", modeZeroPageX, 6, false, opASLMem)
	def(0x18, "CLC", modeImplied, 2, false, opCLC)
	def(0x19, "ORA", modeAbsoluteY, 4, true, opORA)
	def(0x1D, "ORA", modeAbsoluteX, 4, true, opORA)
	def(0x1E, "ASL", modeAbsoluteX, 7, false, opASLMem)

	def(0x20, "JSR", modeAbsolute, 6, false, opJSR)
	def(0x21, "AND", modeIndirectX, 6, false, opAND)
	def(0x24, "BIT", modeZeroPage, 3, false, opBIT)
	def(0x25, "AND", modeZeroPage, 3, false, opAND)
	def(0x26, "ROL", modeZeroPage, 5, false, opROLMem)
	def(0x28, "PLP", modeImplied, 4, false, opPLP)
	def(0x29, "AND", modeImmediate, 2, false, opAND)
	def(0x2A, "ROL", modeAccumulator, 2, false, opROLAcc)
	def(0x2C, "BIT", modeAbsolute, 4, false, opBIT)
	def(0x2D, "AND", modeAbsolute, 4, false, opAND)
	def(0x2E, "ROL", modeAbsolute, 6, false, opROLMem)

	def(0x30, "BMI", modeRelative, 2, false, opBMI)
	def(0x31, "AND", modeIndirectY, 5, true, opAND)
	def(0x35, "AND", modeZeroPageX, 4, false, opAND)
	def(0x36, "ROL", modeZeroPageX, 6, false, opROLMem)
	def(0x38, "SEC", modeImplied, 2, false, opSEC)
	def(0x39, "AND", modeAbsoluteY, 4, true, opAND)
	def(0x3D, "AND", modeAbsoluteX, 4, true, opAND)
	def(0x3E, "ROL", modeAbsoluteX, 7, false, opROLMem)

	def(0x40, "RTI", modeImplied, 6, false, opRTI)
	def(0x41, "EOR", modeIndirectX, 6, false, opEOR)
	def(0x45, "EOR", modeZeroPage, 3, false, opEOR)
	def(0x46, "LSR", modeZeroPage, 5, false, opLSRMem)
	def(0x48, "PHA", modeImplied, 3, false, opPHA)
	def(0x49, "EOR", modeImmediate, 2, false, opEOR)
	def(0x4A, "LSR", modeAccumulator, 2, false, opLSRAcc)
	def(0x4C, "JMP", modeAbsolute, 3, false, opJMP)
	def(0x4D, "EOR", modeAbsolute, 4, false, opEOR)
	def(0x4E, "LSR", modeAbsolute, 6, false, opLSRMem)

	def(0x50, "BVC", modeRelative, 2, false, opBVC)
	def(0x51, "EOR", modeIndirectY, 5, true, opEOR)
	def(0x55, "EOR", modeZeroPageX, 4, false, opEOR)
	def(0x56, "LSR", modeZeroPageX, 6, false, opLSRMem)
	def(0x58, "CLI", modeImplied, 2, false, opCLI)
	def(0x59, "EOR", modeAbsoluteY, 4, true, opEOR)
	def(0x5D, "EOR", modeAbsoluteX, 4, true, opEOR)
	def(0x5E, "LSR", modeAbsoluteX, 7, false, opLSRMem)

	def(0x60, "RTS", modeImplied, 6, false, opRTS)
	def(0x61, "ADC", modeIndirectX, 6, false, opADC)
	def(0x65, "ADC", modeZeroPage, 3, false, opADC)
	def(0x66, "ROR", modeZeroPage, 5, false, opRORMem)
	def(0x68, "PLA", modeImplied, 4, false, opPLA)
	def(0x69, "ADC", modeImmediate, 2, false, opADC)
	def(0x6A, "ROR", modeAccumulator, 2, false, opRORAcc)
	def(0x6C, "JMP", modeIndirect, 5, false, opJMP)
	def(0x6D, "ADC", modeAbsolute, 4, false, opADC)
	def(0x6E, "ROR", modeAbsolute, 6, false, opRORMem)

	def(0x70, "BVS", modeRelative, 2, false, opBVS)
	def(0x71, "ADC", modeIndirectY, 5, true, opADC)
	def(0x75, "ADC", modeZeroPageX, 4, false, opADC)
	def(0x76, "ROR", modeZeroPageX, 6, false, opRORMem)
	def(0x78, "SEI", modeImplied, 2, false, opSEI)
	def(0x79, "ADC", modeAbsoluteY, 4, true, opADC)
	def(0x7D, "ADC", modeAbsoluteX, 4, true, opADC)
	def(0x7E, "ROR", modeAbsoluteX, 7, false, opRORMem)

	def(0x81, "STA", modeIndirectX, 6, false, opSTA)
	def(0x84, "STY", modeZeroPage, 3, false, opSTY)
	def(0x85, "STA", modeZeroPage, 3, false, opSTA)
	def(0x86, "STX", modeZeroPage, 3, false, opSTX)
	def(0x88, "DEY", modeImplied, 2, false, opDEY)
	def(0x8A, "TXA", modeImplied, 2, false, opTXA)
	def(0x8C, "STY", modeAbsolute, 4, false, opSTY)
	def(0x8D, "STA", modeAbsolute, 4, false, opSTA)
	def(0x8E, "STX", modeAbsolute, 4, false, opSTX)

	def(0x90, "BCC", modeRelative, 2, false, opBCC)
	def(0x91, "STA", modeIndirectY, 6, false, opSTA)
	def(0x94, "STY", modeZeroPageX, 4, false, opSTY)
	def(0x95, "STA", modeZeroPageX, 4, false, opSTA)
	def(0x96, "STX", modeZeroPageY, 4, false, opSTX)
	def(0x98, "TYA", modeImplied, 2, false, opTYA)
	def(0x99, "STA", modeAbsoluteY, 5, false, opSTA)
	def(0x9A, "TXS", modeImplied, 2, false, opTXS)
	def(0x9D, "STA", modeAbsoluteX, 5, false, opSTA)

	def(0xA0, "LDY", modeImmediate, 2, false, opLDY)
	def(0xA1, "LDA", modeIndirectX, 6, false, opLDA)
	def(0xA2, "LDX", modeImmediate, 2, false, opLDX)
	def(0xA4, "LDY", modeZeroPage, 3, false, opLDY)
	def(0xA5, "LDA", modeZeroPage, 3, false, opLDA)
	def(0xA6, "LDX", modeZeroPage, 3, false, opLDX)
	def(0xA8, "TAY", modeImplied, 2, false, opTAY)
	def(0xA9, "LDA", modeImmediate, 2, false, opLDA)
	def(0xAA, "TAX", modeImplied, 2, false, opTAX)
	def(0xAC, "LDY", modeAbsolute, 4, false, opLDY)
	def(0xAD, "LDA", modeAbsolute, 4, false, opLDA)
	def(0xAE, "LDX", modeAbsolute, 4, false, opLDX)

	def(0xB0, "BCS", modeRelative, 2, false, opBCS)
	def(0xB1, "LDA", modeIndirectY, 5, true, opLDA)
	def(0xB4, "LDY", modeZeroPageX, 4, false, opLDY)
	def(0xB5, "LDA", modeZeroPageX, 4, false, opLDA)
	def(0xB6, "LDX", modeZeroPageY, 4, false, opLDX)
	def(0xB8, "CLV", modeImplied, 2, false, opCLV)
	def(0xB9, "LDA", modeAbsoluteY, 4, true, opLDA)
	def(0xBA, "TSX", modeImplied, 2, false, opTSX)
	def(0xBC, "LDY", modeAbsoluteX, 4, true, opLDY)
	def(0xBD, "LDA", modeAbsoluteX, 4, true, opLDA)
	def(0xBE, "LDX", modeAbsoluteY, 4, true, opLDX)

	def(0xC0, "CPY", modeImmediate, 2, false, opCPY)
	def(0xC1, "CMP", modeIndirectX, 6, false, opCMP)
	def(0xC4, "CPY", modeZeroPage, 3, false, opCPY)
	def(0xC5, "CMP", modeZeroPage, 3, false, opCMP)
	def(0xC6, "DEC", modeZeroPage, 5, false, opDEC)
	def(0xC8, "INY", modeImplied, 2, false, opINY)
	def(0xC9, "CMP", modeImmediate, 2, false, opCMP)
	def(0xCA, "DEX", modeImplied, 2, false, opDEX)
	def(0xCC, "CPY", modeAbsolute, 4, false, opCPY)
	def(0xCD, "CMP", modeAbsolute, 4, false, opCMP)
	def(0xCE, "DEC", modeAbsolute, 6, false, opDEC)

	def(0xD0, "BNE", modeRelative, 2, false, opBNE)
	def(0xD1, "CMP", modeIndirectY, 5, true, opCMP)
	def(0xD5, "CMP", modeZeroPageX, 4, false, opCMP)
	def(0xD6, "DEC", modeZeroPageX, 6, false, opDEC)
	def(0xD8, "CLD", modeImplied, 2, false, opCLD)
	def(0xD9, "CMP", modeAbsoluteY, 4, true, opCMP)
	def(0xDD, "CMP", modeAbsoluteX, 4, true, opCMP)
	def(0xDE, "DEC", modeAbsoluteX, 7, false, opDEC)

	def(0xE0, "CPX", modeImmediate, 2, false, opCPX)
	def(0xE1, "SBC", modeIndirectX, 6, false, opSBC)
	def(0xE4, "CPX", modeZeroPage, 3, false, opCPX)
	def(0xE5, "SBC", modeZeroPage, 3, false, opSBC)
	def(0xE6, "INC", modeZeroPage, 5, false, opINC)
	def(0xE8, "INX", modeImplied, 2, false, opINX)
	def(0xE9, "SBC", modeImmediate, 2, false, opSBC)
	def(0xEA, "NOP", modeImplied, 2, false, opNOP)
	def(0xEC, "CPX", modeAbsolute, 4, false, opCPX)
	def(0xED, "SBC", modeAbsolute, 4, false, opSBC)
	def(0xEE, "INC", modeAbsolute, 6, false, opINC)

	def(0xF0, "BEQ", modeRelative, 2, false, opBEQ)
	def(0xF1, "SBC", modeIndirectY, 5, true, opSBC)
	def(0xF5, "SBC", modeZeroPageX, 4, false, opSBC)
	def(0xF6, "INC", modeZeroPageX, 6, false, opINC)
	def(0xF8, "SED", modeImplied, 2, false, opSED)
	def(0xF9, "SBC", modeAbsoluteY, 4, true, opSBC)
	def(0xFD, "SBC", modeAbsoluteX, 4, true, opSBC)
	def(0xFE, "INC", modeAbsoluteX, 7, false, opINC)
}
