// Package cartridge parses iNES ROM images and owns the PRG ROM, PRG
// RAM and CHR ROM/RAM of a "mapper 0" (NROM) cartridge. It is the only
// component in the module with fallible construction; once loaded, a
// Cartridge cannot fail (spec.md §7).
package cartridge

// Mirror is the nametable mirroring mode declared by the cartridge.
type Mirror int

const (
	Horizontal Mirror = iota
	Vertical
	FourScreen
)

func (m Mirror) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// Cartridge is a loaded, immutable-PRG-ROM mapper-0 cartridge. PRG RAM
// and CHR RAM (when present) are mutated by CPU/PPU accesses.
type Cartridge struct {
	prgROM []byte
	chr    []byte // CHR ROM (read-only) or CHR RAM (writable), selected by chrIsRAM
	prgRAM []byte

	chrIsRAM bool
	mirror   Mirror
}

// NewBlank builds a cartridge directly from in-memory PRG/CHR bytes,
// bypassing the iNES header — used by tests that want to drop raw
// opcode bytes at a known address without constructing a file.
func NewBlank(prg []byte, chrIsRAM bool, mirror Mirror) *Cartridge {
	chr := make([]byte, chrUnitSize)
	prgCopy := make([]byte, len(prg))
	copy(prgCopy, prg)
	return &Cartridge{
		prgROM:   prgCopy,
		chr:      chr,
		chrIsRAM: chrIsRAM,
		prgRAM:   make([]byte, prgRAMSize),
		mirror:   mirror,
	}
}

// Mirroring reports the cartridge's declared nametable mirroring mode.
func (c *Cartridge) Mirroring() Mirror { return c.mirror }

// ReadCPU services a CPU-bus access to $6000-$FFFF (spec.md §4.1).
func (c *Cartridge) ReadCPU(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		return c.prgRAM[addr-0x6000]
	default:
		return c.prgROM[int(addr-0x8000)%len(c.prgROM)]
	}
}

// WriteCPU services a CPU-bus write to $6000-$FFFF. Writes into the
// ROM window ($8000-$FFFF) are ignored.
func (c *Cartridge) WriteCPU(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		c.prgRAM[addr-0x6000] = val
	}
}

// ReadCHR services a PPU-bus access to $0000-$1FFF (pattern tables).
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	return c.chr[addr%uint16(len(c.chr))]
}

// WriteCHR writes to CHR RAM; a no-op when CHR is ROM.
func (c *Cartridge) WriteCHR(addr uint16, val uint8) {
	if c.chrIsRAM {
		c.chr[addr%uint16(len(c.chr))] = val
	}
}

// ResetVector reads the 6502 reset vector at $FFFC/$FFFD.
func (c *Cartridge) ResetVector() uint16 {
	lo := c.ReadCPU(0xFFFC)
	hi := c.ReadCPU(0xFFFD)
	return uint16(lo) | uint16(hi)<<8
}
