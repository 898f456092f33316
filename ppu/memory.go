package ppu

import "github.com/nesgo/core/cartridge"

// readMem and writeMem implement the PPU's own 14-bit address space:
// pattern tables via the cartridge, 2 KiB of nametable VRAM mirrored
// per the cartridge's mirroring mode, and 32 bytes of palette RAM.
func (p *PPU) readMem(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.nametable[p.mirrorNametable(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeMem(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.nametable[p.mirrorNametable(addr)] = val
	default:
		p.palette[paletteIndex(addr)] = val
	}
}

// mirrorNametable maps one of the four logical 1 KiB nametables at
// $2000-$2FFF onto the PPU's 2 KiB of physical VRAM, per the mapping
// table in spec.md §4.5 ("vertical maps table 2->0, 3->1; horizontal
// maps 1->0, 3->2; four-screen is treated as vertical by default").
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	offset := addr & 0x0FFF
	table := offset / 0x0400
	within := offset % 0x0400

	var physical uint16
	switch p.cart.Mirroring() {
	case cartridge.Horizontal:
		physical = table / 2
	default: // Vertical and FourScreen
		physical = table % 2
	}
	return physical*0x0400 + within
}
