// Package bus implements the CPU-visible address decoder. Per the
// re-architecture note in spec.md §9, the bus owns only internal RAM
// and holds non-owning references to exactly the components it
// decodes to; the shell (package nes) owns everything and wires those
// references in at construction.
package bus

import (
	"github.com/nesgo/core/cartridge"
	"github.com/nesgo/core/controller"
)

// PPUPorts is the subset of the PPU the bus decodes $2000-$3FFF and
// $4014 to. Kept narrow so bus doesn't need the whole ppu.PPU type.
type PPUPorts interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
	OAMWrite(addr uint8, val uint8)
	OAMAddr() uint8
}

// APUPorts is the subset of the APU the bus decodes $4000-$4013,
// $4015 and $4017 to.
type APUPorts interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
}

const ramSize = 0x0800

// Bus is the CPU's view of memory. It is constructed once by the
// shell and never outlives it.
type Bus struct {
	ram  [ramSize]byte
	ppu  PPUPorts
	apu  APUPorts
	pad  *controller.Pair
	cart *cartridge.Cartridge

	// OAM DMA in flight: the shell charges the CPU a flat 513 cycles for
	// it (spec.md §4.3, Open Question in §9 — the core charges the CPU,
	// it does not treat the transfer as instantaneous).
	dmaPending bool
	dmaPage    uint8
}

// New wires a Bus to its collaborators. None of them may be nil.
func New(ppu PPUPorts, apu APUPorts, pad *controller.Pair, cart *cartridge.Cartridge) *Bus {
	return &Bus{ppu: ppu, apu: apu, pad: pad, cart: cart}
}

// SetCartridge re-points the bus at a freshly loaded cartridge.
func (b *Bus) SetCartridge(cart *cartridge.Cartridge) { b.cart = cart }

// Read decodes a CPU read per the table in spec.md §4.3.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 + addr&7)
	case addr == 0x4016:
		return b.pad.Read(0)
	case addr == 0x4017:
		return b.pad.Read(1)
	case addr == 0x4015:
		return b.apu.ReadRegister(addr)
	case addr < 0x4018:
		return b.apu.ReadRegister(addr)
	case addr >= 0x6000:
		return b.cart.ReadCPU(addr)
	default:
		return 0 // open bus
	}
}

// Write decodes a CPU write per the table in spec.md §4.3.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000+addr&7, val)
	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = val
	case addr == 0x4016:
		b.pad.Write(val)
	case addr == 0x4017:
		b.apu.WriteRegister(addr, val)
	case addr < 0x4018:
		b.apu.WriteRegister(addr, val)
	case addr >= 0x6000:
		b.cart.WriteCPU(addr, val)
	}
}

// Read16 reads a little-endian word, used by the CPU for vector fetches.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// DMAPending reports and clears a pending OAM DMA request, returning
// the source page and whether a transfer is due. The shell calls this
// once per CPU step and adds a flat 513 cycles to that step when a
// transfer is due; the odd-cycle 514 case is not modelled.
func (b *Bus) DMAPending() (page uint8, pending bool) {
	if !b.dmaPending {
		return 0, false
	}
	b.dmaPending = false
	return b.dmaPage, true
}

// RunOAMDMA performs the 256-byte transfer from page*0x100 into OAM
// starting at the PPU's current OAMADDR, wrapping mod 256 (spec.md §4.3).
func (b *Bus) RunOAMDMA(page uint8) {
	base := uint16(page) << 8
	start := b.ppu.OAMAddr()
	for i := 0; i < 256; i++ {
		val := b.Read(base + uint16(i))
		b.ppu.OAMWrite(start+uint8(i), val)
	}
}
