// Package nes is the shell: it owns every subsystem, wires the bus's
// non-owning references to them, and drives the CPU/PPU/APU lock-step
// at the CPU's tempo (spec.md §4.7, §5).
//
// Grounded on nes.go/nes_options.go's functional-options constructor
// and init/Run shape, rewound away from the teacher's bidirectional
// Bus<->NES pointer soup per spec.md §9: the bus here only borrows
// narrow views of the components it decodes, and the shell is the
// only thing holding a full *cpu.CPU/*ppu.PPU/*apu.APU/*cartridge.Cartridge.
package nes

import (
	"github.com/nesgo/core/apu"
	"github.com/nesgo/core/bus"
	"github.com/nesgo/core/cartridge"
	"github.com/nesgo/core/controller"
	"github.com/nesgo/core/cpu"
	"github.com/nesgo/core/ppu"
)

// oamDMACycles is charged to the CPU for an OAM DMA transfer
// triggered by a $4014 write (spec.md §9 Open Question: the source
// doesn't charge it; this implementation does, at a flat 513 cycles —
// the extra cycle real hardware takes when the DMA starts on an odd
// CPU cycle is not modelled).
const oamDMACycles = 513

// NES owns the cartridge, CPU, PPU, APU, controller pair and the bus
// that wires them together. Constructed once via New and driven by
// RunCycles/RunFrame.
type NES struct {
	bus  *bus.Bus
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	pad  *controller.Pair
	cart *cartridge.Cartridge

	totalCycles uint64
	sampleRate  float64
	nmiCount    uint64
}

// Option configures a NES at construction time, following the
// teacher's CartPath/Verbose/FreeRun functional-options pattern.
type Option func(*NES) error

// New constructs a fully-wired, powered-on NES with a minimal blank
// cartridge; call LoadROM to replace it before running anything real.
func New(opts ...Option) (*NES, error) {
	n := &NES{
		cpu: cpu.New(),
		ppu: nil, // set below once the cartridge exists, PPU needs a Cartridge view
		apu: apu.New(),
		pad: &controller.Pair{},
	}
	n.cart = cartridge.NewBlank(make([]byte, 16*1024), true, cartridge.Horizontal)
	n.ppu = ppu.New(n.cart)
	n.bus = bus.New(n.ppu, n.apu, n.pad, n.cart)
	n.apu.SetDMAReader(n.bus.Read)

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	n.Reset()
	return n, nil
}

// LoadROM replaces the current cartridge with one parsed from an
// iNES file, re-pointing the bus and PPU at it, per spec.md §4.7
// ("load_rom: cartridge load, then connect cartridge to PPU with its
// mirroring mode").
func (n *NES) LoadROM(path string) error {
	cart, err := cartridge.Load(path)
	if err != nil {
		return err
	}
	n.cart = cart
	n.bus.SetCartridge(cart)
	n.ppu.SetCartridge(cart)
	n.Reset()
	return nil
}

// LoadCartridge wires an already-constructed cartridge directly,
// bypassing the iNES file loader — used by tests that build ROM
// images in memory (cartridge.NewBlank).
func (n *NES) LoadCartridge(cart *cartridge.Cartridge) {
	n.cart = cart
	n.bus.SetCartridge(cart)
	n.ppu.SetCartridge(cart)
	n.Reset()
}

// Reset pulls the reset vector, falling back to 0x8000 if it reads as
// 0x0000 (no valid PRG mapping), per spec.md §4.7.
func (n *NES) Reset() {
	if n.cart.ResetVector() == 0x0000 {
		n.cpu.PowerOn()
		n.cpu.PC = 0x8000
	} else {
		n.cpu.Reset(n.bus)
	}
	n.ppu.Reset()
	n.totalCycles = 0
	n.nmiCount = 0
}

// CPU, PPU, APU, Bus and Controllers expose the owned subsystems for
// callers that need direct register access (tests, a debugger, a
// frontend reading the framebuffer or pulling audio samples).
func (n *NES) CPU() *cpu.CPU                 { return n.cpu }
func (n *NES) PPU() *ppu.PPU                 { return n.ppu }
func (n *NES) APU() *apu.APU                 { return n.apu }
func (n *NES) Bus() *bus.Bus                 { return n.bus }
func (n *NES) Controllers() *controller.Pair { return n.pad }

// RunCycles advances the machine until at least n CPU cycles have
// elapsed, in the lock-step order spec.md §4.7 and §5 require: one
// CPU step, then PPU/APU advance by exactly that many cycles, then
// the edge-triggered NMI/IRQ lines are OR'd in (never overwritten).
func (n *NES) RunCycles(target int) {
	advanced := 0
	for advanced < target {
		advanced += n.stepOnce()
	}
}

// RunFrame advances the machine until a PPU frame completes, which
// the frontend then reads back via PPU().FrameBuffer().
func (n *NES) RunFrame() {
	for {
		n.stepOnce()
		if n.ppu.TakeFrameReady() {
			return
		}
	}
}

// stepOnce runs exactly one CPU step (or interrupt service sequence),
// advances the PPU and APU by the same number of cycles, services any
// pending OAM DMA, and OR's the edge-triggered NMI/IRQ lines into the
// CPU. It returns the number of CPU cycles consumed.
func (n *NES) stepOnce() int {
	used := n.cpu.Step(n.bus)

	if page, pending := n.bus.DMAPending(); pending {
		n.bus.RunOAMDMA(page)
		used += oamDMACycles
	}

	n.ppu.Tick(used)
	n.apu.Tick(used)

	if n.ppu.TakeNMI() {
		n.cpu.RaiseNMI()
		n.nmiCount++
	}
	if n.apu.IRQ() {
		n.cpu.RaiseIRQ()
	}

	n.totalCycles += uint64(used)
	return used
}

// TotalCycles reports the cumulative CPU cycle count since the last Reset.
func (n *NES) TotalCycles() uint64 { return n.totalCycles }

// SampleRate returns the rate set by WithSampleRate, or 0 if unset.
func (n *NES) SampleRate() float64 { return n.sampleRate }

// NMICount reports how many NMI edges the CPU has observed since the
// last Reset.
func (n *NES) NMICount() uint64 { return n.nmiCount }
