// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/internal"
	"github.com/ezrec/m6502/io"
	"github.com/ezrec/m6502/memory"
)

const (
	DEFAULT_ORIGIN = 0x0200 // Load address of binaries with no base given.
)

var _emulator_defines = map[string]string{
	"DEFAULT_ORIGIN": fmt.Sprintf("0x%x", DEFAULT_ORIGIN),
}

// Emulator state. CPU + memory + memory mapped devices.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Main memory.
	Program  *cpu.Program   // Reference to the currently running program listing.

	Tape io.Tape // Tape device.

	ticks int
}

// bus routes CPU accesses to the devices, and everything else to memory.
type bus struct {
	emu *Emulator
}

var _ cpu.Memory = (*bus)(nil)

func (b *bus) devices() []io.Device {
	return []io.Device{&b.emu.Tape}
}

func (b *bus) Init() {
	b.emu.Memory.Init()
	for _, dev := range b.devices() {
		dev.Rewind()
	}
}

func (b *bus) Read(addr uint16) uint8 {
	for _, dev := range b.devices() {
		if dev.Contains(addr) {
			return dev.Read(addr)
		}
	}
	return b.emu.Memory.Read(addr)
}

func (b *bus) Write(addr uint16, value uint8) {
	for _, dev := range b.devices() {
		if dev.Contains(addr) {
			dev.Write(addr, value)
			return
		}
	}
	b.emu.Memory.Write(addr, value)
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Memory:  memory.NewMemory(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
		emu.Tape.Defines(),
	)
}

// Assembler returns an assembler with the emulator defines predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// LoadBinary replaces the program with a raw binary image at base.
func (emu *Emulator) LoadBinary(base uint16, data []byte) (err error) {
	if len(data) > memory.MEMORY_SIZE {
		err = ErrBinaryTooLarge
		return
	}

	emu.Program = &cpu.Program{
		Lines: []cpu.Line{
			{Addr: base, Bytes: data},
		},
	}

	return
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	err = emu.Tape.Err

	return
}

// Reset the CPU and memory, and load the program.
//
// PC is taken from the reset vector if the program set one,
// otherwise from the program origin.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset(&bus{emu: emu})
	emu.Program.Load(emu.Memory)

	pc := emu.Memory.ReadWord(cpu.RESET_PC)
	if pc == 0 {
		pc = emu.Program.Origin()
	}
	emu.Cpu.Pc = pc

	emu.ticks = 0

	if emu.Verbose {
		log.Printf("emulator: start at 0x%04x", pc)
	}

	return
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// wrap attaches the source line to a runtime error.
func (emu *Emulator) wrap(err error) error {
	if err == nil {
		err = emu.Tape.Err
	}
	if err == nil {
		return nil
	}

	return &ErrRuntime{LineNo: emu.LineNo(), Err: err}
}

// Run executes until the cycle budget is exhausted.
func (emu *Emulator) Run(budget int) (cycles int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	cycles, err = emu.Cpu.Execute(&bus{emu: emu}, budget)
	emu.ticks += cycles

	err = emu.wrap(err)

	return
}

// Step performs a single instruction of the emulator.
// done is set when the instruction branched to itself, which is how
// programs halt.
func (emu *Emulator) Step() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc

	cycles, err := emu.Cpu.Step(&bus{emu: emu})
	emu.ticks += cycles

	err = emu.wrap(err)
	if err != nil {
		return
	}

	done = emu.Cpu.Pc == pc

	return
}
