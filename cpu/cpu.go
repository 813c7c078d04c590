package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Reset state constants.
const (
	RESET_PC   = uint16(0xfffc) // Program counter after reset.
	RESET_SP   = uint8(0xff)    // Stack pointer after reset.
	STACK_PAGE = uint16(0x0100) // Page holding the stack.
)

var _cpu_defines = map[string]string{
	"RESET_PC":   fmt.Sprintf("0x%x", RESET_PC),
	"RESET_SP":   fmt.Sprintf("0x%x", RESET_SP),
	"STACK_PAGE": fmt.Sprintf("0x%x", STACK_PAGE),
}

// Cpu is the register state of a 6502.
//
// The fields are meaningless until Reset has been called.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc      uint16 // Program counter.
	Sp      uint8  // Stack pointer, an offset into STACK_PAGE.
	A, X, Y uint8  // Accumulator and index registers.
	Flags   Flags  // Processor status.
}

// NewCpu creates a new CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "sp", "a", "x", "y", "flags"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Pc)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Sp)
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X", cpu.Y)
		case "flags":
			strval = cpu.Flags.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Sets PC to RESET_PC and SP to RESET_SP.
// - Clears A, X, Y and all flags.
// - Clears the memory.
func (cpu *Cpu) Reset(mem Memory) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = RESET_PC
	cpu.Sp = RESET_SP
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.Flags = Flags{}

	mem.Init()
}

// fetchByte reads the byte at PC and advances PC, 1 cycle.
func (cpu *Cpu) fetchByte(b *bus) (value uint8) {
	value = b.read(cpu.Pc)
	cpu.Pc++
	return
}

// fetchWord reads the little-endian word at PC and advances PC by 2, 2 cycles.
func (cpu *Cpu) fetchWord(b *bus) (value uint16) {
	value = b.readWord(cpu.Pc)
	cpu.Pc += 2
	return
}

// Execute runs instructions until the cycle budget is exhausted.
//
// An instruction that starts with budget remaining always completes, so
// cycles may exceed budget by up to one instruction. A nil error means the
// budget ran out. An ErrOpcode stops execution with PC at the offending
// opcode and no register changed by it; its fetch is not counted in cycles.
func (cpu *Cpu) Execute(mem Memory, budget int) (cycles int, err error) {
	b := &bus{
		mem:    mem,
		cycles: &Cycles{Remaining: budget},
	}

	for b.cycles.Remaining > 0 {
		used := b.cycles.Used
		err = cpu.step(b)
		if err != nil {
			b.cycles.Used = used
			break
		}
	}

	cycles = b.cycles.Used

	return
}

// Step executes a single instruction, returning the cycles it took.
func (cpu *Cpu) Step(mem Memory) (cycles int, err error) {
	b := &bus{
		mem:    mem,
		cycles: &Cycles{},
	}

	err = cpu.step(b)
	if err != nil {
		return
	}

	cycles = b.cycles.Used

	return
}

// step fetches, decodes and executes one instruction.
func (cpu *Cpu) step(b *bus) (err error) {
	pc := cpu.Pc

	if cpu.Verbose {
		text, _ := Disassemble(b.mem, pc)
		log.Printf("cpu: %04X: %-12v %v", pc, text, cpu.Flags.String())
	}

	code := cpu.fetchByte(b)
	op, ok := Decode(code)
	if !ok {
		cpu.Pc = pc
		err = ErrOpcode{Opcode: code, Pc: pc}
		return
	}

	execute := instTable[op.Inst]
	if execute == nil {
		panic(fmt.Sprintf("no execution routine for %v", op.Inst))
	}
	execute(cpu, b, op)

	return
}
