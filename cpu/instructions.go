package cpu

// instFunc executes a decoded instruction. The opcode byte has already been
// fetched.
type instFunc func(cpu *Cpu, b *bus, op Opcode)

// instTable maps each instruction to its execution routine.
var instTable = [...]instFunc{
	INST_LDA: func(cpu *Cpu, b *bus, op Opcode) { cpu.load(b, op.Mode, &cpu.A) },
	INST_LDX: func(cpu *Cpu, b *bus, op Opcode) { cpu.load(b, op.Mode, &cpu.X) },
	INST_LDY: func(cpu *Cpu, b *bus, op Opcode) { cpu.load(b, op.Mode, &cpu.Y) },

	INST_STA: func(cpu *Cpu, b *bus, op Opcode) { cpu.store(b, op.Mode, cpu.A) },
	INST_STX: func(cpu *Cpu, b *bus, op Opcode) { cpu.store(b, op.Mode, cpu.X) },
	INST_STY: func(cpu *Cpu, b *bus, op Opcode) { cpu.store(b, op.Mode, cpu.Y) },

	INST_JSR: (*Cpu).jsr,
	INST_RTS: (*Cpu).rts,
	INST_JMP: func(cpu *Cpu, b *bus, op Opcode) { cpu.Pc = cpu.resolve(b, op.Mode, false) },

	INST_TAX: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.A, &cpu.X) },
	INST_TAY: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.A, &cpu.Y) },
	INST_TXA: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.X, &cpu.A) },
	INST_TYA: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.Y, &cpu.A) },
	INST_TSX: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.Sp, &cpu.X) },
	INST_TXS: func(cpu *Cpu, b *bus, op Opcode) {
		// The only transfer that leaves the flags alone.
		b.idle()
		cpu.Sp = cpu.X
	},

	INST_INX: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.X+1, &cpu.X) },
	INST_INY: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.Y+1, &cpu.Y) },
	INST_DEX: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.X-1, &cpu.X) },
	INST_DEY: func(cpu *Cpu, b *bus, op Opcode) { cpu.transfer(b, cpu.Y-1, &cpu.Y) },

	INST_CLC: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.C, false) },
	INST_SEC: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.C, true) },
	INST_CLI: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.I, false) },
	INST_SEI: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.I, true) },
	INST_CLD: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.D, false) },
	INST_SED: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.D, true) },
	INST_CLV: func(cpu *Cpu, b *bus, op Opcode) { cpu.setFlag(b, &cpu.Flags.V, false) },
	INST_NOP: func(cpu *Cpu, b *bus, op Opcode) { b.idle() },

	INST_PHA: func(cpu *Cpu, b *bus, op Opcode) {
		b.idle()
		cpu.push(b, cpu.A)
	},
	INST_PHP: func(cpu *Cpu, b *bus, op Opcode) {
		b.idle()
		cpu.push(b, cpu.Flags.Byte()|FLAG_B|FLAG_UNUSED)
	},
	INST_PLA: func(cpu *Cpu, b *bus, op Opcode) {
		b.idle()
		b.idle()
		cpu.A = cpu.pop(b)
		cpu.Flags.SetZN(cpu.A)
	},
	INST_PLP: func(cpu *Cpu, b *bus, op Opcode) {
		b.idle()
		b.idle()
		brk := cpu.Flags.B
		cpu.Flags.SetByte(cpu.pop(b))
		cpu.Flags.B = brk
	},
}

// load reads the effective address into a register and updates Z and N.
func (cpu *Cpu) load(b *bus, mode Mode, reg *uint8) {
	*reg = b.read(cpu.resolve(b, mode, false))
	cpu.Flags.SetZN(*reg)
}

// store writes a register to the effective address. Flags are untouched.
func (cpu *Cpu) store(b *bus, mode Mode, value uint8) {
	b.write(cpu.resolve(b, mode, true), value)
}

// transfer is a 2 cycle implied register update that sets Z and N.
func (cpu *Cpu) transfer(b *bus, value uint8, reg *uint8) {
	b.idle()
	*reg = value
	cpu.Flags.SetZN(value)
}

// setFlag is a 2 cycle implied flag update.
func (cpu *Cpu) setFlag(b *bus, flag *bool, value bool) {
	b.idle()
	*flag = value
}

// jsr pushes the address of the last byte of the JSR, then jumps.
func (cpu *Cpu) jsr(b *bus, op Opcode) {
	target := cpu.fetchWord(b)
	cpu.pushWord(b, cpu.Pc-1)
	b.idle()
	cpu.Pc = target
}

// rts pops the return address and resumes one byte past it.
func (cpu *Cpu) rts(b *bus, op Opcode) {
	cpu.Pc = cpu.popWord(b) + 1
	// Remainder of the fixed 6 cycle cost.
	for range op.Cycles - 3 {
		b.idle()
	}
}
