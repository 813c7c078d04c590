package cpu

import (
	"fmt"
)

// pageCrossed returns true if base and addr lie in different pages.
func pageCrossed(base, addr uint16) bool {
	return (base & 0xff00) != (addr & 0xff00)
}

// zeroPageIndexed adds an index to a zero page operand, wrapping within
// page zero. The add takes 1 cycle.
func (cpu *Cpu) zeroPageIndexed(b *bus, index uint8) (addr uint16) {
	zp := cpu.fetchByte(b)
	b.idle()
	addr = uint16(zp + index)
	return
}

// indexed adds an index to a 16-bit base. Loads take an extra cycle only
// when the page changes; stores always take it.
func (cpu *Cpu) indexed(b *bus, base uint16, index uint8, store bool) (addr uint16) {
	addr = base + uint16(index)
	if store || pageCrossed(base, addr) {
		b.idle()
	}
	return
}

// resolve consumes the operand bytes of an addressing mode and returns the
// effective address. For MODE_IMMEDIATE that is the address of the operand.
func (cpu *Cpu) resolve(b *bus, mode Mode, store bool) (addr uint16) {
	switch mode {
	case MODE_IMMEDIATE:
		addr = cpu.Pc
		cpu.Pc++
	case MODE_ZERO_PAGE:
		addr = uint16(cpu.fetchByte(b))
	case MODE_ZERO_PAGE_X:
		addr = cpu.zeroPageIndexed(b, cpu.X)
	case MODE_ZERO_PAGE_Y:
		addr = cpu.zeroPageIndexed(b, cpu.Y)
	case MODE_ABSOLUTE:
		addr = cpu.fetchWord(b)
	case MODE_ABSOLUTE_X:
		addr = cpu.indexed(b, cpu.fetchWord(b), cpu.X, store)
	case MODE_ABSOLUTE_Y:
		addr = cpu.indexed(b, cpu.fetchWord(b), cpu.Y, store)
	case MODE_INDIRECT:
		addr = b.readWordPage(cpu.fetchWord(b))
	case MODE_INDEXED_INDIRECT:
		zp := cpu.fetchByte(b) + cpu.X
		b.idle()
		addr = b.readWordZeroPage(zp)
	case MODE_INDIRECT_INDEXED:
		zp := cpu.fetchByte(b)
		addr = cpu.indexed(b, b.readWordZeroPage(zp), cpu.Y, store)
	default:
		panic(fmt.Sprintf("no effective address for mode %v", mode))
	}

	return
}
