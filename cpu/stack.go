package cpu

// stackAddr returns the address of a stack pointer value.
func stackAddr(sp uint8) uint16 {
	return STACK_PAGE | uint16(sp)
}

// push writes a byte at the stack top, then moves SP down.
func (cpu *Cpu) push(b *bus, value uint8) {
	b.write(stackAddr(cpu.Sp), value)
	cpu.Sp--
}

// pop moves SP up, then reads the byte at the stack top.
func (cpu *Cpu) pop(b *bus) (value uint8) {
	cpu.Sp++
	value = b.read(stackAddr(cpu.Sp))
	return
}

// pushWord writes the high byte at SP and the low byte at SP-1, then
// moves SP down by 2.
func (cpu *Cpu) pushWord(b *bus, value uint16) {
	cpu.push(b, uint8(value>>8))
	cpu.push(b, uint8(value&0xff))
}

// popWord reads the word starting one past SP, then moves SP up by 2.
func (cpu *Cpu) popWord(b *bus) (value uint16) {
	lo := cpu.pop(b)
	hi := cpu.pop(b)
	value = uint16(lo) | (uint16(hi) << 8)
	return
}
