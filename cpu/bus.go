package cpu

// Memory is the address space the CPU executes against.
type Memory interface {
	Reader
	// Init clears the memory.
	Init()
	// Write stores a byte.
	Write(addr uint16, val uint8)
}

// Cycles tracks the cycle budget of a single Execute call.
type Cycles struct {
	Remaining int // Budget left. May go negative by the instruction in flight.
	Used      int // Cycles consumed so far.
}

// Spend charges n cycles.
func (cy *Cycles) Spend(n int) {
	cy.Remaining -= n
	cy.Used += n
}

// bus charges cycles for every memory access it performs.
type bus struct {
	mem    Memory
	cycles *Cycles
}

// read reads a byte, 1 cycle.
func (b *bus) read(addr uint16) uint8 {
	b.cycles.Spend(1)
	return b.mem.Read(addr)
}

// readWord reads a little-endian word, 2 cycles.
func (b *bus) readWord(addr uint16) uint16 {
	lo := b.read(addr)
	hi := b.read(addr + 1)
	return uint16(lo) | (uint16(hi) << 8)
}

// readWordZeroPage reads a little-endian pointer from page zero, 2 cycles.
// The high byte of a pointer at 0xFF comes from 0x00.
func (b *bus) readWordZeroPage(zp uint8) uint16 {
	lo := b.read(uint16(zp))
	hi := b.read(uint16(zp + 1))
	return uint16(lo) | (uint16(hi) << 8)
}

// readWordPage reads a little-endian word without carrying into the high
// byte of the pointer, 2 cycles. This is JMP (ind) on the NMOS part.
func (b *bus) readWordPage(addr uint16) uint16 {
	lo := b.read(addr)
	hi := b.read((addr & 0xff00) | ((addr + 1) & 0x00ff))
	return uint16(lo) | (uint16(hi) << 8)
}

// write writes a byte, 1 cycle.
func (b *bus) write(addr uint16, val uint8) {
	b.cycles.Spend(1)
	b.mem.Write(addr, val)
}

// idle is an internal cycle with no memory access.
func (b *bus) idle() {
	b.cycles.Spend(1)
}
