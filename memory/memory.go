// Package memory implements the flat 64 KiB address space seen by the 6502.
//
// Addresses are 16 bits wide, so every access is in range by construction.
// Multi-byte accesses that run past 0xFFFF wrap back to 0x0000, as the
// address bus of the real part does.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEMORY_SIZE = 0x10000 // Number of addressable bytes.
	PAGE_SIZE   = 0x100   // Size of a page.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"PAGE_SIZE":   fmt.Sprintf("0x%x", PAGE_SIZE),
}

// Memory is a zero-initialised 64 KiB byte array.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// NewMemory creates a new, zero filled, memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Defines returns the memory layout constants, for use by the assembler.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Init clears every cell to zero.
func (mem *Memory) Init() {
	clear(mem.Data[:])
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem.Data[addr]
}

// Write stores val at addr.
func (mem *Memory) Write(addr uint16, val uint8) {
	mem.Data[addr] = val
}

// ReadWord reads a little-endian word at addr.
func (mem *Memory) ReadWord(addr uint16) uint16 {
	lo := uint16(mem.Data[addr])
	hi := uint16(mem.Data[addr+1])
	return lo | (hi << 8)
}

// WriteWord stores word little-endian at addr, low byte first.
// Cycle accounting is the caller's concern.
func (mem *Memory) WriteWord(addr uint16, word uint16) {
	mem.Data[addr] = uint8(word & 0xff)
	mem.Data[addr+1] = uint8(word >> 8)
}

// Load copies data into memory starting at base.
func (mem *Memory) Load(base uint16, data []byte) {
	addr := base
	for _, val := range data {
		mem.Data[addr] = val
		addr++
	}
}
