// Package io provides memory mapped devices for the m6502 emulator.
// A device claims a small window of the address space and services the
// CPU reads and writes that land in it.
package io

import (
	"iter"
)

// Device defines the interface for all memory mapped devices.
type Device interface {
	// Contains returns true if the address is serviced by the device.
	Contains(addr uint16) bool
	// Read returns the value of a device register.
	Read(addr uint16) uint8
	// Write sets the value of a device register.
	Write(addr uint16, value uint8)
	// Rewind resets the device to its initial state.
	Rewind()
	// Defines returns the register addresses, for use by the assembler.
	Defines() iter.Seq2[string, string]
}
