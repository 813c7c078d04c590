package cpu

import (
	"iter"
)

// Line is a line of assembled source with the bytes it produced.
type Line struct {
	LineNo int      // Source line number.
	Addr   uint16   // Address of the first byte.
	Words  []string // Source words, after equate and expression expansion.
	Bytes  []byte   // Generated bytes.
	Links  []Link   // Label references resolved after the pass.
}

// Link is a forward label reference patched into Line.Bytes.
type Link struct {
	Offset   int    // Offset into Line.Bytes.
	Size     int    // 1 or 2 bytes.
	Shift    uint   // Right shift applied to the value before patching.
	Truncate bool   // Keep only the low byte, instead of range checking.
	Label    string // Label name.
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug is the source line covering an address.
type Debug struct {
	*Line
	Index int // Offset of the address into Line.Bytes.
}

// Debug finds the line that generated the byte at addr.
// Debug.Line is nil if no line did.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if len(line.Bytes) == 0 {
			continue
		}
		offset := int(addr - line.Addr)
		if offset < len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: offset,
			}
			break
		}
	}

	return
}

// Origin returns the address of the first generated byte, or 0 for an
// empty program.
func (prog *Program) Origin() uint16 {
	for _, line := range prog.Lines {
		if len(line.Bytes) != 0 {
			return line.Addr
		}
	}

	return 0
}

// Bytes iterates over every generated (address, byte) pair.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Addr+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Load writes the program into memory.
func (prog *Program) Load(mem Memory) {
	for addr, value := range prog.Bytes() {
		mem.Write(addr, value)
	}
}
