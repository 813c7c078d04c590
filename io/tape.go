package io

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
)

const (
	TAPE_DATA   = 0xf000 // Read: next input byte. Write: output a byte.
	TAPE_STATUS = 0xf001 // Read: TAPE_STATUS_* bits. Writes are ignored.
)

const (
	TAPE_STATUS_READY = 0x01 // An input byte is waiting at TAPE_DATA.
	TAPE_STATUS_EOF   = 0x80 // Input is exhausted.
)

var _tape_defines = map[string]string{
	"TAPE_DATA":         fmt.Sprintf("0x%x", TAPE_DATA),
	"TAPE_STATUS":       fmt.Sprintf("0x%x", TAPE_STATUS),
	"TAPE_STATUS_READY": fmt.Sprintf("0x%x", TAPE_STATUS_READY),
	"TAPE_STATUS_EOF":   fmt.Sprintf("0x%x", TAPE_STATUS_EOF),
}

// Tape provides sequential byte I/O to the CPU.
// It wraps an io.Reader for input and an io.Writer for output. Either may
// be nil, in which case input is at end of file and output is discarded.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Err error // First output error, if any.

	hasInput  bool
	lastInput byte
	eof       bool
}

var _ Device = (*Tape)(nil)

// Defines returns an iter of defines for the tape.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(_tape_defines)
}

// Rewind forgets any buffered input and the last error.
// The underlying reader is not rewound, as that is not possible on a tape.
func (tc *Tape) Rewind() {
	tc.hasInput = false
	tc.lastInput = 0
	tc.eof = false
	tc.Err = nil
}

// Contains returns true for the tape registers.
func (tc *Tape) Contains(addr uint16) bool {
	return addr == TAPE_DATA || addr == TAPE_STATUS
}

// fill buffers the next input byte, if there is one.
func (tc *Tape) fill() {
	if tc.hasInput || tc.eof {
		return
	}

	if tc.Input == nil {
		tc.eof = true
		return
	}

	var one [1]byte
	for {
		n, err := tc.Input.Read(one[:])
		if n == 1 {
			tc.lastInput = one[0]
			tc.hasInput = true
			return
		}
		if err != nil {
			tc.eof = true
			return
		}
	}
}

// Read returns the next input byte from TAPE_DATA, or 0 at end of input,
// and the input state from TAPE_STATUS.
func (tc *Tape) Read(addr uint16) (value uint8) {
	tc.fill()

	switch addr {
	case TAPE_DATA:
		if tc.hasInput {
			value = tc.lastInput
			tc.hasInput = false
		}
	case TAPE_STATUS:
		if tc.hasInput {
			value |= TAPE_STATUS_READY
		}
		if tc.eof {
			value |= TAPE_STATUS_EOF
		}
	}

	return
}

// Write sends a byte written to TAPE_DATA to the output stream.
func (tc *Tape) Write(addr uint16, value uint8) {
	if addr != TAPE_DATA || tc.Output == nil || tc.Err != nil {
		return
	}

	_, err := tc.Output.Write([]byte{value})
	if err != nil {
		tc.Err = errors.Join(ErrTapeOutput, err)
	}
}
