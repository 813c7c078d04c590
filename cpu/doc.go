// Package cpu implements the interpreter and assembler for the MOS 6502.
//
// The CPU consists of a 16-bit program counter, an 8-bit stack pointer into
// page 0x01, the A, X and Y registers, and the processor status flags. It
// executes against a 64 KiB Memory, charging every bus access against a
// cycle budget so that instruction timings, including page-crossing
// penalties, match the NMOS part.
//
// Only the loads, stores, jumps, subroutine calls, register transfers,
// flag and stack instructions are implemented. Any other opcode stops
// Execute with an ErrOpcode.
//
// The assembler provides the usual 6502 assembly syntax, with macros,
// labels, equates and compile-time expression evaluation.
package cpu
