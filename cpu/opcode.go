package cpu

import (
	"fmt"
)

// Inst is an instruction mnemonic.
type Inst int

//go:generate go tool stringer -linecomment -type=Inst
const (
	INST_ILLEGAL = Inst(0)  // ???
	INST_CLC     = Inst(1)  // CLC
	INST_CLD     = Inst(2)  // CLD
	INST_CLI     = Inst(3)  // CLI
	INST_CLV     = Inst(4)  // CLV
	INST_DEX     = Inst(5)  // DEX
	INST_DEY     = Inst(6)  // DEY
	INST_INX     = Inst(7)  // INX
	INST_INY     = Inst(8)  // INY
	INST_JMP     = Inst(9)  // JMP
	INST_JSR     = Inst(10) // JSR
	INST_LDA     = Inst(11) // LDA
	INST_LDX     = Inst(12) // LDX
	INST_LDY     = Inst(13) // LDY
	INST_NOP     = Inst(14) // NOP
	INST_PHA     = Inst(15) // PHA
	INST_PHP     = Inst(16) // PHP
	INST_PLA     = Inst(17) // PLA
	INST_PLP     = Inst(18) // PLP
	INST_RTS     = Inst(19) // RTS
	INST_SEC     = Inst(20) // SEC
	INST_SED     = Inst(21) // SED
	INST_SEI     = Inst(22) // SEI
	INST_STA     = Inst(23) // STA
	INST_STX     = Inst(24) // STX
	INST_STY     = Inst(25) // STY
	INST_TAX     = Inst(26) // TAX
	INST_TAY     = Inst(27) // TAY
	INST_TSX     = Inst(28) // TSX
	INST_TXA     = Inst(29) // TXA
	INST_TXS     = Inst(30) // TXS
	INST_TYA     = Inst(31) // TYA
)

// IsStore returns true for instructions that write their effective address.
// Their indexed addressing modes always take the page-cross cycle.
func (inst Inst) IsStore() bool {
	switch inst {
	case INST_STA, INST_STX, INST_STY:
		return true
	}
	return false
}

// Mode is an addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMPLIED          = Mode(0)  // imp
	MODE_IMMEDIATE        = Mode(1)  // imm
	MODE_ZERO_PAGE        = Mode(2)  // zp
	MODE_ZERO_PAGE_X      = Mode(3)  // zpx
	MODE_ZERO_PAGE_Y      = Mode(4)  // zpy
	MODE_ABSOLUTE         = Mode(5)  // abs
	MODE_ABSOLUTE_X       = Mode(6)  // abx
	MODE_ABSOLUTE_Y       = Mode(7)  // aby
	MODE_INDIRECT         = Mode(8)  // ind
	MODE_INDEXED_INDIRECT = Mode(9)  // izx
	MODE_INDIRECT_INDEXED = Mode(10) // izy
)

// Operands returns the number of operand bytes that follow the opcode.
func (mode Mode) Operands() int {
	switch mode {
	case MODE_IMPLIED:
		return 0
	case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y, MODE_INDIRECT:
		return 2
	default:
		return 1
	}
}

// Format renders an operand value in assembler syntax for the mode.
func (mode Mode) Format(value uint16) (text string) {
	switch mode {
	case MODE_IMPLIED:
		text = ""
	case MODE_IMMEDIATE:
		text = fmt.Sprintf("#$%02X", value)
	case MODE_ZERO_PAGE:
		text = fmt.Sprintf("$%02X", value)
	case MODE_ZERO_PAGE_X:
		text = fmt.Sprintf("$%02X,X", value)
	case MODE_ZERO_PAGE_Y:
		text = fmt.Sprintf("$%02X,Y", value)
	case MODE_ABSOLUTE:
		text = fmt.Sprintf("$%04X", value)
	case MODE_ABSOLUTE_X:
		text = fmt.Sprintf("$%04X,X", value)
	case MODE_ABSOLUTE_Y:
		text = fmt.Sprintf("$%04X,Y", value)
	case MODE_INDIRECT:
		text = fmt.Sprintf("($%04X)", value)
	case MODE_INDEXED_INDIRECT:
		text = fmt.Sprintf("($%02X,X)", value)
	case MODE_INDIRECT_INDEXED:
		text = fmt.Sprintf("($%02X),Y", value)
	}

	return
}

// Opcode is a decoded opcode byte.
type Opcode struct {
	Inst   Inst // Instruction.
	Mode   Mode // Addressing mode.
	Cycles int  // Cycles taken, without any page-cross penalty.
}

// Valid returns true if the opcode is implemented.
func (op Opcode) Valid() bool {
	return op.Inst != INST_ILLEGAL
}

// Size returns the instruction length in bytes, including the opcode.
func (op Opcode) Size() int {
	return 1 + op.Mode.Operands()
}

func (op Opcode) String() string {
	return fmt.Sprintf("%v %v %d", op.Inst, op.Mode, op.Cycles)
}

// opcodeTable is indexed by opcode byte. Unlisted bytes are INST_ILLEGAL.
var opcodeTable = [256]Opcode{
	0xa9: {INST_LDA, MODE_IMMEDIATE, 2},
	0xa5: {INST_LDA, MODE_ZERO_PAGE, 3},
	0xb5: {INST_LDA, MODE_ZERO_PAGE_X, 4},
	0xad: {INST_LDA, MODE_ABSOLUTE, 4},
	0xbd: {INST_LDA, MODE_ABSOLUTE_X, 4},
	0xb9: {INST_LDA, MODE_ABSOLUTE_Y, 4},
	0xa1: {INST_LDA, MODE_INDEXED_INDIRECT, 6},
	0xb1: {INST_LDA, MODE_INDIRECT_INDEXED, 5},

	0xa2: {INST_LDX, MODE_IMMEDIATE, 2},
	0xa6: {INST_LDX, MODE_ZERO_PAGE, 3},
	0xb6: {INST_LDX, MODE_ZERO_PAGE_Y, 4},
	0xae: {INST_LDX, MODE_ABSOLUTE, 4},
	0xbe: {INST_LDX, MODE_ABSOLUTE_Y, 4},

	0xa0: {INST_LDY, MODE_IMMEDIATE, 2},
	0xa4: {INST_LDY, MODE_ZERO_PAGE, 3},
	0xb4: {INST_LDY, MODE_ZERO_PAGE_X, 4},
	0xac: {INST_LDY, MODE_ABSOLUTE, 4},
	0xbc: {INST_LDY, MODE_ABSOLUTE_X, 4},

	0x85: {INST_STA, MODE_ZERO_PAGE, 3},
	0x95: {INST_STA, MODE_ZERO_PAGE_X, 4},
	0x8d: {INST_STA, MODE_ABSOLUTE, 4},
	0x9d: {INST_STA, MODE_ABSOLUTE_X, 5},
	0x99: {INST_STA, MODE_ABSOLUTE_Y, 5},
	0x81: {INST_STA, MODE_INDEXED_INDIRECT, 6},
	0x91: {INST_STA, MODE_INDIRECT_INDEXED, 6},

	0x86: {INST_STX, MODE_ZERO_PAGE, 3},
	0x96: {INST_STX, MODE_ZERO_PAGE_Y, 4},
	0x8e: {INST_STX, MODE_ABSOLUTE, 4},

	0x84: {INST_STY, MODE_ZERO_PAGE, 3},
	0x94: {INST_STY, MODE_ZERO_PAGE_X, 4},
	0x8c: {INST_STY, MODE_ABSOLUTE, 4},

	0x20: {INST_JSR, MODE_ABSOLUTE, 6},
	0x60: {INST_RTS, MODE_IMPLIED, 6},
	0x4c: {INST_JMP, MODE_ABSOLUTE, 3},
	0x6c: {INST_JMP, MODE_INDIRECT, 5},

	0xaa: {INST_TAX, MODE_IMPLIED, 2},
	0xa8: {INST_TAY, MODE_IMPLIED, 2},
	0x8a: {INST_TXA, MODE_IMPLIED, 2},
	0x98: {INST_TYA, MODE_IMPLIED, 2},
	0xba: {INST_TSX, MODE_IMPLIED, 2},
	0x9a: {INST_TXS, MODE_IMPLIED, 2},
	0xe8: {INST_INX, MODE_IMPLIED, 2},
	0xc8: {INST_INY, MODE_IMPLIED, 2},
	0xca: {INST_DEX, MODE_IMPLIED, 2},
	0x88: {INST_DEY, MODE_IMPLIED, 2},

	0x18: {INST_CLC, MODE_IMPLIED, 2},
	0x38: {INST_SEC, MODE_IMPLIED, 2},
	0x58: {INST_CLI, MODE_IMPLIED, 2},
	0x78: {INST_SEI, MODE_IMPLIED, 2},
	0xd8: {INST_CLD, MODE_IMPLIED, 2},
	0xf8: {INST_SED, MODE_IMPLIED, 2},
	0xb8: {INST_CLV, MODE_IMPLIED, 2},
	0xea: {INST_NOP, MODE_IMPLIED, 2},

	0x48: {INST_PHA, MODE_IMPLIED, 3},
	0x08: {INST_PHP, MODE_IMPLIED, 3},
	0x68: {INST_PLA, MODE_IMPLIED, 4},
	0x28: {INST_PLP, MODE_IMPLIED, 4},
}

// encodeKey identifies an instruction form for the assembler.
type encodeKey struct {
	inst Inst
	mode Mode
}

var encodeTable = map[encodeKey]uint8{}

var instNames = map[string]Inst{}

func init() {
	for code, op := range opcodeTable {
		if !op.Valid() {
			continue
		}
		encodeTable[encodeKey{op.Inst, op.Mode}] = uint8(code)
		instNames[op.Inst.String()] = op.Inst
	}
}

// Decode returns the opcode table entry for a byte.
func Decode(code uint8) (op Opcode, ok bool) {
	op = opcodeTable[code]
	ok = op.Valid()
	return
}

// Encode returns the opcode byte for an instruction form.
func Encode(inst Inst, mode Mode) (code uint8, ok bool) {
	code, ok = encodeTable[encodeKey{inst, mode}]
	return
}

// Opcodes returns every implemented opcode byte, in ascending order.
func Opcodes() (codes []uint8) {
	for code, op := range opcodeTable {
		if op.Valid() {
			codes = append(codes, uint8(code))
		}
	}
	return
}

// Reader is the read side of the address space.
type Reader interface {
	Read(addr uint16) uint8
}

// Disassemble decodes the instruction at addr, without any side effects.
// Unknown opcodes disassemble as a .byte directive of size 1.
func Disassemble(mem Reader, addr uint16) (text string, size int) {
	code := mem.Read(addr)
	op, ok := Decode(code)
	if !ok {
		return fmt.Sprintf(".byte $%02X", code), 1
	}

	var value uint16
	switch op.Mode.Operands() {
	case 1:
		value = uint16(mem.Read(addr + 1))
	case 2:
		value = uint16(mem.Read(addr+1)) | (uint16(mem.Read(addr+2)) << 8)
	}

	text = op.Inst.String()
	if op.Mode != MODE_IMPLIED {
		text += " " + op.Mode.Format(value)
	}
	size = op.Size()

	return
}
