package cpu

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/m6502/memory"
)

// assembled flattens a contiguous program into its bytes.
func assembled(prog *Program) (out []byte) {
	for _, value := range prog.Bytes() {
		out = append(out, value)
	}
	return
}

func doParse(t *testing.T, program ...string) (asm *Assembler, prog *Program) {
	asm = &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0xfffc", asm.Equate["RESET_PC"])
	assert.Equal("0xff", asm.Equate["RESET_SP"])
	assert.Equal("0x100", asm.Equate["STACK_PAGE"])
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	asm, prog := doParse(t,
		"        .org $0200",
		"start:  LDA #$84",
		"        LDX $42",
		"        LDY $1234,X",
		"        STA ($20),Y",
		"        sta ($20, x)",
		"        JMP (vector)",
		"        JSR sub",
		"        LDA $10,Y     ; no zero page Y form for LDA",
		"sub:    RTS",
		"vector: .word start, sub",
		"        .byte 'A', 1, $ff, %1010",
	)

	expected := []byte{
		0xa9, 0x84,
		0xa6, 0x42,
		0xbc, 0x34, 0x12,
		0x91, 0x20,
		0x81, 0x20,
		0x6c, 0x15, 0x02,
		0x20, 0x14, 0x02,
		0xb9, 0x10, 0x00,
		0x60,
		0x00, 0x02, 0x14, 0x02,
		0x41, 0x01, 0xff, 0x0a,
	}

	assert.Equal(expected, assembled(prog))
	assert.Equal(uint16(0x0200), prog.Origin())
	assert.Equal(0x0200, asm.Label["start"])
	assert.Equal(0x0214, asm.Label["sub"])
	assert.Equal(0x0215, asm.Label["vector"])
	assert.Equal(0x0200+len(expected), asm.Pc)
}

func TestAssembler_ZeroPage(t *testing.T) {
	assert := assert.New(t)

	_, prog := doParse(t,
		".equ PTR $20",
		".equ BASE $1000",
		"LDA PTR",
		"LDA PTR,X",
		"LDA BASE",
		"LDA $(BASE + 0x10),Y",
		"LDX PTR,Y",
		"LDA ($(PTR)),Y",
		"LDA #<BASE",
		"LDA #>BASE",
		"LDA #$(PTR * 2)",
		"LDA #'x'",
		"LDA #-1",
		"LDA 0x0020",
	)

	expected := []byte{
		0xa5, 0x20,
		0xb5, 0x20,
		0xad, 0x00, 0x10,
		0xb9, 0x10, 0x10,
		0xb6, 0x20,
		0xb1, 0x20,
		0xa9, 0x00,
		0xa9, 0x10,
		0xa9, 0x40,
		0xa9, 0x78,
		0xa9, 0xff,
		0xa5, 0x20,
	}

	assert.Equal(expected, assembled(prog))
}

func TestAssembler_Forward(t *testing.T) {
	assert := assert.New(t)

	_, prog := doParse(t,
		"LDA #<target",
		"LDX #>target",
		"LDY target,X",
		".org $1234",
		"target: NOP",
	)

	bins := map[uint16]uint8{}
	for addr, value := range prog.Bytes() {
		bins[addr] = value
	}

	assert.Equal(map[uint16]uint8{
		0x0000: 0xa9, 0x0001: 0x34,
		0x0002: 0xa2, 0x0003: 0x12,
		0x0004: 0xbc, 0x0005: 0x34, 0x0006: 0x12,
		0x1234: 0xea,
	}, bins)
}

func TestAssembler_Macro(t *testing.T) {
	assert := assert.New(t)

	_, prog := doParse(t,
		".macro poke addr val",
		"  LDA #val",
		"  STA addr",
		".endm",
		".macro spin",
		"@loop: JMP @loop",
		".endm",
		"  poke $10 $42",
		"  poke $1234 7",
		"  spin",
		"  spin",
	)

	expected := []byte{
		0xa9, 0x42, 0x85, 0x10,
		0xa9, 0x07, 0x8d, 0x34, 0x12,
		0x4c, 0x09, 0x00,
		0x4c, 0x0c, 0x00,
	}

	assert.Equal(expected, assembled(prog))

	// Macro lines report the line of their definition.
	assert.Equal(2, prog.Lines[0].LineNo)
	assert.Equal(3, prog.Lines[1].LineNo)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("COUNT", "5")
	asm.Predefine("ZP", "$80")

	prog, err := asm.Parse(strings.NewReader("LDX #COUNT\nSTX ZP"))
	assert.NoError(err)
	assert.Equal([]byte{0xa2, 0x05, 0x86, 0x80}, assembled(prog))
}

func TestAssembler_Implied(t *testing.T) {
	assert := assert.New(t)

	_, prog := doParse(t,
		"tax", "TAY", "TXA", "TYA", "TSX", "TXS",
		"INX", "INY", "DEX", "DEY",
		"CLC", "SEC", "CLI", "SEI", "CLD", "SED", "CLV", "NOP",
		"PHA", "PHP", "PLA", "PLP", "RTS",
	)

	expected := []byte{
		0xaa, 0xa8, 0x8a, 0x98, 0xba, 0x9a,
		0xe8, 0xc8, 0xca, 0x88,
		0x18, 0x38, 0x58, 0x78, 0xd8, 0xf8, 0xb8, 0xea,
		0x48, 0x08, 0x68, 0x28, 0x60,
	}

	assert.Equal(expected, assembled(prog))
}

func TestAssembler_Disassemble(t *testing.T) {
	assert := assert.New(t)

	// Every opcode survives a disassemble/assemble round trip.
	for _, code := range Opcodes() {
		op, _ := Decode(code)

		mem := memory.NewMemory()
		mem.Load(0, []byte{code, 0x12, 0x34})
		text, size := Disassemble(mem, 0)
		assert.Equal(op.Size(), size, text)

		asm := &Assembler{}
		back, err := asm.Parse(strings.NewReader(text))
		assert.NoError(err, text)
		if err != nil {
			continue
		}
		assert.Equal([]byte{code, 0x12, 0x34}[:size], assembled(back), text)
	}
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"instruction", []string{"NOP", "FOO"}, 2, ErrInstructionInvalid},
		{"operand missing", []string{"LDA"}, 1, ErrOperandMissing},
		{"operand empty", []string{"LDA #"}, 1, ErrOperandMissing},
		{"mode", []string{"STA #1"}, 1, ErrModeInvalid},
		{"mode implied", []string{"NOP $10"}, 1, ErrModeInvalid},
		{"label missing", []string{"NOP", "JMP missing"}, 2, ErrLabelMissing("missing")},
		{"range zp", []string{"LDA ($1234,X)"}, 1, ErrOperandRange},
		{"range imm", []string{"LDA #300"}, 1, ErrOperandRange},
		{"range link", []string{"LDA (far),Y", ".org $1234", "far: NOP"}, 1, ErrOperandRange},
		{"range org", []string{".org $10000"}, 1, ErrOperandRange},
		{"range end", []string{".org $ffff", "JMP $1234"}, 2, ErrOperandRange},
		{"equ syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"equ loop", []string{".equ L L", "LDA L"}, 2, ErrEquateLoop},
		{"label duplicate", []string{"x: NOP", "x: NOP"}, 2, ErrLabelDuplicate},
		{"label syntax", []string{"1x: NOP"}, 1, ErrLabelSyntax},
		{"macro lonely", []string{".macro m", "NOP"}, 2, ErrMacroLonely},
		{"macro endm", []string{".endm"}, 1, ErrMacroLonelyEndm},
		{"macro nesting", []string{".macro a", ".macro b"}, 2, ErrMacroNesting},
		{"macro duplicate", []string{".macro a", ".endm", ".macro a"}, 3, ErrMacroDuplicate},
		{"macro args", []string{".macro a x", ".endm", "a"}, 3, ErrMacroSyntax},
		{"macro body", []string{".macro a", "FOO", ".endm", "a"}, 4, ErrInstructionInvalid},
		{"number", []string{"LDA #$zz"}, 1, ErrParseNumber("$zz")},
		{"directive", []string{".bogus"}, 1, ErrDirectiveInvalid},
		{"org", []string{".org"}, 1, ErrDirectiveSyntax},
		{"org unknown", []string{".org later"}, 1, ErrOperandUnknown},
		{"byte empty", []string{".byte 1,,2"}, 1, ErrDirectiveSyntax},
		{"paren", []string{"LDA (1"}, 1, ErrOperandSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_Expression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("LDA #$(1 +)"))
	assert.Error(err)

	var perr ErrParseExpression
	assert.True(errors.As(err, &perr))
	assert.Equal(ErrParseExpression("1 +"), perr)

	_, err = asm.Parse(strings.NewReader("LDA #$(1 + 2"))
	assert.True(errors.As(err, &perr))

	_, err = asm.Parse(strings.NewReader("LDA #$(\"text\")"))
	assert.True(errors.As(err, &perr))
}

func TestAssembler_Verbose(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	asm := &Assembler{Verbose: true}
	_, err := asm.Parse(strings.NewReader("NOP"))
	assert.NoError(err)
	assert.Contains(buf.String(), "asm: 1: NOP")
}
