package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/memory"
)

func TestOpcode_Table(t *testing.T) {
	assert := assert.New(t)

	codes := Opcodes()
	assert.Equal(57, len(codes))

	for _, code := range codes {
		op, ok := Decode(code)
		assert.True(ok, "%02x", code)

		back, ok := Encode(op.Inst, op.Mode)
		assert.True(ok, "%02x", code)
		assert.Equal(code, back, "%02x", code)

		assert.NotNil(instTable[op.Inst], "%v", op.Inst)
	}

	for _, code := range []uint8{0x00, 0x02, 0xff, 0x69} {
		_, ok := Decode(code)
		assert.False(ok, "%02x", code)
	}
}

func TestOpcode_Cycles(t *testing.T) {
	assert := assert.New(t)

	// Without a page crossing, each opcode takes its table cycles.
	for _, code := range Opcodes() {
		op, _ := Decode(code)

		cpu, mem := newTestCpu(code, 0x10, 0x03)
		mem.WriteWord(0x0010, 0x0400)
		cpu.X = 1
		cpu.Y = 1

		cycles, err := cpu.Step(mem)
		assert.NoError(err, "%v", op)
		assert.Equal(op.Cycles, cycles, "%v", op)
	}
}

func TestOpcode_Size(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code uint8
		size int
	}){
		{0xea, 1},
		{0xa9, 2},
		{0xb5, 2},
		{0xb1, 2},
		{0xad, 3},
		{0x20, 3},
		{0x6c, 3},
	}

	for _, entry := range table {
		op, ok := Decode(entry.code)
		assert.True(ok)
		assert.Equal(entry.size, op.Size(), "%02x", entry.code)
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	op, _ := Decode(0xbd)
	assert.Equal("LDA abx 4", op.String())
	assert.Equal("???", INST_ILLEGAL.String())
	assert.Equal("Inst(99)", Inst(99).String())
	assert.Equal("izy", MODE_INDIRECT_INDEXED.String())
	assert.Equal("Mode(-1)", Mode(-1).String())
}

func TestInst_IsStore(t *testing.T) {
	assert := assert.New(t)

	assert.True(INST_STA.IsStore())
	assert.True(INST_STX.IsStore())
	assert.True(INST_STY.IsStore())
	assert.False(INST_LDA.IsStore())
	assert.False(INST_JSR.IsStore())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		bytes []uint8
		text  string
		size  int
	}){
		{[]uint8{0xa9, 0x84}, "LDA #$84", 2},
		{[]uint8{0xa5, 0x42}, "LDA $42", 2},
		{[]uint8{0xb5, 0x42}, "LDA $42,X", 2},
		{[]uint8{0x96, 0x10}, "STX $10,Y", 2},
		{[]uint8{0xad, 0x34, 0x12}, "LDA $1234", 3},
		{[]uint8{0xbd, 0x34, 0x12}, "LDA $1234,X", 3},
		{[]uint8{0x99, 0x34, 0x12}, "STA $1234,Y", 3},
		{[]uint8{0xa1, 0x10}, "LDA ($10,X)", 2},
		{[]uint8{0xb1, 0x20}, "LDA ($20),Y", 2},
		{[]uint8{0x6c, 0x34, 0x12}, "JMP ($1234)", 3},
		{[]uint8{0x20, 0x00, 0x40}, "JSR $4000", 3},
		{[]uint8{0x60}, "RTS", 1},
		{[]uint8{0xff}, ".byte $FF", 1},
	}

	for _, entry := range table {
		mem := memory.NewMemory()
		mem.Load(0x0300, entry.bytes)

		text, size := Disassemble(mem, 0x0300)
		assert.Equal(entry.text, text)
		assert.Equal(entry.size, size, entry.text)
	}
}
