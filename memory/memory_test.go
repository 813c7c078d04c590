package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Init(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()
	mem.Write(0x0000, 0x11)
	mem.Write(0x8000, 0x22)
	mem.Write(0xffff, 0x33)

	mem.Init()

	for addr := range MEMORY_SIZE {
		if mem.Data[addr] != 0 {
			assert.Failf("not cleared", "mem[%04x] = %02x", addr, mem.Data[addr])
			break
		}
	}
}

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	table := [](struct {
		addr uint16
		val  uint8
	}){
		{0x0000, 0x01},
		{0x00ff, 0x80},
		{0x0100, 0xff},
		{0x1234, 0x42},
		{0xffff, 0x7f},
	}

	for _, entry := range table {
		mem.Write(entry.addr, entry.val)
	}

	for _, entry := range table {
		assert.Equal(entry.val, mem.Read(entry.addr), "%04x", entry.addr)
	}
}

func TestMemory_WriteWord(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	mem.WriteWord(0x0200, 0x1234)
	assert.Equal(uint8(0x34), mem.Read(0x0200))
	assert.Equal(uint8(0x12), mem.Read(0x0201))
	assert.Equal(uint16(0x1234), mem.ReadWord(0x0200))

	// High byte wraps to the bottom of memory.
	mem.WriteWord(0xffff, 0xabcd)
	assert.Equal(uint8(0xcd), mem.Read(0xffff))
	assert.Equal(uint8(0xab), mem.Read(0x0000))
	assert.Equal(uint16(0xabcd), mem.ReadWord(0xffff))
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory()

	mem.Load(0x0600, []byte{0xa9, 0x01, 0x60})
	assert.Equal(uint8(0xa9), mem.Read(0x0600))
	assert.Equal(uint8(0x01), mem.Read(0x0601))
	assert.Equal(uint8(0x60), mem.Read(0x0602))

	mem.Load(0xfffe, []byte{1, 2, 3})
	assert.Equal(uint8(1), mem.Read(0xfffe))
	assert.Equal(uint8(2), mem.Read(0xffff))
	assert.Equal(uint8(3), mem.Read(0x0000))
}

func TestMemory_Defines(t *testing.T) {
	assert := assert.New(t)

	defs := map[string]string{}
	for key, val := range NewMemory().Defines() {
		defs[key] = val
	}

	assert.Equal("0x10000", defs["MEMORY_SIZE"])
	assert.Equal("0x100", defs["PAGE_SIZE"])
}
