package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rv32i/internal/rvbuild"
)

func TestParseRFormat(t *testing.T) {
	word := rvbuild.ADD(5, 6, 7)
	f := ParseRFormat(word)
	assert.Equal(t, uint32(5), f.Rd)
	assert.Equal(t, uint32(6), f.Rs1)
	assert.Equal(t, uint32(7), f.Rs2)
	assert.Equal(t, uint32(0x0), f.Funct3)
	assert.Equal(t, uint32(0x00), f.Funct7)
}

func TestParseIFormatSignExtension(t *testing.T) {
	word := rvbuild.ADDI(1, 2, -1)
	f := ParseIFormat(word)
	assert.Equal(t, uint32(1), f.Rd)
	assert.Equal(t, uint32(2), f.Rs1)
	assert.Equal(t, uint32(0xFFFFFFFF), f.Imm)
}

func TestParseSFormat(t *testing.T) {
	word := rvbuild.SW(8, 9, -4)
	f := ParseSFormat(word)
	assert.Equal(t, uint32(8), f.Rs1)
	assert.Equal(t, uint32(9), f.Rs2)
	assert.Equal(t, uint32(0xFFFFFFFC), f.Imm)
}

func TestParseBFormat(t *testing.T) {
	word := rvbuild.BEQ(1, 2, -12)
	f := ParseBFormat(word)
	assert.Equal(t, uint32(1), f.Rs1)
	assert.Equal(t, uint32(2), f.Rs2)
	assert.Equal(t, int32(-12), int32(f.Imm))
}

func TestParseBFormatPositive(t *testing.T) {
	word := rvbuild.BNE(3, 4, 16)
	f := ParseBFormat(word)
	assert.Equal(t, uint32(16), f.Imm)
}

func TestParseUFormat(t *testing.T) {
	word := rvbuild.LUI(10, 0xABCDE)
	f := ParseUFormat(word)
	assert.Equal(t, uint32(10), f.Rd)
	assert.Equal(t, uint32(0xABCDE), f.Imm)
}

func TestParseJFormat(t *testing.T) {
	word := rvbuild.JAL(1, 2048)
	f := ParseJFormat(word)
	assert.Equal(t, uint32(1), f.Rd)
	assert.Equal(t, uint32(2048), f.Imm)
}

func TestParseJFormatNegative(t *testing.T) {
	word := rvbuild.JAL(0, -2048)
	f := ParseJFormat(word)
	assert.Equal(t, int32(-2048), int32(f.Imm))
}
