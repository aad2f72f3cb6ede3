package rvbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramPacksWordsLittleEndian(t *testing.T) {
	image := Program(0x12345678)
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, image)
}

func TestADDIEncoding(t *testing.T) {
	// addi x1, x0, 5 -> imm=5, rs1=0, funct3=0, rd=1, opcode=0x13
	word := ADDI(1, 0, 5)
	assert.Equal(t, uint32(5)<<20|uint32(1)<<7|uint32(0x13), word)
}

func TestADDEncoding(t *testing.T) {
	// add x3, x1, x2 -> funct7=0, rs2=2, rs1=1, funct3=0, rd=3, opcode=0x33
	word := ADD(3, 1, 2)
	assert.Equal(t, uint32(2)<<20|uint32(1)<<15|uint32(3)<<7|uint32(0x33), word)
}

func TestExitSequence(t *testing.T) {
	words := Exit(7)
	assert.Len(t, words, 3)
	assert.Equal(t, ADDI(17, 0, 93), words[0])
	assert.Equal(t, ADDI(10, 0, 7), words[1])
	assert.Equal(t, ECALL(), words[2])
}

func TestNegativeImmediateRoundTrips(t *testing.T) {
	word := ADDI(1, 0, -1)
	imm := int32(word) >> 20
	assert.Equal(t, int32(-1), imm)
}
