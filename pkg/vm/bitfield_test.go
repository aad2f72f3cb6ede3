package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name     string
		word     uint32
		lo, hi   uint
		expected uint32
	}{
		{"low byte", 0xDEADBEEF, 0, 7, 0xEF},
		{"opcode field", 0b1111111_00000_00000_000_00000_0110011, 0, 6, 0b0110011},
		{"full word", 0xFFFFFFFF, 0, 31, 0xFFFFFFFF},
		{"single bit set", 1 << 20, 20, 20, 1},
		{"single bit unset", 1 << 19, 20, 20, 0},
		{"middle field", 0x000FF000, 12, 19, 0xFF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Extract(tc.word, tc.lo, tc.hi))
		})
	}
}

func TestExtractSigned(t *testing.T) {
	cases := []struct {
		name     string
		word     uint32
		lo, hi   uint
		expected uint32
	}{
		{"positive 12-bit imm", 0x7FF << 20, 20, 31, 0x7FF},
		{"negative 12-bit imm (-1)", 0xFFF << 20, 20, 31, 0xFFFFFFFF},
		{"negative 12-bit imm (-2048)", 0x800 << 20, 20, 31, 0xFFFFF800},
		{"zero", 0, 20, 31, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractSigned(tc.word, tc.lo, tc.hi))
		})
	}
}
