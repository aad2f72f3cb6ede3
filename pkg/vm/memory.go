package vm

import "encoding/binary"

// DefaultMemorySize is the default memory size in bytes: 128 KiB.
const DefaultMemorySize = 128 * 1024

// Memory is a fixed-size, zero-initialised byte buffer supporting typed
// reads (byte/half/word, signed or unsigned) and typed writes
// (byte/half/word), plus a bulk load of the initial program image.
type Memory struct {
	bytes []byte
}

// NewMemory allocates a zero-initialised memory of the given size in
// bytes.
func NewMemory(size int) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// Size returns the memory's fixed size in bytes.
func (m *Memory) Size() int {
	return len(m.bytes)
}

// LoadProgram copies program into memory starting at offset 0. Bytes
// past the image remain zero until a store writes them. It is the
// caller's responsibility to ensure len(program) <= m.Size().
func (m *Memory) LoadProgram(program []byte) {
	copy(m.bytes, program)
}

func (m *Memory) inBounds(addr uint32, width uint32) bool {
	return uint64(addr)+uint64(width) <= uint64(len(m.bytes))
}

// ReadByte reads one byte at addr, sign- or zero-extended to 32 bits.
func (m *Memory) ReadByte(addr uint32, signed bool) (uint32, error) {
	if !m.inBounds(addr, 1) {
		return 0, &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	v := m.bytes[addr]
	if signed {
		return uint32(int32(int8(v))), nil
	}
	return uint32(v), nil
}

// ReadHalf reads two little-endian bytes at addr, sign- or
// zero-extended to 32 bits.
func (m *Memory) ReadHalf(addr uint32, signed bool) (uint32, error) {
	if !m.inBounds(addr, 2) {
		return 0, &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	v := binary.LittleEndian.Uint16(m.bytes[addr : addr+2])
	if signed {
		return uint32(int32(int16(v))), nil
	}
	return uint32(v), nil
}

// ReadWord reads four little-endian bytes at addr. LW is width 4, so
// the sign/zero distinction is immaterial.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if !m.inBounds(addr, 4) {
		return 0, &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+4]), nil
}

// WriteByte writes the low 8 bits of value to addr.
func (m *Memory) WriteByte(addr uint32, value uint32) error {
	if !m.inBounds(addr, 1) {
		return &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	m.bytes[addr] = byte(value)
	return nil
}

// WriteHalf writes the low 16 bits of value to addr, little-endian.
func (m *Memory) WriteHalf(addr uint32, value uint32) error {
	if !m.inBounds(addr, 2) {
		return &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	binary.LittleEndian.PutUint16(m.bytes[addr:addr+2], uint16(value))
	return nil
}

// WriteWord writes all 32 bits of value to addr, little-endian.
func (m *Memory) WriteWord(addr uint32, value uint32) error {
	if !m.inBounds(addr, 4) {
		return &ProgramCounterOutOfRangeError{Address: addr, MemorySize: len(m.bytes)}
	}
	binary.LittleEndian.PutUint32(m.bytes[addr:addr+4], value)
	return nil
}
