package vm

// NumRegisters is the number of general-purpose registers in the RV32I
// register file.
const NumRegisters = 32

// stackPointerRegister is x2, the register the calling convention
// treats as the stack pointer.
const stackPointerRegister = 2

// Registers is the 32-entry general-purpose register file. Register
// index 0 always reads as 0 regardless of prior writes; writes to index
// 0 are discarded here, not by callers.
type Registers struct {
	gpr [NumRegisters]uint32
}

// NewRegisters returns a register file with the stack pointer (x2)
// initialised to memSize, one past the top byte, because the calling
// convention pre-decrements before storing.
func NewRegisters(memSize uint32) *Registers {
	r := &Registers{}
	r.gpr[stackPointerRegister] = memSize
	return r
}

// Read returns the value of register idx. idx must be in [0, 31]; an
// out-of-range index is a programmer error, not a runtime condition, so
// Read panics rather than returning an error.
func (r *Registers) Read(idx uint32) uint32 {
	if idx == 0 {
		return 0
	}
	return r.gpr[idx]
}

// Write stores value into register idx. Writes to x0 are silently
// discarded. idx must be in [0, 31]; see Read.
func (r *Registers) Write(idx uint32, value uint32) {
	if idx == 0 {
		return
	}
	r.gpr[idx] = value
}

// ProgramCounter is the 32-bit address of the next instruction to
// fetch, with a checked-increment fetch step.
type ProgramCounter struct {
	value uint32
}

// Get returns the current program counter.
func (pc *ProgramCounter) Get() uint32 {
	return pc.value
}

// Set overwrites the program counter, e.g. on a taken branch or jump.
func (pc *ProgramCounter) Set(address uint32) {
	pc.value = address
}

// Advance increments the program counter by 4 and returns the
// pre-increment value (the address of the instruction about to be
// fetched), or a ProgramCounterOutOfRangeError if that pre-increment
// value leaves no room for a full 4-byte instruction before memSize.
func (pc *ProgramCounter) Advance(memSize uint32) (uint32, error) {
	current := pc.value
	if current > memSize-4 {
		return 0, &ProgramCounterOutOfRangeError{Address: current, MemorySize: int(memSize)}
	}
	pc.value += 4
	return current, nil
}
