package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the four fault kinds this emulator can
// raise. Use errors.Is to test for a kind; the concrete error value
// returned by Decode, ProgramCounter.Advance or the Memory accessors
// carries the offending fields and unwraps to its sentinel through an
// Unwrap method, exactly as the teacher's pkg/vm distinguishes ErrHalted
// from other faults with errors.Is.
var (
	// ErrUnknownOpcode indicates the low 7 bits of an instruction word
	// matched none of the defined opcodes.
	ErrUnknownOpcode = errors.New("vm: unknown opcode")

	// ErrInvalidFormat indicates the opcode was recognised but the
	// (funct3, funct7/imm_hi) combination is not in the decode table.
	ErrInvalidFormat = errors.New("vm: invalid instruction format")

	// ErrProgramCounterOutOfRange indicates a fetch would read past the
	// end of memory.
	ErrProgramCounterOutOfRange = errors.New("vm: program counter out of range")

	// ErrEndOfInstructions indicates a zero instruction word was
	// fetched. This is reported as an error so callers can distinguish
	// "fell off the end" from a clean exit ecall; callers that accept
	// zero-termination as success should treat errors.Is(err,
	// ErrEndOfInstructions) as non-fatal.
	ErrEndOfInstructions = errors.New("vm: end of instructions")
)

// UnknownOpcodeError carries the offending opcode for diagnostics.
type UnknownOpcodeError struct {
	Opcode uint32
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%s: %07b", ErrUnknownOpcode, e.Opcode)
}

func (e *UnknownOpcodeError) Unwrap() error { return ErrUnknownOpcode }

// InvalidFormatError carries the format tag and the offending fields of
// an instruction whose opcode is known but whose funct3/funct7 (or
// imm_hi, for shift immediates) combination is not defined.
type InvalidFormatError struct {
	Format Format
	Funct3 uint32
	Funct7 uint32
}

func (e *InvalidFormatError) Error() string {
	switch e.Format {
	case FormatR:
		return fmt.Sprintf("%s: R-format funct3: %03b, funct7: %07b", ErrInvalidFormat, e.Funct3, e.Funct7)
	case FormatI:
		return fmt.Sprintf("%s: I-format funct3: %03b, funct7: %07b", ErrInvalidFormat, e.Funct3, e.Funct7)
	case FormatS:
		return fmt.Sprintf("%s: S-format funct3: %03b", ErrInvalidFormat, e.Funct3)
	case FormatB:
		return fmt.Sprintf("%s: B-format funct3: %03b", ErrInvalidFormat, e.Funct3)
	default:
		return fmt.Sprintf("%s: funct3: %03b, funct7: %07b", ErrInvalidFormat, e.Funct3, e.Funct7)
	}
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// ProgramCounterOutOfRangeError carries the attempted address and the
// memory size for diagnostics. It is raised both for an out-of-range
// fetch (the spec.md case this error kind is named for) and, more
// generally, for any load/store whose effective address falls outside
// memory, since both are the same "address vs. memory size" fault shape.
type ProgramCounterOutOfRangeError struct {
	Address    uint32
	MemorySize int
}

func (e *ProgramCounterOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: address %d, memory size %d", ErrProgramCounterOutOfRange, e.Address, e.MemorySize)
}

func (e *ProgramCounterOutOfRangeError) Unwrap() error { return ErrProgramCounterOutOfRange }
