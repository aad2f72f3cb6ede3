// Package vm implements an instruction-set-accurate emulator for the
// 32-bit base integer RISC-V profile (RV32I).
//
// The emulator consumes a flat little-endian program image and executes
// it instruction by instruction against a private register file and a
// byte-addressable memory, terminating on an exit supervisor call, on
// running out of valid instructions, or on an architectural fault.
//
// Architectural state
//
// A CPU holds a 32-bit program counter, 32 general-purpose registers
// (x0 hard-wired to zero), and a byte-addressable memory of fixed size
// (128 KiB by default). The stack pointer (x2) is initialised to the
// memory size, one past the top byte, because the calling convention
// pre-decrements before storing.
//
// Instruction formats
//
// Each 32-bit instruction word is decoded into one of six base formats:
//
//	R: <funct7:7><rs2:5><rs1:5><funct3:3><rd:5><opcode:7>
//	I: <imm[11:0]:12><rs1:5><funct3:3><rd:5><opcode:7>
//	S: <imm[11:5]:7><rs2:5><rs1:5><funct3:3><imm[4:0]:5><opcode:7>
//	B: <imm[12|10:5]:7><rs2:5><rs1:5><funct3:3><imm[4:1|11]:5><opcode:7>
//	U: <imm[31:12]:20><rd:5><opcode:7>
//	J: <imm[20|10:1|11|19:12]:20><rd:5><opcode:7>
//
// plus a synthetic supervisor-call arm recognised when register x17
// (the ABI syscall-number register) equals 93 at an ecall instruction.
//
// Pre-advanced program counter
//
// The fetch stage advances the program counter by 4 before decode and
// execute run. Every branch, JAL, and AUIPC computation in this package
// therefore compensates by subtracting 4 from the instruction's own
// immediate (or from the already-advanced PC for AUIPC) before using it,
// so that the architectural semantic "relative to this instruction's
// address" holds. This convention is documented at every call site that
// relies on it; see cpu.go.
package vm
