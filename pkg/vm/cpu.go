package vm

import (
	"fmt"
	"io"
	"os"
)

// CPU owns the register file, program counter, and memory for one
// single-threaded, strictly sequential run. It is not safe for
// concurrent use; one goroutine should own a CPU for its lifetime.
type CPU struct {
	Regs  *Registers
	PC    ProgramCounter
	Mem   *Memory
	Debug bool

	// DebugOutput is where per-cycle dumps are written when Debug is
	// true. Defaults to os.Stderr.
	DebugOutput io.Writer

	cycle uint64
}

// NewCPU allocates a CPU with a zero-initialised memory of memSize
// bytes and a register file whose stack pointer (x2) starts at the top
// of that memory.
func NewCPU(memSize uint32) *CPU {
	return &CPU{
		Regs:        NewRegisters(memSize),
		Mem:         NewMemory(int(memSize)),
		DebugOutput: os.Stderr,
	}
}

// LoadProgram copies program into memory starting at offset 0, per
// spec.md's program image format.
func (c *CPU) LoadProgram(program []byte) {
	c.Mem.LoadProgram(program)
}

// Run executes cycles until an exit supervisor call returns an exit
// code or a fault terminates the run. The returned error is non-nil
// exactly in the FAULTED case; in the EXITED case it is nil and code is
// the low 8 bits of the exit call's argument.
func (c *CPU) Run() (code uint32, err error) {
	for {
		exited, exitCode, err := c.Step()
		if err != nil {
			return 0, err
		}
		if exited {
			return exitCode, nil
		}
	}
}

// Step performs one fetch-decode-execute cycle: RUNNING -> RUNNING on a
// normal cycle, RUNNING -> EXITED(code) on an exit call (exited is
// true), RUNNING -> FAULTED(err) on any fault (decode, fetch out of
// range, end of stream, or an out-of-range load/store address). Per
// spec.md's error-handling design, a fault is surfaced with a final
// state dump when debugging is enabled, just like a normal cycle, so
// every return path below dumps state before returning.
func (c *CPU) Step() (exited bool, code uint32, err error) {
	pc, err := c.PC.Advance(uint32(c.Mem.Size()))
	if err != nil {
		c.maybeDumpState()
		return false, 0, err
	}
	word, err := c.Mem.ReadWord(pc)
	if err != nil {
		c.maybeDumpState()
		return false, 0, err
	}
	if word == 0 {
		c.maybeDumpState()
		return false, 0, ErrEndOfInstructions
	}
	inst, err := Decode(word, c.Regs.Read(17), c.Regs.Read(10))
	if err != nil {
		c.maybeDumpState()
		return false, 0, err
	}
	exited, code, err = c.execute(inst)
	if err != nil {
		c.maybeDumpState()
		return false, 0, err
	}
	c.maybeDumpState()
	c.cycle++
	return exited, code, nil
}

// maybeDumpState writes the per-cycle debug dump when c.Debug is set.
func (c *CPU) maybeDumpState() {
	if c.Debug {
		c.dumpState(c.DebugOutput)
	}
}

// execute mutates CPU state per the decoded instruction. The program
// counter has already been advanced by Step; every branch/JAL/AUIPC
// computation below compensates by subtracting 4 from its immediate (or
// from the already-advanced PC, for AUIPC) to recover the address of
// the instruction currently executing. JALR is register-relative and
// uses rs1 + imm unadjusted.
func (c *CPU) execute(inst Instruction) (exited bool, code uint32, err error) {
	switch inst.Format {
	case FormatR:
		c.executeR(inst)
	case FormatI:
		err = c.executeI(inst)
	case FormatS:
		err = c.executeS(inst)
	case FormatB:
		c.executeB(inst)
	case FormatU:
		c.executeU(inst)
	case FormatJ:
		c.executeJ(inst)
	case FormatEcall:
		switch inst.Mnem {
		case MnemEcallExit:
			return true, inst.ExitCode, nil
		case MnemEcallNop, MnemFENCE:
			// no-op
		}
	}
	return false, 0, err
}

func (c *CPU) executeR(inst Instruction) {
	rs1 := c.Regs.Read(inst.R.Rs1)
	rs2 := c.Regs.Read(inst.R.Rs2)
	c.Regs.Write(inst.R.Rd, aluOp(inst.Mnem, rs1, rs2))
}

func (c *CPU) executeI(inst Instruction) error {
	switch inst.Mnem {
	case MnemLB, MnemLH, MnemLW, MnemLBU, MnemLHU:
		return c.executeLoad(inst)
	case MnemJALR:
		c.executeJALR(inst)
		return nil
	}
	rs1 := c.Regs.Read(inst.I.Rs1)
	c.Regs.Write(inst.I.Rd, aluOp(iToR(inst.Mnem), rs1, inst.I.Imm))
	return nil
}

func (c *CPU) executeLoad(inst Instruction) error {
	addr := c.Regs.Read(inst.I.Rs1) + inst.I.Imm
	var value uint32
	var err error
	switch inst.Mnem {
	case MnemLB:
		value, err = c.Mem.ReadByte(addr, true)
	case MnemLBU:
		value, err = c.Mem.ReadByte(addr, false)
	case MnemLH:
		value, err = c.Mem.ReadHalf(addr, true)
	case MnemLHU:
		value, err = c.Mem.ReadHalf(addr, false)
	case MnemLW:
		value, err = c.Mem.ReadWord(addr)
	}
	if err != nil {
		return err
	}
	c.Regs.Write(inst.I.Rd, value)
	return nil
}

func (c *CPU) executeJALR(inst Instruction) {
	returnAddr := c.PC.Get()
	target := (c.Regs.Read(inst.I.Rs1) + inst.I.Imm) &^ 1
	c.Regs.Write(inst.I.Rd, returnAddr)
	c.PC.Set(target)
}

func (c *CPU) executeS(inst Instruction) error {
	addr := c.Regs.Read(inst.S.Rs1) + inst.S.Imm
	value := c.Regs.Read(inst.S.Rs2)
	switch inst.Mnem {
	case MnemSB:
		return c.Mem.WriteByte(addr, value)
	case MnemSH:
		return c.Mem.WriteHalf(addr, value)
	case MnemSW:
		return c.Mem.WriteWord(addr, value)
	}
	return nil
}

func (c *CPU) executeB(inst Instruction) {
	rs1 := c.Regs.Read(inst.B.Rs1)
	rs2 := c.Regs.Read(inst.B.Rs2)
	var taken bool
	switch inst.Mnem {
	case MnemBEQ:
		taken = rs1 == rs2
	case MnemBNE:
		taken = rs1 != rs2
	case MnemBLT:
		taken = int32(rs1) < int32(rs2)
	case MnemBGE:
		taken = int32(rs1) >= int32(rs2)
	case MnemBLTU:
		taken = rs1 < rs2
	case MnemBGEU:
		taken = rs1 >= rs2
	}
	if taken {
		c.PC.Set(c.PC.Get() + inst.B.Imm - 4)
	}
}

func (c *CPU) executeJ(inst Instruction) {
	returnAddr := c.PC.Get()
	c.Regs.Write(inst.J.Rd, returnAddr)
	c.PC.Set(c.PC.Get() + inst.J.Imm - 4)
}

func (c *CPU) executeU(inst Instruction) {
	switch inst.Mnem {
	case MnemLUI:
		c.Regs.Write(inst.U.Rd, inst.U.Imm<<12)
	case MnemAUIPC:
		c.Regs.Write(inst.U.Rd, (c.PC.Get()-4)+(inst.U.Imm<<12))
	}
}

// aluOp implements the R/I-type arithmetic operation table shared by
// register-register and register-immediate forms of the same mnemonic.
func aluOp(mnem Mnemonic, a, b uint32) uint32 {
	switch mnem {
	case MnemADD:
		return a + b
	case MnemSUB:
		return a - b
	case MnemXOR:
		return a ^ b
	case MnemOR:
		return a | b
	case MnemAND:
		return a & b
	case MnemSLL:
		return a << (b & 0x1F)
	case MnemSRL:
		return a >> (b & 0x1F)
	case MnemSRA:
		return uint32(int32(a) >> (b & 0x1F))
	case MnemSLT:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case MnemSLTU:
		if a < b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// iToR maps an I-type arithmetic mnemonic to the R-type mnemonic that
// shares its ALU operation (ADDI -> ADD, and so on).
func iToR(mnem Mnemonic) Mnemonic {
	switch mnem {
	case MnemADDI:
		return MnemADD
	case MnemXORI:
		return MnemXOR
	case MnemORI:
		return MnemOR
	case MnemANDI:
		return MnemAND
	case MnemSLLI:
		return MnemSLL
	case MnemSRLI:
		return MnemSRL
	case MnemSRAI:
		return MnemSRA
	case MnemSLTI:
		return MnemSLT
	case MnemSLTIU:
		return MnemSLTU
	default:
		return MnemInvalid
	}
}

// dumpState writes the per-cycle debug dump: the cycle number, the
// program counter, and all 32 registers printed as signed 32-bit
// decimals, one value per line, labelled R0..R31.
func (c *CPU) dumpState(w io.Writer) {
	fmt.Fprintf(w, "cycle %d\n", c.cycle)
	fmt.Fprintf(w, "PC %d\n", c.PC.Get())
	for i := uint32(0); i < NumRegisters; i++ {
		fmt.Fprintf(w, "R%d %d\n", i, int32(c.Regs.Read(i)))
	}
}
