package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nibble/internal"
	"github.com/ezrec/nibble/io"
)

// Channel is the device port interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
	"DEVICE_PORT": fmt.Sprintf("%#x", DEVICE_PORT),
}

// Cpu is the simulation context for the nibble CPU.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Isa       *InstructionSet // Opcode table in use.
	Registers Registers       // Register file.
	Memory    Memory          // Backing storage.
	Halted    bool            // Set by HALT.
	Port      Channel         // Device mapped at DEVICE_PORT.

	Ticks int // Instructions executed.
}

// NewCpu creates a new CPU running an instruction set.
// A nil isa selects ISA_RICH.
func NewCpu(isa *InstructionSet) (cpu *Cpu) {
	if isa == nil {
		isa = ISA_RICH
	}

	cpu = &Cpu{
		Isa: isa,
	}

	return
}

// Defines for the cpu: memory layout, and the opcode of each mnemonic.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), cpu.Isa.Defines())
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Clears the halted state.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	clear(cpu.Memory[:])
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	rf := &cpu.Registers

	text += fmt.Sprintf("% 6s: %04X\n", "ip", rf.Ip)
	text += fmt.Sprintf("% 6s: %04X\n", "rp", rf.Rp)
	for n, val := range rf.R {
		text += fmt.Sprintf("% 6s: %02X\n", CodeReg(n).String(), val)
	}
	text += fmt.Sprintf("% 6s: %v\n", "halted", cpu.Halted)

	return
}

// nextByte fetches the instruction stream byte at IP, and advances IP.
// Instruction fetch always reads storage, never the device port.
func (cpu *Cpu) nextByte() (value byte) {
	value = cpu.Memory[cpu.Registers.Ip]
	cpu.Registers.Ip++
	return
}

// FetchCode fetches and decodes the next instruction, advancing IP past
// the instruction byte and its operand.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	code.Word = cpu.nextByte()

	op := cpu.Isa.Op(code.Opcode())
	if op == nil {
		err = errors.Join(ErrOpcode(code), ErrOpcodeDecode)
		return
	}

	if op.Form.Operand() {
		hi := cpu.nextByte()
		lo := cpu.nextByte()
		code.Operand = (uint16(hi) << 8) | uint16(lo)
	}

	return
}

// Tick executes a single CPU instruction cycle.
// Once the CPU has halted, Tick returns ErrHalted and changes nothing.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	ip := cpu.Registers.Ip

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", ip, cpu.Isa.Format(code))
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", ip, cpu.Registers.String())
	}

	return
}

// Execute executes a single decoded instruction. IP must already point
// past the instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	op := cpu.Isa.Op(code.Opcode())
	if op == nil {
		err = ErrOpcodeDecode
		return
	}

	err = op.Exec(cpu, code)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}
