package cpu

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Op is one entry of an instruction set's opcode table.
type Op struct {
	Mnemonic string                                // Assembly mnemonic.
	Form     CodeForm                              // Fields used by the instruction.
	Exec     func(cpu *Cpu, code Code) (err error) // Effect of the instruction.
}

// InstructionSet maps every opcode to its operation.
// A nil entry is an unassigned opcode.
type InstructionSet struct {
	Name string
	Ops  [OP_COUNT]*Op
}

// Op returns the operation for an opcode, or nil if it is unassigned.
func (isa *InstructionSet) Op(opcode CodeOp) *Op {
	if int(opcode) >= len(isa.Ops) {
		return nil
	}
	return isa.Ops[opcode]
}

// Defines returns the opcode of every assigned mnemonic.
func (isa *InstructionSet) Defines() iter.Seq2[string, string] {
	return func(yield func(key, val string) bool) {
		for n, op := range isa.Ops {
			if op == nil {
				continue
			}
			if !yield("OP_"+op.Mnemonic, fmt.Sprintf("%#x", n)) {
				return
			}
		}
	}
}

// Bytes encodes instructions into a memory image.
// The operand is only emitted for opcodes that take one.
func (isa *InstructionSet) Bytes(codes ...Code) (data []byte) {
	for _, code := range codes {
		data = append(data, code.Word)
		op := isa.Op(code.Opcode())
		if op != nil && op.Form.Operand() {
			data = append(data, byte(code.Operand>>8), byte(code.Operand))
		}
	}
	return
}

// Format returns the assembly language representation of an instruction.
// The instruction form name is the template: "op a, addr" becomes
// "LOAD r1, 0x0010".
func (isa *InstructionSet) Format(code Code) string {
	op := isa.Op(code.Opcode())
	if op == nil {
		return fmt.Sprintf(".byte 0x%02x", code.Word)
	}

	words := strings.Fields(op.Form.String())
	for n, word := range words {
		field, comma := strings.CutSuffix(word, ",")
		switch field {
		case "op":
			field = op.Mnemonic
		case "a":
			field = code.RegA().String()
		case "b":
			field = code.RegB().String()
		case "addr":
			field = fmt.Sprintf("0x%04x", code.Operand)
		}
		if comma {
			field += ","
		}
		words[n] = field
	}

	return strings.Join(words, " ")
}

// unary builds a single register ALU operation: a <- fn(a).
func unary(fn func(a byte) byte) func(cpu *Cpu, code Code) error {
	return func(cpu *Cpu, code Code) (err error) {
		rf := &cpu.Registers
		a, err := rf.Get(code.RegA())
		if err != nil {
			return
		}
		return rf.Set(code.RegA(), fn(a))
	}
}

// binary builds a two register ALU operation: a <- fn(a, b).
func binary(fn func(a, b byte) byte) func(cpu *Cpu, code Code) error {
	return func(cpu *Cpu, code Code) (err error) {
		rf := &cpu.Registers
		a, err := rf.Get(code.RegA())
		if err != nil {
			return
		}
		b, err := rf.Get(code.RegB())
		if err != nil {
			return
		}
		return rf.Set(code.RegA(), fn(a, b))
	}
}

// branch builds a conditional transfer to the operand address.
// If call is set, the address of the next instruction is saved in RP.
func branch(equal bool, call bool) func(cpu *Cpu, code Code) error {
	return func(cpu *Cpu, code Code) (err error) {
		rf := &cpu.Registers
		a, err := rf.Get(code.RegA())
		if err != nil {
			return
		}
		b, err := rf.Get(code.RegB())
		if err != nil {
			return
		}
		if (a == b) != equal {
			return
		}
		if call {
			rf.Rp = rf.Ip
		}
		rf.Ip = code.Operand
		return
	}
}

func execHalt(cpu *Cpu, code Code) (err error) {
	cpu.Halted = true
	return
}

func execRet(cpu *Cpu, code Code) (err error) {
	cpu.Registers.Ip = cpu.Registers.Rp
	return
}

func execJump(cpu *Cpu, code Code) (err error) {
	cpu.Registers.Ip = code.Operand
	return
}

func execCall(cpu *Cpu, code Code) (err error) {
	cpu.Registers.Rp = cpu.Registers.Ip
	cpu.Registers.Ip = code.Operand
	return
}

func execLoad(cpu *Cpu, code Code) (err error) {
	value, err := cpu.Read(code.Operand)
	if err != nil {
		return
	}
	return cpu.Registers.Set(code.RegA(), value)
}

func execStor(cpu *Cpu, code Code) (err error) {
	value, err := cpu.Registers.Get(code.RegA())
	if err != nil {
		return
	}
	return cpu.Write(code.Operand, value)
}

var (
	opHalt = &Op{"HALT", FORM_NONE, execHalt}
	opRet  = &Op{"RET", FORM_NONE, execRet}
	opShl  = &Op{"SHL", FORM_A, unary(func(a byte) byte { return a << 1 })}
	opShr  = &Op{"SHR", FORM_A, unary(func(a byte) byte { return a >> 1 })}
	opRol  = &Op{"ROL", FORM_A, unary(func(a byte) byte { return bits.RotateLeft8(a, 1) })}
	opRor  = &Op{"ROR", FORM_A, unary(func(a byte) byte { return bits.RotateLeft8(a, -1) })}
	opNot  = &Op{"NOT", FORM_A, unary(func(a byte) byte { return ^a })}
	opNand = &Op{"NAND", FORM_AB, binary(func(a, b byte) byte { return ^(a & b) })}
	opAnd  = &Op{"AND", FORM_AB, binary(func(a, b byte) byte { return a & b })}
	opOr   = &Op{"OR", FORM_AB, binary(func(a, b byte) byte { return a | b })}
	opXor  = &Op{"XOR", FORM_AB, binary(func(a, b byte) byte { return a ^ b })}
	opJump = &Op{"JUMP", FORM_ADDR, execJump}
	opCall = &Op{"CALL", FORM_ADDR, execCall}
	opLoad = &Op{"LOAD", FORM_A_ADDR, execLoad}
	opStor = &Op{"STOR", FORM_A_ADDR, execStor}
	opBreq = &Op{"BREQ", FORM_AB_ADDR, branch(true, false)}
	opBrne = &Op{"BRNE", FORM_AB_ADDR, branch(false, false)}
	opCreq = &Op{"CREQ", FORM_AB_ADDR, branch(true, true)}
	opCrne = &Op{"CRNE", FORM_AB_ADDR, branch(false, true)}
)

// ISA_RICH is the default instruction set: NAND, and conditional calls.
var ISA_RICH = &InstructionSet{
	Name: "rich",
	Ops: [OP_COUNT]*Op{
		OP_HALT: opHalt,
		OP_RET:  opRet,
		OP_SHL:  opShl,
		OP_SHR:  opShr,
		OP_ROL:  opRol,
		OP_ROR:  opRor,
		OP_NAND: opNand,
		OP_AND:  opAnd,
		OP_OR:   opOr,
		OP_XOR:  opXor,
		OP_LOAD: opLoad,
		OP_STOR: opStor,
		OP_BREQ: opBreq,
		OP_BRNE: opBrne,
		OP_CREQ: opCreq,
		OP_CRNE: opCrne,
	},
}

// ISA_MINIMAL is the earlier instruction set: NOT, and unconditional
// JUMP and CALL. It is not binary compatible with ISA_RICH.
var ISA_MINIMAL = &InstructionSet{
	Name: "minimal",
	Ops: [OP_COUNT]*Op{
		OP_HALT:     opHalt,
		OP_RET:      opRet,
		OP_SHL:      opShl,
		OP_SHR:      opShr,
		OP_ROL:      opRol,
		OP_ROR:      opRor,
		MIN_OP_NOT:  opNot,
		OP_AND:      opAnd,
		OP_OR:       opOr,
		OP_XOR:      opXor,
		MIN_OP_JUMP: opJump,
		MIN_OP_CALL: opCall,
		MIN_OP_LOAD: opLoad,
		MIN_OP_STOR: opStor,
		MIN_OP_BREQ: opBreq,
		MIN_OP_BRNE: opBrne,
	},
}

// InstructionSets are the known instruction sets, by name.
var InstructionSets = []*InstructionSet{ISA_RICH, ISA_MINIMAL}

// LookupIsa finds an instruction set by name.
func LookupIsa(name string) (isa *InstructionSet, err error) {
	for _, known := range InstructionSets {
		if strings.EqualFold(known.Name, name) {
			isa = known
			return
		}
	}

	err = ErrIsaUnknown(name)
	return
}
