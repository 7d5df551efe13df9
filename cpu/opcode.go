package cpu

import (
	"fmt"
)

// CodeOp is the 4-bit opcode field of an instruction.
type CodeOp byte

// Opcodes shared by every instruction set.
const (
	OP_HALT = CodeOp(0x0)
	OP_RET  = CodeOp(0x1)
	OP_SHL  = CodeOp(0x2)
	OP_SHR  = CodeOp(0x3)
	OP_ROL  = CodeOp(0x4)
	OP_ROR  = CodeOp(0x5)
	OP_AND  = CodeOp(0x7)
	OP_OR   = CodeOp(0x8)
	OP_XOR  = CodeOp(0x9)
)

// Rich instruction set opcodes.
const (
	OP_NAND = CodeOp(0x6)
	OP_LOAD = CodeOp(0xa)
	OP_STOR = CodeOp(0xb)
	OP_BREQ = CodeOp(0xc)
	OP_BRNE = CodeOp(0xd)
	OP_CREQ = CodeOp(0xe)
	OP_CRNE = CodeOp(0xf)
)

// Minimal instruction set opcodes.
const (
	MIN_OP_NOT  = CodeOp(0x6)
	MIN_OP_JUMP = CodeOp(0xa)
	MIN_OP_CALL = CodeOp(0xb)
	MIN_OP_LOAD = CodeOp(0xc)
	MIN_OP_STOR = CodeOp(0xd)
	MIN_OP_BREQ = CodeOp(0xe)
	MIN_OP_BRNE = CodeOp(0xf)
)

const OP_COUNT = 16 // Size of the opcode space.

// CodeForm describes which fields of an instruction are meaningful.
type CodeForm int

//go:generate go tool stringer -linecomment -type=CodeForm
const (
	FORM_NONE    = CodeForm(0) // op
	FORM_A       = CodeForm(1) // op a
	FORM_AB      = CodeForm(2) // op a, b
	FORM_ADDR    = CodeForm(3) // op addr
	FORM_A_ADDR  = CodeForm(4) // op a, addr
	FORM_AB_ADDR = CodeForm(5) // op a, b, addr
)

// Operand returns true if the form is followed by a 16-bit operand.
func (form CodeForm) Operand() bool {
	return form >= FORM_ADDR
}

// Code is a single decoded instruction: the instruction byte, and the
// operand that followed it (zero if the opcode takes none).
type Code struct {
	Word    byte
	Operand uint16
}

// MakeCode creates an instruction from its fields.
func MakeCode(op CodeOp, a, b CodeReg, operand ...uint16) Code {
	code := Code{
		Word: (byte(op&0xf) << 4) | (byte(a&0x3) << 2) | byte(b&0x3),
	}
	if len(operand) > 0 {
		code.Operand = operand[0]
	}
	return code
}

// Opcode returns the opcode field.
func (code Code) Opcode() CodeOp {
	return CodeOp((code.Word >> 4) & 0xf)
}

// RegA returns the first register selector.
func (code Code) RegA() CodeReg {
	return CodeReg((code.Word >> 2) & 0x3)
}

// RegB returns the second register selector.
func (code Code) RegB() CodeReg {
	return CodeReg(code.Word & 0x3)
}

// String returns the raw fields of the instruction.
func (code Code) String() string {
	return fmt.Sprintf("0x%02x (op:%x a:%v b:%v addr:%04x)",
		code.Word, byte(code.Opcode()), code.RegA(), code.RegB(), code.Operand)
}
