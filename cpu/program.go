package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Program is a memory image, viewed through an instruction set.
type Program struct {
	Isa  *InstructionSet
	Data []byte
}

// Decode decodes the instruction at ip. ok is false when ip is outside
// the image, or the operand is truncated by the end of the image.
// Operand addresses wrap like the instruction pointer, so a view of all
// of memory decodes the operand of an instruction at 0xfffe from 0xffff
// and 0x0000.
func (prog *Program) Decode(ip uint16) (code Code, size int, ok bool) {
	if int(ip) >= len(prog.Data) {
		return
	}

	code.Word = prog.Data[ip]
	size = 1

	op := prog.Isa.Op(code.Opcode())
	if op != nil && op.Form.Operand() {
		hi := ip + 1
		lo := ip + 2
		if int(hi) >= len(prog.Data) || int(lo) >= len(prog.Data) {
			return
		}
		code.Operand = (uint16(prog.Data[hi]) << 8) | uint16(prog.Data[lo])
		size = 3
	}

	ok = true
	return
}

// Codes walks the image from address 0, yielding each instruction.
// Data is decoded as if it were code.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(ip uint16, code Code) bool) {
		for ip := 0; ip < len(prog.Data); {
			code, size, ok := prog.Decode(uint16(ip))
			if !ok {
				return
			}
			if !yield(uint16(ip), code) {
				return
			}
			ip += size
		}
	}
}

// Debug returns the listing line for the instruction at ip.
func (prog *Program) Debug(ip uint16) string {
	code, _, ok := prog.Decode(ip)
	if !ok {
		return fmt.Sprintf("%04x: ???", ip)
	}

	return fmt.Sprintf("%04x: %v", ip, prog.Isa.Format(code))
}

// String returns the disassembly listing of the whole image.
func (prog *Program) String() string {
	var sb strings.Builder
	for ip := range prog.Codes() {
		sb.WriteString(prog.Debug(ip))
		sb.WriteByte('\n')
	}
	return sb.String()
}
