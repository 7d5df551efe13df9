// Package cpu implements the nibble microprocessor.
//
// The CPU has four 8-bit general-purpose registers (r0-r3), a 16-bit
// instruction pointer (IP), and a 16-bit return pointer (RP). It addresses
// a flat 64KiB memory; the last address is the device port, where reads
// and writes are redirected to an attached character channel.
//
// Every instruction is one byte: a 4-bit opcode, and two 2-bit register
// selectors. Opcodes in the upper half of the table are followed by a
// big-endian 16-bit address operand. The opcode table is supplied by an
// InstructionSet, so the same core runs both the rich (NAND, conditional
// call) and the minimal (NOT, JUMP, CALL) variants.
package cpu
