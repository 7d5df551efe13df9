package cpu

import (
	"fmt"
)

// CodeReg is a general-purpose register selector.
type CodeReg byte

//go:generate go tool stringer -linecomment -type=CodeReg
const (
	REG_R0    = CodeReg(0) // r0
	REG_R1    = CodeReg(1) // r1
	REG_R2    = CodeReg(2) // r2
	REG_R3    = CodeReg(3) // r3
	REG_COUNT = 4          // Number of general-purpose registers.
)

// Registers is the register file.
type Registers struct {
	Ip uint16          // Address of the next instruction byte.
	Rp uint16          // Return address saved by calls.
	R  [REG_COUNT]byte // General-purpose registers.
}

// Get returns the value of a general-purpose register.
func (rf *Registers) Get(reg CodeReg) (value byte, err error) {
	if int(reg) >= len(rf.R) {
		err = ErrRegisterInvalid
		return
	}

	value = rf.R[reg]
	return
}

// Set overwrites a general-purpose register.
func (rf *Registers) Set(reg CodeReg, value byte) (err error) {
	if int(reg) >= len(rf.R) {
		err = ErrRegisterInvalid
		return
	}

	rf.R[reg] = value
	return
}

// Reset zeros every register.
func (rf *Registers) Reset() {
	*rf = Registers{}
}

// String returns the register file as a single line.
func (rf *Registers) String() string {
	return fmt.Sprintf("ip=%04x rp=%04x r0=%02x r1=%02x r2=%02x r3=%02x",
		rf.Ip, rf.Rp, rf.R[0], rf.R[1], rf.R[2], rf.R[3])
}
