package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE = 0x10000 // Bytes of addressable memory.
	DEVICE_PORT = 0xffff  // Address redirected to the attached channel.
)

// Memory is the backing storage of the address space.
type Memory [MEMORY_SIZE]byte

// Load copies an image into memory, starting at address 0.
func (cpu *Cpu) Load(data []byte) (err error) {
	if len(data) > len(cpu.Memory) {
		err = ErrLoad(len(data))
		return
	}

	copy(cpu.Memory[:], data)

	return
}

// Read returns the byte at addr. Reading the device port blocks until
// the attached channel delivers a character.
func (cpu *Cpu) Read(addr uint16) (value byte, err error) {
	if addr != DEVICE_PORT {
		value = cpu.Memory[addr]
		return
	}

	if cpu.Port == nil {
		err = errors.Join(ErrPortRead, ErrPortMissing)
		return
	}

	value, err = cpu.Port.Read()
	if err != nil {
		err = errors.Join(ErrPortRead, err)
		return
	}

	return
}

// Write stores value at addr. Writing the device port emits the value as
// a character on the attached channel, and leaves memory untouched.
func (cpu *Cpu) Write(addr uint16, value byte) (err error) {
	if addr != DEVICE_PORT {
		cpu.Memory[addr] = value
		return
	}

	if cpu.Port == nil {
		err = errors.Join(ErrPortWrite, ErrPortMissing)
		return
	}

	err = cpu.Port.Write(value)
	if err != nil {
		err = errors.Join(ErrPortWrite, err)
		return
	}

	return
}
