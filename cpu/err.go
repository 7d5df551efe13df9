package cpu

import (
	"errors"

	"github.com/ezrec/nibble/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted       = errors.New(f("cpu halted"))
	ErrLoadTooLarge = errors.New(f("image larger than memory"))
	ErrPortMissing  = errors.New(f("device port not attached"))
	ErrPortRead     = errors.New(f("device port read"))
	ErrPortWrite    = errors.New(f("device port write"))

	// Instruction decode errors
	ErrOpcodeDecode    = errors.New(f("decode"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrOpcode reports the instruction that failed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrLoad reports an image that does not fit in memory.
type ErrLoad int

func (el ErrLoad) Error() string {
	return f("image of %v bytes exceeds %v bytes of memory", int(el), MEMORY_SIZE)
}

func (el ErrLoad) Is(err error) bool {
	return err == ErrLoadTooLarge
}

// ErrIsaUnknown reports an instruction set name that is not known.
type ErrIsaUnknown string

func (ei ErrIsaUnknown) Error() string {
	return f("instruction set '%v' unknown", string(ei))
}
