package emulator

import (
	"errors"

	"github.com/ezrec/nibble/translate"
)

var f = translate.From

var (
	ErrBreak = errors.New(f("watch triggered"))
)

// ErrRuntime indicates the address of the instruction that failed.
type ErrRuntime struct {
	Ip  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %04x %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
