package io

import (
	"errors"

	"github.com/ezrec/nibble/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrCharInvalid = errors.New(f("character invalid"))
	ErrInterrupt   = errors.New(f("interrupted"))
	ErrInputClosed = errors.New(f("input closed"))
	ErrInput       = errors.New(f("input failed"))
	ErrOutput      = errors.New(f("output failed"))
)

// ErrChar reports a character code the console cannot carry.
type ErrChar byte

func (ec ErrChar) Error() string {
	return f("character 0x%02x invalid", byte(ec))
}

func (ec ErrChar) Is(err error) bool {
	return err == ErrCharInvalid
}
