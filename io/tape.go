package io

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
)

// Key codes delivered to the CPU for non-printable input events.
const (
	KEY_NONE      = byte(0x00) // No key.
	KEY_INTERRUPT = byte(0x03) // Ctrl-C, never delivered.
	KEY_BACKSPACE = byte(0x08) // Backspace.
	KEY_ESCAPE    = byte(0x1b) // Escape.
	KEY_DELETE    = byte(0x7f) // Delete, as sent by most terminals for backspace.
	CHAR_LIMIT    = 0x80       // First invalid character code.
)

var _tape_defines = map[string]string{
	"KEY_NONE":      fmt.Sprintf("%#x", KEY_NONE),
	"KEY_BACKSPACE": fmt.Sprintf("%#x", KEY_BACKSPACE),
	"KEY_ESCAPE":    fmt.Sprintf("%#x", KEY_ESCAPE),
}

// flusher is implemented by buffered outputs, such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Tape is a console device. Characters are read one at a time from Input,
// and written to Output.
type Tape struct {
	Input  io.Reader // Source of key presses.
	Output io.Writer // Sink for characters. If nil, output is discarded.
	Crlf   bool      // If set, newlines are written as CR LF (raw terminals).
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(_tape_defines)
}

// Key maps an input byte to the character delivered to the CPU.
// Bytes that are not 7-bit characters, such as the parts of a UTF-8
// sequence, are delivered as KEY_NONE.
func Key(in byte) (value byte, err error) {
	switch {
	case in == KEY_INTERRUPT:
		err = ErrInterrupt
	case in == KEY_DELETE || in == KEY_BACKSPACE:
		value = KEY_BACKSPACE
	case in == '\r':
		value = '\n'
	case in >= CHAR_LIMIT:
		value = KEY_NONE
	default:
		value = in
	}

	return
}

// Read blocks for one input byte, maps it to a character, and echoes
// the character to the output.
func (tc *Tape) Read() (value byte, err error) {
	if tc.Input == nil {
		err = ErrInputClosed
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			err = nil
			break
		}
		if errors.Is(err, io.EOF) {
			err = ErrInputClosed
			return
		}
		if err != nil {
			err = errors.Join(ErrInput, err)
			return
		}
	}

	value, err = Key(one[0])
	if err != nil {
		return
	}

	err = tc.Write(value)

	return
}

// Write emits the character, and flushes the output.
func (tc *Tape) Write(value byte) (err error) {
	if value >= CHAR_LIMIT {
		err = ErrChar(value)
		return
	}

	if tc.Output == nil {
		return
	}

	out := []byte{value}
	if tc.Crlf && value == '\n' {
		out = []byte{'\r', '\n'}
	}

	_, err = tc.Output.Write(out)
	if err != nil {
		err = errors.Join(ErrOutput, err)
		return
	}

	if fl, ok := tc.Output.(flusher); ok {
		err = fl.Flush()
		if err != nil {
			err = errors.Join(ErrOutput, err)
			return
		}
	}

	return
}
