package io

import (
	"bufio"
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		in    byte
		value byte
		err   error
	}){
		{"printable", 'A', 'A', nil},
		{"space", ' ', ' ', nil},
		{"newline", '\n', '\n', nil},
		{"return", '\r', '\n', nil},
		{"none", 0x00, KEY_NONE, nil},
		{"backspace", 0x08, KEY_BACKSPACE, nil},
		{"delete", 0x7f, KEY_BACKSPACE, nil},
		{"escape", 0x1b, KEY_ESCAPE, nil},
		{"interrupt", 0x03, 0, ErrInterrupt},
		{"high", 0x80, KEY_NONE, nil},
		{"highest", 0xff, KEY_NONE, nil},
	}

	for _, entry := range table {
		value, err := Key(entry.in)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		assert.Equal(entry.value, value, entry.name)
	}
}

func TestTape_Write(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{Output: output}

	assert.NoError(tc.Write('H'))
	assert.NoError(tc.Write('i'))
	assert.NoError(tc.Write('\n'))
	assert.Equal("Hi\n", output.String())

	err := tc.Write(0x80)
	assert.ErrorIs(err, ErrCharInvalid)
	assert.Equal(ErrChar(0x80), err)
	assert.Equal("Hi\n", output.String())
}

func TestTape_WriteCrlf(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{Output: output, Crlf: true}

	assert.NoError(tc.Write('x'))
	assert.NoError(tc.Write('\n'))
	assert.Equal("x\r\n", output.String())
}

func TestTape_WriteFlush(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	buffered := bufio.NewWriterSize(output, 64)
	tc := &Tape{Output: buffered}

	assert.NoError(tc.Write('A'))
	assert.Equal("A", output.String())
	assert.Equal(0, buffered.Buffered())
}

func TestTape_WriteDiscard(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{}
	assert.NoError(tc.Write('A'))
	assert.ErrorIs(tc.Write(0xc0), ErrCharInvalid)
}

type failWriter struct{}

func (fw failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestTape_WriteError(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{Output: failWriter{}}
	assert.ErrorIs(tc.Write('A'), ErrOutput)
}

func TestTape_Read(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{
		Input:  bytes.NewReader([]byte{'o', 'k', '\r', 0x7f, 0x1b, 0x00}),
		Output: output,
	}

	expected := []byte{'o', 'k', '\n', KEY_BACKSPACE, KEY_ESCAPE, KEY_NONE}
	for _, want := range expected {
		value, err := tc.Read()
		assert.NoError(err)
		assert.Equal(want, value)
	}

	// Every character read is echoed.
	assert.Equal(expected, output.Bytes())

	_, err := tc.Read()
	assert.ErrorIs(err, ErrInputClosed)
}

func TestTape_ReadOneByte(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{Input: iotest.OneByteReader(bytes.NewReader([]byte("ab")))}

	value, err := tc.Read()
	assert.NoError(err)
	assert.Equal(byte('a'), value)

	value, err = tc.Read()
	assert.NoError(err)
	assert.Equal(byte('b'), value)
}

func TestTape_ReadInterrupt(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{
		Input:  bytes.NewReader([]byte{0x03, 'x'}),
		Output: output,
	}

	_, err := tc.Read()
	assert.ErrorIs(err, ErrInterrupt)
	assert.Equal(0, output.Len())
}

func TestTape_ReadUnknown(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tc := &Tape{Input: bytes.NewReader([]byte("é!")), Output: output}

	for _, want := range []byte{KEY_NONE, KEY_NONE, '!'} {
		value, err := tc.Read()
		assert.NoError(err)
		assert.Equal(want, value)
	}

	assert.Equal([]byte{0x00, 0x00, '!'}, output.Bytes())
}

func TestTape_ReadError(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{Input: iotest.ErrReader(errors.New("unplugged"))}

	_, err := tc.Read()
	assert.ErrorIs(err, ErrInput)

	tc = &Tape{}
	_, err = tc.Read()
	assert.ErrorIs(err, ErrInputClosed)
}

func TestTape_Defines(t *testing.T) {
	assert := assert.New(t)

	tc := &Tape{}
	defines := map[string]string{}
	for key, val := range tc.Defines() {
		defines[key] = val
	}

	assert.Equal("0x8", defines["KEY_BACKSPACE"])
	assert.Equal("0x1b", defines["KEY_ESCAPE"])
	assert.Equal("0x0", defines["KEY_NONE"])
}
