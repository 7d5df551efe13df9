// Package io provides the character devices that can be attached to the
// device port of the nibble CPU.
package io

import (
	"iter"
)

// Channel defines the interface for a device mapped at the CPU device port.
// Channels operate on single characters.
type Channel interface {
	// Read blocks until one input character is available, and returns it.
	Read() (value byte, err error)
	// Write emits a single character.
	Write(value byte) error
	// Defines returns the symbolic constants the channel exposes.
	Defines() iter.Seq2[string, string]
}
