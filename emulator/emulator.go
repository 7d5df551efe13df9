// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator attaches the console and the watch expressions to a
// nibble CPU, and drives it until it halts.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/internal"
	"github.com/ezrec/nibble/io"
	"github.com/ezrec/nibble/monitor"
)

var _emulator_defines = map[string]string{
	"REG_COUNT": fmt.Sprintf("%v", cpu.REG_COUNT),
}

// Emulator state. CPU + console + watches.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // The loaded image.

	Tape io.Tape // Console attached to the device port.

	Until *monitor.Watch // If set, stop when the watch is true.
	Trace *monitor.Watch // If set, log each instruction where the watch is true.
}

// NewEmulator creates a new emulator running an instruction set.
// A nil isa selects cpu.ISA_RICH.
func NewEmulator(isa *cpu.InstructionSet) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(isa),
	}

	emu.Program = &cpu.Program{Isa: emu.Cpu.Isa}
	emu.Cpu.Port = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines, ordered by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Sorted(internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Tape.Defines(),
	))
}

// Watch compiles a watch expression, with the emulator defines visible.
func (emu *Emulator) Watch(expr string) (w *monitor.Watch, err error) {
	return monitor.NewWatch(expr, emu.Defines())
}

// Load resets the machine, and loads an image at address 0.
func (emu *Emulator) Load(image []byte) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	emu.Program = &cpu.Program{Isa: emu.Cpu.Isa, Data: image}

	if emu.Verbose {
		log.Printf("emulator: loaded %v bytes (%v)", len(image), emu.Cpu.Isa.Name)
	}

	return
}

// Listing returns a listing of live memory, including code written at
// runtime.
func (emu *Emulator) Listing() *cpu.Program {
	return &cpu.Program{Isa: emu.Cpu.Isa, Data: emu.Cpu.Memory[:]}
}

// Ticks returns the total instructions executed since the last load.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() uint16 {
	return emu.Cpu.Registers.Ip
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted, or the Until watch triggers; in
// the latter case err is ErrBreak.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	ip := emu.Ip()
	defer func() {
		if err != nil && !errors.Is(err, ErrBreak) {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if emu.Trace != nil {
		var hit bool
		hit, err = emu.Trace.Eval(emu.Cpu)
		if err != nil {
			return
		}
		if hit {
			log.Printf("trace: %v ; %v", emu.Listing().Debug(ip), emu.Cpu.Registers.String())
		}
	}

	if emu.Until != nil {
		var hit bool
		hit, err = emu.Until.Eval(emu.Cpu)
		if err != nil {
			return
		}
		if hit {
			done = true
			err = ErrBreak
			return
		}
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until it is done, or fails.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
