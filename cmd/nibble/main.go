// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/emulator"
	"github.com/ezrec/nibble/io"
	"github.com/ezrec/nibble/translate"
)

// rawMode decides if the terminal should be placed in raw mode.
func rawMode(mode string, fd int) (raw bool, err error) {
	switch mode {
	case "auto":
		raw = term.IsTerminal(fd)
	case "on":
		raw = true
	case "off":
		raw = false
	default:
		err = errors.New(translate.From("-raw %v: expected auto, on, or off", mode))
	}
	return
}

func main() {
	var isaName string
	var verbose bool
	var until string
	var trace string
	var raw string
	var list bool

	flag.StringVar(&isaName, "isa", cpu.ISA_RICH.Name, "Instruction set (rich, minimal)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&until, "until", "", "Stop when the watch expression is true")
	flag.StringVar(&trace, "trace", "", "Log each instruction where the watch expression is true")
	flag.StringVar(&raw, "raw", "auto", "Raw terminal input (auto, on, off)")
	flag.BoolVar(&list, "l", false, "List the image disassembly, do not execute")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	filename := flag.Arg(0)

	isa, err := cpu.LookupIsa(isaName)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	image, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	if list {
		prog := &cpu.Program{Isa: isa, Data: image}
		fmt.Print(prog.String())
		return
	}

	emu := emulator.NewEmulator(isa)
	emu.Verbose = verbose

	err = emu.Load(image)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	if len(until) != 0 {
		emu.Until, err = emu.Watch(until)
		if err != nil {
			log.Fatalf("-until: %v", err)
		}
	}

	if len(trace) != 0 {
		emu.Trace, err = emu.Watch(trace)
		if err != nil {
			log.Fatalf("-trace: %v", err)
		}
	}

	fd := int(os.Stdin.Fd())
	is_raw, err := rawMode(raw, fd)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	restore := func() {}
	if is_raw {
		state, err := term.MakeRaw(fd)
		if err != nil {
			log.Fatalf("%v: raw mode: %v", os.Args[0], err)
		}
		restore = func() {
			term.Restore(fd, state)
		}
		emu.Tape.Crlf = true
	}

	output := bufio.NewWriter(os.Stdout)
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = output

	err = emu.Run()

	output.Flush()
	restore()

	switch {
	case err == nil:
		if verbose {
			log.Printf("%v: halted after %v instructions", filename, emu.Ticks())
		}
	case errors.Is(err, emulator.ErrBreak):
		log.Printf("%v: stopped at %04x after %v instructions\n%v",
			filename, emu.Ip(), emu.Ticks(), emu.Cpu.String())
	case errors.Is(err, io.ErrInterrupt):
		os.Exit(130)
	default:
		log.Fatalf("%v: %v", filename, err)
	}
}
