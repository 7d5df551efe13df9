// Package monitor evaluates watch expressions against the state of a
// running nibble CPU.
//
// A watch is a Starlark expression, such as `ip == 0x20 and r0 != 0`.
// The registers are predeclared as integers (ip, rp, r0, r1, r2, r3),
// along with `halted`, `ticks`, the builtin `mem(addr)` which reads
// storage without touching the device port, and any defines supplied
// when the watch is created.
package monitor

import (
	"iter"
	"slices"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nibble/cpu"
)

const MAX_STEPS = 100_000 // Starlark execution steps allowed per evaluation.

// Names of the machine state visible to a watch.
var _state_names = []string{
	"ip", "rp",
	cpu.REG_R0.String(), cpu.REG_R1.String(), cpu.REG_R2.String(), cpu.REG_R3.String(),
	"halted", "ticks", "mem",
}

// Watch is a compiled watch expression.
type Watch struct {
	Expr string

	defines starlark.StringDict
	program *starlark.Program
}

// NewWatch compiles a watch on an expression. Defines that are integer
// literals become predeclared constants; others are ignored.
// Syntax errors and unknown names are reported here; errors that depend
// on machine state are reported by Eval.
func NewWatch(expr string, defines iter.Seq2[string, string]) (w *Watch, err error) {
	defer func() {
		if err != nil {
			w = nil
			err = &ErrWatch{Expr: expr, Err: err}
		}
	}()

	w = &Watch{
		Expr:    expr,
		defines: starlark.StringDict{},
	}

	if defines != nil {
		for key, str := range defines {
			v64, perr := strconv.ParseInt(str, 0, 64)
			if perr != nil {
				continue
			}
			w.defines[key] = starlark.MakeInt64(v64)
		}
	}

	opts := syntax.FileOptions{}
	src := "rc = (" + expr + "\n)\n"
	_, w.program, err = starlark.SourceProgramOptions(&opts, "watch", src, w.isPredeclared)

	return
}

// isPredeclared reports if a name is provided by env().
func (w *Watch) isPredeclared(name string) bool {
	return w.defines.Has(name) || slices.Contains(_state_names, name)
}

// env returns the predeclared names for the state of cp.
func (w *Watch) env(cp *cpu.Cpu) starlark.StringDict {
	env := starlark.StringDict{}
	for key, val := range w.defines {
		env[key] = val
	}

	rf := &cp.Registers
	env["ip"] = starlark.MakeInt(int(rf.Ip))
	env["rp"] = starlark.MakeInt(int(rf.Rp))
	for n, val := range rf.R {
		env[cpu.CodeReg(n).String()] = starlark.MakeInt(int(val))
	}
	env["halted"] = starlark.Bool(cp.Halted)
	env["ticks"] = starlark.MakeInt(cp.Ticks)
	env["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return nil, err
		}
		if addr < 0 || addr >= len(cp.Memory) {
			return nil, ErrAddress(addr)
		}
		return starlark.MakeInt(int(cp.Memory[addr])), nil
	})

	return env
}

// Eval evaluates the watch against the state of cp, returning the
// truth value of the expression.
func (w *Watch) Eval(cp *cpu.Cpu) (hit bool, err error) {
	thread := &starlark.Thread{Name: "watch"}
	thread.SetMaxExecutionSteps(MAX_STEPS)

	globals, err := w.program.Init(thread, w.env(cp))
	if err != nil {
		err = &ErrWatch{Expr: w.Expr, Err: err}
		return
	}

	hit = bool(globals["rc"].Truth())
	return
}
