package monitor

import (
	"github.com/ezrec/nibble/translate"
)

var f = translate.From

// ErrAddress reports a mem() address outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %v outside of memory", int(ea))
}

// ErrWatch reports the watch expression that failed.
type ErrWatch struct {
	Expr string
	Err  error
}

func (err *ErrWatch) Error() string {
	return f("watch '%v': %v", err.Expr, err.Err)
}

func (err *ErrWatch) Unwrap() error {
	return err.Err
}
