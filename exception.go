package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exception is a runtime type error raised while walking an expression
// tree: a missing variable, an out-of-range function argument, a
// non-integer where an integer was required, and so on. It propagates by
// panic/recover the same way the teacher's vmHaltError propagates a fatal
// VM condition, except it's caught at the statement boundary rather than
// aborting the whole process -- one bad expression stops one statement.
//
// Err carries the same message wrapped through github.com/pkg/errors,
// which records the Go call stack at the point the Exception was raised;
// --trace formats it with "%+v" so a trace log shows the originating frame
// without this package inventing its own error-wrapping scheme.
type Exception struct {
	Msg string
	Err error
}

func (e Exception) Error() string { return e.Msg }
func (e Exception) Unwrap() error { return e.Err }

// raise aborts the current evaluation with an Exception; recovered by
// (*Interp).evaluate and by step's top-level recover.
func raise(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(Exception{Msg: msg, Err: errors.New(msg)})
}

// recoverException turns a panicking Exception back into a normal
// (Value, error) pair. Any other panic value is re-raised: it isn't ours
// to swallow.
func recoverException(errp *error) {
	if r := recover(); r != nil {
		if exc, ok := r.(Exception); ok {
			*errp = exc
			return
		}
		panic(r)
	}
}
