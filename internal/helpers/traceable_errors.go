package helpers

import (
	"strings"

	"github.com/ztrue/tracerr"
)

// Error carries one or more stack-traced errors. The zero value is NilError.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) IsNil() bool {
	return IsNil(e)
}

func (e Error) Error() string {
	lines := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "; ")
}

// String includes source snippets for every stack frame, for debugging output.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSource(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

func (e Error) Unwrap() []error {
	result := make([]error, 0, len(e.errs))
	for _, err := range e.errs {
		result = append(result, err.Unwrap())
	}
	return result
}

func (e Error) NumErrors() int {
	return len(e.errs)
}

func Wrap(err error) Error {
	if IsNil(err) {
		return NilError
	}
	if traceableErr, ok := err.(Error); ok {
		return traceableErr
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func Join(others ...Error) Error {
	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	if len(result.errs) == 0 {
		return NilError
	}
	return result
}
