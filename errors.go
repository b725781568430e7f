package deadpool

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type poolClosedError struct {
	msg string
}

func (e *poolClosedError) Error() string { return e.msg }

// NewPoolClosedError creates a new error object to represent a
// submission to a pool that is no longer accepting jobs.
func NewPoolClosedError(msg string) error { return &poolClosedError{msg: msg} }

// NewPoolClosedErrorf creates a new pool closed error with a
// formatted message.
func NewPoolClosedErrorf(msg string, args ...interface{}) error {
	return NewPoolClosedError(fmt.Sprintf(msg, args...))
}

// MakePoolClosedError constructs a pool closed error from an existing
// error of any type.
func MakePoolClosedError(err error) error {
	if err == nil {
		return nil
	}

	return NewPoolClosedError(err.Error())
}

// IsPoolClosedError tests an error object to see if it reports a
// submission after the pool began shutting down.
func IsPoolClosedError(err error) bool {
	if err == nil {
		return false
	}

	_, ok := errors.Cause(err).(*poolClosedError)
	return ok
}

type jobPanicError struct {
	worker int
	cause  error
}

func (e *jobPanicError) Error() string {
	return fmt.Sprintf("job panicked on worker %d: %s", e.worker, e.cause)
}

func (e *jobPanicError) Cause() error { return e.cause }

// NewJobPanicError records a job that panicked while running on the
// given worker. Returns nil if err is nil.
func NewJobPanicError(worker int, err error) error {
	if err == nil {
		return nil
	}

	return &jobPanicError{worker: worker, cause: err}
}

type jobPanicErrors struct {
	errs []error
}

func (e *jobPanicErrors) Error() string {
	out := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		out = append(out, err.Error())
	}

	return strings.Join(out, "\n")
}

// Errors returns each recorded job failure, in the order they were
// collected.
func (e *jobPanicErrors) Errors() []error { return e.errs }

// MakeJobPanicErrors collects the failures of several jobs into one
// error that IsJobPanicError recognizes. Nil entries are ignored;
// returns nil if nothing remains.
func MakeJobPanicErrors(errs []error) error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return &jobPanicErrors{errs: out}
}

// IsJobPanicError reports whether the error records a job that
// panicked during execution, either alone or as part of a collection
// of job failures.
func IsJobPanicError(err error) bool {
	for err != nil {
		switch e := err.(type) {
		case *jobPanicError:
			return true
		case *jobPanicErrors:
			for _, inner := range e.errs {
				if IsJobPanicError(inner) {
					return true
				}
			}
			return false
		}

		c, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = c.Cause()
	}

	return false
}
