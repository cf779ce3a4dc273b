package bmc

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NotFound is returned by Search when no property was newly reached.
	NotFound = -1
	// NotReached is the recorded bound of a property that has not been
	// reached.
	NotReached = -1
)

// ErrUsage matches every UsageError under errors.Is.
var ErrUsage = errors.New("invalid use of engine")

// UsageError reports a rejected call. The engine remains usable.
type UsageError struct {
	Op  string
	Msg string
}

func usagef(op, format string, args ...interface{}) *UsageError {
	return &UsageError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// BackendFailure reports a query at Bound that ended with neither a
// satisfiable nor an unsatisfiable answer.
type BackendFailure struct {
	Bound int
	Err   error
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("sat backend failed at bound %d: %v", e.Bound, e.Err)
}

func (e *BackendFailure) Unwrap() error {
	return e.Err
}

type inconsistentTranslation []error

func (inconsistentTranslation) Error() string {
	return "internal translation failure"
}

func (errs inconsistentTranslation) err() error {
	if len(errs) == 0 {
		return nil
	}
	s := make([]string, len(errs))
	for i, err := range errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
