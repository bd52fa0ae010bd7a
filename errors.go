// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package xdd

import (
	"errors"
	"fmt"
	"log"
)

// ErrorKind categorizes the errors a factory can return, so callers (and
// test suites) can assert on kind rather than on message text.
type ErrorKind uint8

const (
	// CapacityExceeded: the node-index width cannot address a new node.
	CapacityExceeded ErrorKind = iota
	// VariableOutOfRange: a variable argument is not in [0, V).
	VariableOutOfRange
	// CrossFactoryEdge: an edge produced by one factory was passed to
	// another.
	CrossFactoryEdge
	// UnsupportedOperation: a combinator was invoked on a carrier or
	// reduction kind missing the algebraic structure it requires (e.g.
	// Difference on a carrier without subtraction, or Not on a ZDD
	// without a universe size).
	UnsupportedOperation
)

func (k ErrorKind) String() string {
	switch k {
	case CapacityExceeded:
		return "CapacityExceeded"
	case VariableOutOfRange:
		return "VariableOutOfRange"
	case CrossFactoryEdge:
		return "CrossFactoryEdge"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	default:
		return "Error"
	}
}

// Error is the categorical error type returned by the public API. It
// wraps a plain diagnostic message so callers that only care about
// "something went wrong, log it" can still do so, while callers that
// need to branch on failure kind can use errors.As and inspect Kind.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Is compares kinds rather than identities when the target is a
// sentinelKind, the unexported adapter below that turns an ErrorKind
// into an error value. ErrorKind itself does not implement error, so
// callers outside the package branch on kind with errors.As and Kind.
func (e *Error) Is(target error) bool {
	var k sentinelKind
	if errors.As(target, &k) {
		return e.Kind == ErrorKind(k)
	}
	return false
}

type sentinelKind ErrorKind

func (s sentinelKind) Error() string { return ErrorKind(s).String() }

// newError builds a categorical error, logging it immediately when
// _DEBUG is enabled so the sequence of failures that led here shows up
// in trace output even though the Error value itself carries no chain.
func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	e := &Error{Kind: kind, msg: fmt.Sprintf(format, a...)}
	if _DEBUG {
		log.Println(e)
	}
	return e
}

// newError builds a categorical error exactly like the package-level
// newError, and additionally records it into f's own chained diagnostic
// history (Factory.Error/Errored) through its embedded diag, so a
// caller polling Errored after a long sequence of operations sees the
// most recent failure even if it discarded the returned error.
func (f *Factory[W]) newError(kind ErrorKind, format string, a ...interface{}) *Error {
	e := newError(kind, format, a...)
	f.seterror("%s", e.Error())
	return e
}

// diag holds a chained diagnostic message, independent of any one
// categorical Error, for factories that want a running history of
// everything that went wrong during a long sequence of operations.
type diag struct {
	last error
}

func (d *diag) seterror(format string, a ...interface{}) {
	if d.last != nil {
		format = format + "; " + d.last.Error()
	}
	d.last = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(d.last)
	}
}

// Error returns the chained diagnostic history, or "" if nothing has
// gone wrong yet.
func (d *diag) Error() string {
	if d.last == nil {
		return ""
	}
	return d.last.Error()
}

// Errored reports whether any operation has recorded a diagnostic.
func (d *diag) Errored() bool {
	return d.last != nil
}
