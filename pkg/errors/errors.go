// Package errors provides structured error reporting for the veneer
// runtime. Errors carry the failing operation and a category so hosts
// can decide what is fatal: configuration errors abort initialization,
// everything else is reported and the interaction loop continues.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates an invalid or missing configuration at startup.
	KindConfig
	// KindScript indicates a script runtime failure.
	KindScript
	// KindDispatch indicates an action handler failure.
	KindDispatch
	// KindInput indicates an input translation failure.
	KindInput
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScript:
		return "script"
	case KindDispatch:
		return "dispatch"
	case KindInput:
		return "input"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the veneer runtime.
type Error struct {
	// Op is the operation that failed (e.g. "script.LuaHandler.Handle").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Action is the action name being dispatched, if applicable.
	Action string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s [%s] action=%s: %v", e.Op, e.Kind, e.Action, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g. "runtime.PointerReleased").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
