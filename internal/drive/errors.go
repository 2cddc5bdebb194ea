package drive

import (
	"errors"
	"fmt"
)

// Domain errors for drive operations.
var (
	// ErrConfiguration indicates limits that cannot describe a usable motor range.
	ErrConfiguration = errors.New("drive: invalid configuration")

	// ErrInvalidInput indicates a symbol outside the five drive commands.
	ErrInvalidInput = errors.New("drive: invalid input")

	// ErrInternalConsistency indicates a transition produced an impossible
	// track pair. It is a defect in the controller, never a caller mistake.
	ErrInternalConsistency = errors.New("drive: internal consistency check failed")
)

// InputError reports a rejected symbol or symbol name.
type InputError struct {
	Symbol Symbol
	Token  string
}

func (e *InputError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: unknown command %q", ErrInvalidInput, e.Token)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Symbol)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// ConsistencyError records the transition that broke the track invariants.
type ConsistencyError struct {
	Symbol Symbol
	Left   int
	Right  int
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s after %s (left=%d right=%d)",
		ErrInternalConsistency, e.Reason, e.Symbol, e.Left, e.Right)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInternalConsistency
}
