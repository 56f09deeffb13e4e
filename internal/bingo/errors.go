package bingo

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientBoss                   = errors.New("insufficient boss resolutions")
	ErrInsufficientStandard               = errors.New("insufficient standard resolutions")
	ErrInsufficientStandardAfterExclusion = errors.New("insufficient standard resolutions after boss exclusion")

	ErrMalformedDocument  = errors.New("malformed document")
	ErrInvalidSquareCount = errors.New("invalid square count")
	ErrInvalidCellShape   = errors.New("invalid cell shape")
)

// ValidationError reports resolution lists that cannot produce a card.
// Msg is meant to be shown to the user as is.
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// ImportError reports an export document that was rejected before anything was applied.
type ImportError struct {
	Kind error
	Msg  string
}

func (e *ImportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *ImportError) Unwrap() error { return e.Kind }

func insufficientf(kind error, format string, args ...any) error {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func importf(kind error, format string, args ...any) error {
	return &ImportError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
