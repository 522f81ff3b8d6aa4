// Package errors provides error handling for quint.
//
// This package re-exports github.com/cockroachdb/errors and declares the
// sentinel errors every quint operation reports through:
//
//	ErrNotFound          - a referenced holon does not exist
//	ErrInvalidArgument   - an enum value is outside its allowed set
//	ErrIllegalTransition - the hypothesis layer does not permit the action
//	ErrStoreFailure      - the record store could not be opened, read or written
//
// Wrap a sentinel to add context while keeping it checkable:
//
//	return errors.Wrapf(errors.ErrNotFound, "hypothesis %q", id)
//
// and attach a user-facing suggestion with WithHint.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
	GetStack     = crdb.GetReportableStackTrace
)

// Sentinel errors. Use errors.Is to classify a failure.
var (
	// ErrNotFound indicates the referenced holon does not exist in the store
	ErrNotFound = New("not found")

	// ErrInvalidArgument indicates a caller-supplied value outside the allowed set
	ErrInvalidArgument = New("invalid argument")

	// ErrIllegalTransition indicates the current layer does not allow the action
	ErrIllegalTransition = New("illegal state transition")

	// ErrStoreFailure indicates the record store is unavailable or a write failed
	ErrStoreFailure = New("store failure")
)

// StoreFailure marks err as a store failure while keeping its message.
// A nil err stays nil.
func StoreFailure(err error, op string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, op), ErrStoreFailure)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidArgument reports whether err is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsIllegalTransition reports whether err is or wraps ErrIllegalTransition.
func IsIllegalTransition(err error) bool {
	return err != nil && Is(err, ErrIllegalTransition)
}

// IsStoreFailure reports whether err is or wraps ErrStoreFailure.
func IsStoreFailure(err error) bool {
	return err != nil && Is(err, ErrStoreFailure)
}

// Kind returns the sentinel err belongs to, or nil when it matches none.
func Kind(err error) error {
	for _, sentinel := range []error{ErrNotFound, ErrInvalidArgument, ErrIllegalTransition, ErrStoreFailure} {
		if Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
