/*
Copyright © 2026 the HFire authors.
This file is part of HFire.

HFire is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HFire is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HFire.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package herr defines the error taxonomy that every HFire package reports
// through: a small set of Kinds that cmd/ binaries map to process exit
// codes and a single stderr line.
package herr

import (
	"errors"
	"fmt"
)

// Kind classifies an error the way spec section 7 requires.
type Kind int

const (
	// Internal marks an invariant violation that should be unreachable.
	Internal Kind = iota
	// Usage marks a missing required argument or unknown flag.
	Usage
	// Io marks a file that could not be opened or read.
	Io
	// Parse marks a malformed table, missing header, or bad column count.
	Parse
	// Config marks a _TYPE value, or other configuration key, with no
	// matching variant.
	Config
	// Numeric marks a degenerate fuel bed, invalid moisture, or other
	// out-of-domain numeric input.
	Numeric
	// NotFound marks a fuel model number absent from its FMD file.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case Io:
		return "io"
	case Parse:
		return "parse"
	case Config:
		return "config"
	case Numeric:
		return "numeric"
	case NotFound:
		return "not found"
	default:
		return "internal"
	}
}

// Error is the concrete error type returned by every HFire package. Context
// is free-form — a file path, an offending line, or a configuration key —
// and is rendered alongside the message.
type Error struct {
	Kind    Kind
	Context string
	Msg     string
	Cause   error
}

// New builds an Error with no wrapped cause.
func New(kind Kind, context, msg string) *Error {
	return &Error{Kind: kind, Context: context, Msg: msg}
}

// Wrap builds an Error that wraps cause, preserving it for errors.Is/As.
func Wrap(kind Kind, context, msg string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Msg: msg, Cause: cause}
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Context)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ExitCode maps a Kind to the process exit code specified in spec section 6.
func (k Kind) ExitCode() int {
	switch k {
	case Usage:
		return 1
	case Io:
		return 2
	case Parse:
		return 3
	case Numeric, Config, NotFound:
		return 4
	default:
		return 4
	}
}

// ExitCode maps any error to its process exit code: an *Error's own Kind, or
// Usage's code for an untyped error (cobra's own flag-parsing failures,
// which never wrap an *Error).
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.ExitCode()
	}
	return Usage.ExitCode()
}
