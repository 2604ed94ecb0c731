// Package errors models diagnostics the way cue/errors does: a small
// Error interface carrying a position, and an Errors aggregate that
// collects many of them. Nothing in this package aborts a provider;
// providers degrade to an empty result on failure. No other package in
// this module imports it.
package errors

import (
	"fmt"
	"strings"

	"github.com/liancheng/joule/protocol"
)

// Error is a single positioned diagnostic.
type Error interface {
	error
	Location() protocol.Location
}

type posError struct {
	loc protocol.Location
	msg string
}

func (e *posError) Error() string {
	return fmt.Sprintf("%s: %s", formatLocation(e.loc), e.msg)
}

func (e *posError) Location() protocol.Location { return e.loc }

// New builds a positioned Error.
func New(loc protocol.Location, format string, args ...any) Error {
	return &posError{loc: loc, msg: fmt.Sprintf(format, args...)}
}

func formatLocation(loc protocol.Location) string {
	return fmt.Sprintf("%s:%d:%d", loc.URI, loc.Range.Start.Line+1, loc.Range.Start.Character+1)
}

// Errors is an ordered aggregate of Error, itself satisfying error so it
// composes with ordinary Go error handling.
type Errors []Error

func (es Errors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Append adds err to errs, flattening a nested Errors rather than nesting
// aggregates.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	switch e := err.(type) {
	case Errors:
		return append(errs, e...)
	case Error:
		return append(errs, e)
	default:
		return append(errs, &posError{msg: err.Error()})
	}
}

// Is reports whether err (or any error in an Errors aggregate) has the
// given message, mirroring cue/errors.Is's shallow equality check for
// tests that assert a diagnostic was produced.
func Is(err error, target error) bool {
	if err == nil || target == nil {
		return err == target
	}
	if es, ok := err.(Errors); ok {
		for _, e := range es {
			if e.Error() == target.Error() {
				return true
			}
		}
		return false
	}
	return err.Error() == target.Error()
}

// Print writes every error in errs to sb, one per line, in the style cue
// cmd/cue uses for CLI diagnostic output.
func Print(sb *strings.Builder, errs Errors) {
	for _, e := range errs {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
}
