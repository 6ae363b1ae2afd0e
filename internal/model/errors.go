package model

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable signals that an external scoring capability
// (entailment classifier or similarity scorer) cannot be reached or
// initialized. Fatal for the whole run; the engine never falls back to
// a default score.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// CapabilityError wraps a failure of a named capability during one
// evaluation, carrying the category so the caller can log and halt.
type CapabilityError struct {
	Capability string // "nli" or "embed"
	Category   string
	Err        error
}

func (e *CapabilityError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("%s capability: %v", e.Capability, e.Err)
	}
	return fmt.Sprintf("%s capability (category %q): %v", e.Capability, e.Category, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// MalformedOutputError reports a classifier distribution that failed
// boundary validation (non-finite, negative, or non-normalized).
// Fatal for that single evaluation; never silently coerced.
type MalformedOutputError struct {
	Capability string
	Category   string
	Reason     error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed %s output (category %q): %v", e.Capability, e.Category, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Reason
}
