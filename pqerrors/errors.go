// Copyright 2024 The pqinspect Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pqerrors defines the two error kinds the inspection core can
// raise: InvariantError, for programmer/logic bugs such as a missing node
// id or a node kind the grammar forbids at a given slot, and
// CancellationError, for a cancellation token that fired mid-walk.
//
// There is deliberately no error kind for "unknown type" or "unresolved
// identifier": those are total results (Unknown, Undefined), not failures.
package pqerrors

import (
	"errors"
	"fmt"

	"github.com/kr/pretty"
)

// Error is implemented by both error kinds. Msg follows the
// format-string-plus-args shape so a caller can localize the message
// without re-parsing a pre-rendered string.
type Error interface {
	error
	Msg() (format string, args []interface{})
}

// InvariantError reports a broken internal invariant: a reference to a
// node id absent from the collection, an unexpected node kind at a slot
// the grammar forbids, a dereference cycle that should be unreachable, and
// so on. It is always a programmer error, never a consequence of the input
// document being malformed.
type InvariantError struct {
	Reason string
	Args   []interface{}
	// Details carries structured context for diagnostics (the node id,
	// the offending kind, the expected kinds, ...). It is rendered with
	// kr/pretty rather than fmt's default verb so nested slices/maps stay
	// readable.
	Details map[string]interface{}
}

// NewInvariantf builds an InvariantError from a reason format string and
// its arguments, carrying no extra diagnostic details.
func NewInvariantf(format string, args ...interface{}) *InvariantError {
	return &InvariantError{Reason: format, Args: args}
}

// WithDetails attaches structured diagnostic context and returns the
// receiver for chaining at the call site.
func (e *InvariantError) WithDetails(details map[string]interface{}) *InvariantError {
	e.Details = details
	return e
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf(e.Reason, e.Args...)
	if len(e.Details) == 0 {
		return "pqinspect: invariant violated: " + msg
	}
	return fmt.Sprintf("pqinspect: invariant violated: %s (%s)", msg, pretty.Sprint(e.Details))
}

func (e *InvariantError) Msg() (string, []interface{}) { return e.Reason, e.Args }

// CancellationError reports that the caller's cancellation token fired
// while a component was mid-walk. No partial cache mutation is observable
// when this is returned: deltas are merged only on a clean pass.
type CancellationError struct{}

func (e *CancellationError) Error() string { return "pqinspect: cancelled" }

func (e *CancellationError) Msg() (string, []interface{}) { return "cancelled", nil }

// IsCancellation reports whether err is (or wraps) a CancellationError.
func IsCancellation(err error) bool {
	var ce *CancellationError
	return errors.As(err, &ce)
}
