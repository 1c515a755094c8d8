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

// Package pqinspect is the orchestrator (C9) and the components it wires
// together: the active-node locator (C3), the invoke-expression inspector
// (C8), the scope resolver bridge to pqscope (C4), the type inspector (C5),
// the expected-type walker (C6), and the autocomplete resolver (C7).
package pqinspect

import (
	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqerrors"
	"github.com/pqlang/pqinspect/pqscope"
	"github.com/pqlang/pqinspect/pqtype"
	"github.com/pqlang/pqinspect/position"
)

// CancellationToken lets a caller abort a long-running Inspect call between
// components; it is polled, never pushed (checked at the start of
// each component, not mid-component).
type CancellationToken interface {
	IsCancelled() bool
}

// noCancellation is the zero-value token: Inspect never aborts.
type noCancellation struct{}

func (noCancellation) IsCancelled() bool { return false }

// CommonSettings configures one Inspect call.
type CommonSettings struct {
	// Cancellation is polled before each component; nil means never cancel.
	Cancellation CancellationToken
	// Locale selects the message-template set a failed component's Result
	// is rendered under (pqerrors.Localize); the zero value renders under
	// the default (English) templates.
	Locale string
}

// Result wraps one component's outcome: every field of Inspection
// succeeds or fails independently of its siblings.
type Result[T any] struct {
	Value T
	Err   error
	// Message is Err localized under the call's CommonSettings.Locale; the
	// empty string when Err is nil.
	Message string
}

// Ok reports whether this component completed without error.
func (r Result[T]) Ok() bool { return r.Err == nil }

func ok[T any](v T) Result[T] { return Result[T]{Value: v} }

func failed[T any](err error, locale string) Result[T] {
	return Result[T]{Err: err, Message: localizedMessage(err, locale)}
}

// localizedMessage renders err under locale via pqerrors.Localize when it
// carries the structured Msg() a template lookup needs, falling back to
// err.Error() for any other error value.
func localizedMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	if pe, ok := err.(pqerrors.Error); ok {
		return pqerrors.Localize(locale, pe)
	}
	return err.Error()
}

// Inspection is the full result of one Inspect call: one Result per
// component, each independently successful or failed.
type Inspection struct {
	ActiveNode       Result[*ActiveNode]
	Autocomplete     Result[Autocomplete]
	InvokeExpression Result[*InvokeExpression]
	NodeScope        Result[pqscope.NodeScope]
	ScopeType        Result[map[string]pqtype.Type]
	ExpectedType     Result[pqtype.Type]
}

// TypeOfNode computes the type of an arbitrary node, independent of any
// caret position. A caller walking a NodeScope returned by Inspect feeds
// each ScopeItem's Value node through this to answer "what type is this
// binding" for every name in scope, not just the one the caret sits on.
func TypeOfNode(collection *pqast.Collection, caches *Caches, node pqast.XorNode, settings CommonSettings) Result[pqtype.Type] {
	if caches == nil {
		caches = NewCaches()
	}
	token := settings.Cancellation
	if token == nil {
		token = noCancellation{}
	}
	return runComponent(collection, caches, token, settings.Locale, func(s *session) (pqtype.Type, error) {
		return s.typeOf(node)
	})
}

// Inspect runs the full inspection pipeline at caret against collection,
// reusing and extending caches (caches persist across calls on the
// same document version; pass a fresh *Caches for a new document). Each
// component's delta is merged into caches only if that component itself
// succeeds; a failure in one component never corrupts another's cached
// results.
func Inspect(collection *pqast.Collection, caret position.Position, caches *Caches, settings CommonSettings) Inspection {
	if caches == nil {
		caches = NewCaches()
	}
	token := settings.Cancellation
	if token == nil {
		token = noCancellation{}
	}

	locale := settings.Locale

	var inspection Inspection

	activeNode, err := LocateActiveNode(collection, caret)
	if err != nil {
		inspection.ActiveNode = failed[*ActiveNode](err, locale)
	} else {
		inspection.ActiveNode = ok(activeNode)
	}
	if token.IsCancelled() {
		return cancelRemaining(inspection, locale)
	}

	inspection.InvokeExpression = runComponent(collection, caches, token, locale, func(s *session) (*InvokeExpression, error) {
		return s.InspectInvokeExpression(activeNode)
	})

	var leafId pqast.NodeId
	hasLeaf := false
	if activeNode != nil {
		if leaf, found := activeNode.Leaf(); found {
			leafId, hasLeaf = leaf.Id(), true
		}
	}

	inspection.NodeScope = runComponent(collection, caches, token, locale, func(s *session) (pqscope.NodeScope, error) {
		if !hasLeaf {
			return pqscope.NodeScope{}, nil
		}
		return s.scopeOf(leafId)
	})

	inspection.ScopeType = runComponent(collection, caches, token, locale, func(s *session) (map[string]pqtype.Type, error) {
		scope := inspection.NodeScope.Value
		types := make(map[string]pqtype.Type, len(scope))
		for name, item := range scope {
			t, err := s.typeOfScopeItem(item)
			if err != nil {
				return nil, err
			}
			types[name] = t
		}
		return types, nil
	})

	inspection.ExpectedType = runComponent(collection, caches, token, locale, func(s *session) (pqtype.Type, error) {
		return s.ExpectedType(activeNode)
	})

	inspection.Autocomplete = runComponent(collection, caches, token, locale, func(s *session) (Autocomplete, error) {
		return s.Autocomplete(activeNode)
	})

	return inspection
}

// runComponent polls the cancellation token, then runs fn against a fresh
// session scoped to just this one component call -- its given maps are
// read from caches, its delta maps start empty -- and merges that delta
// back into caches only when fn succeeds: a failed component
// never leaves partial entries for a later component to pick up.
func runComponent[T any](collection *pqast.Collection, caches *Caches, token CancellationToken, locale string, fn func(*session) (T, error)) Result[T] {
	if token.IsCancelled() {
		return failed[T](&pqerrors.CancellationError{}, locale)
	}
	s := newSession(collection, caches)
	v, err := fn(s)
	if err != nil {
		return failed[T](err, locale)
	}
	s.commit(caches)
	return ok(v)
}

func cancelRemaining(inspection Inspection, locale string) Inspection {
	err := &pqerrors.CancellationError{}
	inspection.Autocomplete = failed[Autocomplete](err, locale)
	inspection.InvokeExpression = failed[*InvokeExpression](err, locale)
	inspection.NodeScope = failed[pqscope.NodeScope](err, locale)
	inspection.ScopeType = failed[map[string]pqtype.Type](err, locale)
	inspection.ExpectedType = failed[pqtype.Type](err, locale)
	return inspection
}
