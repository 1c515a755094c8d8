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

package pqinspect

import (
	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqscope"
	"github.com/pqlang/pqinspect/pqtype"
)

// Caches holds the two persistent maps the orchestrator (C9) owns across
// calls on the same document version: scope-by-id and type-by-id.
// A caller may pass the same *Caches into a later call on the same
// document to reuse work; a fresh &Caches{} starts cold.
type Caches struct {
	ScopeById pqscope.ScopeById
	TypeById  TypeById
}

// NewCaches returns an empty, ready-to-use Caches.
func NewCaches() *Caches {
	return &Caches{ScopeById: pqscope.ScopeById{}, TypeById: TypeById{}}
}

// TypeById memoises the type computed for a node id.
type TypeById map[pqast.NodeId]pqtype.Type

// session threads a single component call's given/delta split: delta
// maps exist per call so a thrown invariant does not corrupt the
// persistent maps, plus the shared Collection.
type session struct {
	collection *pqast.Collection

	givenScope pqscope.ScopeById
	deltaScope pqscope.ScopeById

	givenType TypeById
	deltaType TypeById
}

func newSession(c *pqast.Collection, caches *Caches) *session {
	return &session{
		collection: c,
		givenScope: caches.ScopeById,
		deltaScope: pqscope.ScopeById{},
		givenType:  caches.TypeById,
		deltaType:  TypeById{},
	}
}

// commit merges this session's deltas into caches. Called only after a
// component completes without error: no partial cache mutation
// escapes a failed call.
func (s *session) commit(caches *Caches) {
	if caches.ScopeById == nil {
		caches.ScopeById = pqscope.ScopeById{}
	}
	if caches.TypeById == nil {
		caches.TypeById = TypeById{}
	}
	for id, scope := range s.deltaScope {
		caches.ScopeById[id] = scope
	}
	for id, t := range s.deltaType {
		caches.TypeById[id] = t
	}
}

// scopeOf returns the NodeScope visible at id, consulting delta then
// given: check the delta first, then the given, before resolving it
// fresh via pqscope.Resolve.
func (s *session) scopeOf(id pqast.NodeId) (pqscope.NodeScope, error) {
	if scope, ok := s.deltaScope[id]; ok {
		return scope, nil
	}
	if scope, ok := s.givenScope[id]; ok {
		return scope, nil
	}
	ancestry, err := s.collection.Ancestry(id)
	if err != nil {
		return nil, err
	}
	scope, err := pqscope.Resolve(s.collection, ancestry)
	if err != nil {
		return nil, err
	}
	s.deltaScope[id] = scope
	return scope, nil
}
