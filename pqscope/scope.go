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

// Package pqscope implements the lexical-scope resolver: a
// top-down walk of a node's ancestry that materialises which names are in
// scope at that node, tagged with the construct that introduced them.
package pqscope

import (
	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqtype"
)

// ItemKind discriminates the ScopeItem sum type.
type ItemKind int

const (
	ItemEach ItemKind = iota
	ItemKeyValuePair
	ItemParameter
	ItemSectionMember
	ItemUndefined
)

// ScopeItem describes why a name is in scope. Only the fields relevant to
// its Kind are populated; the rest are zero.
type ScopeItem struct {
	Kind      ItemKind
	Id        pqast.NodeId
	Recursive bool

	// ItemEach
	EachExpression pqast.XorNode

	// ItemKeyValuePair / ItemSectionMember
	Key   string
	Value *pqast.XorNode // nil if the binding has no value yet (partial document)

	// ItemParameter
	Name          string
	Optional      bool
	Nullable      bool
	PrimitiveType *pqtype.Kind

	// ItemUndefined
	XorNode pqast.XorNode
}

// NodeScope maps names in scope to the item that introduced them. Later
// insertions win on key collision, matching source-order shadowing.
type NodeScope map[string]ScopeItem

// Clone returns a shallow copy suitable for extending without mutating the
// scope the caller passed in.
func (s NodeScope) Clone() NodeScope {
	clone := make(NodeScope, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// ScopeById memoises NodeScope by node id across an inspection pass.
type ScopeById map[pqast.NodeId]NodeScope
