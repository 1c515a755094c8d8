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

package pqtype

import (
	"fmt"
	"sort"

	"github.com/mpvl/unique"
)

// NewAnyUnion flattens members one level deep (a member that is itself an
// AnyUnion contributes its own members rather than nesting) and dedups by
// the (kind, extended-kind, nullable) triple, then sets Nullable to true if
// any surviving member, or any input member, is nullable.
func NewAnyUnion(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	anyNullable := false
	for _, m := range members {
		if m == nil {
			continue
		}
		anyNullable = anyNullable || m.IsNullable()
		if nested, ok := m.(AnyUnion); ok {
			flat = append(flat, nested.Members...)
			anyNullable = anyNullable || nested.Nullable
			continue
		}
		flat = append(flat, m)
	}

	flat = dedupByTriple(flat)

	if len(flat) == 1 {
		return WithNullable(flat[0], flat[0].IsNullable() || anyNullable)
	}
	return AnyUnion{Members: flat, Nullable: anyNullable}
}

// dedupByTriple sorts a snapshot of members by their (kind, extended-kind,
// nullable) key and removes duplicates, mirroring the sort-then-
// mpvl/unique.Sort idiom used elsewhere in the corpus for deduping slices
// without hand-rolling an O(n^2) scan.
func dedupByTriple(members []Type) []Type {
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = tripleKey(m)
	}

	data := &byTripleKey{items: members, keys: keys}
	sort.Sort(data)
	n := unique.Sort(data)
	return append([]Type(nil), data.items[:n]...)
}

// tripleKey renders the (kind, extended-kind, nullable) triple the
// invariant dedups on. The "extended-kind" component is just the Go
// concrete type name, which is sufficient granularity: two members can
// only collide on kind+nullable when they're also the same concrete
// shape, since e.g. a DefinedRecord and an open Primitive.Record never
// arise from the same inference path for the same node.
func tripleKey(t Type) string {
	return fmt.Sprintf("%T|%d|%t", t, t.Kind(), t.IsNullable())
}

type byTripleKey struct {
	items []Type
	keys  []string
}

func (b *byTripleKey) Len() int           { return len(b.items) }
func (b *byTripleKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b *byTripleKey) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
