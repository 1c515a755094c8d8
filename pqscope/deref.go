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

package pqscope

import "github.com/pqlang/pqinspect/pqast"

// Dereference resolves an identifier reference to the ScopeItem it
// ultimately names: look up name in scope; if found and its
// Recursive flag matches inclusive (the identifier's own "@"-prefix
// flag), chase single-step KeyValuePair/SectionMember assignments so long
// as the value is itself a bare identifier, stopping at the first
// non-identifier value, an undefined binding, or a repeated node id (a
// cycle, which returns the originally-found item unchanged rather than
// looping forever).
//
// ok is false only when name is not in scope at all -- an unresolved name
// is not an error: it may
// be an external binding, never a thrown exception.
func Dereference(scope NodeScope, name string, inclusive bool, identOf func(pqast.XorNode) (string, bool, bool)) (ScopeItem, bool) {
	item, ok := scope[name]
	if !ok {
		return ScopeItem{}, false
	}
	if item.Recursive != inclusive {
		return item, true
	}

	original := item
	visited := map[int]bool{}
	current := item

	for {
		if current.Kind != ItemKeyValuePair && current.Kind != ItemSectionMember {
			return current, true
		}
		if current.Value == nil {
			return current, true
		}
		if visited[int(current.Id)] {
			return original, true
		}
		visited[int(current.Id)] = true

		nextName, nextInclusive, isIdent := identOf(*current.Value)
		if !isIdent {
			return current, true
		}
		next, found := scope[nextName]
		if !found {
			return current, true
		}
		if next.Recursive != nextInclusive {
			return next, true
		}
		current = next
	}
}
