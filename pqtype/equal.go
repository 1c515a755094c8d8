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

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b are structurally equal: a type computed
// once, cached, and recomputed later from a fresh cache should compare
// equal to its earlier self.
//
// Field maps compare by content regardless of iteration order; the
// FieldOrder slices are compared too, since two Types built along
// different code paths but claiming the same field order should agree on
// it byte-for-byte, not just on the set of fields.
func Equal(a, b Type) bool {
	return cmp.Equal(a, b)
}
