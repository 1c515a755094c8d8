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

import "github.com/pqlang/pqinspect/pqast"

// identifierLiteral extracts (name, inclusive, ok) from a bare Identifier
// node or an IdentifierExpression wrapping one; ok is false for anything
// else.
func identifierLiteral(c *pqast.Collection, xor pqast.XorNode) (string, bool, bool) {
	switch xor.NodeKind() {
	case pqast.KindIdentifier:
		n, ok := xor.Ast()
		if !ok {
			return "", false, false
		}
		return n.IdentifierLiteral, n.IdentifierInclusive, true

	case pqast.KindIdentifierExpression:
		inner, found, err := c.ChildByAttributeIndex(xor.Id(), 0, pqast.KindIdentifier)
		if err != nil || !found {
			return "", false, false
		}
		n, ok := inner.Ast()
		if !ok {
			return "", false, false
		}
		return n.IdentifierLiteral, n.IdentifierInclusive, true

	default:
		return "", false, false
	}
}
