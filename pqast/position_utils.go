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

package pqast

import "github.com/pqlang/pqinspect/position"

// IsBefore reports whether caret is before xor. For an AST node this uses
// the node's token range. For a context node with no tokens read yet,
// there is no "before" to speak of, so this reports false -- the caller
// must resolve the ambiguity explicitly.
func IsBefore(caret position.Position, xor XorNode, c *Collection) bool {
	if n, ok := xor.Ast(); ok {
		return position.IsBeforeRange(caret, n.TokenRange)
	}
	ctx, _ := xor.Context()
	if ctx.FirstToken == nil {
		return false
	}
	return position.IsBeforeToken(caret, *ctx.FirstToken)
}

// IsAfter reports whether caret is after xor. For an AST node this uses
// the node's token range. For a context node this uses the right-most
// completed leaf under it, since a context node's own end is not yet
// known; an empty context node (no descendant leaf) reports false.
func IsAfter(caret position.Position, xor XorNode, c *Collection) bool {
	if n, ok := xor.Ast(); ok {
		return position.IsAfterRange(caret, n.TokenRange)
	}
	leaf, found, err := c.RightMostLeaf(xor.Id())
	if err != nil || !found {
		return false
	}
	return position.IsAfterRange(caret, leaf.TokenRange)
}

// IsOn reports whether caret lands on xor: neither strictly before nor
// strictly after it. A context node with no tokens read yet is
// simultaneously "on" by this definition (neither before nor after
// resolves positively) -- callers in the active-node locator special-case
// this rather than treating it as an ordinary "on".
func IsOn(caret position.Position, xor XorNode, c *Collection) bool {
	return !IsBefore(caret, xor, c) && !IsAfter(caret, xor, c)
}

// IsAtContextStart reports whether caret sits exactly on a context node's
// first token position. Upstream components (autocomplete, expected-type)
// use this to decide whether to defer a decision to the enclosing node.
func IsAtContextStart(caret position.Position, xor XorNode) bool {
	ctx, ok := xor.Context()
	if !ok || ctx.FirstToken == nil {
		return false
	}
	return caret.Compare(*ctx.FirstToken) == 0
}
