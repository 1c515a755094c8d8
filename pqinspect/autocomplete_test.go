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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/pqlang/pqinspect/pqast"
)

func TestAutocompleteRequiresThenInsideIfExpression(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindIfExpression, 0, 10)
	addLeaf(c, 2, 1, 1, pqast.KindLiteralExpression, 3, 4, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "1"
	})

	leafXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	rootXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: []pqast.XorNode{leafXor, rootXor}, LeafKind: AfterAst, Position: pos(4)}

	s := newSession(c, NewCaches())
	result, err := s.Autocomplete(active)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNotNil(result.Required))
	qt.Assert(t, qt.Equals(*result.Required, "then"))
	qt.Assert(t, qt.HasLen(result.Allowed, 0))
}

func TestAutocompleteFallsThroughToExpressionKeywordsWithEmptyAncestry(t *testing.T) {
	c := pqast.NewCollection()
	active := &ActiveNode{}

	s := newSession(c, NewCaches())
	result, err := s.Autocomplete(active)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNil(result.Required))
	qt.Assert(t, qt.DeepEquals(result.Allowed, expressionKeywords))
}

func TestAutocompleteWithNilActiveNodeFallsThroughToExpressionKeywords(t *testing.T) {
	c := pqast.NewCollection()
	s := newSession(c, NewCaches())

	result, err := s.Autocomplete(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(result.Required))
	qt.Assert(t, qt.DeepEquals(result.Allowed, expressionKeywords))
}

func TestAutocompleteSuppressedAfterInvokeArgumentComma(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindInvokeExpression, 0, 10)
	addBranch(c, 2, 1, 1, pqast.KindCsv, 2, 9)
	addLeaf(c, 3, 2, 0, pqast.KindIdentifier, 2, 3, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "a"
	})
	addLeaf(c, 4, 2, 1, pqast.KindConstant, 3, 4, func(n *pqast.AstNode) {
		n.ConstantKind = ","
	})

	commaXor, err := c.XorNodeById(4)
	qt.Assert(t, qt.IsNil(err))
	csvXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	invokeXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{
		Ancestry: []pqast.XorNode{commaXor, csvXor, invokeXor},
		LeafKind: AfterAst,
		Position: pos(4),
	}

	s := newSession(c, NewCaches())
	result, err := s.Autocomplete(active)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNil(result.Required))
	qt.Assert(t, qt.HasLen(result.Allowed, 0))
}

func TestAutocompleteWithinInvokeArgumentListOffersExpressionKeywords(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindInvokeExpression, 0, 2)
	addBranch(c, 2, 1, 1, pqast.KindCsv, 2, 2)

	csvXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	invokeXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{
		Ancestry: []pqast.XorNode{csvXor, invokeXor},
		LeafKind: InContext,
		Position: pos(2),
	}

	s := newSession(c, NewCaches())
	result, err := s.Autocomplete(active)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNil(result.Required))
	qt.Assert(t, qt.DeepEquals(result.Allowed, expressionKeywords))
}

func TestBuildExpressionKeywordsIsSortedAndDeduped(t *testing.T) {
	qt.Assert(t, qt.DeepEquals(expressionKeywords, []string{"...", "[", "each", "if", "let", "{"}))
}
