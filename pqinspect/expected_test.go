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
	"github.com/pqlang/pqinspect/pqtype"
)

// buildPartialSum builds "1 +" with no right operand: root id 1
// (ArithmeticExpression), left literal id 2, operator constant id 3.
func buildPartialSum() *pqast.Collection {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindArithmeticExpression, 0, 3)
	addLeaf(c, 2, 1, 0, pqast.KindLiteralExpression, 0, 1, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
	})
	addLeaf(c, 3, 1, 1, pqast.KindConstant, 2, 3, func(n *pqast.AstNode) {
		n.ConstantKind = "+"
	})
	return c
}

func TestExpectedTypeAfterBinaryOperatorResolvesPartial(t *testing.T) {
	c := buildPartialSum()
	opXor, err := c.XorNodeById(3)
	qt.Assert(t, qt.IsNil(err))
	rootXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))

	active := &ActiveNode{Ancestry: []pqast.XorNode{opXor, rootXor}, LeafKind: AfterAst}

	s := newSession(c, NewCaches())
	got, err := s.ExpectedType(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Number))
}

func TestExpectedTypeIfConditionSlotIsLogical(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindIfExpression, 0, 10)
	addLeaf(c, 2, 1, 0, pqast.KindConstant, 0, 2, func(n *pqast.AstNode) { n.ConstantKind = "if" })

	leafXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	rootXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: []pqast.XorNode{leafXor, rootXor}, LeafKind: AfterAst}

	s := newSession(c, NewCaches())
	got, err := s.ExpectedType(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Logical))
}

func TestExpectedTypeDefaultsToAny(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindLetExpression, 0, 10)
	addLeaf(c, 2, 1, 0, pqast.KindConstant, 0, 3, func(n *pqast.AstNode) { n.ConstantKind = "let" })

	leafXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	rootXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: []pqast.XorNode{leafXor, rootXor}, LeafKind: AfterAst}

	s := newSession(c, NewCaches())
	got, err := s.ExpectedType(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Any))
}

func TestExpectedTypeEmptyAncestryIsAny(t *testing.T) {
	s := newSession(pqast.NewCollection(), NewCaches())
	got, err := s.ExpectedType(&ActiveNode{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Any))
}
