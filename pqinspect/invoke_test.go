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

// buildInvoke builds "Table.AddColumn(t, u)" -- a RecursivePrimaryExpression
// whose head is "Table" (id 2), tail is an ArrayWrapper (id 3) holding a
// FieldSelector ".AddColumn" (id 4, wrapping identifier id 5) followed by an
// InvokeExpression (id 6). The call's argument-list wrapper (id 7) holds two
// Csv-wrapped arguments: "t" (Csv id 9, identifier id 8) and "u" (Csv id 11,
// identifier id 10).
func buildInvoke() *pqast.Collection {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindRecursivePrimaryExpression, 0, 25)
	addLeaf(c, 2, 1, 0, pqast.KindIdentifier, 0, 5, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "Table"
	})
	addBranch(c, 3, 1, 1, pqast.KindArrayWrapper, 5, 25)

	addBranch(c, 4, 3, 0, pqast.KindFieldSelector, 5, 15)
	addLeaf(c, 5, 4, 1, pqast.KindIdentifier, 6, 15, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "AddColumn"
	})

	addBranch(c, 6, 3, 1, pqast.KindInvokeExpression, 15, 25)
	addBranch(c, 7, 6, 1, pqast.KindParameterList, 16, 24)

	addBranch(c, 9, 7, 0, pqast.KindCsv, 16, 18)
	addLeaf(c, 8, 9, 0, pqast.KindIdentifier, 16, 17, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "t"
	})

	addBranch(c, 11, 7, 1, pqast.KindCsv, 20, 22)
	addLeaf(c, 10, 11, 0, pqast.KindIdentifier, 20, 21, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "u"
	})

	return c
}

func TestInspectInvokeExpressionReadsDottedCalleeName(t *testing.T) {
	c := buildInvoke()
	invokeXor, err := c.XorNodeById(6)
	qt.Assert(t, qt.IsNil(err))
	argXor, err := c.XorNodeById(8)
	qt.Assert(t, qt.IsNil(err))

	ancestry, err := c.Ancestry(argXor.Id())
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: ancestry, LeafKind: OnAst}

	s := newSession(c, NewCaches())
	got, err := s.InspectInvokeExpression(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(got))
	qt.Assert(t, qt.Equals(got.Name, "Table.AddColumn"))
	qt.Assert(t, qt.Equals(got.Id, invokeXor.Id()))
	qt.Assert(t, qt.Equals(got.ArgumentOrdinal, 0))
	qt.Assert(t, qt.Equals(got.ArgumentCount, 2))
	qt.Assert(t, qt.IsTrue(got.IsNameInvoked("Table.AddColumn")))
}

func TestInspectInvokeExpressionLocatesSecondArgument(t *testing.T) {
	c := buildInvoke()
	argXor, err := c.XorNodeById(10)
	qt.Assert(t, qt.IsNil(err))

	ancestry, err := c.Ancestry(argXor.Id())
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: ancestry, LeafKind: OnAst}

	s := newSession(c, NewCaches())
	got, err := s.InspectInvokeExpression(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.ArgumentOrdinal, 1))
}

func TestInspectInvokeExpressionNoEnclosingCallIsNil(t *testing.T) {
	c := buildSum()
	leafXor, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))
	ancestry, err := c.Ancestry(leafXor.Id())
	qt.Assert(t, qt.IsNil(err))
	active := &ActiveNode{Ancestry: ancestry, LeafKind: OnAst}

	s := newSession(c, NewCaches())
	got, err := s.InspectInvokeExpression(active)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(got))
}
