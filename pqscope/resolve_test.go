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

package pqscope_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqscope"
	"github.com/pqlang/pqinspect/position"
)

func rng(start, end int) position.Range {
	return position.Range{
		Start:      position.Position{LineCodeUnit: start},
		End:        position.Position{LineCodeUnit: end},
		StartIndex: start,
		EndIndex:   end,
	}
}

func addLeaf(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind, configure func(*pqast.AstNode)) {
	idx := attr
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: &idx, TokenRange: rng(int(id), int(id)+1), IsLeaf: true}
	if configure != nil {
		configure(n)
	}
	c.AstById[id] = n
	c.LeafNodeIds[id] = struct{}{}
	if parent != 0 {
		c.ChildIdsById[parent] = append(c.ChildIdsById[parent], id)
		c.ParentIdById[id] = parent
	}
}

func addBranch(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind) {
	var idxPtr *int
	if parent != 0 {
		idx := attr
		idxPtr = &idx
	}
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: idxPtr, TokenRange: rng(int(id), int(id)+1)}
	c.AstById[id] = n
	if parent != 0 {
		c.ChildIdsById[parent] = append(c.ChildIdsById[parent], id)
		c.ParentIdById[id] = parent
	}
}

func ancestryOf(t *testing.T, c *pqast.Collection, id pqast.NodeId) []pqast.XorNode {
	t.Helper()
	ancestry, err := c.Ancestry(id)
	qt.Assert(t, qt.IsNil(err))
	return ancestry
}

// TestResolveEachBindsUnderscore builds an EachExpression (id 1) with a
// single leaf body (id 2) and checks the body sees "_" bound as an
// ItemEach.
func TestResolveEachBindsUnderscore(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindEachExpression)
	addLeaf(c, 2, 1, 1, pqast.KindLiteralExpression, nil)

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 2))
	qt.Assert(t, qt.IsNil(err))
	item, ok := scope["_"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Kind, pqscope.ItemEach))
	qt.Assert(t, qt.Equals(item.Id, pqast.NodeId(1)))
}

// TestResolveFunctionBindsParameters builds a FunctionExpression (id 1)
// with a ParameterList (id 2, attr 0) holding one Parameter (id 3) whose
// name is the identifier "x" (id 4), and a body leaf (id 5).
func TestResolveFunctionBindsParameters(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindFunctionExpression)
	addBranch(c, 2, 1, 0, pqast.KindParameterList)
	addBranch(c, 3, 2, 0, pqast.KindParameter)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addLeaf(c, 5, 1, 3, pqast.KindLiteralExpression, nil)

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 5))
	qt.Assert(t, qt.IsNil(err))
	item, ok := scope["x"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Kind, pqscope.ItemParameter))
	qt.Assert(t, qt.Equals(item.Name, "x"))
}

// TestResolveLetBindsKeyValuePairs builds "let x = 1 in x" shaped loosely:
// LetExpression (id 1) with a pair list at attr 1 (container id 2, a
// FieldSpecificationList), one pair (id 3, a FieldSpecification standing in for a key=value
// binding) whose key is identifier "x" (id 4) and value is a leaf (id 5);
// the body (id 6) is where "x" must resolve.
func TestResolveLetBindsKeyValuePairs(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindLetExpression)
	addBranch(c, 2, 1, 1, pqast.KindFieldSpecificationList)
	addBranch(c, 3, 2, 0, pqast.KindFieldSpecification)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addLeaf(c, 5, 3, 2, pqast.KindLiteralExpression, nil)
	addLeaf(c, 6, 1, 3, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 6))
	qt.Assert(t, qt.IsNil(err))
	item, ok := scope["x"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Kind, pqscope.ItemKeyValuePair))
	qt.Assert(t, qt.IsNotNil(item.Value))
}

// TestResolveLetBindingIsRecursiveWhenValueRefersToItself checks that a
// binding's own value subtree, once on the ancestry path, is flagged
// Recursive -- resolving "x" from inside its own defining expression.
func TestResolveLetBindingIsRecursiveWhenValueRefersToItself(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindLetExpression)
	addBranch(c, 2, 1, 1, pqast.KindFieldSpecificationList)
	addBranch(c, 3, 2, 0, pqast.KindFieldSpecification)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addLeaf(c, 5, 3, 2, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 5))
	qt.Assert(t, qt.IsNil(err))
	item, ok := scope["x"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(item.Recursive))
}

// TestResolveSectionBindsMembers builds a Section (id 1) with two
// SectionMember children (ids 2 and 5), each key=value shaped like the
// let-binding fixture, and checks both names resolve at the second
// member's value slot (id 7).
func TestResolveSectionBindsMembers(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindSection)

	addBranch(c, 2, 1, 0, pqast.KindSectionMember)
	addLeaf(c, 3, 2, 0, pqast.KindIdentifier, func(n *pqast.AstNode) { n.IdentifierLiteral = "a" })
	addLeaf(c, 4, 2, 2, pqast.KindLiteralExpression, nil)

	addBranch(c, 5, 1, 1, pqast.KindSectionMember)
	addLeaf(c, 6, 5, 0, pqast.KindIdentifier, func(n *pqast.AstNode) { n.IdentifierLiteral = "b" })
	addLeaf(c, 7, 5, 2, pqast.KindIdentifier, func(n *pqast.AstNode) { n.IdentifierLiteral = "a" })

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 7))
	qt.Assert(t, qt.IsNil(err))
	a, ok := scope["a"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(a.Kind, pqscope.ItemSectionMember))
	b, ok := scope["b"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(b.Kind, pqscope.ItemSectionMember))
}

func TestResolveEmptyAncestryIsEmptyScope(t *testing.T) {
	scope, err := pqscope.Resolve(pqast.NewCollection(), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(scope, 0))
}

func TestResolveUnrecognisedAncestorLeavesScopeUnchanged(t *testing.T) {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindParenthesizedExpression)
	addLeaf(c, 2, 1, 0, pqast.KindLiteralExpression, nil)

	scope, err := pqscope.Resolve(c, ancestryOf(t, c, 2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(scope, 0))
}

func identOf(x pqast.XorNode) (string, bool, bool) {
	n, ok := x.Ast()
	if !ok || n.NodeKind != pqast.KindIdentifier {
		return "", false, false
	}
	return n.IdentifierLiteral, n.IdentifierInclusive, true
}

func TestDereferenceUnknownNameIsNotFound(t *testing.T) {
	_, ok := pqscope.Dereference(pqscope.NodeScope{}, "missing", false, identOf)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestDereferenceDirectBindingReturnsItself(t *testing.T) {
	scope := pqscope.NodeScope{"x": {Kind: pqscope.ItemParameter, Name: "x"}}
	item, ok := pqscope.Dereference(scope, "x", false, identOf)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Name, "x"))
}

// TestDereferenceChasesSingleStepAlias resolves "y" which is bound as
// "let y = x in ..." (a KeyValuePair whose value is the bare identifier
// "x"), stopping at x's own binding.
func TestDereferenceChasesSingleStepAlias(t *testing.T) {
	c := pqast.NewCollection()
	addLeaf(c, 1, 0, 0, pqast.KindIdentifier, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	xXor, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))

	scope := pqscope.NodeScope{
		"x": {Kind: pqscope.ItemParameter, Name: "x"},
		"y": {Kind: pqscope.ItemKeyValuePair, Key: "y", Value: &xXor},
	}
	item, ok := pqscope.Dereference(scope, "y", false, identOf)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Name, "x"))
}

// TestDereferenceCycleReturnsOriginal builds a two-binding cycle ("let a =
// b, b = a") and checks Dereference stops and returns the original item
// rather than looping forever.
func TestDereferenceCycleReturnsOriginal(t *testing.T) {
	c := pqast.NewCollection()
	addLeaf(c, 1, 0, 0, pqast.KindIdentifier, func(n *pqast.AstNode) { n.IdentifierLiteral = "b" })
	addLeaf(c, 2, 0, 0, pqast.KindIdentifier, func(n *pqast.AstNode) { n.IdentifierLiteral = "a" })
	bRef, err := c.XorNodeById(1)
	qt.Assert(t, qt.IsNil(err))
	aRef, err := c.XorNodeById(2)
	qt.Assert(t, qt.IsNil(err))

	aItem := pqscope.ScopeItem{Kind: pqscope.ItemKeyValuePair, Id: 10, Key: "a", Value: &bRef}
	bItem := pqscope.ScopeItem{Kind: pqscope.ItemKeyValuePair, Id: 11, Key: "b", Value: &aRef}
	scope := pqscope.NodeScope{"a": aItem, "b": bItem}

	item, ok := pqscope.Dereference(scope, "a", false, identOf)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Id, aItem.Id))
}

func TestNodeScopeCloneIsIndependent(t *testing.T) {
	original := pqscope.NodeScope{"x": {Kind: pqscope.ItemParameter, Name: "x"}}
	clone := original.Clone()
	clone["y"] = pqscope.ScopeItem{Kind: pqscope.ItemParameter, Name: "y"}

	_, hasY := original["y"]
	qt.Assert(t, qt.IsFalse(hasY))
	qt.Assert(t, qt.HasLen(clone, 2))
}
