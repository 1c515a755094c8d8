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
	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/position"
)

// Small hand-built Collection helpers shared by this package's white-box
// tests. Real documents come from a parser adapter; these construct just
// enough of the node-id graph to exercise one rule at a time.

func testRange(start, end int) position.Range {
	return position.Range{
		Start:      position.Position{LineCodeUnit: start},
		End:        position.Position{LineCodeUnit: end},
		StartIndex: start,
		EndIndex:   end,
	}
}

func addLeaf(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind, start, end int, configure func(*pqast.AstNode)) {
	idx := attr
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: &idx, TokenRange: testRange(start, end), IsLeaf: true}
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

func addBranch(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind, start, end int) {
	var idxPtr *int
	if parent != 0 {
		idx := attr
		idxPtr = &idx
	}
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: idxPtr, TokenRange: testRange(start, end)}
	c.AstById[id] = n
	if parent != 0 {
		c.ChildIdsById[parent] = append(c.ChildIdsById[parent], id)
		c.ParentIdById[id] = parent
	}
}

// buildSum builds "1 + 2" as an ArithmeticExpression with ids 1 (root), 2
// (left literal), 3 (operator constant), 4 (right literal).
func buildSum() *pqast.Collection {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindArithmeticExpression, 0, 5)
	addLeaf(c, 2, 1, 0, pqast.KindLiteralExpression, 0, 1, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "1"
	})
	addLeaf(c, 3, 1, 1, pqast.KindConstant, 2, 3, func(n *pqast.AstNode) {
		n.ConstantKind = "+"
	})
	addLeaf(c, 4, 1, 2, pqast.KindLiteralExpression, 4, 5, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "2"
	})
	return c
}

// buildLetXEqualsOne builds "let x = 1 in x" with the caret landing on the
// body's reference to x, for tests that need a non-empty scope at the
// active node.
func buildLetXEqualsOne() *pqast.Collection {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindLetExpression, 0, 14)
	addBranch(c, 2, 1, 1, pqast.KindFieldSpecificationList, 4, 9)
	addBranch(c, 3, 2, 0, pqast.KindFieldSpecification, 4, 9)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, 4, 5, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addLeaf(c, 5, 3, 2, pqast.KindLiteralExpression, 8, 9, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "1"
	})
	addLeaf(c, 6, 1, 3, pqast.KindIdentifier, 13, 14, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	return c
}
