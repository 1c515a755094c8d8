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

import "github.com/pqlang/pqinspect/pqerrors"

// Collection is the parser's id-indexed graph: AST nodes, context nodes,
// parent/child edges, and the set of leaf node ids. It is conceptually
// immutable for the duration of one inspection call.
type Collection struct {
	AstById      map[NodeId]*AstNode
	ContextById  map[NodeId]*ContextNode
	ChildIdsById map[NodeId][]NodeId // ordered by source position
	ParentIdById map[NodeId]NodeId
	LeafNodeIds  map[NodeId]struct{}
}

// NewCollection builds an empty Collection ready to be populated by a
// parser adapter.
func NewCollection() *Collection {
	return &Collection{
		AstById:      make(map[NodeId]*AstNode),
		ContextById:  make(map[NodeId]*ContextNode),
		ChildIdsById: make(map[NodeId][]NodeId),
		ParentIdById: make(map[NodeId]NodeId),
		LeafNodeIds:  make(map[NodeId]struct{}),
	}
}

// XorNodeById resolves an id to its XorNode, checking the AST map first
// since completed nodes dominate in a mostly-valid document.
func (c *Collection) XorNodeById(id NodeId) (XorNode, error) {
	if n, ok := c.AstById[id]; ok {
		return AstXorNode(n), nil
	}
	if n, ok := c.ContextById[id]; ok {
		return ContextXorNode(n), nil
	}
	return XorNode{}, pqerrors.NewInvariantf("node id %d not found in collection", id)
}

// ChildByAttributeIndex looks up parentId's children (ordered by source
// position) and returns the one whose attribute index equals index,
// filtered to allowedKinds when non-empty. It returns (zero, false, nil)
// rather than an error when the parent has not read that slot yet -- a
// normal occurrence for a partially parsed document.
func (c *Collection) ChildByAttributeIndex(parentId NodeId, index int, allowedKinds ...Kind) (XorNode, bool, error) {
	childIds, ok := c.ChildIdsById[parentId]
	if !ok {
		return XorNode{}, false, nil
	}
	for _, childId := range childIds {
		child, err := c.XorNodeById(childId)
		if err != nil {
			return XorNode{}, false, err
		}
		attrIdx := child.AttributeIndex()
		if attrIdx == nil || *attrIdx != index {
			continue
		}
		if len(allowedKinds) > 0 && !containsKind(allowedKinds, child.NodeKind()) {
			continue
		}
		return child, true, nil
	}
	return XorNode{}, false, nil
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParentOf returns id's parent, or (zero, false) if id is the document
// root.
func (c *Collection) ParentOf(id NodeId) (XorNode, bool, error) {
	parentId, ok := c.ParentIdById[id]
	if !ok {
		return XorNode{}, false, nil
	}
	parent, err := c.XorNodeById(parentId)
	if err != nil {
		return XorNode{}, false, err
	}
	return parent, true, nil
}

// Ancestry returns id's own node followed by every ancestor out to the
// document root, child-to-root order.
func (c *Collection) Ancestry(id NodeId) ([]XorNode, error) {
	var ancestry []XorNode
	current := id
	for {
		node, err := c.XorNodeById(current)
		if err != nil {
			return nil, err
		}
		ancestry = append(ancestry, node)

		parentId, ok := c.ParentIdById[current]
		if !ok {
			break
		}
		current = parentId
	}
	return ancestry, nil
}

// ChildrenOf returns id's children in source order.
func (c *Collection) ChildrenOf(id NodeId) ([]XorNode, error) {
	childIds := c.ChildIdsById[id]
	children := make([]XorNode, 0, len(childIds))
	for _, childId := range childIds {
		child, err := c.XorNodeById(childId)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// RightMostLeaf performs a BFS from id, preferring right-hand children at
// each level and pruning any branch whose token range cannot possibly
// improve on the best leaf found so far, then returns the AST leaf with
// the largest end token index under id. It returns (nil, false) if id's
// subtree contains no completed leaf.
func (c *Collection) RightMostLeaf(id NodeId) (*AstNode, bool, error) {
	var best *AstNode

	queue := []NodeId{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, isLeaf := c.LeafNodeIds[current]; isLeaf {
			if n, ok := c.AstById[current]; ok {
				if best == nil || n.TokenRange.EndIndex > best.TokenRange.EndIndex {
					best = n
				}
			}
			continue
		}

		children := c.ChildIdsById[current]
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if n, ok := c.AstById[child]; ok && best != nil && n.TokenRange.EndIndex <= best.TokenRange.EndIndex {
				// This completed subtree cannot contain a leaf with a
				// larger end index than what we already have; prune it.
				continue
			}
			queue = append(queue, child)
		}
	}

	return best, best != nil, nil
}

// WrappedContent returns the inner payload of a wrapping node (brackets,
// braces, parentheses): its sole content-bearing child, conventionally at
// attribute index 1 between the open and close constants.
func (c *Collection) WrappedContent(id NodeId) (XorNode, bool, error) {
	return c.ChildByAttributeIndex(id, 1)
}

// RecursiveExpressionPreviousSibling returns the expression immediately to
// the left of id in source order, where id is a positional child of a
// RecursivePrimaryExpression's array-wrapper tail. It fails with an
// InvariantError if id is not in such a position, since that is a
// programmer error in the caller (only FieldSelector/FieldProjection/
// InvokeExpression nodes are ever queried this way).
func (c *Collection) RecursiveExpressionPreviousSibling(id NodeId) (XorNode, error) {
	parentId, ok := c.ParentIdById[id]
	if !ok {
		return XorNode{}, pqerrors.NewInvariantf(
			"id %d is not a positional child of a recursive-primary-expression array wrapper", id)
	}
	if parent, err := c.XorNodeById(parentId); err != nil || parent.NodeKind() != KindArrayWrapper {
		return XorNode{}, pqerrors.NewInvariantf(
			"id %d is not a positional child of a recursive-primary-expression array wrapper", id)
	}

	siblings := c.ChildIdsById[parentId]
	for i, siblingId := range siblings {
		if siblingId != id {
			continue
		}
		if i == 0 {
			// The first tail element's previous sibling is the
			// recursive-primary-expression's head, one level up.
			grandparentId, ok := c.ParentIdById[parentId]
			if !ok {
				return XorNode{}, pqerrors.NewInvariantf(
					"id %d is not a positional child of a recursive-primary-expression array wrapper", id)
			}
			head, found, err := c.ChildByAttributeIndex(grandparentId, 0)
			if err != nil {
				return XorNode{}, err
			}
			if !found {
				return XorNode{}, pqerrors.NewInvariantf(
					"id %d is not a positional child of a recursive-primary-expression array wrapper", id)
			}
			return head, nil
		}
		return c.XorNodeById(siblings[i-1])
	}
	return XorNode{}, pqerrors.NewInvariantf(
		"id %d is not a positional child of a recursive-primary-expression array wrapper", id)
}

// AssertAstNodeKind fails with an InvariantError unless xor is an AST node
// of exactly kind.
func AssertAstNodeKind(xor XorNode, kind Kind) error {
	return AssertAnyAstNodeKind(xor, kind)
}

// AssertAnyAstNodeKind fails with an InvariantError unless xor is an AST
// node whose kind is one of kinds.
func AssertAnyAstNodeKind(xor XorNode, kinds ...Kind) error {
	if !xor.IsAst() {
		return pqerrors.NewInvariantf("expected an AST node of kind %v, got a context node of kind %v", kinds, xor.NodeKind()).
			WithDetails(map[string]interface{}{"id": xor.Id(), "kind": xor.NodeKind()})
	}
	if !containsKind(kinds, xor.NodeKind()) {
		return pqerrors.NewInvariantf("expected an AST node of kind %v, got %v", kinds, xor.NodeKind()).
			WithDetails(map[string]interface{}{"id": xor.Id(), "kind": xor.NodeKind()})
	}
	return nil
}
