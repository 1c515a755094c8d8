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

// LeafKind tags how the active node's leaf relates to the caret, which
// upstream walkers (expected-type, autocomplete) use to decide whether an
// attribute index needs bumping by one.
type LeafKind int

const (
	// OnAst: the caret lands inside a completed leaf's token range.
	OnAst LeafKind = iota
	// AfterAst: no completed leaf contains the caret and no open context
	// holds it; the active node is the leaf with the largest end index among
	// those the caret is strictly after.
	AfterAst
	// InContext: the caret lands inside a still-open context subtree with
	// no completed leaf containing it.
	InContext
	// Missing: no leaf contains the caret or lies before it and no open
	// context holds it, which includes a document with no leaves at all.
	Missing
)

func (k LeafKind) String() string {
	switch k {
	case OnAst:
		return "OnAst"
	case AfterAst:
		return "AfterAst"
	case InContext:
		return "InContext"
	case Missing:
		return "Missing"
	default:
		return "Unknown"
	}
}

// ActiveNode is the deepest syntactic location at the caret, together with
// the ancestry path to the document root (child-to-root order, inclusive
// of the active node itself).
type ActiveNode struct {
	Ancestry []pqast.XorNode
	Position position.Position
	LeafKind LeafKind
}

// Leaf returns the active node itself (Ancestry[0]), or the zero XorNode
// and false if the active node is Missing.
func (a *ActiveNode) Leaf() (pqast.XorNode, bool) {
	if len(a.Ancestry) == 0 {
		return pqast.XorNode{}, false
	}
	return a.Ancestry[0], true
}

// LocateActiveNode runs a single-pass algorithm: find the leaf
// whose token range contains the caret; failing that, the nearest open
// context subtree; failing that, the furthest-ending leaf the caret is
// after; failing that, Missing.
func LocateActiveNode(c *pqast.Collection, caret position.Position) (*ActiveNode, error) {
	if len(c.LeafNodeIds) == 0 {
		return &ActiveNode{Position: caret, LeafKind: Missing}, nil
	}

	var onLeaf *pqast.AstNode
	var afterBest *pqast.AstNode

	for id := range c.LeafNodeIds {
		n, ok := c.AstById[id]
		if !ok {
			// A leaf id that only exists as a context node: handled by
			// the InContext branch below via ancestry walk, not here.
			continue
		}
		if position.IsOnRange(caret, n.TokenRange) {
			if onLeaf == nil || closerBefore(n, onLeaf) {
				onLeaf = n
			}
			continue
		}
		if position.IsAfterRange(caret, n.TokenRange) {
			if afterBest == nil || n.TokenRange.EndIndex > afterBest.TokenRange.EndIndex {
				afterBest = n
			}
		}
	}

	if onLeaf != nil {
		ancestry, err := c.Ancestry(onLeaf.Id)
		if err != nil {
			return nil, err
		}
		return &ActiveNode{Ancestry: ancestry, Position: caret, LeafKind: OnAst}, nil
	}

	if ctxId, ok := findOpenContextContaining(c, caret); ok {
		ancestry, err := c.Ancestry(ctxId)
		if err != nil {
			return nil, err
		}
		return &ActiveNode{Ancestry: ancestry, Position: caret, LeafKind: InContext}, nil
	}

	if afterBest != nil {
		ancestry, err := c.Ancestry(afterBest.Id)
		if err != nil {
			return nil, err
		}
		return &ActiveNode{Ancestry: ancestry, Position: caret, LeafKind: AfterAst}, nil
	}

	return &ActiveNode{Position: caret, LeafKind: Missing}, nil
}

// closerBefore breaks ties between two leaves whose ranges both contain
// the caret (only possible at a shared boundary token) by preferring the
// one whose start is closest-before the caret.
func closerBefore(candidate, current *pqast.AstNode) bool {
	return candidate.TokenRange.Start.Compare(current.TokenRange.Start) > 0
}

// findOpenContextContaining looks for a context-node leaf whose subtree
// the caret falls inside: either it has no first token yet (every caret is
// "on" an empty context node) or its first token is at-or-before the caret
// and its right-most completed leaf (if any) does not already put the
// caret strictly after it.
func findOpenContextContaining(c *pqast.Collection, caret position.Position) (pqast.NodeId, bool) {
	for id := range c.LeafNodeIds {
		ctx, ok := c.ContextById[id]
		if !ok {
			continue
		}
		if ctx.FirstToken == nil {
			return id, true
		}
		if position.IsBeforeToken(caret, *ctx.FirstToken) {
			continue
		}
		leaf, found, err := c.RightMostLeaf(id)
		if err != nil {
			continue
		}
		if found && position.IsAfterRange(caret, leaf.TokenRange) {
			continue
		}
		return id, true
	}
	return 0, false
}
