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
	"github.com/pqlang/pqinspect/position"
)

func pos(col int) position.Position { return position.Position{LineCodeUnit: col} }

func TestLocateActiveNodeOnLeaf(t *testing.T) {
	c := buildSum()
	// A token range is "on" for (start, end], per the boundary convention
	// in position.IsOnToken: caret == start counts as before the token.
	got, err := LocateActiveNode(c, pos(1))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.LeafKind, OnAst))
	leaf, found := got.Leaf()
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(leaf.Id(), pqast.NodeId(2)))
}

func TestLocateActiveNodeAfterEverything(t *testing.T) {
	c := buildSum()
	got, err := LocateActiveNode(c, pos(9))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.LeafKind, AfterAst))
	leaf, found := got.Leaf()
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(leaf.Id(), pqast.NodeId(4)))
}

func TestLocateActiveNodeMissingOnEmptyDocument(t *testing.T) {
	c := pqast.NewCollection()
	got, err := LocateActiveNode(c, pos(0))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.LeafKind, Missing))
	_, found := got.Leaf()
	qt.Assert(t, qt.IsFalse(found))
}

func TestLocateActiveNodeInOpenContext(t *testing.T) {
	c := pqast.NewCollection()
	c.ContextById[1] = &pqast.ContextNode{Id: 1, NodeKind: pqast.KindListExpression}
	c.LeafNodeIds[1] = struct{}{}

	got, err := LocateActiveNode(c, pos(0))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.LeafKind, InContext))
	leaf, found := got.Leaf()
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(leaf.Id(), pqast.NodeId(1)))
}

func TestActiveNodeAncestryIsChildToRoot(t *testing.T) {
	c := buildSum()
	got, err := LocateActiveNode(c, pos(1))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got.Ancestry, 2))
	qt.Assert(t, qt.Equals(got.Ancestry[0].Id(), pqast.NodeId(2)))
	qt.Assert(t, qt.Equals(got.Ancestry[1].Id(), pqast.NodeId(1)))
}
