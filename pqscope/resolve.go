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

package pqscope

import "github.com/pqlang/pqinspect/pqast"

// Resolve performs a root-to-leaf walk: it enlarges an initially
// empty scope as it descends ancestry (given child-to-root, per
// ActiveNode.Ancestry) and returns the scope visible at the active node
// (ancestry[0]).
//
// The caller owns a given/delta cache split: Resolve itself
// is pure over its inputs and does not touch any cache; the orchestrator
// is responsible for checking ScopeById before calling Resolve and for
// merging the result back in after a successful call.
func Resolve(c *pqast.Collection, ancestry []pqast.XorNode) (NodeScope, error) {
	if len(ancestry) == 0 {
		return NodeScope{}, nil
	}

	pathIds := make(map[pqast.NodeId]bool, len(ancestry))
	for _, n := range ancestry {
		pathIds[n.Id()] = true
	}

	rootToLeaf := make([]pqast.XorNode, len(ancestry))
	for i, n := range ancestry {
		rootToLeaf[len(ancestry)-1-i] = n
	}

	scope := NodeScope{}
	for _, parent := range rootToLeaf[:len(rootToLeaf)-1] {
		next, err := applyRule(c, parent, scope, pathIds)
		if err != nil {
			return nil, err
		}
		scope = next
	}
	return scope, nil
}

func applyRule(c *pqast.Collection, parent pqast.XorNode, scope NodeScope, pathIds map[pqast.NodeId]bool) (NodeScope, error) {
	switch parent.NodeKind() {
	case pqast.KindEachExpression:
		return withEachBinding(parent, scope), nil
	case pqast.KindFunctionExpression:
		return withParameterBindings(c, parent, scope)
	case pqast.KindLetExpression:
		return withKeyValueBindings(c, parent, 1, scope, pathIds)
	case pqast.KindRecordExpression, pqast.KindRecordLiteral:
		return withKeyValueBindings(c, parent, 1, scope, pathIds)
	case pqast.KindSection:
		return withSectionMembers(c, parent, scope, pathIds)
	default:
		return scope, nil
	}
}

func withEachBinding(parent pqast.XorNode, scope NodeScope) NodeScope {
	next := scope.Clone()
	next["_"] = ScopeItem{
		Kind:           ItemEach,
		Id:             parent.Id(),
		Recursive:      false,
		EachExpression: parent,
	}
	return next
}

func withParameterBindings(c *pqast.Collection, parent pqast.XorNode, scope NodeScope) (NodeScope, error) {
	paramList, found, err := c.ChildByAttributeIndex(parent.Id(), 0, pqast.KindParameterList)
	if err != nil || !found {
		return scope, err
	}
	params, err := c.ChildrenOf(paramList.Id())
	if err != nil {
		return scope, err
	}

	next := scope.Clone()
	for _, p := range params {
		if p.NodeKind() != pqast.KindParameter {
			continue
		}
		item, ok, err := parameterScopeItem(c, p)
		if err != nil {
			return scope, err
		}
		if ok {
			next[item.Name] = item
		}
	}
	return next, nil
}

func parameterScopeItem(c *pqast.Collection, p pqast.XorNode) (ScopeItem, bool, error) {
	nameNode, found, err := c.ChildByAttributeIndex(p.Id(), 0, pqast.KindIdentifier, pqast.KindGeneralizedIdentifier)
	if err != nil || !found {
		return ScopeItem{}, false, err
	}
	astNode, isAst := nameNode.Ast()
	if !isAst {
		return ScopeItem{}, false, nil
	}

	item := ScopeItem{
		Kind: ItemParameter,
		Id:   p.Id(),
		Name: astNode.IdentifierLiteral,
	}

	if typeSpec, found, err := c.ChildByAttributeIndex(p.Id(), 1, pqast.KindFieldTypeSpecification, pqast.KindAsNullablePrimitiveType); err == nil && found {
		item.PrimitiveType, item.Nullable = primitiveTypeTag(c, typeSpec)
		item.Optional = false
	}

	return item, true, nil
}

func withKeyValueBindings(c *pqast.Collection, parent pqast.XorNode, attrIndex int, scope NodeScope, pathIds map[pqast.NodeId]bool) (NodeScope, error) {
	container, found, err := c.ChildByAttributeIndex(parent.Id(), attrIndex)
	if err != nil || !found {
		return scope, err
	}
	pairs, err := flattenCsv(c, container.Id())
	if err != nil {
		return scope, err
	}

	next := scope.Clone()
	for _, pair := range pairs {
		item, ok, err := keyValueScopeItem(c, pair, pathIds)
		if err != nil {
			return scope, err
		}
		if ok {
			next[item.Key] = item
		}
	}
	return next, nil
}

func withSectionMembers(c *pqast.Collection, parent pqast.XorNode, scope NodeScope, pathIds map[pqast.NodeId]bool) (NodeScope, error) {
	members, err := c.ChildrenOf(parent.Id())
	if err != nil {
		return scope, err
	}

	next := scope.Clone()
	for _, m := range members {
		if m.NodeKind() != pqast.KindSectionMember {
			continue
		}
		item, ok, err := sectionMemberScopeItem(c, m, pathIds)
		if err != nil {
			return scope, err
		}
		if ok {
			next[item.Key] = item
		}
	}
	return next, nil
}

// flattenCsv walks a comma-separated list container and returns its
// payload nodes, unwrapping one level of Csv wrapping per element.
func flattenCsv(c *pqast.Collection, containerId pqast.NodeId) ([]pqast.XorNode, error) {
	children, err := c.ChildrenOf(containerId)
	if err != nil {
		return nil, err
	}
	out := make([]pqast.XorNode, 0, len(children))
	for _, child := range children {
		if child.NodeKind() != pqast.KindCsv {
			out = append(out, child)
			continue
		}
		payload, found, err := c.ChildByAttributeIndex(child.Id(), 0)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, payload)
		}
	}
	return out, nil
}

func keyValueScopeItem(c *pqast.Collection, pair pqast.XorNode, pathIds map[pqast.NodeId]bool) (ScopeItem, bool, error) {
	keyNode, found, err := c.ChildByAttributeIndex(pair.Id(), 0, pqast.KindIdentifier, pqast.KindGeneralizedIdentifier)
	if err != nil || !found {
		return ScopeItem{}, false, err
	}
	astNode, isAst := keyNode.Ast()
	if !isAst {
		return ScopeItem{}, false, nil
	}

	var valuePtr *pqast.XorNode
	if value, found, err := c.ChildByAttributeIndex(pair.Id(), 2); err == nil && found {
		v := value
		valuePtr = &v
	}

	recursive := pathIds[pair.Id()]
	if valuePtr != nil {
		recursive = recursive || pathIds[valuePtr.Id()]
	}

	return ScopeItem{
		Kind:      ItemKeyValuePair,
		Id:        pair.Id(),
		Recursive: recursive,
		Key:       astNode.IdentifierLiteral,
		Value:     valuePtr,
	}, true, nil
}

func sectionMemberScopeItem(c *pqast.Collection, member pqast.XorNode, pathIds map[pqast.NodeId]bool) (ScopeItem, bool, error) {
	item, ok, err := keyValueScopeItem(c, member, pathIds)
	if err != nil || !ok {
		return ScopeItem{}, ok, err
	}
	item.Kind = ItemSectionMember
	return item, true, nil
}
