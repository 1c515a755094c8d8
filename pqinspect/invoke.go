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

import "github.com/pqlang/pqinspect/pqast"

// InvokeExpression describes the innermost function call enclosing the
// active node: which argument position the caret sits in (or would
// next fill), the call's total argument count, and the callee's name when
// it can be read off as a bare/field-selected identifier.
type InvokeExpression struct {
	Id             pqast.NodeId
	Name           string // "" if the callee is not a simple identifier expression
	ArgumentOrdinal int   // 0-based index of the argument the caret is in/after
	ArgumentCount  int
}

// IsNameInvoked reports whether this call's callee is exactly name.
func (i InvokeExpression) IsNameInvoked(name string) bool {
	return i.Name != "" && i.Name == name
}

// InspectInvokeExpression implements C8: walks the active node's ancestry
// outward for the nearest enclosing InvokeExpression, then locates which
// argument slot the active node's subtree falls under.
func (s *session) InspectInvokeExpression(active *ActiveNode) (*InvokeExpression, error) {
	if active == nil {
		return nil, nil
	}

	for i, node := range active.Ancestry {
		if node.NodeKind() != pqast.KindInvokeExpression {
			continue
		}

		argListXor, found, err := s.collection.WrappedContent(node.Id())
		if err != nil {
			return nil, err
		}
		var args []pqast.XorNode
		if found {
			args, err = flattenCsvList(s.collection, argListXor.Id())
			if err != nil {
				return nil, err
			}
		}

		name, err := s.calleeNameOf(node)
		if err != nil {
			return nil, err
		}

		return &InvokeExpression{
			Id:              node.Id(),
			Name:            name,
			ArgumentOrdinal: argumentOrdinal(s.collection, active.Ancestry[:i], argListXor, found, len(args), active.LeafKind),
			ArgumentCount:   len(args),
		}, nil
	}
	return nil, nil
}

// argumentOrdinal finds which of the argument-list wrapper's direct
// children (each a Csv wrapping one argument, in source order) the active
// node descends from, by walking the ancestry between the active leaf and
// the enclosing InvokeExpression (exclusive). A caret sitting after every
// committed argument -- the "," or "(" has just been typed -- resolves to
// the next not-yet-filled ordinal instead.
func argumentOrdinal(c *pqast.Collection, innerAncestry []pqast.XorNode, argListXor pqast.XorNode, hasArgList bool, argCount int, leafKind LeafKind) int {
	if !hasArgList {
		return 0
	}
	childIds := c.ChildIdsById[argListXor.Id()]
	for _, anc := range innerAncestry {
		for idx, childId := range childIds {
			if anc.Id() == childId {
				return idx
			}
		}
	}
	if leafKind == AfterAst {
		return argCount
	}
	return 0
}

// calleeNameOf reads the callee of an InvokeExpression as a bare name when
// it is a direct Identifier/IdentifierExpression or a FieldSelector chain
// off one (e.g. "Table.AddColumn"), and "" otherwise.
func (s *session) calleeNameOf(invoke pqast.XorNode) (string, error) {
	sibling, err := s.collection.RecursiveExpressionPreviousSibling(invoke.Id())
	if err != nil {
		return "", nil
	}
	return recursiveChainName(s.collection, sibling)
}

// recursiveChainName renders a chain of Identifier/FieldSelector steps as a
// dotted name ("Table.AddColumn"), or returns "" if the chain contains
// anything else.
func recursiveChainName(c *pqast.Collection, xor pqast.XorNode) (string, error) {
	switch xor.NodeKind() {
	case pqast.KindIdentifier, pqast.KindIdentifierExpression:
		name, _, ok := identifierLiteral(c, xor)
		if !ok {
			return "", nil
		}
		return name, nil

	case pqast.KindFieldSelector:
		sibling, err := c.RecursiveExpressionPreviousSibling(xor.Id())
		if err != nil {
			return "", nil
		}
		base, err := recursiveChainName(c, sibling)
		if err != nil || base == "" {
			return "", err
		}
		fieldXor, found, err := c.WrappedContent(xor.Id())
		if err != nil || !found {
			return "", err
		}
		fieldNode, isAst := fieldXor.Ast()
		if !isAst {
			return "", nil
		}
		return base + "." + fieldNode.IdentifierLiteral, nil

	default:
		return "", nil
	}
}
