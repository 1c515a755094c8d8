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

// Package pqast is the hybrid-tree facade over the parser's output: it
// wraps the node-id-indexed graph (completed AST nodes plus still-parsing
// context nodes) and exposes the lookups the rest of the inspection core
// needs (child-by-attribute-index, ancestry, right-most leaf, ...).
//
// Nothing in this package mutates the parser's state; the Collection it
// operates over is treated as a read-only input for the lifetime of one
// inspection call.
package pqast

import "github.com/pqlang/pqinspect/position"

// NodeId is a parser-assigned, monotonically increasing id in document
// order. Every live node, AST or context, has exactly one NodeId.
type NodeId int

// AstNode is a fully-parsed subtree: it has a complete token range and,
// for leaves, literal payload fields.
type AstNode struct {
	Id             NodeId
	NodeKind       Kind
	AttributeIndex *int
	TokenRange     position.Range
	IsLeaf         bool

	// Payload, populated only for the relevant NodeKind.
	IdentifierLiteral    string // Identifier, IdentifierExpression
	IdentifierInclusive  bool   // "@"-prefixed identifier
	ConstantKind         ConstantKind
	LiteralKind          LiteralKind
	LiteralText          string
}

// ContextNode is a node the parser started but has not finished: it may
// have read zero or more tokens. PromotedAstId bridges to the AstNode this
// context became once parsing of the subtree completed; it is rare and
// only set for a handful of grammar productions that re-use a context node
// as scaffolding for an eventual AST node.
type ContextNode struct {
	Id             NodeId
	NodeKind       Kind
	AttributeIndex *int
	FirstToken     *position.Position
	PromotedAstId  *NodeId
}

// XorNode is a tagged union over AstNode and ContextNode: every reference
// into the hybrid tree is exactly one or the other, never both, never
// neither.
type XorNode struct {
	ast     *AstNode
	context *ContextNode
}

// AstXorNode wraps a completed AST node.
func AstXorNode(n *AstNode) XorNode {
	if n == nil {
		panic("pqast: AstXorNode given a nil AstNode")
	}
	return XorNode{ast: n}
}

// ContextXorNode wraps a still-parsing context node.
func ContextXorNode(n *ContextNode) XorNode {
	if n == nil {
		panic("pqast: ContextXorNode given a nil ContextNode")
	}
	return XorNode{context: n}
}

// IsAst reports whether this reference is to a completed AST node.
func (x XorNode) IsAst() bool { return x.ast != nil }

// IsContext reports whether this reference is to a still-parsing node.
func (x XorNode) IsContext() bool { return x.context != nil }

// Ast returns the wrapped AstNode, if any.
func (x XorNode) Ast() (*AstNode, bool) { return x.ast, x.ast != nil }

// Context returns the wrapped ContextNode, if any.
func (x XorNode) Context() (*ContextNode, bool) { return x.context, x.context != nil }

// Id returns the node id regardless of variant.
func (x XorNode) Id() NodeId {
	if x.ast != nil {
		return x.ast.Id
	}
	return x.context.Id
}

// NodeKind returns the syntactic kind regardless of variant.
func (x XorNode) NodeKind() Kind {
	if x.ast != nil {
		return x.ast.NodeKind
	}
	return x.context.NodeKind
}

// AttributeIndex returns the node's position among its parent's ordered
// children, if the grammar assigns one.
func (x XorNode) AttributeIndex() *int {
	if x.ast != nil {
		return x.ast.AttributeIndex
	}
	return x.context.AttributeIndex
}

// IsNil reports whether this XorNode is the zero value (wraps nothing).
func (x XorNode) IsNil() bool { return x.ast == nil && x.context == nil }
