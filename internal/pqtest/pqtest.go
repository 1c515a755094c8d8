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

// Package pqtest builds small hand-wired pqast.Collection fixtures that
// stand in for parser output at a handful of representative caret
// positions, and formats an Inspection back to deterministic text. It
// exists so the full pipeline (active-node location, scope resolution,
// type inspection, expected-type walking, autocomplete, invoke-expression
// inspection) can be exercised end to end without a real lexer/parser.
package pqtest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqinspect"
	"github.com/pqlang/pqinspect/pqscope"
	"github.com/pqlang/pqinspect/pqtype"
	"github.com/pqlang/pqinspect/position"
)

// Fixture is one hand-built document plus the caret to inspect it at.
type Fixture struct {
	Name       string
	Source     string
	Collection *pqast.Collection
	Caret      position.Position
}

func textRange(start, end int) position.Range {
	return position.Range{
		Start:      position.Position{LineCodeUnit: start},
		End:        position.Position{LineCodeUnit: end},
		StartIndex: start,
		EndIndex:   end,
	}
}

func addLeaf(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind, start, end int, configure func(*pqast.AstNode)) {
	idx := attr
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: &idx, TokenRange: textRange(start, end), IsLeaf: true}
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
	n := &pqast.AstNode{Id: id, NodeKind: kind, AttributeIndex: idxPtr, TokenRange: textRange(start, end)}
	c.AstById[id] = n
	if parent != 0 {
		c.ChildIdsById[parent] = append(c.ChildIdsById[parent], id)
		c.ParentIdById[id] = parent
	}
}

// addOpenLeafContext registers a still-parsing node that is also its own
// leaf frontier: findOpenContextContaining only ever matches a context
// node reachable this way, never an ordinary interior context node with
// already-committed AST children.
func addOpenLeafContext(c *pqast.Collection, id, parent pqast.NodeId, attr int, kind pqast.Kind, firstToken *position.Position) {
	idx := attr
	n := &pqast.ContextNode{Id: id, NodeKind: kind, AttributeIndex: &idx, FirstToken: firstToken}
	c.ContextById[id] = n
	c.LeafNodeIds[id] = struct{}{}
	if parent != 0 {
		c.ChildIdsById[parent] = append(c.ChildIdsById[parent], id)
		c.ParentIdById[id] = parent
	}
}

func addInteriorContext(c *pqast.Collection, id, parent pqast.NodeId, kind pqast.Kind) {
	n := &pqast.ContextNode{Id: id, NodeKind: kind}
	c.ContextById[id] = n
	if parent != 0 {
		c.ParentIdById[id] = parent
	}
}

// LetBodyIdentifier builds "let x = 1 in x" with the caret on the body's
// reference to x: LetExpression(let=0, bindings=1, in=2, body=3).
func LetBodyIdentifier() Fixture {
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
	return Fixture{
		Name:       "let_body_identifier",
		Source:     "let x = 1 in x",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 14},
	}
}

// IfKeywordJustOpened builds "if " with nothing parsed yet: IfExpression
// is registered only as an open leaf-frontier context node, so the caret
// (anywhere) resolves InContext against it directly.
func IfKeywordJustOpened() Fixture {
	c := pqast.NewCollection()
	addOpenLeafContext(c, 1, 0, 0, pqast.KindIfExpression, nil)
	return Fixture{
		Name:       "if_keyword_just_opened",
		Source:     "if ",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 3},
	}
}

// IfConditionAwaitingThen builds "if 1 t" where the condition has
// committed but "then" has only been typed as far as "t": the
// IfExpression is an ordinary interior context node (not leaf-registered,
// since it already has a committed AST child), so the caret resolves via
// the active leaf's AfterAst path onto the condition literal, one
// attribute slot short of "then".
func IfConditionAwaitingThen() Fixture {
	c := pqast.NewCollection()
	addInteriorContext(c, 1, 0, pqast.KindIfExpression)
	addLeaf(c, 2, 1, 1, pqast.KindLiteralExpression, 3, 4, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "1"
	})
	return Fixture{
		Name:       "if_condition_awaiting_then",
		Source:     "if 1 t",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 6},
	}
}

// RecordOpenSecondValue builds "[a = 1, b = " : a is a plain,
// non-recursive binding (Number); b's value is still an open, empty
// context node, so b is Recursive (its own path is on the ancestry of the
// active node) and types Unknown. Both bindings are in node_scope, so
// scope_type carries both a's and b's types from the one Inspect call.
func RecordOpenSecondValue() Fixture {
	c := pqast.NewCollection()
	addInteriorContext(c, 1, 0, pqast.KindRecordExpression)
	addBranch(c, 2, 1, 1, pqast.KindFieldSpecificationList, 1, 12)
	addBranch(c, 3, 2, 0, pqast.KindFieldSpecification, 1, 6)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, 1, 2, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "a"
	})
	addLeaf(c, 5, 3, 2, pqast.KindLiteralExpression, 5, 6, func(n *pqast.AstNode) {
		n.LiteralKind = pqast.LiteralKindNumber
		n.LiteralText = "1"
	})
	addBranch(c, 6, 2, 1, pqast.KindFieldSpecification, 8, 12)
	addLeaf(c, 7, 6, 0, pqast.KindIdentifier, 8, 9, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "b"
	})
	addOpenLeafContext(c, 8, 6, 2, pqast.KindInvalid, nil)

	return Fixture{
		Name:       "record_open_second_value",
		Source:     "[a = 1, b = ",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 12},
	}
}

// FunctionPartialArithmetic builds "(x as number) => x * " : x is a
// non-nullable Number parameter, the body is "x *" with the right operand
// not yet parsed, so the active node (the "*" operator, reached via
// AfterAst) expects whatever BinOpPartialLookup allows for (Number, Mul).
func FunctionPartialArithmetic() Fixture {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindFunctionExpression, 0, 21)
	addBranch(c, 2, 1, 0, pqast.KindParameterList, 0, 13)
	addBranch(c, 3, 2, 0, pqast.KindParameter, 1, 12)
	addLeaf(c, 4, 3, 0, pqast.KindIdentifier, 1, 2, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addBranch(c, 5, 3, 1, pqast.KindFieldTypeSpecification, 6, 12)
	addLeaf(c, 6, 5, 1, pqast.KindPrimitiveType, 6, 12, func(n *pqast.AstNode) {
		n.ConstantKind = "number"
	})
	addBranch(c, 7, 1, 3, pqast.KindArithmeticExpression, 17, 20)
	addLeaf(c, 8, 7, 0, pqast.KindIdentifier, 17, 18, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "x"
	})
	addLeaf(c, 9, 7, 1, pqast.KindConstant, 19, 20, func(n *pqast.AstNode) {
		n.ConstantKind = "*"
	})
	return Fixture{
		Name:       "function_partial_arithmetic",
		Source:     "(x as number) => x * ",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 21},
	}
}

// InvokeOpenParen builds "f(" : the argument list's first slot is open
// and still entirely untyped, modeled as a non-Csv leaf context node
// (flattenCsvList counts any non-Csv child directly, so the open slot
// still counts toward ArgumentCount even though nothing has been typed in
// it yet -- only an empty Csv wrapper, which has no payload to surface,
// would be silently skipped).
func InvokeOpenParen() Fixture {
	c := pqast.NewCollection()
	addBranch(c, 1, 0, 0, pqast.KindRecursivePrimaryExpression, 0, 2)
	addLeaf(c, 2, 1, 0, pqast.KindIdentifier, 0, 1, func(n *pqast.AstNode) {
		n.IdentifierLiteral = "f"
	})
	addBranch(c, 3, 1, 1, pqast.KindArrayWrapper, 1, 2)
	addBranch(c, 4, 3, 0, pqast.KindInvokeExpression, 1, 2)
	addBranch(c, 5, 4, 1, pqast.KindParameterList, 2, 2)
	addOpenLeafContext(c, 7, 5, 0, pqast.KindInvalid, nil)
	return Fixture{
		Name:       "invoke_open_paren",
		Source:     "f(",
		Collection: c,
		Caret:      position.Position{LineCodeUnit: 2},
	}
}

// All returns every scenario in a fixed order.
func All() []Fixture {
	return []Fixture{
		LetBodyIdentifier(),
		IfKeywordJustOpened(),
		IfConditionAwaitingThen(),
		RecordOpenSecondValue(),
		FunctionPartialArithmetic(),
		InvokeOpenParen(),
	}
}

// FormatType renders a pqtype.Type compactly and deterministically:
// "Number", "Number?", "AnyUnion(Number?, Duration?)?", and so on.
func FormatType(t pqtype.Type) string {
	if t == nil {
		return "<nil>"
	}
	switch v := t.(type) {
	case pqtype.AnyUnion:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = FormatType(m)
		}
		s := "AnyUnion(" + strings.Join(parts, ", ") + ")"
		if v.Nullable {
			s += "?"
		}
		return s
	case pqtype.DefinedRecord:
		return fieldBearingString("Record", v.Fields, v.FieldOrder, v.IsOpen, v.Nullable)
	case pqtype.DefinedTable:
		return fieldBearingString("Table", v.Fields, v.FieldOrder, v.IsOpen, v.Nullable)
	case pqtype.DefinedList:
		elems := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = FormatType(e)
		}
		s := "List{" + strings.Join(elems, ", ") + "}"
		if v.Nullable {
			s += "?"
		}
		return s
	case pqtype.DefinedFunction:
		s := fmt.Sprintf("Function(%d params)->%s", len(v.Parameters), FormatType(v.ReturnType))
		if v.Nullable {
			s += "?"
		}
		return s
	default:
		s := t.Kind().String()
		if t.IsNullable() {
			s += "?"
		}
		return s
	}
}

func fieldBearingString(label string, fields map[string]pqtype.Type, order []string, open, nullable bool) string {
	parts := make([]string, len(order))
	for i, name := range order {
		parts[i] = name + "=" + FormatType(fields[name])
	}
	if open {
		parts = append(parts, "...")
	}
	s := label + "[" + strings.Join(parts, ", ") + "]"
	if nullable {
		s += "?"
	}
	return s
}

// FormatInspection renders every component's result as deterministic,
// sorted text suitable for a golden-file comparison.
func FormatInspection(insp pqinspect.Inspection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "active_node: %s\n", formatActiveNodeResult(insp.ActiveNode))
	fmt.Fprintf(&b, "node_scope: %s\n", formatScopeResult(insp.NodeScope))
	fmt.Fprintf(&b, "scope_type: %s\n", formatScopeTypeResult(insp.ScopeType))
	fmt.Fprintf(&b, "expected_type: %s\n", formatTypeResult(insp.ExpectedType))
	fmt.Fprintf(&b, "invoke_expression: %s\n", formatInvokeResult(insp.InvokeExpression))
	fmt.Fprintf(&b, "autocomplete: %s\n", formatAutocompleteResult(insp.Autocomplete))

	return b.String()
}

func formatActiveNodeResult(r pqinspect.Result[*pqinspect.ActiveNode]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	if r.Value == nil {
		return "<nil>"
	}
	leaf, ok := r.Value.Leaf()
	if !ok {
		return fmt.Sprintf("kind=%s leaf=<none>", r.Value.LeafKind)
	}
	return fmt.Sprintf("kind=%s leaf=%s#%d", r.Value.LeafKind, leaf.NodeKind(), leaf.Id())
}

func formatScopeResult(r pqinspect.Result[pqscope.NodeScope]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	names := make([]string, 0, len(r.Value))
	for name := range r.Value {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		item := r.Value[name]
		parts[i] = fmt.Sprintf("%s(recursive=%t)", name, item.Recursive)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatTypeResult(r pqinspect.Result[pqtype.Type]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	return FormatType(r.Value)
}

// formatScopeTypeResult renders every in-scope name's type, sorted by
// name, e.g. "{a: Number, b: Unknown}".
func formatScopeTypeResult(r pqinspect.Result[map[string]pqtype.Type]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	names := make([]string, 0, len(r.Value))
	for name := range r.Value {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + FormatType(r.Value[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatInvokeResult(r pqinspect.Result[*pqinspect.InvokeExpression]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	if r.Value == nil {
		return "<none>"
	}
	return fmt.Sprintf("name=%q ordinal=%d count=%d", r.Value.Name, r.Value.ArgumentOrdinal, r.Value.ArgumentCount)
}

func formatAutocompleteResult(r pqinspect.Result[pqinspect.Autocomplete]) string {
	if !r.Ok() {
		return "error: " + r.Err.Error()
	}
	if r.Value.Required != nil {
		return fmt.Sprintf("required=%q", *r.Value.Required)
	}
	allowed := append([]string(nil), r.Value.Allowed...)
	sort.Strings(allowed)
	return fmt.Sprintf("required=none allowed=%v", allowed)
}
