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
	"fmt"
	"sort"

	"github.com/pqlang/pqinspect/pqast"
)

// Autocomplete is C7's result: at most one mandatory constant to complete,
// or else the full set of keywords legal at the caret.
type Autocomplete struct {
	// Required is the single keyword the grammar demands next (e.g. "then"
	// partway through an if-expression), nil when no one keyword is forced.
	Required *string
	// Allowed lists every keyword legal at the caret when nothing is
	// mandatory -- empty when Required is set.
	Allowed []string
}

// autocompleteConstants and autocompleteExpressions are compile-time tables
// keyed by "parentNodeKind,attributeIndex" naming the keyword/constant
// completions available at each open slot. A slot not present in either
// table falls through to the expression-keyword default.
var autocompleteConstants = map[string][]string{
	key(pqast.KindIfExpression, 0):              {"if"},
	key(pqast.KindIfExpression, 2):               {"then"},
	key(pqast.KindIfExpression, 4):               {"else"},
	key(pqast.KindEachExpression, 0):             {"each"},
	key(pqast.KindErrorHandlingExpression, 1):    {"otherwise"},
	key(pqast.KindLetExpression, 0):               {"let"},
	key(pqast.KindLetExpression, 2):               {"in"},
	key(pqast.KindIsExpression, 1):                {"is"},
	key(pqast.KindAsExpression, 1):                {"as"},
	key(pqast.KindMetadataExpression, 1):          {"meta"},
	key(pqast.KindNotImplementedExpression, 0):    {"..."},
	key(pqast.KindFunctionExpression, 2):          {"as"},
}

var autocompleteExpressions = map[string][]string{
	key(pqast.KindRecordExpression, 0): {"["},
	key(pqast.KindListExpression, 0):   {"{"},
}

// expressionKeywords is the `Expression` keyword set §4.7 falls through to:
// every constant that can open an expression form, mechanically derived
// from the attribute-0 entries of the two tables above rather than
// maintained as a separate hand-picked list.
var expressionKeywords = buildExpressionKeywords()

func buildExpressionKeywords() []string {
	seen := map[string]bool{}
	collect := func(table map[string][]string) {
		for slotKey, words := range table {
			if !isAttributeZero(slotKey) {
				continue
			}
			for _, w := range words {
				seen[w] = true
			}
		}
	}
	collect(autocompleteConstants)
	collect(autocompleteExpressions)

	keywords := make([]string, 0, len(seen))
	for w := range seen {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

func isAttributeZero(slotKey string) bool {
	for i := len(slotKey) - 1; i >= 0; i-- {
		if slotKey[i] == ',' {
			return slotKey[i+1:] == "0"
		}
	}
	return false
}

func key(k pqast.Kind, attrIndex int) string {
	return fmt.Sprintf("%d,%d", int(k), attrIndex)
}

func required(keyword string) Autocomplete { return Autocomplete{Required: &keyword} }

func allowed(keywords []string) Autocomplete { return Autocomplete{Allowed: keywords} }

// Autocomplete implements C7: walk the active node's ancestry from nearest
// to root, honoring the InvokeExpression argument-list edge case and the
// context-node-start deferral, and resolve the nearest matching slot in
// autocompleteConstants/autocompleteExpressions. An absent active node, or
// no match anywhere in the ancestry, falls through to the Expression
// keyword set -- a document starts in expression position.
func (s *session) Autocomplete(active *ActiveNode) (Autocomplete, error) {
	if active == nil || len(active.Ancestry) == 0 {
		return allowed(expressionKeywords), nil
	}

	if s.suppressedAfterArgumentComma(active) {
		return Autocomplete{}, nil
	}
	if s.withinInvokeArgumentList(active.Ancestry) {
		return allowed(expressionKeywords), nil
	}

	for i := 0; i+1 < len(active.Ancestry); i++ {
		child, parent := active.Ancestry[i], active.Ancestry[i+1]

		if pqast.IsAtContextStart(active.Position, parent) {
			continue
		}

		attrIndex := 0
		if idx := child.AttributeIndex(); idx != nil {
			attrIndex = *idx
		}
		if i == 0 && (active.LeafKind == AfterAst || active.LeafKind == InContext) {
			attrIndex++
		}

		slotKey := key(parent.NodeKind(), attrIndex)
		if words, ok := autocompleteConstants[slotKey]; ok && len(words) > 0 {
			return required(words[0]), nil
		}
		if _, ok := autocompleteExpressions[slotKey]; ok {
			return allowed(expressionKeywords), nil
		}
	}

	return allowed(expressionKeywords), nil
}

// withinInvokeArgumentList reports whether any node in ancestry is an
// InvokeExpression, meaning the caret sits somewhere inside that call's
// argument list.
func (s *session) withinInvokeArgumentList(ancestry []pqast.XorNode) bool {
	for _, node := range ancestry {
		if node.NodeKind() == pqast.KindInvokeExpression {
			return true
		}
	}
	return false
}

// suppressedAfterArgumentComma implements the one exception to the
// InvokeExpression edge case: immediately after a Csv's comma (attribute
// index 1), autocomplete offers nothing, since the parser has not yet
// decided whether another argument follows.
func (s *session) suppressedAfterArgumentComma(active *ActiveNode) bool {
	if active.LeafKind != AfterAst || len(active.Ancestry) < 2 {
		return false
	}
	leaf, parent := active.Ancestry[0], active.Ancestry[1]
	if parent.NodeKind() != pqast.KindCsv {
		return false
	}
	idx := leaf.AttributeIndex()
	if idx == nil || *idx != 1 {
		return false
	}
	return s.withinInvokeArgumentList(active.Ancestry[1:])
}
