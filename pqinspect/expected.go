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
	"github.com/pqlang/pqinspect/pqtype"
)

// ExpectedType implements C6: walks the active node's ancestry
// leaf-to-root, asking at each step "what type does this slot require",
// and returns the nearest enclosing answer. An AfterAst leaf effectively
// asks about the slot one past the active node -- the position the caret
// would next fill in -- rather than the slot the active node itself
// occupies.
func (s *session) ExpectedType(active *ActiveNode) (pqtype.Type, error) {
	if active == nil || len(active.Ancestry) == 0 {
		return pqtype.AnyType, nil
	}

	attrIndex := 0
	if idx := active.Ancestry[0].AttributeIndex(); idx != nil {
		attrIndex = *idx
	}
	if active.LeafKind == AfterAst {
		attrIndex++
	}

	for i := 0; i+1 < len(active.Ancestry); i++ {
		child := active.Ancestry[i]
		parent := active.Ancestry[i+1]

		idx := attrIndex
		if i > 0 {
			if a := child.AttributeIndex(); a != nil {
				idx = *a
			} else {
				idx = 0
			}
		}

		t, handled, err := s.expectedTypeForSlot(parent, idx)
		if err != nil {
			return nil, err
		}
		if handled {
			return t, nil
		}
	}
	return pqtype.AnyType, nil
}

func (s *session) expectedTypeForSlot(parent pqast.XorNode, attrIndex int) (pqtype.Type, bool, error) {
	switch parent.NodeKind() {
	case pqast.KindArithmeticExpression, pqast.KindEqualityExpression, pqast.KindRelationalExpression:
		if attrIndex == 2 {
			leftType, err := s.childType(parent.Id(), 0)
			if err != nil {
				return nil, false, err
			}
			opConstant, found, err := s.collection.ChildByAttributeIndex(parent.Id(), 1, pqast.KindConstant)
			if err != nil || !found {
				return pqtype.AnyType, true, nil
			}
			opNode, isAst := opConstant.Ast()
			if !isAst {
				return pqtype.AnyType, true, nil
			}
			op, ok := binaryOperatorOf(opNode)
			if !ok {
				return pqtype.AnyType, true, nil
			}
			return pqtype.ResolvePartial(leftType.Kind(), op), true, nil
		}
		return pqtype.AnyType, true, nil

	case pqast.KindLogicalExpression:
		return pqtype.NewPrimitive(pqtype.Logical, true), true, nil

	case pqast.KindIfExpression:
		if attrIndex == 1 {
			return pqtype.NewPrimitive(pqtype.Logical, false), true, nil
		}
		return pqtype.AnyType, true, nil

	case pqast.KindEachExpression, pqast.KindParenthesizedExpression, pqast.KindOtherwiseExpression,
		pqast.KindMetadataExpression, pqast.KindAsExpression:
		return pqtype.AnyType, true, nil

	case pqast.KindLetExpression:
		return pqtype.AnyType, true, nil

	case pqast.KindFieldTypeSpecification, pqast.KindAsNullablePrimitiveType, pqast.KindNullablePrimitiveType,
		pqast.KindNullableType, pqast.KindIsExpression, pqast.KindIsNullablePrimitiveType:
		return pqtype.NewPrimitive(pqtype.TypeKind, false), true, nil

	case pqast.KindFunctionExpression:
		if attrIndex == 3 {
			if declared, found, err := s.collection.ChildByAttributeIndex(parent.Id(), 1,
				pqast.KindAsNullablePrimitiveType, pqast.KindFieldTypeSpecification); err == nil && found {
				t, err := s.typeOf(declared)
				if err == nil {
					return t, true, nil
				}
			}
		}
		return pqtype.AnyType, true, nil

	case pqast.KindFieldSpecification:
		if attrIndex == 1 {
			return pqtype.NewPrimitive(pqtype.TypeKind, false), true, nil
		}
		return pqtype.AnyType, true, nil

	case pqast.KindRecordExpression, pqast.KindRecordLiteral, pqast.KindListExpression, pqast.KindListLiteral:
		return pqtype.AnyType, true, nil

	default:
		return pqtype.AnyType, false, nil
	}
}
