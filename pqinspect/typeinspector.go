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
	"github.com/pqlang/pqinspect/pqscope"
	"github.com/pqlang/pqinspect/pqtype"
)

// typeOf is the recursive type evaluator. It is total: every node
// resolves to a pqtype.Type, with Unknown standing in for "not yet
// determinable" rather than an error.
func (s *session) typeOf(xor pqast.XorNode) (pqtype.Type, error) {
	id := xor.Id()
	if t, ok := s.deltaType[id]; ok {
		return t, nil
	}
	if t, ok := s.givenType[id]; ok {
		return t, nil
	}

	t, err := s.computeType(xor)
	if err != nil {
		return nil, err
	}
	s.deltaType[id] = t
	return t, nil
}

func (s *session) childType(id pqast.NodeId, index int, allowedKinds ...pqast.Kind) (pqtype.Type, error) {
	child, found, err := s.collection.ChildByAttributeIndex(id, index, allowedKinds...)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	return s.typeOf(child)
}

func (s *session) computeType(xor pqast.XorNode) (pqtype.Type, error) {
	if xor.NodeKind().IsBinaryOperatorKind() {
		return s.typeOfBinaryExpression(xor)
	}

	switch xor.NodeKind() {
	case pqast.KindAsExpression, pqast.KindSectionMember:
		return s.childType(xor.Id(), 2)

	case pqast.KindAsType, pqast.KindAsNullablePrimitiveType, pqast.KindEachExpression,
		pqast.KindFieldTypeSpecification, pqast.KindOtherwiseExpression,
		pqast.KindParenthesizedExpression, pqast.KindTypePrimaryType:
		return s.childType(xor.Id(), 1)

	case pqast.KindCsv, pqast.KindMetadataExpression:
		return s.childType(xor.Id(), 0)

	case pqast.KindNullableType, pqast.KindNullablePrimitiveType:
		inner, err := s.childType(xor.Id(), 1)
		if err != nil {
			return nil, err
		}
		return pqtype.WithNullable(inner, true), nil

	case pqast.KindListExpression, pqast.KindListLiteral:
		return s.typeOfListLiteral(xor)

	case pqast.KindRecordExpression, pqast.KindRecordLiteral:
		return s.typeOfRecordLiteral(xor)

	case pqast.KindIfExpression:
		return s.typeOfIfExpression(xor)

	case pqast.KindErrorHandlingExpression:
		return s.typeOfErrorHandlingExpression(xor)

	case pqast.KindErrorRaisingExpression, pqast.KindItemAccessExpression:
		return pqtype.AnyType, nil

	case pqast.KindIsExpression, pqast.KindIsNullablePrimitiveType:
		return pqtype.NewPrimitive(pqtype.Logical, false), nil

	case pqast.KindNotImplementedExpression:
		return pqtype.NoneType, nil

	case pqast.KindLetExpression:
		return s.childType(xor.Id(), 3)

	case pqast.KindConstant:
		return s.typeOfConstant(xor)

	case pqast.KindLiteralExpression:
		return s.typeOfLiteralExpression(xor)

	case pqast.KindPrimitiveType:
		return s.typeOfPrimitiveTypeConstant(xor)

	case pqast.KindRangeExpression:
		return s.typeOfRangeExpression(xor)

	case pqast.KindUnaryExpression:
		return s.typeOfUnaryExpression(xor)

	case pqast.KindRecursivePrimaryExpression:
		return s.typeOfRecursivePrimaryExpression(xor)

	case pqast.KindInvokeExpression:
		return s.typeOfInvokeExpression(xor)

	case pqast.KindFieldSelector:
		return s.typeOfFieldSelector(xor)

	case pqast.KindFieldProjection:
		return s.typeOfFieldProjection(xor)

	case pqast.KindFieldSpecification:
		return s.typeOfFieldSpecification(xor)

	case pqast.KindFunctionExpression:
		return s.typeOfFunctionExpression(xor)

	case pqast.KindFunctionType:
		return s.typeOfFunctionTypeDecl(xor)

	case pqast.KindRecordType:
		return s.typeOfRecordTypeDecl(xor)

	case pqast.KindTableType:
		return s.typeOfTableTypeDecl(xor)

	case pqast.KindListType:
		return s.typeOfListTypeDecl(xor)

	case pqast.KindIdentifier, pqast.KindIdentifierExpression:
		return s.typeOfIdentifier(xor)

	default:
		return pqtype.UnknownType, nil
	}
}

func (s *session) typeOfBinaryExpression(xor pqast.XorNode) (pqtype.Type, error) {
	leftType, err := s.childType(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	opConstant, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 1, pqast.KindConstant)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	opNode, isAst := opConstant.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	op, hasOp := binaryOperatorOf(opNode)
	if !hasOp {
		return pqtype.UnknownType, nil
	}

	rightXor, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 2)
	if err != nil {
		return nil, err
	}
	if !found {
		// A partial expression like "1 +": resolve what the parser would
		// accept next.
		return pqtype.ResolvePartial(leftType.Kind(), op), nil
	}

	rightType, err := s.typeOf(rightXor)
	if err != nil {
		return nil, err
	}

	if op == pqtype.OpConcat && (leftType.Kind() == pqtype.Record || leftType.Kind() == pqtype.Table) &&
		leftType.Kind() == rightType.Kind() {
		return pqtype.RecordTableUnion(leftType, rightType)
	}

	resultKind, ok := pqtype.BinOpLookup[pqtype.BinOpKey{Left: leftType.Kind(), Op: op, Right: rightType.Kind()}]
	if !ok {
		return pqtype.NoneType, nil
	}
	nullable := leftType.IsNullable() || rightType.IsNullable()
	if resultKind == pqtype.Logical {
		nullable = false
	}
	return pqtype.NewPrimitive(resultKind, nullable), nil
}

func (s *session) typeOfListLiteral(xor pqast.XorNode) (pqtype.Type, error) {
	content, found, err := s.collection.WrappedContent(xor.Id())
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.DefinedList{}, nil
	}
	elemXorNodes, err := flattenCsvList(s.collection, content.Id())
	if err != nil {
		return nil, err
	}
	elements := make([]pqtype.Type, len(elemXorNodes))
	for i, e := range elemXorNodes {
		t, err := s.typeOf(e)
		if err != nil {
			return nil, err
		}
		elements[i] = t
	}
	return pqtype.DefinedList{Elements: elements}, nil
}

func (s *session) typeOfRecordLiteral(xor pqast.XorNode) (pqtype.Type, error) {
	content, found, err := s.collection.WrappedContent(xor.Id())
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.DefinedRecord{Fields: map[string]pqtype.Type{}}, nil
	}
	pairs, err := flattenCsvList(s.collection, content.Id())
	if err != nil {
		return nil, err
	}

	fields := make(map[string]pqtype.Type, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		keyXor, found, err := s.collection.ChildByAttributeIndex(pair.Id(), 0, pqast.KindIdentifier, pqast.KindGeneralizedIdentifier)
		if err != nil || !found {
			continue
		}
		keyNode, isAst := keyXor.Ast()
		if !isAst {
			continue
		}

		valueXor, found, err := s.collection.ChildByAttributeIndex(pair.Id(), 2)
		if err != nil {
			return nil, err
		}
		var valueType pqtype.Type = pqtype.UnknownType
		if found {
			valueType, err = s.typeOf(valueXor)
			if err != nil {
				return nil, err
			}
		}

		if _, exists := fields[keyNode.IdentifierLiteral]; !exists {
			order = append(order, keyNode.IdentifierLiteral)
		}
		fields[keyNode.IdentifierLiteral] = valueType
	}
	return pqtype.DefinedRecord{Fields: fields, FieldOrder: order, IsOpen: false}, nil
}

func (s *session) typeOfIfExpression(xor pqast.XorNode) (pqtype.Type, error) {
	condType, err := s.childType(xor.Id(), 1)
	if err != nil {
		return nil, err
	}
	if !isLogicalCompatible(condType) {
		if condType.Kind() == pqtype.Unknown {
			return pqtype.UnknownType, nil
		}
		return pqtype.NoneType, nil
	}

	trueType, err := s.childType(xor.Id(), 3)
	if err != nil {
		return nil, err
	}
	falseType, err := s.childType(xor.Id(), 5)
	if err != nil {
		return nil, err
	}
	return pqtype.NewAnyUnion(trueType, falseType), nil
}

// isLogicalCompatible reports whether an if-condition's type is Logical,
// or an AnyUnion each of whose members is Logical or Any.
func isLogicalCompatible(t pqtype.Type) bool {
	if union, ok := t.(pqtype.AnyUnion); ok {
		for _, m := range union.Members {
			if m.Kind() != pqtype.Logical && m.Kind() != pqtype.Any {
				return false
			}
		}
		return true
	}
	return t.Kind() == pqtype.Logical
}

func (s *session) typeOfErrorHandlingExpression(xor pqast.XorNode) (pqtype.Type, error) {
	bodyType, err := s.childType(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	otherwise, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 1, pqast.KindOtherwiseExpression)
	if err != nil {
		return nil, err
	}
	var otherwiseType pqtype.Type
	if found {
		otherwiseType, err = s.typeOf(otherwise)
		if err != nil {
			return nil, err
		}
	} else {
		otherwiseType = pqtype.DefinedRecord{Fields: map[string]pqtype.Type{}}
	}
	return pqtype.NewAnyUnion(bodyType, otherwiseType), nil
}

func (s *session) typeOfConstant(xor pqast.XorNode) (pqtype.Type, error) {
	n, isAst := xor.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	switch n.ConstantKind {
	case "any":
		return pqtype.AnyType, nil
	case "null":
		return pqtype.NewPrimitive(pqtype.Null, false), nil
	case "type":
		return pqtype.NewPrimitive(pqtype.TypeKind, false), nil
	}
	if kind, ok := primitiveConstantKind(n.ConstantKind); ok {
		return pqtype.NewPrimitive(kind, false), nil
	}
	return pqtype.UnknownType, nil
}

func (s *session) typeOfLiteralExpression(xor pqast.XorNode) (pqtype.Type, error) {
	n, isAst := xor.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	switch n.LiteralKind {
	case pqast.LiteralKindNumber:
		return pqtype.NewPrimitive(pqtype.Number, false), nil
	case pqast.LiteralKindText:
		return pqtype.NewPrimitive(pqtype.Text, false), nil
	case pqast.LiteralKindLogical:
		return pqtype.NewPrimitive(pqtype.Logical, false), nil
	case pqast.LiteralKindNull:
		return pqtype.NewPrimitive(pqtype.Null, true), nil
	default:
		return pqtype.UnknownType, nil
	}
}

func (s *session) typeOfPrimitiveTypeConstant(xor pqast.XorNode) (pqtype.Type, error) {
	n, isAst := xor.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	if kind, ok := primitiveConstantKind(n.ConstantKind); ok {
		return pqtype.NewPrimitive(kind, false), nil
	}
	return pqtype.UnknownType, nil
}

func (s *session) typeOfRangeExpression(xor pqast.XorNode) (pqtype.Type, error) {
	leftType, err := s.childType(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	rightType, err := s.childType(xor.Id(), 2)
	if err != nil {
		return nil, err
	}
	if leftType.Kind() == pqtype.Unknown || rightType.Kind() == pqtype.Unknown {
		return pqtype.UnknownType, nil
	}
	if leftType.Kind() == pqtype.None || rightType.Kind() == pqtype.None {
		return pqtype.NoneType, nil
	}
	if leftType.Kind() == pqtype.Number && !leftType.IsNullable() && rightType.Kind() == pqtype.Number && !rightType.IsNullable() {
		return pqtype.NewPrimitive(pqtype.Number, false), nil
	}
	return pqtype.NoneType, nil
}

func (s *session) typeOfUnaryExpression(xor pqast.XorNode) (pqtype.Type, error) {
	opConstant, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 0, pqast.KindConstant)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	opNode, isAst := opConstant.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	operandType, err := s.childType(xor.Id(), 1)
	if err != nil {
		return nil, err
	}
	switch opNode.ConstantKind {
	case "+", "-":
		if operandType.Kind() == pqtype.Number {
			return operandType, nil
		}
		if operandType.Kind() == pqtype.Unknown {
			return pqtype.UnknownType, nil
		}
		return pqtype.NoneType, nil
	case "not":
		if operandType.Kind() == pqtype.Logical {
			return operandType, nil
		}
		if operandType.Kind() == pqtype.Unknown {
			return pqtype.UnknownType, nil
		}
		return pqtype.NoneType, nil
	default:
		return pqtype.NoneType, nil
	}
}

func (s *session) typeOfRecursivePrimaryExpression(xor pqast.XorNode) (pqtype.Type, error) {
	head, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	running, err := s.typeOf(head)
	if err != nil {
		return nil, err
	}

	tail, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 1, pqast.KindArrayWrapper)
	if err != nil {
		return nil, err
	}
	if !found {
		return running, nil
	}
	steps, err := s.collection.ChildrenOf(tail.Id())
	if err != nil {
		return nil, err
	}
	for _, step := range steps {
		if running.Kind() == pqtype.None || running.Kind() == pqtype.Unknown {
			return running, nil
		}
		running, err = s.typeOf(step)
		if err != nil {
			return nil, err
		}
	}
	return running, nil
}

func (s *session) typeOfInvokeExpression(xor pqast.XorNode) (pqtype.Type, error) {
	callee, err := s.previousRecursiveSibling(xor)
	if err != nil {
		return nil, err
	}
	switch callee.Kind() {
	case pqtype.Any:
		return pqtype.AnyType, nil
	case pqtype.Function:
		if fn, ok := callee.(pqtype.DefinedFunction); ok {
			return fn.ReturnType, nil
		}
		return pqtype.AnyType, nil
	case pqtype.Unknown:
		return pqtype.UnknownType, nil
	default:
		return pqtype.NoneType, nil
	}
}

func (s *session) typeOfFieldSelector(xor pqast.XorNode) (pqtype.Type, error) {
	sourceType, err := s.previousRecursiveSibling(xor)
	if err != nil {
		return nil, err
	}
	fieldXor, found, err := s.collection.WrappedContent(xor.Id())
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	fieldNode, isAst := fieldXor.Ast()
	if !isAst {
		return pqtype.UnknownType, nil
	}
	opt := hasOptionalMarker(s.collection, xor)
	return fieldSelect(sourceType, fieldNode.IdentifierLiteral, opt), nil
}

func (s *session) typeOfFieldProjection(xor pqast.XorNode) (pqtype.Type, error) {
	sourceType, err := s.previousRecursiveSibling(xor)
	if err != nil {
		return nil, err
	}
	content, found, err := s.collection.WrappedContent(xor.Id())
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.UnknownType, nil
	}
	selectors, err := flattenCsvList(s.collection, content.Id())
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		astNode, isAst := sel.Ast()
		if !isAst {
			continue
		}
		fields = append(fields, astNode.IdentifierLiteral)
	}
	opt := hasOptionalMarker(s.collection, xor)
	return fieldProject(sourceType, fields, opt), nil
}

func (s *session) typeOfFieldSpecification(xor pqast.XorNode) (pqtype.Type, error) {
	typeSpec, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 1, pqast.KindFieldTypeSpecification)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.AnyType, nil
	}
	return s.typeOf(typeSpec)
}

func (s *session) typeOfFunctionExpression(xor pqast.XorNode) (pqtype.Type, error) {
	params, err := s.functionParameters(xor)
	if err != nil {
		return nil, err
	}

	declared, hasDeclared, err := s.collection.ChildByAttributeIndex(xor.Id(), 1, pqast.KindAsNullablePrimitiveType, pqast.KindFieldTypeSpecification)
	if err != nil {
		return nil, err
	}
	bodyType, err := s.childType(xor.Id(), 3)
	if err != nil {
		return nil, err
	}

	if !hasDeclared {
		return pqtype.DefinedFunction{Parameters: params, ReturnType: bodyType}, nil
	}
	declaredType, err := s.typeOf(declared)
	if err != nil {
		return nil, err
	}
	return pqtype.DefinedFunction{Parameters: params, ReturnType: reconcileReturnType(declaredType, bodyType)}, nil
}

// reconcileReturnType implements FunctionExpression return-type
// reconciliation rule.
func reconcileReturnType(declared, body pqtype.Type) pqtype.Type {
	if declared.Kind() == pqtype.Any {
		return body
	}
	if union, ok := body.(pqtype.AnyUnion); ok {
		allMatch := true
		for _, m := range union.Members {
			if m.Kind() != declared.Kind() && m.Kind() != pqtype.Any {
				allMatch = false
				break
			}
		}
		if allMatch {
			return body
		}
	}
	if declared.Kind() != body.Kind() && body.Kind() != pqtype.Unknown {
		return pqtype.NoneType
	}
	if body.Kind() == pqtype.Unknown {
		return declared
	}
	return body
}

func (s *session) functionParameters(xor pqast.XorNode) ([]pqtype.Parameter, error) {
	paramList, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 0, pqast.KindParameterList)
	if err != nil || !found {
		return nil, err
	}
	paramNodes, err := s.collection.ChildrenOf(paramList.Id())
	if err != nil {
		return nil, err
	}
	var out []pqtype.Parameter
	for _, p := range paramNodes {
		if p.NodeKind() != pqast.KindParameter {
			continue
		}
		param, ok, err := parameterType(s.collection, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, param)
		}
	}
	return out, nil
}

func (s *session) typeOfFunctionTypeDecl(xor pqast.XorNode) (pqtype.Type, error) {
	params, err := s.functionParameters(xor)
	if err != nil {
		return nil, err
	}
	ret, err := s.childType(xor.Id(), 1)
	if err != nil {
		return nil, err
	}
	return pqtype.DefinedType{Primary: pqtype.FunctionType{Parameters: params, ReturnType: ret}}, nil
}

func (s *session) typeOfRecordTypeDecl(xor pqast.XorNode) (pqtype.Type, error) {
	specList, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 0, pqast.KindFieldSpecificationList)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.DefinedType{Primary: pqtype.RecordType{Fields: map[string]pqtype.Type{}}}, nil
	}
	fields, order, open, err := s.fieldSpecificationListTypes(specList)
	if err != nil {
		return nil, err
	}
	return pqtype.DefinedType{Primary: pqtype.RecordType{Fields: fields, FieldOrder: order, IsOpen: open}}, nil
}

func (s *session) typeOfTableTypeDecl(xor pqast.XorNode) (pqtype.Type, error) {
	inner, found, err := s.collection.ChildByAttributeIndex(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	if !found {
		return pqtype.DefinedType{Primary: pqtype.TableType{Fields: map[string]pqtype.Type{}}}, nil
	}
	if inner.NodeKind() == pqast.KindFieldSpecificationList {
		fields, order, open, err := s.fieldSpecificationListTypes(inner)
		if err != nil {
			return nil, err
		}
		return pqtype.DefinedType{Primary: pqtype.TableType{Fields: fields, FieldOrder: order, IsOpen: open}}, nil
	}
	innerType, err := s.typeOf(inner)
	if err != nil {
		return nil, err
	}
	return pqtype.PrimaryExpressionTable{Inner: innerType}, nil
}

func (s *session) typeOfListTypeDecl(xor pqast.XorNode) (pqtype.Type, error) {
	item, err := s.childType(xor.Id(), 0)
	if err != nil {
		return nil, err
	}
	return pqtype.DefinedType{Primary: pqtype.ListType{ItemType: item}}, nil
}

func (s *session) fieldSpecificationListTypes(specList pqast.XorNode) (map[string]pqtype.Type, []string, bool, error) {
	content, found, err := s.collection.WrappedContent(specList.Id())
	if err != nil {
		return nil, nil, false, err
	}
	if !found {
		return map[string]pqtype.Type{}, nil, false, nil
	}
	specs, err := flattenCsvList(s.collection, content.Id())
	if err != nil {
		return nil, nil, false, err
	}
	fields := make(map[string]pqtype.Type, len(specs))
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.NodeKind() == pqast.KindConstant {
			// the open-record/table "..." marker
			continue
		}
		if spec.NodeKind() != pqast.KindFieldSpecification {
			continue
		}
		keyXor, found, err := s.collection.ChildByAttributeIndex(spec.Id(), 0, pqast.KindGeneralizedIdentifier, pqast.KindIdentifier)
		if err != nil || !found {
			continue
		}
		keyNode, isAst := keyXor.Ast()
		if !isAst {
			continue
		}
		fieldType, err := s.typeOf(spec)
		if err != nil {
			return nil, nil, false, err
		}
		if _, exists := fields[keyNode.IdentifierLiteral]; !exists {
			order = append(order, keyNode.IdentifierLiteral)
		}
		fields[keyNode.IdentifierLiteral] = fieldType
	}
	isOpen := hasOpenMarker(specs)
	return fields, order, isOpen, nil
}

func hasOpenMarker(specs []pqast.XorNode) bool {
	for _, spec := range specs {
		if spec.NodeKind() == pqast.KindConstant {
			return true
		}
	}
	return false
}

func (s *session) typeOfIdentifier(xor pqast.XorNode) (pqtype.Type, error) {
	name, inclusive, isIdent := identifierLiteral(s.collection, xor)
	if !isIdent {
		return pqtype.UnknownType, nil
	}
	scope, err := s.scopeOf(xor.Id())
	if err != nil {
		return nil, err
	}
	item, found := pqscope.Dereference(scope, name, inclusive, func(v pqast.XorNode) (string, bool, bool) {
		return identifierLiteral(s.collection, v)
	})
	if !found {
		return pqtype.UnknownType, nil
	}
	if item.Recursive {
		return pqtype.AnyType, nil
	}
	return s.typeOfScopeItem(item)
}

// typeOfScopeItem implements the type-side completion of
// identifier dereferencing once a ScopeItem has been found.
func (s *session) typeOfScopeItem(item pqscope.ScopeItem) (pqtype.Type, error) {
	switch item.Kind {
	case pqscope.ItemParameter:
		if item.PrimitiveType != nil {
			return pqtype.NewPrimitive(*item.PrimitiveType, item.Nullable), nil
		}
		return pqtype.AnyType, nil
	case pqscope.ItemEach:
		return s.typeOf(item.EachExpression)
	case pqscope.ItemKeyValuePair, pqscope.ItemSectionMember:
		if item.Value == nil {
			return pqtype.UnknownType, nil
		}
		return s.typeOf(*item.Value)
	default:
		return pqtype.UnknownType, nil
	}
}

// previousRecursiveSibling types the expression immediately to the left of
// xor within its enclosing RecursivePrimaryExpression.
func (s *session) previousRecursiveSibling(xor pqast.XorNode) (pqtype.Type, error) {
	sibling, err := s.collection.RecursiveExpressionPreviousSibling(xor.Id())
	if err != nil {
		return nil, err
	}
	return s.typeOf(sibling)
}

func flattenCsvList(c *pqast.Collection, containerId pqast.NodeId) ([]pqast.XorNode, error) {
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

func binaryOperatorOf(n *pqast.AstNode) (pqtype.Op, bool) {
	switch n.ConstantKind {
	case "+":
		return pqtype.OpAdd, true
	case "-":
		return pqtype.OpSub, true
	case "*":
		return pqtype.OpMul, true
	case "/":
		return pqtype.OpDiv, true
	case "&":
		return pqtype.OpConcat, true
	case "=":
		return pqtype.OpEqual, true
	case "<>":
		return pqtype.OpNotEqual, true
	case "<":
		return pqtype.OpLessThan, true
	case "<=":
		return pqtype.OpLessThanOrEqual, true
	case ">":
		return pqtype.OpGreaterThan, true
	case ">=":
		return pqtype.OpGreaterThanOrEqual, true
	case "and":
		return pqtype.OpAnd, true
	case "or":
		return pqtype.OpOr, true
	default:
		return 0, false
	}
}

