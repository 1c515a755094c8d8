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

// Kind enumerates the syntactic node kinds the parser can produce. Only the
// kinds the inspection core dispatches on by name are given distinct
// constants; the grammar defines roughly 70 kinds in total, and any kind not
// named here is still representable (Kind is open-ended, not a closed set
// the core must exhaustively switch over) and simply falls through the
// dispatch default of Unknown.
type Kind int

const (
	KindInvalid Kind = iota

	KindArithmeticExpression
	KindEqualityExpression
	KindLogicalExpression
	KindRelationalExpression

	KindAsExpression
	KindAsType
	KindAsNullablePrimitiveType
	KindEachExpression
	KindFieldTypeSpecification
	KindOtherwiseExpression
	KindParenthesizedExpression
	KindTypePrimaryType

	KindCsv
	KindMetadataExpression

	KindNullableType
	KindNullablePrimitiveType

	KindListExpression
	KindListLiteral

	KindRecordExpression
	KindRecordLiteral

	KindIfExpression
	KindErrorHandlingExpression
	KindErrorRaisingExpression
	KindItemAccessExpression
	KindIsExpression
	KindIsNullablePrimitiveType
	KindNotImplementedExpression

	KindLetExpression

	KindConstant
	KindLiteralExpression
	KindPrimitiveType

	KindRangeExpression
	KindUnaryExpression

	KindRecursivePrimaryExpression
	KindArrayWrapper

	KindInvokeExpression

	KindFieldSelector
	KindFieldProjection
	KindFieldSpecification
	KindFieldSpecificationList

	KindFunctionExpression
	KindFunctionType
	KindRecordType
	KindTableType
	KindListType
	KindParameterList
	KindParameter

	KindIdentifier
	KindIdentifierExpression

	KindSection
	KindSectionMember

	KindGeneralizedIdentifier
)

//go:generate stringer -type=Kind

var kindNames = map[Kind]string{
	KindInvalid:                    "Invalid",
	KindArithmeticExpression:       "ArithmeticExpression",
	KindEqualityExpression:         "EqualityExpression",
	KindLogicalExpression:          "LogicalExpression",
	KindRelationalExpression:       "RelationalExpression",
	KindAsExpression:               "AsExpression",
	KindAsType:                     "AsType",
	KindAsNullablePrimitiveType:    "AsNullablePrimitiveType",
	KindEachExpression:             "EachExpression",
	KindFieldTypeSpecification:    "FieldTypeSpecification",
	KindOtherwiseExpression:        "OtherwiseExpression",
	KindParenthesizedExpression:    "ParenthesizedExpression",
	KindTypePrimaryType:            "TypePrimaryType",
	KindCsv:                        "Csv",
	KindMetadataExpression:         "MetadataExpression",
	KindNullableType:               "NullableType",
	KindNullablePrimitiveType:      "NullablePrimitiveType",
	KindListExpression:             "ListExpression",
	KindListLiteral:                "ListLiteral",
	KindRecordExpression:           "RecordExpression",
	KindRecordLiteral:              "RecordLiteral",
	KindIfExpression:               "IfExpression",
	KindErrorHandlingExpression:    "ErrorHandlingExpression",
	KindErrorRaisingExpression:     "ErrorRaisingExpression",
	KindItemAccessExpression:       "ItemAccessExpression",
	KindIsExpression:               "IsExpression",
	KindIsNullablePrimitiveType:    "IsNullablePrimitiveType",
	KindNotImplementedExpression:   "NotImplementedExpression",
	KindLetExpression:              "LetExpression",
	KindConstant:                   "Constant",
	KindLiteralExpression:          "LiteralExpression",
	KindPrimitiveType:              "PrimitiveType",
	KindRangeExpression:            "RangeExpression",
	KindUnaryExpression:            "UnaryExpression",
	KindRecursivePrimaryExpression: "RecursivePrimaryExpression",
	KindArrayWrapper:               "ArrayWrapper",
	KindInvokeExpression:           "InvokeExpression",
	KindFieldSelector:              "FieldSelector",
	KindFieldProjection:            "FieldProjection",
	KindFieldSpecification:         "FieldSpecification",
	KindFieldSpecificationList:     "FieldSpecificationList",
	KindFunctionExpression:         "FunctionExpression",
	KindFunctionType:               "FunctionType",
	KindRecordType:                 "RecordType",
	KindTableType:                  "TableType",
	KindListType:                   "ListType",
	KindParameterList:              "ParameterList",
	KindParameter:                  "Parameter",
	KindIdentifier:                 "Identifier",
	KindIdentifierExpression:       "IdentifierExpression",
	KindSection:                    "Section",
	KindSectionMember:              "SectionMember",
	KindGeneralizedIdentifier:      "GeneralizedIdentifier",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsBinaryOperatorKind is true for the four expression kinds whose type is
// resolved through the binary-operator lookup tables rather than a
// structural rule.
func (k Kind) IsBinaryOperatorKind() bool {
	switch k {
	case KindArithmeticExpression, KindEqualityExpression, KindLogicalExpression, KindRelationalExpression:
		return true
	default:
		return false
	}
}

// ConstantKind identifies which language keyword/constant a Constant node
// spells out (e.g. "then", "each", "#table").
type ConstantKind string

// LiteralKind identifies the shape of a LiteralExpression's token (number,
// text, logical, null, ...).
type LiteralKind string

const (
	LiteralKindNumber  LiteralKind = "Number"
	LiteralKindText    LiteralKind = "Text"
	LiteralKindLogical LiteralKind = "Logical"
	LiteralKindNull    LiteralKind = "Null"
	LiteralKindRecord  LiteralKind = "Record"
	LiteralKindList    LiteralKind = "List"
)
