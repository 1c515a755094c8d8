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

// primitiveConstantKinds maps the Constant payload spellings the parser
// emits for a primitive-type keyword to a pqtype.Kind, mirroring the table
// pqscope keeps for parameter "as"-clauses (kept separate since the two
// packages must not share unexported state).
var primitiveConstantKinds = map[pqast.ConstantKind]pqtype.Kind{
	"action":       pqtype.Action,
	"any":          pqtype.Any,
	"anynonnull":   pqtype.AnyNonNull,
	"binary":       pqtype.Binary,
	"date":         pqtype.Date,
	"datetime":     pqtype.DateTime,
	"datetimezone": pqtype.DateTimeZone,
	"duration":     pqtype.Duration,
	"function":     pqtype.Function,
	"list":         pqtype.List,
	"logical":      pqtype.Logical,
	"none":         pqtype.None,
	"null":         pqtype.Null,
	"number":       pqtype.Number,
	"record":       pqtype.Record,
	"table":        pqtype.Table,
	"text":         pqtype.Text,
	"time":         pqtype.Time,
	"type":         pqtype.TypeKind,
}

func primitiveConstantKind(k pqast.ConstantKind) (pqtype.Kind, bool) {
	kind, ok := primitiveConstantKinds[k]
	return kind, ok
}

// parameterType extracts a FunctionExpression/FunctionType parameter's
// declared pqtype.Parameter signature from its Parameter node.
func parameterType(c *pqast.Collection, p pqast.XorNode) (pqtype.Parameter, bool, error) {
	nameNode, found, err := c.ChildByAttributeIndex(p.Id(), 0, pqast.KindIdentifier, pqast.KindGeneralizedIdentifier)
	if err != nil || !found {
		return pqtype.Parameter{}, false, err
	}
	astNode, isAst := nameNode.Ast()
	if !isAst {
		return pqtype.Parameter{}, false, nil
	}

	param := pqtype.Parameter{Name: astNode.IdentifierLiteral}

	typeSpec, found, err := c.ChildByAttributeIndex(p.Id(), 1, pqast.KindFieldTypeSpecification, pqast.KindAsNullablePrimitiveType)
	if err != nil {
		return pqtype.Parameter{}, false, err
	}
	if found {
		kind, nullable := primitiveTypeTagLocal(c, typeSpec)
		param.PrimitiveType = kind
		param.Nullable = nullable
	}
	return param, true, nil
}

// primitiveTypeTagLocal is pqinspect's copy of pqscope's unexported
// primitiveTypeTag, needed here because parameterType builds a
// pqtype.Parameter rather than a pqscope.ScopeItem.
func primitiveTypeTagLocal(c *pqast.Collection, typeSpec pqast.XorNode) (*pqtype.Kind, bool) {
	nullable := typeSpec.NodeKind() == pqast.KindNullablePrimitiveType || typeSpec.NodeKind() == pqast.KindAsNullablePrimitiveType

	target := typeSpec
	if inner, found, err := c.ChildByAttributeIndex(typeSpec.Id(), 1, pqast.KindPrimitiveType); err == nil && found {
		target = inner
	} else if inner, found, err := c.ChildByAttributeIndex(typeSpec.Id(), 0, pqast.KindPrimitiveType); err == nil && found {
		target = inner
	}

	astNode, isAst := target.Ast()
	if !isAst {
		return nil, nullable
	}
	kind, ok := primitiveConstantKind(astNode.ConstantKind)
	if !ok {
		return nil, nullable
	}
	return &kind, nullable
}

func hasOptionalMarker(c *pqast.Collection, xor pqast.XorNode) bool {
	marker, found, err := c.ChildByAttributeIndex(xor.Id(), 1, pqast.KindConstant)
	return err == nil && found && marker.NodeKind() == pqast.KindConstant
}

// fieldBearing is the minimal read-only view fieldSelect/fieldProject need
// over a Record, Table, or PrimaryExpressionTable-wrapped value.
type fieldBearing struct {
	kind   pqtype.Kind
	fields map[string]pqtype.Type
	order  []string
	isOpen bool
}

// isUnextendedRecordOrTable reports whether t is a bare
// Primitive{Kind:Record} or Primitive{Kind:Table} carrying no structural
// field information (e.g. the declared type of a parameter typed
// "as record" with no record-type-specification), as opposed to a
// DefinedRecord/DefinedTable whose fields a selector or projection can
// inspect.
func isUnextendedRecordOrTable(t pqtype.Type) bool {
	p, ok := t.(pqtype.Primitive)
	return ok && (p.PrimitiveKind == pqtype.Record || p.PrimitiveKind == pqtype.Table)
}

func asFieldBearing(t pqtype.Type) (fieldBearing, bool) {
	switch v := t.(type) {
	case pqtype.DefinedRecord:
		return fieldBearing{kind: pqtype.Record, fields: v.Fields, order: v.FieldOrder, isOpen: v.IsOpen}, true
	case pqtype.DefinedTable:
		return fieldBearing{kind: pqtype.Table, fields: v.Fields, order: v.FieldOrder, isOpen: v.IsOpen}, true
	case pqtype.PrimaryExpressionTable:
		return asFieldBearing(v.Inner)
	default:
		return fieldBearing{}, false
	}
}

// fieldSelect implements the FieldSelector half: look up name on
// source's structural field set. A missing field on an open record/table
// cannot be ruled out statically and resolves to Any; a missing field on a
// closed record/table is None unless the selector carries the optional "?"
// marker, in which case it is a nullable Null. A selector against Unknown
// is Unknown, and against Any is Any.
func fieldSelect(source pqtype.Type, name string, optional bool) pqtype.Type {
	switch source.Kind() {
	case pqtype.Unknown:
		return pqtype.UnknownType
	case pqtype.Any:
		return pqtype.AnyType
	}

	bearing, ok := asFieldBearing(source)
	if !ok {
		if isUnextendedRecordOrTable(source) {
			return pqtype.AnyType
		}
		return pqtype.NoneType
	}
	if t, found := bearing.fields[name]; found {
		return t
	}
	if bearing.isOpen {
		return pqtype.AnyType
	}
	if optional {
		return pqtype.NewPrimitive(pqtype.Null, true)
	}
	return pqtype.NoneType
}

// fieldProject implements the FieldProjection half: narrow
// source to exactly the named fields, preserving its Record/Table kind.
// A closed source missing any requested field is None unless the
// projection carries the optional "?" marker, in which case the missing
// field is synthesised as nullable Null in the result.
func fieldProject(source pqtype.Type, names []string, optional bool) pqtype.Type {
	switch source.Kind() {
	case pqtype.Unknown:
		return pqtype.UnknownType
	case pqtype.Any:
		return pqtype.NewAnyUnion(anyFieldsRecord(names), anyFieldsTable(names))
	}

	bearing, ok := asFieldBearing(source)
	if !ok {
		if isUnextendedRecordOrTable(source) {
			if source.Kind() == pqtype.Table {
				return anyFieldsTable(names)
			}
			return anyFieldsRecord(names)
		}
		return pqtype.NoneType
	}

	fields := make(map[string]pqtype.Type, len(names))
	for _, name := range names {
		t, found := bearing.fields[name]
		switch {
		case found:
			fields[name] = t
		case bearing.isOpen:
			fields[name] = pqtype.AnyType
		case optional:
			fields[name] = pqtype.NewPrimitive(pqtype.Null, true)
		default:
			return pqtype.NoneType
		}
	}

	if bearing.kind == pqtype.Table {
		return pqtype.DefinedTable{Fields: fields, FieldOrder: append([]string(nil), names...), IsOpen: false, Nullable: source.IsNullable()}
	}
	return pqtype.DefinedRecord{Fields: fields, FieldOrder: append([]string(nil), names...), IsOpen: false, Nullable: source.IsNullable()}
}

// anyFieldsRecord/anyFieldsTable build the closed, every-field-Any shape a
// projection against an unstructured Record/Table/Any source produces: the
// requested fields are known to exist but nothing is known about their
// types.
func anyFieldsRecord(names []string) pqtype.DefinedRecord {
	return pqtype.DefinedRecord{Fields: anyFields(names), FieldOrder: append([]string(nil), names...), IsOpen: false}
}

func anyFieldsTable(names []string) pqtype.DefinedTable {
	return pqtype.DefinedTable{Fields: anyFields(names), FieldOrder: append([]string(nil), names...), IsOpen: false}
}

func anyFields(names []string) map[string]pqtype.Type {
	fields := make(map[string]pqtype.Type, len(names))
	for _, name := range names {
		fields[name] = pqtype.AnyType
	}
	return fields
}
