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

package pqtype

// Type is a sum type: either a Primitive, tagged with one
// of the Kind constants, or one of the Extended structural shapes below.
type Type interface {
	Kind() Kind
	IsNullable() bool
}

// Primitive is a bare Kind plus nullability, with no further structure.
type Primitive struct {
	PrimitiveKind Kind
	Nullable      bool
}

func (p Primitive) Kind() Kind      { return p.PrimitiveKind }
func (p Primitive) IsNullable() bool { return p.Nullable }

// NewPrimitive is a convenience constructor.
func NewPrimitive(k Kind, nullable bool) Primitive {
	return Primitive{PrimitiveKind: k, Nullable: nullable}
}

var (
	// UnknownType is the shared "not yet determinable" instance.
	UnknownType = Primitive{PrimitiveKind: Unknown}
	// NoneType is the shared "statically impossible" instance.
	NoneType = Primitive{PrimitiveKind: None}
	// NotApplicableType marks a slot that does not take a type.
	NotApplicableType = Primitive{PrimitiveKind: NotApplicable}
	// AnyType is the nullable top of the lattice: a Primitive.Any with no
	// extension is the top of a nullable union.
	AnyType = Primitive{PrimitiveKind: Any, Nullable: true}
)

// Parameter describes one function parameter's declared signature, used
// both by DefinedFunction (a concrete function value's type) and
// FunctionType (a function-type type-value).
type Parameter struct {
	Name          string
	Optional      bool
	Nullable      bool
	PrimitiveType *Kind // nil if the parameter has no "as" type annotation
}

// AnyUnion is a flattened (no union directly inside union) disjunction of
// member types. Its own Kind is Any: it is a refinement of "could be any of
// these", not a fifth primitive.
type AnyUnion struct {
	Members  []Type
	Nullable bool
}

func (u AnyUnion) Kind() Kind      { return Any }
func (u AnyUnion) IsNullable() bool { return u.Nullable }

// DefinedRecord is a concrete record value's type: a field-name-to-type
// map (FieldOrder preserves insertion order for deterministic iteration),
// plus whether unlisted fields are permitted (open) and whether
// the whole record may be null.
type DefinedRecord struct {
	Fields     map[string]Type
	FieldOrder []string
	IsOpen     bool
	Nullable   bool
}

func (r DefinedRecord) Kind() Kind      { return Record }
func (r DefinedRecord) IsNullable() bool { return r.Nullable }

// DefinedTable mirrors DefinedRecord for table values.
type DefinedTable struct {
	Fields     map[string]Type
	FieldOrder []string
	IsOpen     bool
	Nullable   bool
}

func (t DefinedTable) Kind() Kind      { return Table }
func (t DefinedTable) IsNullable() bool { return t.Nullable }

// PrimaryExpressionTable is a table value whose row shape is described by
// an arbitrary expression rather than a field-specification-list (e.g.
// `#table(columns, rows)`); field access recurses into Inner.
type PrimaryExpressionTable struct {
	Inner    Type
	Nullable bool
}

func (t PrimaryExpressionTable) Kind() Kind      { return Table }
func (t PrimaryExpressionTable) IsNullable() bool { return t.Nullable }

// DefinedList is a concrete list value's type: one Type per positionally
// known element (an empty or partially-typed list may leave some/most
// elements Unknown).
type DefinedList struct {
	Elements []Type
	Nullable bool
}

func (l DefinedList) Kind() Kind      { return List }
func (l DefinedList) IsNullable() bool { return l.Nullable }

// DefinedFunction is a concrete function value's type.
type DefinedFunction struct {
	Parameters []Parameter
	ReturnType Type
	Nullable   bool
}

func (f DefinedFunction) Kind() Kind      { return Function }
func (f DefinedFunction) IsNullable() bool { return f.Nullable }

// PrimaryTypeDescriptor is the closed set of shapes DefinedType can wrap:
// the "primary_type" payload of a type-value. A
// marker interface (rather than a Go generic parameter) because T ranges
// over exactly these five shapes, never a caller-supplied type.
type PrimaryTypeDescriptor interface {
	primaryTypeDescriptor()
}

// ListType describes a list-type type-value (e.g. the type spelled `{number}`).
type ListType struct{ ItemType Type }

func (ListType) primaryTypeDescriptor() {}

// RecordType describes a record-type type-value (e.g. `[a = number]`).
type RecordType struct {
	Fields     map[string]Type
	FieldOrder []string
	IsOpen     bool
}

func (RecordType) primaryTypeDescriptor() {}

// TableType describes a table-type type-value built from a
// field-specification-list (e.g. `table [a = number]`).
type TableType struct {
	Fields     map[string]Type
	FieldOrder []string
	IsOpen     bool
}

func (TableType) primaryTypeDescriptor() {}

// FunctionType describes a function-type type-value (e.g. `function (x as
// number) as number`).
type FunctionType struct {
	Parameters []Parameter
	ReturnType Type
}

func (FunctionType) primaryTypeDescriptor() {}

// PrimaryPrimitiveType describes a bare primitive-type type-value (e.g.
// `number` used as a type rather than a value).
type PrimaryPrimitiveType struct{ Primitive Kind }

func (PrimaryPrimitiveType) primaryTypeDescriptor() {}

// DefinedType is a type-value: its own Kind is always TypeKind, and Primary
// names what the type-value describes.
type DefinedType struct {
	Primary  PrimaryTypeDescriptor
	Nullable bool
}

func (d DefinedType) Kind() Kind      { return TypeKind }
func (d DefinedType) IsNullable() bool { return d.Nullable }

// WithNullable returns a copy of t with its nullability flag set to
// nullable, used when propagating the NullableType/NullablePrimitiveType
// rule: the child's type propagates with is_nullable forced true.
func WithNullable(t Type, nullable bool) Type {
	switch v := t.(type) {
	case Primitive:
		v.Nullable = nullable
		return v
	case AnyUnion:
		v.Nullable = nullable
		return v
	case DefinedRecord:
		v.Nullable = nullable
		return v
	case DefinedTable:
		v.Nullable = nullable
		return v
	case PrimaryExpressionTable:
		v.Nullable = nullable
		return v
	case DefinedList:
		v.Nullable = nullable
		return v
	case DefinedFunction:
		v.Nullable = nullable
		return v
	case DefinedType:
		v.Nullable = nullable
		return v
	default:
		return t
	}
}
