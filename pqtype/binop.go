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

import "github.com/pqlang/pqinspect/pqerrors"

// Op is a binary operator the language's Arithmetic/Equality/Logical/
// Relational expression kinds can carry.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpConcat // "&": text/list/record/table concatenation or union
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpAnd // "and"
	OpOr  // "or"
)

// BinOpKey indexes the full lookup table.
type BinOpKey struct {
	Left  Kind
	Op    Op
	Right Kind
}

// PartialBinOpKey indexes the partial-expression table, derived
// mechanically from BinOpLookup below: R is in
// BinOpPartialLookup[(L,op)] iff (L,op,R) is in BinOpLookup.
type PartialBinOpKey struct {
	Left Kind
	Op   Op
}

// BinOpLookup and BinOpPartialLookup are immutable module-level state,
// built once in init: these lookup tables are the only module-level
// state and are immutable after initialization.
var (
	BinOpLookup        map[BinOpKey]Kind
	BinOpPartialLookup map[PartialBinOpKey][]Kind
)

var clockKinds = []Kind{Date, DateTime, DateTimeZone, Time}
var comparableKinds = []Kind{Number, Text, Logical, Date, DateTime, DateTimeZone, Time, Duration}
var equatableKinds = []Kind{
	Number, Text, Logical, Null, Date, DateTime, DateTimeZone, Time,
	Duration, Binary, Function, List, Record, Table, TypeKind,
}

func init() {
	BinOpLookup = make(map[BinOpKey]Kind)

	add := func(left Kind, op Op, right Kind, result Kind) {
		BinOpLookup[BinOpKey{left, op, right}] = result
	}

	// Arithmetic on Number.
	for _, op := range []Op{OpAdd, OpSub, OpMul, OpDiv} {
		add(Number, op, Number, Number)
	}

	// Duration arithmetic closes under itself.
	add(Duration, OpAdd, Duration, Duration)
	add(Duration, OpSub, Duration, Duration)
	add(Duration, OpMul, Number, Duration)
	add(Duration, OpDiv, Number, Duration)
	add(Number, OpMul, Duration, Duration)

	// Clock +/- Duration stays on the clock kind; clock - clock yields a
	// Duration.
	for _, clock := range clockKinds {
		add(clock, OpAdd, Duration, clock)
		add(Duration, OpAdd, clock, clock)
		add(clock, OpSub, Duration, clock)
		add(clock, OpSub, clock, Duration)
	}

	// Date + Time combines to a DateTime.
	add(Date, OpAdd, Time, DateTime)
	add(Time, OpAdd, Date, DateTime)

	// Relational operators on any comparable primitive, same kind on both
	// sides, yield Logical.
	for _, op := range []Op{OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual} {
		for _, k := range comparableKinds {
			add(k, op, k, Logical)
		}
	}

	// Equality on any primitive, same kind on both sides, yields Logical.
	for _, op := range []Op{OpEqual, OpNotEqual} {
		for _, k := range equatableKinds {
			if k == 0 {
				continue
			}
			add(k, op, k, Logical)
		}
		add(Null, op, Null, Logical)
	}

	// Logical and/or on Logical.
	add(Logical, OpAnd, Logical, Logical)
	add(Logical, OpOr, Logical, Logical)

	// Concatenation/union ("&"): text, list, record, table. Record/table
	// union on extended types is handled separately by RecordTableUnion;
	// the lookup table only covers the unextended (bare-primitive) case,
	// matching how every other entry in this table is kind-level, not
	// value-level.
	add(Text, OpConcat, Text, Text)
	add(List, OpConcat, List, List)
	add(Record, OpConcat, Record, Record)
	add(Table, OpConcat, Table, Table)

	BinOpPartialLookup = derivePartialLookup(BinOpLookup)
}

// derivePartialLookup mechanically rebuilds the partial table from the
// full table so the two can never drift apart.
func derivePartialLookup(full map[BinOpKey]Kind) map[PartialBinOpKey][]Kind {
	partial := make(map[PartialBinOpKey][]Kind)
	seen := make(map[PartialBinOpKey]map[Kind]bool)
	for key := range full {
		pk := PartialBinOpKey{Left: key.Left, Op: key.Op}
		if seen[pk] == nil {
			seen[pk] = make(map[Kind]bool)
		}
		if !seen[pk][key.Right] {
			seen[pk][key.Right] = true
			partial[pk] = append(partial[pk], key.Right)
		}
	}
	return partial
}

// ResolvePartial returns the type a partial expression like "1 +" should
// be expected to accept next: the single allowed right-operand kind if it
// is unique, or an AnyUnion of the allowed kinds otherwise.
func ResolvePartial(left Kind, op Op) Type {
	rights, ok := BinOpPartialLookup[PartialBinOpKey{Left: left, Op: op}]
	if !ok || len(rights) == 0 {
		return UnknownType
	}
	if len(rights) == 1 {
		return Primitive{PrimitiveKind: rights[0], Nullable: true}
	}
	members := make([]Type, len(rights))
	for i, k := range rights {
		members[i] = Primitive{PrimitiveKind: k, Nullable: true}
	}
	return NewAnyUnion(members...)
}

// RecordTableUnion implements the rule for "&" applied to two Record- or
// Table-kinded operands. left and right must share the same Kind()
// (Record or Table); callers enforce this via the ordinary BinOpLookup
// pass, which only ever routes same-kind pairs here.
func RecordTableUnion(left, right Type) (Type, error) {
	leftExt, leftIsExt := asFieldBearing(left)
	rightExt, rightIsExt := asFieldBearing(right)

	switch {
	case !leftIsExt && !rightIsExt:
		return Primitive{PrimitiveKind: left.Kind(), Nullable: left.IsNullable() || right.IsNullable()}, nil

	case leftIsExt && !rightIsExt:
		leftExt.isOpen = true
		return leftExt.toType(left.IsNullable()), nil

	case !leftIsExt && rightIsExt:
		rightExt.isOpen = true
		return rightExt.toType(right.IsNullable()), nil

	default:
		if left.Kind() != right.Kind() {
			return nil, pqerrors.NewInvariantf("record/table union invoked with mismatched kinds %v and %v", left.Kind(), right.Kind())
		}
		fields := make(map[string]Type, len(leftExt.fields)+len(rightExt.fields))
		order := append([]string(nil), leftExt.order...)
		for k, v := range leftExt.fields {
			fields[k] = v
		}
		for _, k := range rightExt.order {
			if _, existed := fields[k]; !existed {
				order = append(order, k)
			}
			fields[k] = rightExt.fields[k] // right-hand fields overwrite
		}
		merged := fieldBearing{
			kind:   left.Kind(),
			fields: fields,
			order:  order,
			isOpen: leftExt.isOpen || rightExt.isOpen,
		}
		return merged.toType(left.IsNullable() && right.IsNullable()), nil
	}
}

type fieldBearing struct {
	kind   Kind
	fields map[string]Type
	order  []string
	isOpen bool
}

func (f fieldBearing) toType(nullable bool) Type {
	if f.kind == Record {
		return DefinedRecord{Fields: f.fields, FieldOrder: f.order, IsOpen: f.isOpen, Nullable: nullable}
	}
	return DefinedTable{Fields: f.fields, FieldOrder: f.order, IsOpen: f.isOpen, Nullable: nullable}
}

func asFieldBearing(t Type) (fieldBearing, bool) {
	switch v := t.(type) {
	case DefinedRecord:
		return fieldBearing{kind: Record, fields: v.Fields, order: v.FieldOrder, isOpen: v.IsOpen}, true
	case DefinedTable:
		return fieldBearing{kind: Table, fields: v.Fields, order: v.FieldOrder, isOpen: v.IsOpen}, true
	default:
		return fieldBearing{}, false
	}
}

