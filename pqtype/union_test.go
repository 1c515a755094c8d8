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

package pqtype_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/pqlang/pqinspect/pqtype"
)

func TestNewAnyUnionSingleMemberCollapses(t *testing.T) {
	got := pqtype.NewAnyUnion(pqtype.NewPrimitive(pqtype.Number, false))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Number))
	_, isUnion := got.(pqtype.AnyUnion)
	qt.Assert(t, qt.IsFalse(isUnion))
}

func TestNewAnyUnionDedupsIdenticalMembers(t *testing.T) {
	got := pqtype.NewAnyUnion(
		pqtype.NewPrimitive(pqtype.Number, false),
		pqtype.NewPrimitive(pqtype.Number, false),
	)
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Number))
}

func TestNewAnyUnionKeepsDistinctKinds(t *testing.T) {
	got := pqtype.NewAnyUnion(
		pqtype.NewPrimitive(pqtype.Number, false),
		pqtype.NewPrimitive(pqtype.Text, false),
	)
	union, ok := got.(pqtype.AnyUnion)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(union.Members, 2))
	qt.Assert(t, qt.Equals(union.Kind(), pqtype.Any))
}

func TestNewAnyUnionFlattensNestedUnion(t *testing.T) {
	inner := pqtype.NewAnyUnion(
		pqtype.NewPrimitive(pqtype.Number, false),
		pqtype.NewPrimitive(pqtype.Text, false),
	)
	got := pqtype.NewAnyUnion(inner, pqtype.NewPrimitive(pqtype.Logical, false))
	union, ok := got.(pqtype.AnyUnion)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(union.Members, 3))
	for _, m := range union.Members {
		_, nested := m.(pqtype.AnyUnion)
		qt.Assert(t, qt.IsFalse(nested), qt.Commentf("union must not nest a union member"))
	}
}

func TestNewAnyUnionNullablePropagatesFromAnyMember(t *testing.T) {
	got := pqtype.NewAnyUnion(
		pqtype.NewPrimitive(pqtype.Number, false),
		pqtype.NewPrimitive(pqtype.Text, true),
	)
	qt.Assert(t, qt.IsTrue(got.IsNullable()))
}

func TestNewAnyUnionDedupKeyIncludesNullability(t *testing.T) {
	// The dedup triple is (concrete type, kind, nullable), so two
	// Primitive(Number) members differing only in nullability are not
	// duplicates of each other.
	got := pqtype.NewAnyUnion(
		pqtype.NewPrimitive(pqtype.Number, false),
		pqtype.NewPrimitive(pqtype.Number, true),
	)
	union, ok := got.(pqtype.AnyUnion)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(union.Members, 2))
	qt.Assert(t, qt.IsTrue(union.IsNullable()))
}

func TestNewAnyUnionIgnoresNilMembers(t *testing.T) {
	got := pqtype.NewAnyUnion(nil, pqtype.NewPrimitive(pqtype.Number, false), nil)
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Number))
}

func TestNewAnyUnionNoMembersIsEmptyUnion(t *testing.T) {
	got := pqtype.NewAnyUnion()
	union, ok := got.(pqtype.AnyUnion)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(union.Members, 0))
	qt.Assert(t, qt.IsFalse(union.IsNullable()))
}

func TestWithNullableOnPrimitive(t *testing.T) {
	got := pqtype.WithNullable(pqtype.NewPrimitive(pqtype.Number, false), true)
	qt.Assert(t, qt.IsTrue(got.IsNullable()))
	qt.Assert(t, qt.Equals(got.Kind(), pqtype.Number))
}

func TestWithNullableOnDefinedRecordPreservesFields(t *testing.T) {
	rec := pqtype.DefinedRecord{Fields: map[string]pqtype.Type{"a": pqtype.NewPrimitive(pqtype.Number, false)}, FieldOrder: []string{"a"}}
	got := pqtype.WithNullable(rec, true)
	qt.Assert(t, qt.IsTrue(got.IsNullable()))
	record, ok := got.(pqtype.DefinedRecord)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(record.Fields, 1))
}

// foreignType implements pqtype.Type but is none of the concrete types
// WithNullable knows.
type foreignType struct{}

func (foreignType) Kind() pqtype.Kind { return pqtype.Any }
func (foreignType) IsNullable() bool  { return false }

func TestWithNullableOnUnknownConcreteTypeIsNoop(t *testing.T) {
	got := pqtype.WithNullable(foreignType{}, true)
	qt.Assert(t, qt.IsFalse(got.IsNullable()))
}
