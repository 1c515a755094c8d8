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

// Package pqtype implements the type lattice: primitive kinds, the
// extended structural types (records, tables, functions, lists, unions),
// the binary-operator lookup tables, and record/table union semantics.
package pqtype

// Kind is a primitive type tag. These are mutually exclusive (a Type
// carries at most one primitive Kind, or is an Extended type); there is no
// bitmask union of primitives -- unions of primitives are represented
// structurally by AnyUnion instead.
type Kind int

const (
	Action Kind = iota + 1
	Any
	AnyNonNull
	Binary
	Date
	DateTime
	DateTimeZone
	Duration
	Function
	List
	Logical
	None
	Null
	Number
	Record
	Table
	Text
	Time
	TypeKind // the primitive "this value is a type" tag; named TypeKind to avoid shadowing the Type interface.
	Unknown
	NotApplicable
)

var kindNames = [...]string{
	"", "Action", "Any", "AnyNonNull", "Binary", "Date", "DateTime",
	"DateTimeZone", "Duration", "Function", "List", "Logical", "None",
	"Null", "Number", "Record", "Table", "Text", "Time", "Type", "Unknown",
	"NotApplicable",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsClockKind reports whether k is one of the date/time-family kinds that
// Duration arithmetic closes over.
func (k Kind) IsClockKind() bool {
	switch k {
	case Date, DateTime, DateTimeZone, Time:
		return true
	default:
		return false
	}
}

// IsComparable reports whether k supports relational ordering (<, <=, >,
// >=) against its own kind.
func (k Kind) IsComparable() bool {
	switch k {
	case Number, Text, Logical, Date, DateTime, DateTimeZone, Time, Duration:
		return true
	default:
		return false
	}
}
