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

package pqscope

import (
	"github.com/pqlang/pqinspect/pqast"
	"github.com/pqlang/pqinspect/pqtype"
)

// primitiveConstantKinds maps the Constant payload spellings the parser
// emits for a parameter's "as"-clause primitive type to a pqtype.Kind.
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

// primitiveTypeTag extracts a parameter's declared primitive type and
// nullable flag from its FieldTypeSpecification / AsNullablePrimitiveType
// child, if the parameter has an as-clause at all.
func primitiveTypeTag(c *pqast.Collection, typeSpec pqast.XorNode) (*pqtype.Kind, bool) {
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
	kind, ok := primitiveConstantKinds[astNode.ConstantKind]
	if !ok {
		return nil, nullable
	}
	return &kind, nullable
}
