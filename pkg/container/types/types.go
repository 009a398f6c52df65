// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"
	"strings"
)

type T uint8

const (
	// any family
	T_any T = 0

	// bool family
	T_bool T = 10

	// numeric/integer family
	T_int8    T = 20
	T_int16   T = 21
	T_int32   T = 22
	T_int64   T = 23
	T_uint8   T = 25
	T_uint16  T = 26
	T_uint32  T = 27
	T_uint64  T = 28
	T_float32 T = 30
	T_float64 T = 31

	// decimal family
	T_decimal128 T = 33

	T_uuid T = 52

	// string family
	T_char    T = 60
	T_varchar T = 61

	// composite family
	T_tuple T = 201
	T_array T = 202
)

type Decimal128 struct {
	B0_63   uint64
	B64_127 uint64
}

type Uuid [16]byte

// Ints, UInts, Floats and Number constrain the numeric element types.
type Ints interface {
	int8 | int16 | int32 | int64
}

type UInts interface {
	uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

type Number interface {
	Ints | UInts | Floats
}

// FixedSizeT are the types stored as a flat slice of values.
type FixedSizeT interface {
	bool | Number | Decimal128 | Uuid
}

// Type describes a column. Elem is set for arrays, Fields for tuples.
type Type struct {
	Oid T
	// Size is the byte width of a fixed length type, -1 otherwise.
	Size int32
	// Nullable marks a store that carries a null bitmap.
	Nullable bool

	Elem   *Type
	Fields []Type
}

func New(oid T) Type {
	return Type{Oid: oid, Size: int32(TypeSize(oid))}
}

func (t T) ToType() Type {
	return New(t)
}

// NewArrayType returns Array(elem).
func NewArrayType(elem Type) Type {
	e := elem
	return Type{Oid: T_array, Size: -1, Elem: &e}
}

// NewTupleType returns Tuple(fields...).
func NewTupleType(fields ...Type) Type {
	return Type{Oid: T_tuple, Size: -1, Fields: fields}
}

// WithNullable returns a copy of t whose store carries a null bitmap.
func (t Type) WithNullable(nullable bool) Type {
	t.Nullable = nullable
	return t
}

func (t Type) IsFixedLen() bool {
	return t.Size > 0
}

func (t Type) TypeSize() int {
	return int(t.Size)
}

func (t Type) IsArray() bool {
	return t.Oid == T_array
}

func (t Type) IsTuple() bool {
	return t.Oid == T_tuple
}

func (t Type) IsIntOrUint() bool {
	return t.Oid.IsInteger() || t.Oid.IsUnsignedInt()
}

// Eq reports whether t and o describe the same type, nullability included.
func (t Type) Eq(o Type) bool {
	if t.Oid != o.Oid || t.Nullable != o.Nullable {
		return false
	}
	switch t.Oid {
	case T_array:
		return t.Elem.Eq(*o.Elem)
	case T_tuple:
		if len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if !t.Fields[i].Eq(o.Fields[i]) {
				return false
			}
		}
	}
	return true
}

func (t Type) String() string {
	var s string
	switch t.Oid {
	case T_array:
		s = fmt.Sprintf("ARRAY(%s)", t.Elem.String())
	case T_tuple:
		fs := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			fs[i] = f.String()
		}
		s = fmt.Sprintf("TUPLE(%s)", strings.Join(fs, ", "))
	default:
		s = t.Oid.String()
	}
	if t.Nullable {
		return fmt.Sprintf("NULLABLE(%s)", s)
	}
	return s
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_decimal128:
		return "DECIMAL128"
	case T_uuid:
		return "UUID"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	case T_tuple:
		return "TUPLE"
	case T_array:
		return "ARRAY"
	}
	return fmt.Sprintf("unexpected type: %d", t)
}

// TypeSize returns the byte width of oid, -1 for variable length types.
func TypeSize(oid T) int {
	switch oid {
	case T_bool, T_int8, T_uint8:
		return 1
	case T_int16, T_uint16:
		return 2
	case T_int32, T_uint32, T_float32:
		return 4
	case T_int64, T_uint64, T_float64:
		return 8
	case T_decimal128, T_uuid:
		return 16
	}
	return -1
}

func (t T) IsInteger() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_int64:
		return true
	}
	return false
}

func (t T) IsUnsignedInt() bool {
	switch t {
	case T_uint8, T_uint16, T_uint32, T_uint64:
		return true
	}
	return false
}

func (t T) IsMySQLString() bool {
	return t == T_char || t == T_varchar
}

var typeNames = map[string]T{
	"bool":       T_bool,
	"int8":       T_int8,
	"int16":      T_int16,
	"int32":      T_int32,
	"int64":      T_int64,
	"uint8":      T_uint8,
	"uint16":     T_uint16,
	"uint32":     T_uint32,
	"uint64":     T_uint64,
	"float32":    T_float32,
	"float64":    T_float64,
	"decimal128": T_decimal128,
	"uuid":       T_uuid,
	"char":       T_char,
	"varchar":    T_varchar,
	"tuple":      T_tuple,
	"array":      T_array,
}

// ParseT maps a lower case type name such as "int32" or "varchar" to its oid.
func ParseT(name string) (T, bool) {
	t, ok := typeNames[strings.ToLower(name)]
	return t, ok
}

// Name is the inverse of ParseT.
func (t T) Name() string {
	for name, oid := range typeNames {
		if oid == t {
			return name
		}
	}
	return ""
}
