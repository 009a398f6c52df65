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

package batch

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
)

// numbers stay json.Number so integers keep their full range
var json = jsoniter.Config{
	EscapeHTML:             false,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// TypeSpec is the JSON form of a types.Type.
type TypeSpec struct {
	Oid      string     `json:"oid"`
	Nullable bool       `json:"nullable,omitempty"`
	Elem     *TypeSpec  `json:"elem,omitempty"`
	Fields   []TypeSpec `json:"fields,omitempty"`
}

func (s TypeSpec) ToType() (types.Type, error) {
	oid, ok := types.ParseT(s.Oid)
	if !ok {
		return types.Type{}, moerr.NewInvalidArg(context.Background(), "type oid", s.Oid)
	}
	var typ types.Type
	switch oid {
	case types.T_array:
		if s.Elem == nil {
			return types.Type{}, moerr.NewInvalidInputNoCtx("array type without elem")
		}
		elem, err := s.Elem.ToType()
		if err != nil {
			return types.Type{}, err
		}
		typ = types.NewArrayType(elem)
	case types.T_tuple:
		if len(s.Fields) == 0 {
			return types.Type{}, moerr.NewInvalidInputNoCtx("tuple type without fields")
		}
		fields := make([]types.Type, len(s.Fields))
		for i, f := range s.Fields {
			var err error
			if fields[i], err = f.ToType(); err != nil {
				return types.Type{}, err
			}
		}
		typ = types.NewTupleType(fields...)
	default:
		typ = oid.ToType()
	}
	return typ.WithNullable(s.Nullable), nil
}

// FromType is the inverse of TypeSpec.ToType.
func FromType(typ types.Type) TypeSpec {
	s := TypeSpec{Oid: typ.Oid.Name(), Nullable: typ.Nullable}
	switch typ.Oid {
	case types.T_array:
		elem := FromType(*typ.Elem)
		s.Elem = &elem
	case types.T_tuple:
		s.Fields = make([]TypeSpec, len(typ.Fields))
		for i, f := range typ.Fields {
			s.Fields[i] = FromType(f)
		}
	}
	return s
}

// ColumnSpec is one argument column. A constant column holds one row.
type ColumnSpec struct {
	Name  string   `json:"name,omitempty"`
	Type  TypeSpec `json:"type"`
	Const bool     `json:"const,omitempty"`
	Rows  []any    `json:"rows"`
}

// Spec is the JSON form of a batch. Rows is only needed when every
// column is constant.
type Spec struct {
	Columns []ColumnSpec `json:"columns"`
	Rows    int          `json:"rows,omitempty"`
}

// DecodeJSON reads a JSON array of batch specs.
func DecodeJSON(data []byte) ([]*Batch, error) {
	var specs []Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, moerr.NewInvalidInputNoCtx("decode batches: %v", err)
	}
	bats := make([]*Batch, len(specs))
	for i, spec := range specs {
		var err error
		if bats[i], err = spec.Build(); err != nil {
			return nil, err
		}
	}
	return bats, nil
}

// Build materializes the columns of s into a Batch.
func (s Spec) Build() (*Batch, error) {
	rows := s.Rows
	for _, c := range s.Columns {
		if !c.Const {
			rows = len(c.Rows)
			break
		}
	}

	bat := NewWithSize(len(s.Columns))
	bat.Attrs = make([]string, len(s.Columns))
	bat.SetRowCount(rows)
	for i, c := range s.Columns {
		typ, err := c.Type.ToType()
		if err != nil {
			return nil, err
		}
		if c.Const && len(c.Rows) != 1 {
			return nil, moerr.NewInvalidInputNoCtx("constant column %d needs exactly one row", i)
		}
		vec := vector.NewVec(typ)
		for _, r := range c.Rows {
			if err := vec.AppendAny(r); err != nil {
				return nil, err
			}
		}
		if c.Const {
			vec.ToConst(rows)
		}
		bat.Attrs[i] = c.Name
		bat.Vecs[i] = vec
	}
	if err := bat.Check(); err != nil {
		return nil, err
	}
	return bat, nil
}

// Result is the JSON form of a function result.
type Result struct {
	Type TypeSpec `json:"type"`
	Rows []any    `json:"rows"`
}

// EncodeVector renders every logical row of vec, nulls as null.
func EncodeVector(vec *vector.Vector) ([]byte, error) {
	res := Result{
		Type: FromType(*vec.GetType()),
		Rows: make([]any, vec.Length()),
	}
	for i := range res.Rows {
		res.Rows[i] = vec.GetAny(i)
	}
	return json.Marshal(res)
}
