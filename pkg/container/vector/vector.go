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

package vector

import (
	"bytes"
	"fmt"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

const (
	FLAT     = iota // flat vector represent a uncompressed vector
	CONSTANT        // const vector
)

// Vector represent a column
type Vector struct {
	// vector's class
	class int
	// type represent the type of column
	typ types.Type
	nsp *nulls.Nulls // nulls list

	// fixed length values are a []T, strings a *types.Bytes
	col any

	// array column: offsets[i] is the exclusive end of row i in elem
	offsets []uint64
	elem    *Vector

	// tuple column
	fields []*Vector

	// logical row count, a constant vector stores a single physical row
	length int
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) SetNulls(nsp *nulls.Nulls) {
	if nsp == nil {
		nsp = &nulls.Nulls{}
	}
	v.nsp = nsp
}

func (v *Vector) IsConst() bool {
	return v.class == CONSTANT
}

func (v *Vector) IsConstNull() bool {
	return v.IsConst() && v.nsp.Contains(0)
}

// IsNull reports whether row i is null. Constant vectors answer for row 0.
func (v *Vector) IsNull(i uint64) bool {
	if v.IsConst() {
		i = 0
	}
	return v.nsp.Contains(i)
}

// GetArrayOffsets returns the exclusive row ends of an array column.
func (v *Vector) GetArrayOffsets() []uint64 {
	return v.offsets
}

// GetArrayElements returns the flat element store of an array column.
func (v *Vector) GetArrayElements() *Vector {
	return v.elem
}

func (v *Vector) GetTupleFields() []*Vector {
	return v.fields
}

// ArrayRowRange returns [start, end) of row i in the element store.
func (v *Vector) ArrayRowRange(i int) (uint64, uint64) {
	if v.IsConst() {
		i = 0
	}
	var start uint64
	if i > 0 {
		start = v.offsets[i-1]
	}
	return start, v.offsets[i]
}

func NewVec(typ types.Type) *Vector {
	vec := &Vector{
		typ:   typ,
		class: FLAT,
		nsp:   &nulls.Nulls{},
	}
	vec.initStore()
	return vec
}

func (v *Vector) initStore() {
	switch v.typ.Oid {
	case types.T_array:
		v.elem = NewVec(*v.typ.Elem)
		v.offsets = make([]uint64, 0)
	case types.T_tuple:
		v.fields = make([]*Vector, len(v.typ.Fields))
		for i, ft := range v.typ.Fields {
			v.fields[i] = NewVec(ft)
		}
	case types.T_char, types.T_varchar:
		v.col = &types.Bytes{}
	default:
		v.col = newFixedCol(v.typ.Oid)
	}
}

func newFixedCol(oid types.T) any {
	switch oid {
	case types.T_bool:
		return make([]bool, 0)
	case types.T_int8:
		return make([]int8, 0)
	case types.T_int16:
		return make([]int16, 0)
	case types.T_int32:
		return make([]int32, 0)
	case types.T_int64:
		return make([]int64, 0)
	case types.T_uint8:
		return make([]uint8, 0)
	case types.T_uint16:
		return make([]uint16, 0)
	case types.T_uint32:
		return make([]uint32, 0)
	case types.T_uint64:
		return make([]uint64, 0)
	case types.T_float32:
		return make([]float32, 0)
	case types.T_float64:
		return make([]float64, 0)
	case types.T_decimal128:
		return make([]types.Decimal128, 0)
	case types.T_uuid:
		return make([]types.Uuid, 0)
	}
	return nil
}

// NewArrayVec wraps an element store and row ends into an array column.
func NewArrayVec(elem *Vector, offsets []uint64) (*Vector, error) {
	var prev uint64
	for _, o := range offsets {
		if o < prev {
			return nil, moerr.NewInternalErrorNoCtx("array offsets must be non-decreasing")
		}
		prev = o
	}
	if prev > uint64(elem.Length()) {
		return nil, moerr.NewInternalErrorNoCtx("array offsets exceed element count %d", elem.Length())
	}
	return &Vector{
		typ:     types.NewArrayType(elem.typ),
		class:   FLAT,
		nsp:     &nulls.Nulls{},
		offsets: offsets,
		elem:    elem,
		length:  len(offsets),
	}, nil
}

// NewTupleVec zips equally long field vectors into a tuple column.
func NewTupleVec(fields []*Vector) (*Vector, error) {
	fts := make([]types.Type, len(fields))
	length := 0
	for i, f := range fields {
		fts[i] = f.typ
		if i == 0 {
			length = f.Length()
		} else if f.Length() != length {
			return nil, moerr.NewInternalErrorNoCtx("tuple fields have different lengths")
		}
	}
	return &Vector{
		typ:    types.NewTupleType(fts...),
		class:  FLAT,
		nsp:    &nulls.Nulls{},
		fields: fields,
		length: length,
	}, nil
}

// NewConstArray returns a constant column whose single array is all of elem.
func NewConstArray(elem *Vector, length int) *Vector {
	return &Vector{
		typ:     types.NewArrayType(elem.typ),
		class:   CONSTANT,
		nsp:     &nulls.Nulls{},
		offsets: []uint64{uint64(elem.Length())},
		elem:    elem,
		length:  length,
	}
}

func NewConstNull(typ types.Type, length int) *Vector {
	vec := NewVec(typ)
	vec.class = CONSTANT
	vec.appendDefault()
	vec.nsp.Set(0)
	vec.length = length
	return vec
}

func NewConstFixed[T types.FixedSizeT](typ types.Type, val T, length int) *Vector {
	vec := NewVec(typ)
	vec.class = CONSTANT
	vec.col = append(vec.col.([]T), val)
	vec.length = length
	return vec
}

func NewConstBytes(typ types.Type, val []byte, length int) *Vector {
	vec := NewVec(typ)
	vec.class = CONSTANT
	vec.col.(*types.Bytes).Append(val)
	vec.length = length
	return vec
}

// ToConst turns a one row flat vector into a constant of the given length.
func (v *Vector) ToConst(length int) *Vector {
	if v.IsConst() {
		v.length = length
		return v
	}
	if v.physicalLen() != 1 {
		panic(moerr.NewInternalErrorNoCtx("ToConst on a vector of %d rows", v.physicalLen()))
	}
	v.class = CONSTANT
	v.length = length
	return v
}

func (v *Vector) physicalLen() int {
	if v.IsConst() {
		return 1
	}
	return v.length
}

func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	return v.col.([]T)
}

func MustBytesCol(v *Vector) *types.Bytes {
	return v.col.(*types.Bytes)
}

func GetFixedAt[T types.FixedSizeT](v *Vector, i int) T {
	if v.IsConst() {
		i = 0
	}
	return v.col.([]T)[i]
}

func (v *Vector) GetBytesAt(i int) []byte {
	if v.IsConst() {
		i = 0
	}
	return v.col.(*types.Bytes).Get(i)
}

func (v *Vector) GetStringAt(i int) string {
	return string(v.GetBytesAt(i))
}

// UnsafeGetRawData returns the backing bytes of a fixed length column.
func (v *Vector) UnsafeGetRawData() []byte {
	switch col := v.col.(type) {
	case []bool:
		return types.EncodeSlice(col)
	case []int8:
		return types.EncodeSlice(col)
	case []int16:
		return types.EncodeSlice(col)
	case []int32:
		return types.EncodeSlice(col)
	case []int64:
		return types.EncodeSlice(col)
	case []uint8:
		return col
	case []uint16:
		return types.EncodeSlice(col)
	case []uint32:
		return types.EncodeSlice(col)
	case []uint64:
		return types.EncodeSlice(col)
	case []float32:
		return types.EncodeSlice(col)
	case []float64:
		return types.EncodeSlice(col)
	case []types.Decimal128:
		return types.EncodeSlice(col)
	case []types.Uuid:
		return types.EncodeSlice(col)
	}
	panic(moerr.NewInternalErrorNoCtx("raw data of non fixed type %s", v.typ.String()))
}

func AppendFixed[T types.FixedSizeT](v *Vector, val T, isNull bool) {
	if isNull {
		v.nsp.Set(uint64(v.length))
	}
	v.col = append(v.col.([]T), val)
	v.length++
}

func AppendBytes(v *Vector, val []byte, isNull bool) {
	if isNull {
		v.nsp.Set(uint64(v.length))
		val = nil
	}
	v.col.(*types.Bytes).Append(val)
	v.length++
}

// AppendFixedList appends vals, isNulls may be nil.
func AppendFixedList[T types.FixedSizeT](v *Vector, vals []T, isNulls []bool) {
	for i, val := range vals {
		AppendFixed(v, val, isNulls != nil && isNulls[i])
	}
}

// AppendArrayRow closes the current array row after its elements have been
// appended to GetArrayElements().
func (v *Vector) AppendArrayRow(isNull bool) {
	if isNull {
		v.nsp.Set(uint64(v.length))
	}
	v.offsets = append(v.offsets, uint64(v.elem.Length()))
	v.length++
}

// AppendDefault appends the default value of the type and marks it null.
func (v *Vector) AppendDefault(isNull bool) {
	if isNull {
		v.nsp.Set(uint64(v.length))
	}
	v.appendDefault()
}

func (v *Vector) appendDefault() {
	switch v.typ.Oid {
	case types.T_array:
		v.offsets = append(v.offsets, uint64(v.elem.Length()))
	case types.T_tuple:
		for _, f := range v.fields {
			f.AppendDefault(false)
		}
	case types.T_char, types.T_varchar:
		v.col.(*types.Bytes).Append(nil)
	case types.T_bool:
		v.col = append(v.col.([]bool), false)
	case types.T_int8:
		v.col = append(v.col.([]int8), 0)
	case types.T_int16:
		v.col = append(v.col.([]int16), 0)
	case types.T_int32:
		v.col = append(v.col.([]int32), 0)
	case types.T_int64:
		v.col = append(v.col.([]int64), 0)
	case types.T_uint8:
		v.col = append(v.col.([]uint8), 0)
	case types.T_uint16:
		v.col = append(v.col.([]uint16), 0)
	case types.T_uint32:
		v.col = append(v.col.([]uint32), 0)
	case types.T_uint64:
		v.col = append(v.col.([]uint64), 0)
	case types.T_float32:
		v.col = append(v.col.([]float32), 0)
	case types.T_float64:
		v.col = append(v.col.([]float64), 0)
	case types.T_decimal128:
		v.col = append(v.col.([]types.Decimal128), types.Decimal128{})
	case types.T_uuid:
		v.col = append(v.col.([]types.Uuid), types.Uuid{})
	default:
		panic(moerr.NewInternalErrorNoCtx("no default value for type %s", v.typ.String()))
	}
	v.length++
}

// UnionOne appends row sel of w to v. v and w must have the same physical type.
func (v *Vector) UnionOne(w *Vector, sel int64) error {
	if w.IsConst() {
		sel = 0
	}
	if w.nsp.Contains(uint64(sel)) {
		v.AppendDefault(true)
		return nil
	}
	switch v.typ.Oid {
	case types.T_array:
		start, end := w.ArrayRowRange(int(sel))
		for i := start; i < end; i++ {
			if err := v.elem.UnionOne(w.elem, int64(i)); err != nil {
				return err
			}
		}
		v.offsets = append(v.offsets, uint64(v.elem.Length()))
		v.length++
	case types.T_tuple:
		if len(v.fields) != len(w.fields) {
			return moerr.NewInternalErrorNoCtx("union tuples of %d and %d fields", len(v.fields), len(w.fields))
		}
		for i := range v.fields {
			if err := v.fields[i].UnionOne(w.fields[i], sel); err != nil {
				return err
			}
		}
		v.length++
	case types.T_char, types.T_varchar:
		v.col.(*types.Bytes).Append(w.col.(*types.Bytes).Get(int(sel)))
		v.length++
	case types.T_bool:
		unionOneFixed[bool](v, w, sel)
	case types.T_int8:
		unionOneFixed[int8](v, w, sel)
	case types.T_int16:
		unionOneFixed[int16](v, w, sel)
	case types.T_int32:
		unionOneFixed[int32](v, w, sel)
	case types.T_int64:
		unionOneFixed[int64](v, w, sel)
	case types.T_uint8:
		unionOneFixed[uint8](v, w, sel)
	case types.T_uint16:
		unionOneFixed[uint16](v, w, sel)
	case types.T_uint32:
		unionOneFixed[uint32](v, w, sel)
	case types.T_uint64:
		unionOneFixed[uint64](v, w, sel)
	case types.T_float32:
		unionOneFixed[float32](v, w, sel)
	case types.T_float64:
		unionOneFixed[float64](v, w, sel)
	case types.T_decimal128:
		unionOneFixed[types.Decimal128](v, w, sel)
	case types.T_uuid:
		unionOneFixed[types.Uuid](v, w, sel)
	default:
		return moerr.NewInternalErrorNoCtx("unexpected type %s for function UnionOne", v.typ.String())
	}
	return nil
}

func unionOneFixed[T types.FixedSizeT](v, w *Vector, sel int64) {
	v.col = append(v.col.([]T), w.col.([]T)[sel])
	v.length++
}

// ConstExpand returns a flat copy of a constant vector. Flat vectors are
// returned as is.
func (v *Vector) ConstExpand() (*Vector, error) {
	if !v.IsConst() {
		return v, nil
	}
	w := NewVec(v.typ)
	for i := 0; i < v.length; i++ {
		if err := w.UnionOne(v, 0); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// GetAny returns row i as a go value: nil for null, []any for arrays and
// tuples, string for text, the typed value otherwise.
func (v *Vector) GetAny(i int) any {
	if v.IsConst() {
		i = 0
	}
	if v.nsp.Contains(uint64(i)) {
		return nil
	}
	switch v.typ.Oid {
	case types.T_array:
		start, end := v.ArrayRowRange(i)
		vals := make([]any, 0, end-start)
		for j := start; j < end; j++ {
			vals = append(vals, v.elem.GetAny(int(j)))
		}
		return vals
	case types.T_tuple:
		vals := make([]any, len(v.fields))
		for j, f := range v.fields {
			vals[j] = f.GetAny(i)
		}
		return vals
	case types.T_char, types.T_varchar:
		return v.GetStringAt(i)
	}
	switch col := v.col.(type) {
	case []bool:
		return col[i]
	case []int8:
		return col[i]
	case []int16:
		return col[i]
	case []int32:
		return col[i]
	case []int64:
		return col[i]
	case []uint8:
		return col[i]
	case []uint16:
		return col[i]
	case []uint32:
		return col[i]
	case []uint64:
		return col[i]
	case []float32:
		return col[i]
	case []float64:
		return col[i]
	case []types.Decimal128:
		return col[i]
	case []types.Uuid:
		return col[i]
	}
	panic(moerr.NewInternalErrorNoCtx("unexpected type %s for function GetAny", v.typ.String()))
}

// ConstArrayLiteral returns the single array of a constant array column as
// optional values, nil standing for a null element.
func (v *Vector) ConstArrayLiteral() []any {
	if !v.IsConst() || !v.typ.IsArray() {
		panic(moerr.NewInternalErrorNoCtx("ConstArrayLiteral on %s", v.typ.String()))
	}
	if lit, ok := v.GetAny(0).([]any); ok {
		return lit
	}
	return nil
}

func (v *Vector) String() string {
	var buf bytes.Buffer
	if v.IsConst() {
		buf.WriteString("const ")
	}
	buf.WriteString("[")
	for i := 0; i < v.physicalLen(); i++ {
		if i > 0 {
			buf.WriteString(" ")
		}
		fmt.Fprintf(&buf, "%v", v.GetAny(i))
	}
	buf.WriteString("]")
	return buf.String()
}
