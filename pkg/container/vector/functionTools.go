// Copyright 2022 Matrix Origin
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
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

// FunctionParameterWrapper is generated from a vector.
// It hides the relevant details of vector (like scalar and contain null or not.)
// and provides a series of methods to get values.
type FunctionParameterWrapper[T types.FixedSizeT] interface {
	// GetType will return the type info of wrapped parameter.
	GetType() types.Type

	// GetSourceVector return the source vector.
	GetSourceVector() *Vector

	// GetValue return the Idx th value and if it's null or not.
	GetValue(idx uint64) (T, bool)

	// IsScalar reports whether every row yields the same value.
	IsScalar() bool
}

var _ FunctionParameterWrapper[int64] = &FunctionParameterNormal[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterWithoutNull[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterScalar[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterScalarNull[int64]{}

func GenerateFunctionFixedTypeParameter[T types.FixedSizeT](v *Vector) FunctionParameterWrapper[T] {
	t := v.GetType()
	if v.IsConstNull() {
		return &FunctionParameterScalarNull[T]{
			typ:          *t,
			sourceVector: v,
		}
	}
	cols := MustFixedCol[T](v)
	if v.IsConst() {
		return &FunctionParameterScalar[T]{
			typ:          *t,
			sourceVector: v,
			scalarValue:  cols[0],
		}
	}
	if v.nsp.Any() {
		return &FunctionParameterNormal[T]{
			typ:          *t,
			sourceVector: v,
			values:       cols,
			nullMap:      v.GetNulls(),
		}
	}
	return &FunctionParameterWithoutNull[T]{
		typ:          *t,
		sourceVector: v,
		values:       cols,
	}
}

// GenerateFunctionIndexParameter wraps an integer column of any width as
// int64. Unsigned values are reinterpreted as signed.
func GenerateFunctionIndexParameter(v *Vector) (FunctionParameterWrapper[int64], error) {
	switch v.typ.Oid {
	case types.T_int8:
		return widenParameter(GenerateFunctionFixedTypeParameter[int8](v)), nil
	case types.T_int16:
		return widenParameter(GenerateFunctionFixedTypeParameter[int16](v)), nil
	case types.T_int32:
		return widenParameter(GenerateFunctionFixedTypeParameter[int32](v)), nil
	case types.T_int64:
		return GenerateFunctionFixedTypeParameter[int64](v), nil
	case types.T_uint8:
		return widenParameter(GenerateFunctionFixedTypeParameter[uint8](v)), nil
	case types.T_uint16:
		return widenParameter(GenerateFunctionFixedTypeParameter[uint16](v)), nil
	case types.T_uint32:
		return widenParameter(GenerateFunctionFixedTypeParameter[uint32](v)), nil
	case types.T_uint64:
		return widenParameter(GenerateFunctionFixedTypeParameter[uint64](v)), nil
	}
	return nil, moerr.NewInternalErrorNoCtx("%s is not an integer type", v.typ.String())
}

// FunctionParameterNormal is a wrapper of normal vector which
// may contains null value.
type FunctionParameterNormal[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	values       []T
	nullMap      *nulls.Nulls
}

func (p *FunctionParameterNormal[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterNormal[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterNormal[T]) GetValue(idx uint64) (value T, isNull bool) {
	if p.nullMap.Contains(idx) {
		return value, true
	}
	return p.values[idx], false
}

func (p *FunctionParameterNormal[T]) IsScalar() bool {
	return false
}

// FunctionParameterWithoutNull is a wrapper of normal vector but
// without null value.
type FunctionParameterWithoutNull[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	values       []T
}

func (p *FunctionParameterWithoutNull[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterWithoutNull[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterWithoutNull[T]) GetValue(idx uint64) (T, bool) {
	return p.values[idx], false
}

func (p *FunctionParameterWithoutNull[T]) IsScalar() bool {
	return false
}

// FunctionParameterScalar is a wrapper of scalar vector.
type FunctionParameterScalar[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	scalarValue  T
}

func (p *FunctionParameterScalar[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterScalar[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterScalar[T]) GetValue(_ uint64) (T, bool) {
	return p.scalarValue, false
}

func (p *FunctionParameterScalar[T]) IsScalar() bool {
	return true
}

// FunctionParameterScalarNull is a wrapper of scalar null vector.
type FunctionParameterScalarNull[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
}

func (p *FunctionParameterScalarNull[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterScalarNull[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterScalarNull[T]) GetValue(_ uint64) (value T, isNull bool) {
	return value, true
}

func (p *FunctionParameterScalarNull[T]) IsScalar() bool {
	return true
}

type integer interface {
	types.Ints | types.UInts
}

// widenedParameter reads a narrower integer wrapper as int64.
type widenedParameter[T integer] struct {
	inner FunctionParameterWrapper[T]
}

func widenParameter[T integer](inner FunctionParameterWrapper[T]) FunctionParameterWrapper[int64] {
	return &widenedParameter[T]{inner: inner}
}

func (p *widenedParameter[T]) GetType() types.Type {
	return p.inner.GetType()
}

func (p *widenedParameter[T]) GetSourceVector() *Vector {
	return p.inner.GetSourceVector()
}

func (p *widenedParameter[T]) GetValue(idx uint64) (int64, bool) {
	v, null := p.inner.GetValue(idx)
	return int64(v), null
}

func (p *widenedParameter[T]) IsScalar() bool {
	return p.inner.IsScalar()
}

// FunctionResult builds a fixed type result column row by row.
type FunctionResult[T types.FixedSizeT] struct {
	typ    types.Type
	vec    *Vector
	values []T
}

func NewFunctionResult[T types.FixedSizeT](typ types.Type, length int) *FunctionResult[T] {
	v := NewVec(typ)
	return &FunctionResult[T]{
		typ:    typ,
		vec:    v,
		values: make([]T, 0, length),
	}
}

func (fr *FunctionResult[T]) Append(val T, isnull bool) {
	if isnull {
		fr.vec.nsp.Set(uint64(len(fr.values)))
	}
	fr.values = append(fr.values, val)
}

func (fr *FunctionResult[T]) GetType() types.Type {
	return fr.typ
}

// GetResultVector seals the result and returns it as a flat vector.
func (fr *FunctionResult[T]) GetResultVector() *Vector {
	fr.vec.col = fr.values
	fr.vec.length = len(fr.values)
	return fr.vec
}
