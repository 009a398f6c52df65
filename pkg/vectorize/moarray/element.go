// Copyright 2023 Matrix Origin
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

package moarray

import (
	"context"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
)

const elementFnName = "arrayElement"

// ResolvePosition maps a 1-based index k onto the row [start, end).
// k > 0 counts from the start, k < 0 from the end. ok is false when the
// index falls outside the row, which includes k == 0.
func ResolvePosition(start, end uint64, k int64) (pos uint64, ok bool) {
	size := end - start
	switch {
	case k > 0:
		if uint64(k) <= size {
			return start + uint64(k) - 1, true
		}
	case k < 0:
		// -k overflows for MinInt64, but uint64 of it still exceeds any size
		if uint64(-k) <= size {
			return end - uint64(-k), true
		}
	}
	return 0, false
}

// positions holds, per output row, the element position and whether the
// index hit an element.
type positions struct {
	pos   []uint64
	found []bool
}

func resolvePositions(arr *vector.Vector, index vector.FunctionParameterWrapper[int64], length int) positions {
	ps := positions{
		pos:   make([]uint64, length),
		found: make([]bool, length),
	}
	for i := 0; i < length; i++ {
		k, null := index.GetValue(uint64(i))
		// a null array row reads as empty
		if null || arr.IsNull(uint64(i)) {
			continue
		}
		start, end := arr.ArrayRowRange(i)
		ps.pos[i], ps.found[i] = ResolvePosition(start, end, k)
	}
	return ps
}

// Element returns, for each of the length rows of arr, the element at the
// given 1-based index. Rows without such an element get the default value
// of the element type, and null when the result is nullable. The result
// is nullable iff the element store is, or, for a constant array, iff its
// literal holds a null, or iff the index itself is nullable.
// A constant array with a constant index yields a constant result.
func Element(ctx context.Context, arr *vector.Vector, index vector.FunctionParameterWrapper[int64], length int) (*vector.Vector, error) {
	if !arr.GetType().IsArray() {
		return nil, moerr.NewIllegalType(ctx, arr.GetType().String(), 1, elementFnName, "must be an array")
	}
	if index.IsScalar() {
		if k, null := index.GetValue(0); !null && k == 0 {
			return nil, moerr.NewZeroArrayIndex(ctx, elementFnName)
		}
	}

	rows := length
	if arr.IsConst() && index.IsScalar() {
		rows = 1
	}
	ps := resolvePositions(arr, index, rows)

	indexNullable := index.GetType().Nullable || index.GetSourceVector().IsConstNull()
	store := arr.GetArrayElements()
	var src NullSource
	nullable := indexNullable
	if arr.IsConst() {
		lit := arr.ConstArrayLiteral()
		src = NewLiteralNullSource(lit)
		nullable = nullable || LiteralHasNull(lit)
	} else {
		src = NewStoreNullSource(store.GetNulls())
		nullable = nullable || store.GetType().Nullable
	}

	res, err := gatherStore(ctx, store, src, ps, nullable, indexNullable)
	if err != nil {
		return nil, err
	}
	if rows != length {
		res.ToConst(length)
	}
	return res, nil
}

// gatherStore copies the resolved elements of store. Tuple stores are
// gathered field by field, each field with its own null source.
func gatherStore(ctx context.Context, store *vector.Vector, src NullSource, ps positions, nullable, forceNullable bool) (*vector.Vector, error) {
	if store.GetType().IsTuple() {
		fields := store.GetTupleFields()
		out := make([]*vector.Vector, len(fields))
		for i, f := range fields {
			fieldNullable := forceNullable || f.GetType().Nullable
			var err error
			if out[i], err = gatherStore(ctx, f, NewStoreNullSource(f.GetNulls()), ps, fieldNullable, forceNullable); err != nil {
				return nil, err
			}
		}
		return vector.NewTupleVec(out)
	}

	rep, ok := vector.Probe(store)
	if !ok {
		return nil, moerr.NewIllegalColumn(ctx, store.GetType().String(), elementFnName)
	}
	builder := NewNullMapBuilder(src, len(ps.pos))
	typ := store.GetType().WithNullable(nullable)

	var res *vector.Vector
	var err error
	switch rep.Kind {
	case vector.Numeric:
		res, err = gatherNumeric(ctx, store, rep.Oid, typ, ps, builder)
	case vector.Text:
		res = gatherText(store, typ, ps, builder)
	default:
		res, err = gatherGeneric(store, typ, ps, builder)
	}
	if err != nil {
		return nil, err
	}
	if builder.Recorded() != len(ps.pos) {
		return nil, moerr.NewInternalError(ctx, "%d rows recorded for %d outputs", builder.Recorded(), len(ps.pos))
	}
	if nullable {
		res.SetNulls(builder.Nulls())
	} else {
		res.SetNulls(&nulls.Nulls{})
	}
	return res, nil
}

func gatherNumeric(ctx context.Context, store *vector.Vector, oid types.T, typ types.Type, ps positions, b *NullMapBuilder) (*vector.Vector, error) {
	switch oid {
	case types.T_uint8:
		return gatherFixed[uint8](store, typ, ps, b), nil
	case types.T_uint16:
		return gatherFixed[uint16](store, typ, ps, b), nil
	case types.T_uint32:
		return gatherFixed[uint32](store, typ, ps, b), nil
	case types.T_uint64:
		return gatherFixed[uint64](store, typ, ps, b), nil
	case types.T_int8:
		return gatherFixed[int8](store, typ, ps, b), nil
	case types.T_int16:
		return gatherFixed[int16](store, typ, ps, b), nil
	case types.T_int32:
		return gatherFixed[int32](store, typ, ps, b), nil
	case types.T_int64:
		return gatherFixed[int64](store, typ, ps, b), nil
	case types.T_float32:
		return gatherFixed[float32](store, typ, ps, b), nil
	case types.T_float64:
		return gatherFixed[float64](store, typ, ps, b), nil
	}
	return nil, moerr.NewIllegalColumn(ctx, typ.String(), elementFnName)
}

func gatherFixed[T types.Number](store *vector.Vector, typ types.Type, ps positions, b *NullMapBuilder) *vector.Vector {
	src := vector.MustFixedCol[T](store)
	fr := vector.NewFunctionResult[T](typ, len(ps.pos))
	var zero T
	for i, pos := range ps.pos {
		if !ps.found[i] {
			b.RecordAbsent()
			fr.Append(zero, false)
			continue
		}
		b.RecordPresent(pos)
		fr.Append(src[pos], false)
	}
	return fr.GetResultVector()
}

func gatherText(store *vector.Vector, typ types.Type, ps positions, b *NullMapBuilder) *vector.Vector {
	res := vector.NewVec(typ)
	for i, pos := range ps.pos {
		if !ps.found[i] {
			b.RecordAbsent()
			vector.AppendBytes(res, nil, false)
			continue
		}
		b.RecordPresent(pos)
		vector.AppendBytes(res, store.GetBytesAt(int(pos)), false)
	}
	return res
}

func gatherGeneric(store *vector.Vector, typ types.Type, ps positions, b *NullMapBuilder) (*vector.Vector, error) {
	res := vector.NewVec(typ)
	for i, pos := range ps.pos {
		if !ps.found[i] {
			b.RecordAbsent()
			res.AppendDefault(false)
			continue
		}
		b.RecordPresent(pos)
		if err := res.UnionOne(store, int64(pos)); err != nil {
			return nil, err
		}
	}
	return res, nil
}
