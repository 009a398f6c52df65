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
	"bytes"
	"context"
	"math"

	"github.com/dolthub/swiss"
	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/hashmap"
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/hashtable"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/nulls"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/logutil"
)

const (
	UniqFnName          = "arrayUniq"
	EnumerateUniqFnName = "arrayEnumerateUniq"

	constSetDegree = 8
)

// SetOptions tune the scratch tables of the set engine.
type SetOptions struct {
	// SizeDegree is log2 of the initial bucket count, 0 means the default.
	SizeDegree uint8
	// ForceHashedKeys skips fixed key packing in the multi array path.
	ForceHashedKeys bool
}

type setMode uint8

const (
	countMode setMode = iota
	rankMode
)

func (m setMode) fnName() string {
	if m == countMode {
		return UniqFnName
	}
	return EnumerateUniqFnName
}

// Uniq returns, per row, the number of distinct element tuples formed by
// zipping the arrays of args. With one argument a null element counts as
// one extra value. The result is a uint32 column of length rows.
func Uniq(ctx context.Context, args []*vector.Vector, length int, opts SetOptions) (*vector.Vector, error) {
	return evalSet(ctx, countMode, args, length, opts)
}

// EnumerateUniq returns, per row, an array holding for every position the
// number of times its element tuple has occurred so far in the row. With
// one argument nulls are ranked among themselves. With several, a null is
// a value like any other.
func EnumerateUniq(ctx context.Context, args []*vector.Vector, length int, opts SetOptions) (*vector.Vector, error) {
	return evalSet(ctx, rankMode, args, length, opts)
}

func evalSet(ctx context.Context, mode setMode, args []*vector.Vector, length int, opts SetOptions) (*vector.Vector, error) {
	fn := mode.fnName()
	if len(args) == 0 {
		return nil, moerr.NewWrongArgCount(ctx, fn, "at least 1", 0)
	}
	for i, arg := range args {
		if !arg.GetType().IsArray() {
			return nil, moerr.NewIllegalType(ctx, arg.GetType().String(), i+1, fn, "must be an array")
		}
	}
	if len(args) == 1 && args[0].IsConst() {
		return evalConstSet(mode, args[0], length)
	}

	flat := make([]*vector.Vector, len(args))
	for i, arg := range args {
		if !arg.IsConst() {
			flat[i] = arg
			continue
		}
		var err error
		if flat[i], err = arg.ConstExpand(); err != nil {
			return nil, err
		}
	}
	offsets := flat[0].GetArrayOffsets()
	for _, arr := range flat[1:] {
		if len(arr.GetArrayOffsets()) != len(offsets) {
			return nil, moerr.NewArraySizeNotMatch(ctx, fn)
		}
	}

	sink := newSetSink(mode, offsets)
	if len(flat) == 1 {
		if err := evalSingle(ctx, flat[0], sink, opts); err != nil {
			return nil, err
		}
	} else {
		enc, err := hashmap.NewKeyEncoder(ctx, fn, flat, opts.ForceHashedKeys)
		if err != nil {
			return nil, err
		}
		logutil.Debug(ctx, "set engine keys",
			zap.String("function", fn),
			zap.Int("arguments", len(flat)),
			zap.String("tier", enc.Tier().String()))
		evalKeyed(enc, nil, sink, opts.SizeDegree)
	}

	rowNulls := &nulls.Nulls{}
	for _, arr := range flat {
		nulls.Set(rowNulls, arr.GetNulls())
	}
	return sink.result(rowNulls)
}

// setSink receives the per row output of the engine.
type setSink struct {
	mode    setMode
	offsets []uint64
	counts  *vector.FunctionResult[uint32]
	ranks   *vector.FunctionResult[uint32]
}

func newSetSink(mode setMode, offsets []uint64) *setSink {
	s := &setSink{mode: mode, offsets: offsets}
	if mode == countMode {
		s.counts = vector.NewFunctionResult[uint32](types.T_uint32.ToType(), len(offsets))
	} else {
		elemCnt := 0
		if len(offsets) > 0 {
			elemCnt = int(offsets[len(offsets)-1])
		}
		s.ranks = vector.NewFunctionResult[uint32](types.T_uint32.ToType(), elemCnt)
	}
	return s
}

func (s *setSink) rank(r uint64) {
	s.ranks.Append(uint32(r), false)
}

func (s *setSink) count(c uint64) {
	s.counts.Append(uint32(c), false)
}

func (s *setSink) result(rowNulls *nulls.Nulls) (*vector.Vector, error) {
	if s.mode == countMode {
		res := s.counts.GetResultVector()
		res.SetNulls(rowNulls)
		return res, nil
	}
	offsets := make([]uint64, len(s.offsets))
	copy(offsets, s.offsets)
	res, err := vector.NewArrayVec(s.ranks.GetResultVector(), offsets)
	if err != nil {
		return nil, err
	}
	res.SetNulls(rowNulls)
	return res, nil
}

func evalSingle(ctx context.Context, arr *vector.Vector, sink *setSink, opts SetOptions) error {
	store := arr.GetArrayElements()
	rep, ok := vector.Probe(store)
	if !ok {
		return moerr.NewIllegalColumn(ctx, store.GetType().String(), sink.mode.fnName())
	}
	switch rep.Kind {
	case vector.Numeric:
		return evalSingleNumeric(ctx, store, rep.Oid, sink, opts.SizeDegree)
	case vector.Text:
		col := vector.MustBytesCol(store)
		ht := hashtable.NewClearableHashMap[string](opts.SizeDegree, hashtable.StringHash)
		runSingle(ht, store.GetNulls(), sink, func(pos uint64) string {
			return types.UnsafeBytesToString(col.Get(int(pos)))
		})
		return nil
	}
	enc, err := hashmap.NewKeyEncoder(ctx, sink.mode.fnName(), []*vector.Vector{arr}, opts.ForceHashedKeys)
	if err != nil {
		return err
	}
	evalKeyed(enc, store.GetNulls(), sink, opts.SizeDegree)
	return nil
}

func evalSingleNumeric(ctx context.Context, store *vector.Vector, oid types.T, sink *setSink, degree uint8) error {
	switch oid {
	case types.T_uint8:
		runSingleFixed(store, sink, degree, func(v uint8) uint64 { return uint64(v) })
	case types.T_uint16:
		runSingleFixed(store, sink, degree, func(v uint16) uint64 { return uint64(v) })
	case types.T_uint32:
		runSingleFixed(store, sink, degree, func(v uint32) uint64 { return uint64(v) })
	case types.T_uint64:
		runSingleFixed(store, sink, degree, func(v uint64) uint64 { return v })
	case types.T_int8:
		runSingleFixed(store, sink, degree, func(v int8) uint64 { return uint64(v) })
	case types.T_int16:
		runSingleFixed(store, sink, degree, func(v int16) uint64 { return uint64(v) })
	case types.T_int32:
		runSingleFixed(store, sink, degree, func(v int32) uint64 { return uint64(v) })
	case types.T_int64:
		runSingleFixed(store, sink, degree, func(v int64) uint64 { return uint64(v) })
	case types.T_float32:
		// bit patterns, so equal NaNs collapse and -0 differs from +0
		runSingleFixed(store, sink, degree, func(v float32) uint64 { return uint64(math.Float32bits(v)) })
	case types.T_float64:
		runSingleFixed(store, sink, degree, math.Float64bits)
	default:
		return moerr.NewInternalError(ctx, "unexpected numeric type %s", oid.ToType().String())
	}
	return nil
}

func runSingleFixed[T types.Number](store *vector.Vector, sink *setSink, degree uint8, bits func(T) uint64) {
	col := vector.MustFixedCol[T](store)
	ht := hashtable.NewClearableHashMap[uint64](degree, hashtable.Int64Hash)
	runSingle(ht, store.GetNulls(), sink, func(pos uint64) uint64 {
		return bits(col[pos])
	})
}

// runSingle is the one argument scan: null elements never enter the table.
func runSingle[K comparable](ht *hashtable.ClearableHashMap[K], nsp *nulls.Nulls, sink *setSink, key func(uint64) K) {
	checkNulls := nsp.Any()
	var start uint64
	for _, end := range sink.offsets {
		ht.Clear()
		var nullCnt uint64
		for pos := start; pos < end; pos++ {
			if checkNulls && nsp.Contains(pos) {
				nullCnt++
				if sink.mode == rankMode {
					sink.rank(nullCnt)
				}
				continue
			}
			if sink.mode == countMode {
				ht.Insert(key(pos))
			} else {
				sink.rank(ht.Increment(key(pos)))
			}
		}
		if sink.mode == countMode {
			c := ht.Cardinality()
			if nullCnt > 0 {
				c++
			}
			sink.count(c)
		}
		start = end
	}
}

// evalKeyed ranks encoded keys. Positions in bypass are handled as in
// runSingle, a nil bypass folds nulls into the keys.
func evalKeyed(enc *hashmap.KeyEncoder, bypass *nulls.Nulls, sink *setSink, degree uint8) {
	ht := enc.NewKeyMap(degree)
	if bypass == nil {
		bypass = &nulls.Nulls{}
	}
	runSingle(ht, bypass, sink, enc.Key)
}

// packedItem orders packed values bytewise.
type packedItem []byte

func (a packedItem) Less(than btree.Item) bool {
	return bytes.Compare(a, than.(packedItem)) < 0
}

// evalConstSet computes the single array of a constant argument once and
// broadcasts it. A null element packs like any value, so all nulls of the
// array form one group.
func evalConstSet(mode setMode, arr *vector.Vector, length int) (*vector.Vector, error) {
	start, end := arr.ArrayRowRange(0)
	store := arr.GetArrayElements()
	packer := types.NewPacker()
	pack := func(pos uint64) []byte {
		packer.Reset()
		store.PackAt(packer, int(pos))
		return packer.GetBuf()
	}
	if arr.IsConstNull() {
		start, end = 0, 0
	}

	sink := newSetSink(mode, []uint64{end - start})
	if mode == countMode {
		set := btree.New(constSetDegree)
		for pos := start; pos < end; pos++ {
			buf := pack(pos)
			item := make(packedItem, len(buf))
			copy(item, buf)
			set.ReplaceOrInsert(item)
		}
		sink.count(uint64(set.Len()))
	} else {
		counts := swiss.NewMap[string, uint32](uint32(end - start))
		for pos := start; pos < end; pos++ {
			k := string(pack(pos))
			c, _ := counts.Get(k)
			c++
			counts.Put(k, c)
			sink.rank(uint64(c))
		}
	}

	res, err := sink.result(arr.GetNulls().Clone())
	if err != nil {
		return nil, err
	}
	return res.ToConst(length), nil
}
