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
	"encoding/json"
	"math"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

// AppendAny appends a go value converted to the vector type. nil appends
// a null, arrays take []any and tuples take []any with one entry per field.
// Numbers may be any go numeric type or a json.Number.
func (v *Vector) AppendAny(val any) error {
	if val == nil {
		v.AppendDefault(true)
		return nil
	}
	switch v.typ.Oid {
	case types.T_array:
		vals, ok := val.([]any)
		if !ok {
			return moerr.NewInvalidInputNoCtx("%v is not an array", val)
		}
		for _, e := range vals {
			if err := v.elem.AppendAny(e); err != nil {
				return err
			}
		}
		v.AppendArrayRow(false)
		return nil
	case types.T_tuple:
		vals, ok := val.([]any)
		if !ok || len(vals) != len(v.fields) {
			return moerr.NewInvalidInputNoCtx("%v is not a tuple of %d fields", val, len(v.fields))
		}
		for i, e := range vals {
			if err := v.fields[i].AppendAny(e); err != nil {
				return err
			}
		}
		v.length++
		return nil
	case types.T_char, types.T_varchar:
		switch s := val.(type) {
		case string:
			AppendBytes(v, []byte(s), false)
		case []byte:
			AppendBytes(v, s, false)
		default:
			return moerr.NewInvalidInputNoCtx("%v is not a string", val)
		}
		return nil
	case types.T_bool:
		b, ok := val.(bool)
		if !ok {
			return moerr.NewInvalidInputNoCtx("%v is not a bool", val)
		}
		AppendFixed(v, b, false)
		return nil
	case types.T_decimal128:
		d, ok := val.(types.Decimal128)
		if !ok {
			i, err := toInt64(val)
			if err != nil {
				return err
			}
			d = types.Decimal128{B0_63: uint64(i)}
			if i < 0 {
				d.B64_127 = math.MaxUint64
			}
		}
		AppendFixed(v, d, false)
		return nil
	case types.T_uuid:
		u, ok := val.(types.Uuid)
		if !ok {
			return moerr.NewInvalidInputNoCtx("%v is not a uuid", val)
		}
		AppendFixed(v, u, false)
		return nil
	case types.T_float32, types.T_float64:
		f, err := toFloat64(val)
		if err != nil {
			return err
		}
		if v.typ.Oid == types.T_float32 {
			AppendFixed(v, float32(f), false)
		} else {
			AppendFixed(v, f, false)
		}
		return nil
	}
	if v.typ.Oid.IsUnsignedInt() {
		u, err := toUint64(val)
		if err != nil {
			return err
		}
		switch v.typ.Oid {
		case types.T_uint8:
			AppendFixed(v, uint8(u), false)
		case types.T_uint16:
			AppendFixed(v, uint16(u), false)
		case types.T_uint32:
			AppendFixed(v, uint32(u), false)
		default:
			AppendFixed(v, u, false)
		}
		return nil
	}
	if v.typ.Oid.IsInteger() {
		i, err := toInt64(val)
		if err != nil {
			return err
		}
		switch v.typ.Oid {
		case types.T_int8:
			AppendFixed(v, int8(i), false)
		case types.T_int16:
			AppendFixed(v, int16(i), false)
		case types.T_int32:
			AppendFixed(v, int32(i), false)
		default:
			AppendFixed(v, i, false)
		}
		return nil
	}
	return moerr.NewInvalidInputNoCtx("cannot append %T to %s", val, v.typ.String())
}

func toInt64(val any) (int64, error) {
	switch x := val.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, moerr.NewInvalidInputNoCtx("%v is not an integer", val)
		}
		return int64(x), nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, moerr.NewInvalidInputNoCtx("%v is not an integer", val)
		}
		return i, nil
	}
	return 0, moerr.NewInvalidInputNoCtx("%v is not a number", val)
}

func toUint64(val any) (uint64, error) {
	switch x := val.(type) {
	case uint:
		return uint64(x), nil
	case uint64:
		return x, nil
	case json.Number:
		i, err := x.Int64()
		if err == nil {
			return uint64(i), nil
		}
		f, ferr := x.Float64()
		if ferr != nil || f < 0 || f != math.Trunc(f) {
			return 0, moerr.NewInvalidInputNoCtx("%v is not an unsigned integer", val)
		}
		return uint64(f), nil
	}
	i, err := toInt64(val)
	return uint64(i), err
}

func toFloat64(val any) (float64, error) {
	switch x := val.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, moerr.NewInvalidInputNoCtx("%v is not a number", val)
		}
		return f, nil
	}
	i, err := toInt64(val)
	return float64(i), err
}
