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
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

// PackAt appends row i of v to p. Equal rows pack to equal bytes, and
// nested arrays and tuples keep their structure.
func (v *Vector) PackAt(p *types.Packer, i int) {
	if v.IsConst() {
		i = 0
	}
	if v.nsp.Contains(uint64(i)) {
		p.EncodeNull()
		return
	}
	switch v.typ.Oid {
	case types.T_array:
		start, end := v.ArrayRowRange(i)
		p.OpenNested()
		for j := start; j < end; j++ {
			v.elem.PackAt(p, int(j))
		}
		p.CloseNested()
	case types.T_tuple:
		p.OpenNested()
		for _, f := range v.fields {
			f.PackAt(p, i)
		}
		p.CloseNested()
	case types.T_char, types.T_varchar:
		p.EncodeStringType(v.col.(*types.Bytes).Get(i))
	case types.T_bool:
		p.EncodeBool(v.col.([]bool)[i])
	case types.T_int8:
		p.EncodeInt8(v.col.([]int8)[i])
	case types.T_int16:
		p.EncodeInt16(v.col.([]int16)[i])
	case types.T_int32:
		p.EncodeInt32(v.col.([]int32)[i])
	case types.T_int64:
		p.EncodeInt64(v.col.([]int64)[i])
	case types.T_uint8:
		p.EncodeUint8(v.col.([]uint8)[i])
	case types.T_uint16:
		p.EncodeUint16(v.col.([]uint16)[i])
	case types.T_uint32:
		p.EncodeUint32(v.col.([]uint32)[i])
	case types.T_uint64:
		p.EncodeUint64(v.col.([]uint64)[i])
	case types.T_float32:
		p.EncodeFloat32(v.col.([]float32)[i])
	case types.T_float64:
		p.EncodeFloat64(v.col.([]float64)[i])
	case types.T_decimal128:
		p.EncodeDecimal128(v.col.([]types.Decimal128)[i])
	case types.T_uuid:
		p.EncodeUuid(v.col.([]types.Uuid)[i])
	default:
		panic(moerr.NewInternalErrorNoCtx("cannot pack type %s", v.typ.String()))
	}
}
