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
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
)

// RepresentationKind is the physical family a kernel specializes on.
type RepresentationKind uint8

const (
	// Numeric stores are a flat []T of one of NumericProbeOrder.
	Numeric RepresentationKind = iota
	// Text stores are *types.Bytes.
	Text
	// Generic stores support UnionOne, AppendDefault and GetAny only.
	Generic
)

func (k RepresentationKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Generic:
		return "generic"
	}
	return "unknown"
}

// Representation is the result of probing a column.
type Representation struct {
	Kind RepresentationKind
	// Oid is the numeric type for Numeric, the column type otherwise.
	Oid types.T
}

// NumericProbeOrder is the order numeric representations are tried in.
var NumericProbeOrder = []types.T{
	types.T_uint8, types.T_uint16, types.T_uint32, types.T_uint64,
	types.T_int8, types.T_int16, types.T_int32, types.T_int64,
	types.T_float32, types.T_float64,
}

// Probe classifies v. The first matching representation wins: the numeric
// types in NumericProbeOrder, then text, then generic. ok is false when v
// matches none of them.
func Probe(v *Vector) (rep Representation, ok bool) {
	oid := v.typ.Oid
	for _, t := range NumericProbeOrder {
		if oid == t {
			return Representation{Kind: Numeric, Oid: t}, true
		}
	}
	if oid.IsMySQLString() {
		return Representation{Kind: Text, Oid: oid}, true
	}
	switch oid {
	case types.T_bool, types.T_decimal128, types.T_uuid, types.T_tuple, types.T_array:
		return Representation{Kind: Generic, Oid: oid}, true
	}
	return Representation{}, false
}
