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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseT(t *testing.T) {
	oid, ok := ParseT("VarChar")
	require.True(t, ok)
	require.Equal(t, T_varchar, oid)

	_, ok = ParseT("date")
	require.False(t, ok)
	require.Equal(t, "uint16", T_uint16.Name())

	typ := NewArrayType(NewTupleType(T_int32.ToType(), T_uuid.ToType().WithNullable(true)))
	require.Equal(t, "ARRAY(TUPLE(INT, NULLABLE(UUID)))", typ.String())
	require.True(t, typ.Eq(NewArrayType(NewTupleType(T_int32.ToType(), T_uuid.ToType().WithNullable(true)))))
	require.False(t, typ.Eq(NewArrayType(T_int32.ToType())))
}
