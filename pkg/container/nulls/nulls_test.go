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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNulls(t *testing.T) {
	var nsp Nulls
	require.False(t, nsp.Any())
	require.False(t, (*Nulls)(nil).Contains(3))
	require.Equal(t, 0, (*Nulls)(nil).Count())

	for _, row := range []uint64{1, 5, 7, 8} {
		nsp.Set(row)
	}
	require.True(t, nsp.Any())
	require.Equal(t, []uint64{1, 5, 7, 8}, nsp.ToArray())
	require.Equal(t, 4, nsp.Count())
	require.True(t, nsp.Contains(5))

	m := Range(&nsp, 1, 8, 1, &Nulls{})
	require.Equal(t, []uint64{0, 4, 6}, m.ToArray())
	require.Equal(t, []uint64{}, Range(&Nulls{}, 0, 10, 0, &Nulls{}).ToArray())

	r := Build(3)
	Set(r, m)
	Set(r, nil)
	require.Equal(t, []uint64{0, 3, 4, 6}, r.ToArray())
	require.True(t, r.IsSame(Build(0, 3, 4, 6)))
	require.False(t, r.IsSame(nil))
	require.True(t, (&Nulls{}).IsSame(nil))

	c := r.Clone()
	c.Set(9)
	require.Equal(t, 4, r.Count())
	require.Equal(t, 5, c.Count())
	require.Equal(t, "[0 3 4 6 9]", c.String())
}
