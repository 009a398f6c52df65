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

package unary

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func TestArrayEnumerate(t *testing.T) {
	convey.Convey("array enumerate", t, func() {
		arr := testutil.NewArrayVector(types.T_float64.ToType(), []any{1.5, 2.5}, []any{})
		res, err := ArrayEnumerate([]*vector.Vector{arr}, testutil.NewProcess())
		convey.So(err, convey.ShouldBeNil)
		convey.So(testutil.Rows(res), convey.ShouldResemble, []any{
			[]any{uint32(1), uint32(2)},
			[]any{},
		})
	})
}

func TestEmptyArrayToSingle(t *testing.T) {
	convey.Convey("empty array to single", t, func() {
		arr := testutil.NewArrayVector(types.T_varchar.ToType(), []any{}, []any{"a"})
		res, err := EmptyArrayToSingle([]*vector.Vector{arr}, testutil.NewProcess())
		convey.So(err, convey.ShouldBeNil)
		want := testutil.NewArrayVector(types.T_varchar.ToType(), []any{""}, []any{"a"})
		convey.So(testutil.CompareVectors(want, res), convey.ShouldBeTrue)
	})
}
