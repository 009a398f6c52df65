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

package binary

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/types"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/testutil"
)

func TestArrayElement(t *testing.T) {
	convey.Convey("constant index", t, func() {
		arr := testutil.NewArrayVector(types.T_int32.ToType().WithNullable(true), []any{10, 20, 30})
		kases := []struct {
			k      int64
			want   int32
			isNull bool
		}{
			{2, 20, false},
			{-1, 30, false},
			{5, 0, true},
		}
		for _, k := range kases {
			idx := vector.NewConstFixed(types.T_int64.ToType(), k.k, 1)
			res, err := ArrayElement([]*vector.Vector{arr, idx}, testutil.NewProcess())
			convey.So(err, convey.ShouldBeNil)
			convey.So(vector.GetFixedAt[int32](res, 0), convey.ShouldEqual, k.want)
			convey.So(res.IsNull(0), convey.ShouldEqual, k.isNull)
		}
	})

	convey.Convey("index column", t, func() {
		arr := testutil.NewArrayVector(types.T_varchar.ToType(), []any{"a", "b"}, []any{"c"}, []any{})
		idx := testutil.NewVector(types.T_uint64.ToType(), 2, 1, 1)
		res, err := ArrayElement([]*vector.Vector{arr, idx}, testutil.NewProcess())
		convey.So(err, convey.ShouldBeNil)
		convey.So(testutil.Rows(res), convey.ShouldResemble, []any{"b", "c", ""})
	})

	convey.Convey("errors", t, func() {
		arr := testutil.NewArrayVector(types.T_int32.ToType(), []any{1})
		zero := vector.NewConstFixed(types.T_int32.ToType(), int32(0), 1)
		_, err := ArrayElement([]*vector.Vector{arr, zero}, testutil.NewProcess())
		convey.So(moerr.IsMoErrCode(err, moerr.ErrZeroArrayIndex), convey.ShouldBeTrue)

		str := testutil.NewVector(types.T_varchar.ToType(), "1")
		_, err = ArrayElement([]*vector.Vector{arr, str}, testutil.NewProcess())
		convey.So(moerr.IsMoErrCode(err, moerr.ErrIllegalType), convey.ShouldBeTrue)
	})
}
