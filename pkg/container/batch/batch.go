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

package batch

import (
	"bytes"
	"fmt"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/vector"
	"github.com/matrixorigin/mo-arrayfn/pkg/logutil"
)

func New(attrs []string) *Batch {
	return &Batch{
		Attrs: attrs,
		Vecs:  make([]*vector.Vector, len(attrs)),
	}
}

func NewWithSize(n int) *Batch {
	return &Batch{
		Vecs: make([]*vector.Vector, n),
	}
}

func (bat *Batch) RowCount() int {
	return bat.rowCount
}

func (bat *Batch) SetRowCount(rowCount int) {
	bat.rowCount = rowCount
}

func (bat *Batch) VectorCount() int {
	return len(bat.Vecs)
}

func (bat *Batch) SetVector(pos int32, vec *vector.Vector) {
	bat.Vecs[pos] = vec
}

func (bat *Batch) GetVector(pos int32) *vector.Vector {
	return bat.Vecs[pos]
}

// Check verifies that every vector is set and holds RowCount rows.
func (bat *Batch) Check() error {
	for i, vec := range bat.Vecs {
		if vec == nil {
			return moerr.NewInvalidInputNoCtx("batch vector %d is missing", i)
		}
		if vec.Length() != bat.rowCount {
			return moerr.NewInvalidInputNoCtx("batch vector %d has %d rows, want %d", i, vec.Length(), bat.rowCount)
		}
	}
	return nil
}

func (bat *Batch) IsEmpty() bool {
	return bat.rowCount == 0
}

func (bat *Batch) String() string {
	var buf bytes.Buffer

	for i, vec := range bat.Vecs {
		buf.WriteString(fmt.Sprintf("%d : %s\n", i, vec.String()))
	}
	return buf.String()
}

func (bat *Batch) Log(tag string) {
	if bat == nil || bat.rowCount < 1 {
		return
	}
	logutil.Infof("\n%s\n%s", tag, bat.String())
}
