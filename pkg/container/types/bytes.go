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

// Bytes stores variable length values back to back in Data.
// Value i is Data[Offsets[i] : Offsets[i]+Lengths[i]].
type Bytes struct {
	Data    []byte
	Offsets []uint32
	Lengths []uint32
}

func (a *Bytes) Len() int {
	return len(a.Offsets)
}

func (a *Bytes) Get(n int) []byte {
	offset := a.Offsets[n]
	return a.Data[offset : offset+a.Lengths[n]]
}

func (a *Bytes) Append(v []byte) {
	a.Offsets = append(a.Offsets, uint32(len(a.Data)))
	a.Lengths = append(a.Lengths, uint32(len(v)))
	a.Data = append(a.Data, v...)
}

func (a *Bytes) String() string {
	s := "["
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			s += " "
		}
		s += string(a.Get(i))
	}
	return s + "]"
}
