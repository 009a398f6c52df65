/*
 * tuple.go
 *
 * For the license see the repository LICENSE file.
 *
 * Copyright 2013-2018 Apple Inc. and the FoundationDB project authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * Portions of this file are additionally subject to the following
 * copyright.
 *
 * Copyright (C) 2022 Matrix Origin.
 *
 * Modified the behavior of the tuple.
 */

package types

import (
	"encoding/binary"
	"math"
)

/*
 * Packer turns a sequence of typed values into one byte string.
 * Comparing two packed strings with bytes.Compare orders them the same
 * way as comparing the values one by one, and two sequences pack to
 * the same bytes iff they hold the same values of the same types:
 *    p := NewPacker()
 *    p.EncodeInt8(1)
 *    p.EncodeStringType([]byte("a"))
 *    key := p.GetBuf()
 * Arrays and tuples are packed as nested sequences.
 */

const (
	nilCode        = 0x00
	bytesCode      = 0x01
	nestedCode     = 0x05
	intZeroCode    = 0x14
	float32Code    = 0x20
	float64Code    = 0x21
	falseCode      = 0x26
	trueCode       = 0x27
	int8Code       = 0x28
	int16Code      = 0x29
	int32Code      = 0x3a
	int64Code      = 0x3b
	uint8Code      = 0x3c
	uint16Code     = 0x3d
	uint32Code     = 0x3e
	uint64Code     = 0x40
	decimal128Code = 0x45
	stringTypeCode = 0x46
	uuidCode       = 0x52

	// a nil inside a nested sequence is escaped so it cannot end the sequence
	nestedNilEscape = 0xff
)

var sizeLimits = []uint64{
	1<<(0*8) - 1,
	1<<(1*8) - 1,
	1<<(2*8) - 1,
	1<<(3*8) - 1,
	1<<(4*8) - 1,
	1<<(5*8) - 1,
	1<<(6*8) - 1,
	1<<(7*8) - 1,
	1<<(8*8) - 1,
}

func bisectLeft(u uint64) int {
	var n int
	for sizeLimits[n] < u {
		n++
	}
	return n
}

func adjustFloatBytes(b []byte, encode bool) {
	if (encode && b[0]&0x80 != 0x00) || (!encode && b[0]&0x80 == 0x00) {
		// Negative numbers: flip all of the bytes.
		for i := 0; i < len(b); i++ {
			b[i] = b[i] ^ 0xff
		}
	} else {
		// Positive number: flip just the sign bit.
		b[0] = b[0] ^ 0x80
	}
}

type Packer struct {
	buf   []byte
	depth int
}

func NewPacker() *Packer {
	return &Packer{buf: make([]byte, 0, 64)}
}

func (p *Packer) Reset() {
	p.buf = p.buf[:0]
	p.depth = 0
}

// GetBuf returns the packed bytes. The slice is reused after Reset.
func (p *Packer) GetBuf() []byte {
	return p.buf
}

func (p *Packer) putByte(b byte) {
	p.buf = append(p.buf, b)
}

func (p *Packer) putBytes(b []byte) {
	p.buf = append(p.buf, b...)
}

func (p *Packer) putBytesNil(b []byte, i int) {
	for i >= 0 {
		p.putBytes(b[:i+1])
		p.putByte(0xFF)
		b = b[i+1:]
		i = indexByte(b, 0x00)
	}
	p.putBytes(b)
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func (p *Packer) encodeBytes(code byte, b []byte) {
	p.putByte(code)
	if i := indexByte(b, 0x00); i >= 0 {
		p.putBytesNil(b, i)
	} else {
		p.putBytes(b)
	}
	p.putByte(0x00)
}

func (p *Packer) encodeUint(i uint64) {
	if i == 0 {
		p.putByte(intZeroCode)
		return
	}

	n := bisectLeft(i)
	var scratch [8]byte

	p.putByte(byte(intZeroCode + n))
	binary.BigEndian.PutUint64(scratch[:], i)

	p.putBytes(scratch[8-n:])
}

func (p *Packer) encodeInt(i int64) {
	if i >= 0 {
		p.encodeUint(uint64(i))
		return
	}

	n := bisectLeft(uint64(-i))
	var scratch [8]byte

	p.putByte(byte(intZeroCode - n))
	offsetEncoded := int64(sizeLimits[n]) + i
	binary.BigEndian.PutUint64(scratch[:], uint64(offsetEncoded))

	p.putBytes(scratch[8-n:])
}

func (p *Packer) EncodeNull() {
	p.putByte(nilCode)
	if p.depth > 0 {
		p.putByte(nestedNilEscape)
	}
}

func (p *Packer) EncodeBool(e bool) {
	if e {
		p.putByte(trueCode)
	} else {
		p.putByte(falseCode)
	}
}

func (p *Packer) EncodeInt8(e int8) {
	p.putByte(int8Code)
	p.encodeInt(int64(e))
}

func (p *Packer) EncodeInt16(e int16) {
	p.putByte(int16Code)
	p.encodeInt(int64(e))
}

func (p *Packer) EncodeInt32(e int32) {
	p.putByte(int32Code)
	p.encodeInt(int64(e))
}

func (p *Packer) EncodeInt64(e int64) {
	p.putByte(int64Code)
	p.encodeInt(e)
}

func (p *Packer) EncodeUint8(e uint8) {
	p.putByte(uint8Code)
	p.encodeUint(uint64(e))
}

func (p *Packer) EncodeUint16(e uint16) {
	p.putByte(uint16Code)
	p.encodeUint(uint64(e))
}

func (p *Packer) EncodeUint32(e uint32) {
	p.putByte(uint32Code)
	p.encodeUint(uint64(e))
}

func (p *Packer) EncodeUint64(e uint64) {
	p.putByte(uint64Code)
	p.encodeUint(e)
}

func (p *Packer) EncodeFloat32(e float32) {
	var scratch [4]byte
	binary.BigEndian.PutUint32(scratch[:], math.Float32bits(e))
	adjustFloatBytes(scratch[:], true)

	p.putByte(float32Code)
	p.putBytes(scratch[:])
}

func (p *Packer) EncodeFloat64(e float64) {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], math.Float64bits(e))
	adjustFloatBytes(scratch[:], true)

	p.putByte(float64Code)
	p.putBytes(scratch[:])
}

func (p *Packer) EncodeDecimal128(e Decimal128) {
	var scratch [16]byte
	binary.BigEndian.PutUint64(scratch[:8], e.B64_127)
	binary.BigEndian.PutUint64(scratch[8:], e.B0_63)
	scratch[0] ^= 0x80

	p.putByte(decimal128Code)
	p.putBytes(scratch[:])
}

func (p *Packer) EncodeUuid(e Uuid) {
	p.putByte(uuidCode)
	p.putBytes(e[:])
}

func (p *Packer) EncodeStringType(e []byte) {
	p.encodeBytes(stringTypeCode, e)
}

// OpenNested starts a nested sequence, CloseNested ends it.
func (p *Packer) OpenNested() {
	p.putByte(nestedCode)
	p.depth++
}

func (p *Packer) CloseNested() {
	p.putByte(0x00)
	p.depth--
}
