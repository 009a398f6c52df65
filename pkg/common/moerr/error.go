// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
)

const (
	// 0 - 99 is OK.  They do not contain info, and are special handled
	// using a static instance, no alloc.
	Ok    uint16 = 0
	OkMax uint16 = 99

	// Group 1: Internal errors
	ErrStart            uint16 = 20100
	ErrInternal         uint16 = 20101
	ErrQueryInterrupted uint16 = 20104
	ErrNotSupported     uint16 = 20105

	// Group 2: numeric and functions
	ErrInvalidArg     uint16 = 20203
	ErrZeroArrayIndex uint16 = 20210
	ErrWrongArgCount  uint16 = 20211
	ErrIllegalType    uint16 = 20212
	ErrIllegalColumn  uint16 = 20213

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state and io errors
	ErrUnexpectedEOF uint16 = 20407
	ErrSizeNotMatch  uint16 = 20409

	// ErrEnd, the max value of MOErrorCode
	ErrEnd uint16 = 65535
)

var errorMsgRefer = map[uint16]string{
	// Group 1: Internal errors
	ErrStart:            "internal error: error code start",
	ErrInternal:         "internal error: %s",
	ErrQueryInterrupted: "query interrupted",
	ErrNotSupported:     "not supported: %s",

	// Group 2: numeric and functions
	ErrInvalidArg:     "invalid argument %s, bad value %s",
	ErrZeroArrayIndex: "array indices are 1-based, index 0 is invalid for function %s",
	ErrWrongArgCount:  "function %s requires %s arguments, got %d",
	ErrIllegalType:    "illegal type %s of argument %d of function %s, %s",
	ErrIllegalColumn:  "illegal column %s of argument of function %s",

	// Group 3: invalid input
	ErrBadConfig:    "invalid configuration: %s",
	ErrInvalidInput: "invalid input: %s",

	// Group 4: unexpected state and io errors
	ErrUnexpectedEOF: "unexpected end of file %s",
	ErrSizeNotMatch:  "%s sizes do not match: %s",

	ErrEnd: "internal error: end of errcode code",
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	format, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	err := &Error{code: code, message: format}
	if len(args) > 0 {
		err.message = fmt.Sprintf(format, args...)
	}
	return err
}

type Error struct {
	code    uint16
	message string
	detail  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// ConvertPanicError converts a runtime panic to internal error.
func ConvertPanicError(ctx context.Context, v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	err := newError(ctx, ErrInternal, fmt.Sprintf("panic %v", v))
	err.detail = string(debug.Stack())
	return err
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	if err == nil {
		return err
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return NewUnexpectedEOF(ctx, err.Error())
	}
	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNotSupported, xmsg)
}

func NewQueryInterrupted(ctx context.Context) *Error {
	return newError(ctx, ErrQueryInterrupted)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

// NewZeroArrayIndex is raised when a constant index of 0 is given to a
// 1-based array accessor.
func NewZeroArrayIndex(ctx context.Context, fn string) *Error {
	return newError(ctx, ErrZeroArrayIndex, fn)
}

// NewWrongArgCount reports an argument list of the wrong length, expect is
// a human readable description such as "at least 1".
func NewWrongArgCount(ctx context.Context, fn string, expect string, got int) *Error {
	return newError(ctx, ErrWrongArgCount, fn, expect, got)
}

func NewIllegalType(ctx context.Context, typ string, argIdx int, fn string, reason string) *Error {
	return newError(ctx, ErrIllegalType, typ, argIdx, fn, reason)
}

func NewIllegalColumn(ctx context.Context, col string, fn string) *Error {
	return newError(ctx, ErrIllegalColumn, col, fn)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewUnexpectedEOF(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrUnexpectedEOF, xmsg)
}

// NewArraySizeNotMatch reports that the arrays passed to fn do not have
// identical lengths row by row.
func NewArraySizeNotMatch(ctx context.Context, fn string) *Error {
	return newError(ctx, ErrSizeNotMatch, "array", fmt.Sprintf("lengths of all arrays passed to %s must be equal", fn))
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(context.Background(), msg, args...)
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return NewInvalidInput(context.Background(), msg, args...)
}
