// Copyright 2024 Huawei Cloud Computing Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cstr

import (
	"unsafe"

	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/errno"
)

// BytesLike covers the Go types a terminated sequence is built from.
type BytesLike interface {
	~string | ~[]byte
}

// inlineThreshold is the longest input the With functions serve from a
// stack buffer instead of the foreign allocator.
const inlineThreshold = 128

// Converter duplicates an existing sequence into fresh foreign memory.
// Buf, CString and View all implement it.
type Converter interface {
	ToCString() *CString
	ToCStringUnchecked() *CString
}

// New copies v into foreign memory and appends the terminator. It
// panics if v contains a terminator byte, which foreign readers would
// mistake for the end of the string.
func New[T BytesLike](v T) *CString {
	if i := indexTerm(v); i >= 0 {
		panic(errno.NewError(errno.EmbeddedTerminator, i))
	}
	return NewUnchecked(v)
}

// NewUnchecked copies v into foreign memory without scanning for
// embedded terminators. Foreign readers see a sequence truncated at the
// first embedded terminator, if any.
func NewUnchecked[T BytesLike](v T) *CString {
	n := len(v)
	p := cmem.Alloc(n + 1)
	b := cmem.Slice(p, n+1)
	copy(b, v)
	b[n] = term
	return &CString{buf: Buf{ptr: p, dtor: cmem.Free}, length: n}
}

// With runs fn with a terminated copy of v. The copy is only valid for
// the duration of the call.
func With[T BytesLike](v T, fn func(p unsafe.Pointer)) {
	WithLen(v, func(p unsafe.Pointer, _ int) {
		fn(p)
	})
}

// WithLen is With, passing the sequence length to fn as well.
func WithLen[T BytesLike](v T, fn func(p unsafe.Pointer, n int)) {
	if i := indexTerm(v); i >= 0 {
		panic(errno.NewError(errno.EmbeddedTerminator, i))
	}
	WithLenUnchecked(v, fn)
}

// WithUnchecked is With without the embedded terminator scan.
func WithUnchecked[T BytesLike](v T, fn func(p unsafe.Pointer)) {
	WithLenUnchecked(v, func(p unsafe.Pointer, _ int) {
		fn(p)
	})
}

// WithLenUnchecked runs fn with a terminated copy of v. Inputs shorter
// than inlineThreshold are served from a stack buffer and never touch
// the foreign allocator; longer inputs are allocated and released when
// fn returns, on panic included.
func WithLenUnchecked[T BytesLike](v T, fn func(p unsafe.Pointer, n int)) {
	n := len(v)
	if n < inlineThreshold {
		var buf [inlineThreshold]byte
		copy(buf[:], v)
		buf[n] = term
		fn(unsafe.Pointer(&buf[0]), n)
		return
	}

	s := NewUnchecked(v)
	defer s.Free()
	fn(s.Ptr(), n)
}

func indexTerm[T BytesLike](v T) int {
	for i := 0; i < len(v); i++ {
		if v[i] == term {
			return i
		}
	}
	return -1
}

func dupCString(p unsafe.Pointer, n int) *CString {
	q := cmem.Alloc(n + 1)
	copy(cmem.Slice(q, n+1), cmem.Slice(p, n+1))
	return &CString{buf: Buf{ptr: q, dtor: cmem.Free}, length: n}
}

// ToCString duplicates the sequence into fresh foreign memory. The
// source is already terminated, so no terminator scan is needed and
// the unchecked variant behaves identically.
func (b *Buf) ToCString() *CString {
	p := b.live()
	return dupCString(p, cmem.Strlen(p))
}

func (b *Buf) ToCStringUnchecked() *CString {
	return b.ToCString()
}

// With runs fn with the sequence's own memory, copying nothing.
func (b *Buf) With(fn func(p unsafe.Pointer)) {
	fn(b.live())
}

// WithLen is With, measuring the sequence and passing its length.
func (b *Buf) WithLen(fn func(p unsafe.Pointer, n int)) {
	p := b.live()
	fn(p, cmem.Strlen(p))
}

// ToCString duplicates the sequence into fresh foreign memory.
func (s *CString) ToCString() *CString {
	return dupCString(s.buf.live(), s.length)
}

func (s *CString) ToCStringUnchecked() *CString {
	return s.ToCString()
}

// With runs fn with the sequence's own memory, copying nothing.
func (s *CString) With(fn func(p unsafe.Pointer)) {
	fn(s.buf.live())
}

// WithLen is With, passing the cached length as well.
func (s *CString) WithLen(fn func(p unsafe.Pointer, n int)) {
	fn(s.buf.live(), s.length)
}

// ToCString duplicates the viewed sequence into fresh foreign memory,
// giving it a lifetime independent of the viewed buffer.
func (v View) ToCString() *CString {
	return dupCString(v.check(), v.length)
}

func (v View) ToCStringUnchecked() *CString {
	return v.ToCString()
}

// With runs fn with the viewed memory, copying nothing.
func (v View) With(fn func(p unsafe.Pointer)) {
	fn(v.check())
}

// WithLen is With, passing the view's length as well.
func (v View) WithLen(fn func(p unsafe.Pointer, n int)) {
	fn(v.check(), v.length)
}
