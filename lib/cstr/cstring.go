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
	"bytes"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/errno"
)

// CString owns a terminated sequence whose length is known up front,
// so length dependent reads never rescan the memory.
type CString struct {
	buf    Buf
	length int
}

// NewCStringUnowned adopts p, declared to hold length bytes before the
// terminator, without taking ownership.
func NewCStringUnowned(p unsafe.Pointer, length int) *CString {
	return newCString(p, length, nil, "NewCStringUnowned")
}

// NewCStringOwned adopts p as an allocation of the cmem allocator.
func NewCStringOwned(p unsafe.Pointer, length int) *CString {
	return newCString(p, length, cmem.Free, "NewCStringOwned")
}

// NewCStringWithDtor adopts p and releases it through dtor.
func NewCStringWithDtor(p unsafe.Pointer, length int, dtor func(unsafe.Pointer)) *CString {
	return newCString(p, length, dtor, "NewCStringWithDtor")
}

func newCString(p unsafe.Pointer, length int, dtor func(unsafe.Pointer), who string) *CString {
	requireNonNil(p, who)
	if length < 0 {
		panic(errno.NewError(errno.InvalidLength, length))
	}
	if cmem.ByteAt(p, length) != term {
		panic(errno.NewError(errno.MissingTerminator, length))
	}
	return &CString{buf: Buf{ptr: p, dtor: dtor}, length: length}
}

// Len returns the number of bytes before the terminator.
func (s *CString) Len() int {
	s.buf.live()
	return s.length
}

func (s *CString) IsEmpty() bool {
	return s.Len() == 0
}

// Ptr returns the base address for handing to foreign code. Ownership
// stays with s.
func (s *CString) Ptr() unsafe.Pointer {
	return s.buf.live()
}

// Unwrap returns the base address and gives up ownership. s is released.
func (s *CString) Unwrap() unsafe.Pointer {
	return s.buf.Unwrap()
}

// Free releases the sequence. Calling Free again is a no-op; any other
// use of s after Free panics.
func (s *CString) Free() {
	s.buf.Free()
}

// Borrow returns a non-owning view without rescanning the memory.
// The view must not outlive s.
func (s *CString) Borrow() View {
	return View{ptr: s.buf.live(), length: s.length}
}

// Bytes aliases the sequence including the terminator. The slice shares
// memory with s and must not outlive it.
func (s *CString) Bytes() []byte {
	return cmem.Slice(s.buf.live(), s.length+1)
}

// BytesNoTerm aliases the sequence without the terminator.
func (s *CString) BytesNoTerm() []byte {
	return cmem.Slice(s.buf.live(), s.length)
}

// AsString aliases the sequence as a Go string without copying. The
// second result is false if the bytes are not valid UTF-8. The string
// must not outlive s.
func (s *CString) AsString() (string, bool) {
	v := cmem.String(s.buf.live(), s.length)
	if !utf8.ValidString(v) {
		return "", false
	}
	return v, true
}

// String renders the sequence for diagnostics, replacing invalid UTF-8
// with the replacement rune. The result is an independent copy.
func (s *CString) String() string {
	return strings.ToValidUTF8(string(s.BytesNoTerm()), "�")
}

// GoBytes copies the sequence, terminator excluded, into a Go slice.
func (s *CString) GoBytes() []byte {
	return cmem.GoBytes(s.buf.live(), s.length)
}

// Iter returns a byte iterator positioned at the first byte.
func (s *CString) Iter() *Iter {
	return &Iter{ptr: s.buf.live()}
}

func (s *CString) Equal(o *CString) bool {
	return s.Len() == o.Len() && bytes.Equal(s.BytesNoTerm(), o.BytesNoTerm())
}

// Compare orders two sequences byte-wise as unsigned values.
func (s *CString) Compare(o *CString) int {
	return bytes.Compare(s.BytesNoTerm(), o.BytesNoTerm())
}
