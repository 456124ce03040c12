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

// View reads a terminated sequence it does not own. Views are plain
// values, cheap to copy and pass around, and must not outlive the
// memory they point into.
type View struct {
	ptr    unsafe.Pointer
	length int
}

// Wrap measures the sequence at p and returns a view of it.
func Wrap(p unsafe.Pointer) View {
	requireNonNil(p, "Wrap")
	return View{ptr: p, length: cmem.Strlen(p)}
}

// WrapLen returns a view of p, declared to hold length bytes before the
// terminator, skipping the scan Wrap performs.
func WrapLen(p unsafe.Pointer, length int) View {
	requireNonNil(p, "WrapLen")
	if length < 0 {
		panic(errno.NewError(errno.InvalidLength, length))
	}
	if cmem.ByteAt(p, length) != term {
		panic(errno.NewError(errno.MissingTerminator, length))
	}
	return View{ptr: p, length: length}
}

func (v View) check() unsafe.Pointer {
	if v.ptr == nil {
		panic(errno.NewError(errno.NilPointer, "View"))
	}
	return v.ptr
}

// Ptr returns the base address. Ownership is not transferred.
func (v View) Ptr() unsafe.Pointer {
	return v.ptr
}

// Len returns the number of bytes before the terminator.
func (v View) Len() int {
	return v.length
}

func (v View) IsEmpty() bool {
	return v.length == 0
}

// Bytes aliases the sequence including the terminator.
func (v View) Bytes() []byte {
	return cmem.Slice(v.check(), v.length+1)
}

// BytesNoTerm aliases the sequence without the terminator.
func (v View) BytesNoTerm() []byte {
	return cmem.Slice(v.check(), v.length)
}

// AsString aliases the sequence as a Go string without copying. The
// second result is false if the bytes are not valid UTF-8.
func (v View) AsString() (string, bool) {
	s := cmem.String(v.check(), v.length)
	if !utf8.ValidString(s) {
		return "", false
	}
	return s, true
}

// String renders the sequence for diagnostics, replacing invalid UTF-8
// with the replacement rune. The result is an independent copy.
func (v View) String() string {
	return strings.ToValidUTF8(string(v.BytesNoTerm()), "�")
}

// GoBytes copies the sequence, terminator excluded, into a Go slice.
func (v View) GoBytes() []byte {
	return cmem.GoBytes(v.check(), v.length)
}

// Iter returns a byte iterator positioned at the first byte.
func (v View) Iter() *Iter {
	return &Iter{ptr: v.check()}
}

func (v View) Equal(o View) bool {
	return v.length == o.length && bytes.Equal(v.BytesNoTerm(), o.BytesNoTerm())
}

// Compare orders two sequences byte-wise as unsigned values.
func (v View) Compare(o View) int {
	return bytes.Compare(v.BytesNoTerm(), o.BytesNoTerm())
}
