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

// Package cstr wraps terminator-delimited byte sequences exchanged with
// foreign code. Buf adopts a sequence of unknown length, CString adds a
// cached length, and View borrows without taking ownership. All three
// expose the same read surface; the owning types release their memory
// through Free exactly once and panic on any use after that.
package cstr

import (
	"unicode/utf8"
	"unsafe"

	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/errno"
)

// term delimits every sequence handled by this package.
const term byte = 0x00

// Buf owns a terminated sequence of unknown length. The zero value is
// released; adopt a pointer with one of the constructors.
type Buf struct {
	ptr  unsafe.Pointer
	dtor func(unsafe.Pointer)
}

// NewBufUnowned adopts p without taking ownership. Free releases nothing.
func NewBufUnowned(p unsafe.Pointer) *Buf {
	requireNonNil(p, "NewBufUnowned")
	return &Buf{ptr: p}
}

// NewBufOwned adopts p as an allocation of the cmem allocator. Free
// returns it there.
func NewBufOwned(p unsafe.Pointer) *Buf {
	requireNonNil(p, "NewBufOwned")
	return &Buf{ptr: p, dtor: cmem.Free}
}

// NewBufWithDtor adopts p and releases it through dtor. A nil dtor
// behaves like NewBufUnowned.
func NewBufWithDtor(p unsafe.Pointer, dtor func(unsafe.Pointer)) *Buf {
	requireNonNil(p, "NewBufWithDtor")
	return &Buf{ptr: p, dtor: dtor}
}

func requireNonNil(p unsafe.Pointer, who string) {
	if p == nil {
		panic(errno.NewError(errno.NilPointer, who))
	}
}

func (b *Buf) live() unsafe.Pointer {
	if b.ptr == nil {
		panic(errno.NewError(errno.BufferReleased))
	}
	return b.ptr
}

// Ptr returns the base address for handing to foreign code. Ownership
// stays with b.
func (b *Buf) Ptr() unsafe.Pointer {
	return b.live()
}

// Unwrap returns the base address and gives up ownership: the caller
// becomes responsible for releasing the memory, and b is released.
func (b *Buf) Unwrap() unsafe.Pointer {
	p := b.live()
	b.ptr, b.dtor = nil, nil
	return p
}

// IntoCString measures the sequence once and converts b into a CString
// carrying the same memory and release duty. b is released.
func (b *Buf) IntoCString() *CString {
	p := b.live()
	n := cmem.Strlen(p)
	s := &CString{buf: Buf{ptr: p, dtor: b.dtor}, length: n}
	b.ptr, b.dtor = nil, nil
	return s
}

// Free releases the sequence. Calling Free again is a no-op; any other
// use of b after Free panics.
func (b *Buf) Free() {
	if b.ptr == nil {
		return
	}
	p, dtor := b.ptr, b.dtor
	b.ptr, b.dtor = nil, nil
	if dtor != nil {
		dtor(p)
	}
}

// Borrow measures the sequence and returns a non-owning view of it.
// The view must not outlive b.
func (b *Buf) Borrow() View {
	p := b.live()
	return View{ptr: p, length: cmem.Strlen(p)}
}

// GoString copies the sequence into a Go string. The second result is
// false if the bytes are not valid UTF-8.
func (b *Buf) GoString() (string, bool) {
	p := b.live()
	n := cmem.Strlen(p)
	v := cmem.Slice(p, n)
	if !utf8.Valid(v) {
		return "", false
	}
	return string(v), true
}

// GoBytes copies the sequence, terminator excluded, into a Go slice.
func (b *Buf) GoBytes() []byte {
	p := b.live()
	return cmem.GoBytes(p, cmem.Strlen(p))
}

// IsEmpty reports whether the sequence starts with the terminator.
func (b *Buf) IsEmpty() bool {
	return cmem.ByteAt(b.live(), 0) == term
}

// Iter returns a byte iterator positioned at the first byte.
func (b *Buf) Iter() *Iter {
	return &Iter{ptr: b.live()}
}

// Compare orders two sequences byte-wise as unsigned values.
func (b *Buf) Compare(o *Buf) int {
	return cmem.Strcmp(b.live(), o.live())
}

func (b *Buf) Equal(o *Buf) bool {
	return b.Compare(o) == 0
}
