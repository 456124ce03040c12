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
)

// Iter yields the bytes of a terminated sequence, excluding the
// terminator. It stays positioned at the terminator once exhausted, so
// Remaining on a drained iterator is an empty view.
type Iter struct {
	ptr unsafe.Pointer
}

// Next returns the next byte. The second result is false once the
// terminator is reached.
func (it *Iter) Next() (byte, bool) {
	if it.ptr == nil {
		return 0, false
	}
	c := cmem.ByteAt(it.ptr, 0)
	if c == term {
		return 0, false
	}
	it.ptr = cmem.Offset(it.ptr, 1)
	return c, true
}

// Remaining wraps the unconsumed tail of the sequence. The view shares
// memory with the iterated sequence.
func (it *Iter) Remaining() View {
	return Wrap(it.ptr)
}
