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

// WalkMultiString walks a packed sequence of terminated strings ending
// with an empty one, the layout foreign environment blocks use, and
// calls fn with a view of each segment. The views share memory with the
// walked sequence. A negative limit walks to the final empty segment;
// otherwise the walk stops after limit segments. It returns the number
// of segments visited.
func WalkMultiString(p unsafe.Pointer, limit int, fn func(v View)) int {
	requireNonNil(p, "WalkMultiString")
	count := 0
	cur := p
	for limit < 0 || count < limit {
		if cmem.ByteAt(cur, 0) == term {
			break
		}
		n := cmem.Strlen(cur)
		fn(View{ptr: cur, length: n})
		cur = cmem.Offset(cur, n+1)
		count++
	}
	return count
}

// MultiString collects the segments of a packed multi-string into
// independent Go strings, invalid UTF-8 rendered with the replacement
// rune.
func MultiString(p unsafe.Pointer, limit int) []string {
	var out []string
	WalkMultiString(p, limit, func(v View) {
		out = append(out, v.String())
	})
	return out
}
