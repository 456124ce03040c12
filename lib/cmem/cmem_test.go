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

package cmem_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func assertPanicErrno(t *testing.T, code errno.Errno, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		require.True(t, errno.Equal(err, code), "unexpected error: %v", err)
	}()
	fn()
}

func TestAllocFree(t *testing.T) {
	p := cmem.Alloc(32)
	require.NotNil(t, p)
	require.True(t, cmem.Owns(p))

	b := cmem.Slice(p, 32)
	for i := range b {
		assert.Equal(t, byte(0), b[i])
	}
	b[0] = 'x'
	assert.Equal(t, byte('x'), cmem.ByteAt(p, 0))

	cmem.Free(p)
	assert.False(t, cmem.Owns(p))
}

func TestAllocInvalidSize(t *testing.T) {
	assertPanicErrno(t, errno.InvalidAllocSize, func() {
		cmem.Alloc(0)
	})
	assertPanicErrno(t, errno.InvalidAllocSize, func() {
		cmem.Alloc(-5)
	})
}

func TestFreeNil(t *testing.T) {
	cmem.Free(nil)
}

func TestDoubleFree(t *testing.T) {
	p := cmem.Alloc(8)
	cmem.Free(p)
	assertPanicErrno(t, errno.InvalidFree, func() {
		cmem.Free(p)
	})
}

func TestFreeForeignPointer(t *testing.T) {
	var local [8]byte
	assertPanicErrno(t, errno.InvalidFree, func() {
		cmem.Free(unsafe.Pointer(&local[0]))
	})
}

func TestDup(t *testing.T) {
	p := cmem.Dup([]byte("hello"))
	defer cmem.Free(p)

	assert.Equal(t, 5, cmem.Strlen(p))
	assert.Equal(t, byte(0), cmem.ByteAt(p, 5))
	assert.Equal(t, "hello", string(cmem.GoBytes(p, 5)))

	empty := cmem.Dup(nil)
	defer cmem.Free(empty)
	assert.Equal(t, 0, cmem.Strlen(empty))
}

func TestStrcmp(t *testing.T) {
	items := []struct {
		a, b string
		exp  int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"abc", "ab", 1},
		{"", "a", -1},
	}

	for _, item := range items {
		a := cmem.Dup([]byte(item.a))
		b := cmem.Dup([]byte(item.b))
		assert.Equal(t, item.exp, cmem.Strcmp(a, b), "%q vs %q", item.a, item.b)
		cmem.Free(a)
		cmem.Free(b)
	}
}

func TestStrlenNil(t *testing.T) {
	assertPanicErrno(t, errno.NilPointer, func() {
		cmem.Strlen(nil)
	})
	assertPanicErrno(t, errno.NilPointer, func() {
		cmem.Strcmp(nil, nil)
	})
}

func TestAliasAndCopy(t *testing.T) {
	p := cmem.Dup([]byte("gemini"))
	defer cmem.Free(p)

	snapshot := cmem.GoBytes(p, 6)
	alias := cmem.Slice(p, 6)
	s := cmem.String(p, 6)

	alias[0] = 'G'
	assert.Equal(t, "Gemini", s, "string view must alias the allocation")
	assert.Equal(t, "gemini", string(snapshot), "copy must not alias the allocation")
}

func TestOffset(t *testing.T) {
	p := cmem.Dup([]byte("abc"))
	defer cmem.Free(p)

	q := cmem.Offset(p, 1)
	assert.Equal(t, byte('b'), cmem.ByteAt(q, 0))
	assert.Equal(t, 2, cmem.Strlen(q))
}

func TestLimit(t *testing.T) {
	restore := cmem.SetAbortHook(func(err *errno.Error, _ ...zap.Field) {
		panic(err)
	})
	defer restore()

	var before cmem.Stats
	cmem.ReadStats(&before)

	cmem.SetLimit(before.InUseBytes + 16)
	defer cmem.SetLimit(0)
	assert.Equal(t, before.InUseBytes+16, cmem.Limit())

	p := cmem.Alloc(8)
	defer cmem.Free(p)

	assertPanicErrno(t, errno.MemoryLimitExceeded, func() {
		cmem.Alloc(1024)
	})
}

func TestStats(t *testing.T) {
	var before, after cmem.Stats
	cmem.ReadStats(&before)

	p1 := cmem.Alloc(100)
	p2 := cmem.Alloc(20)
	cmem.Free(p1)

	cmem.ReadStats(&after)
	assert.Equal(t, before.AllocCalls+2, after.AllocCalls)
	assert.Equal(t, before.FreeCalls+1, after.FreeCalls)
	assert.Equal(t, before.InUseObjects+1, after.InUseObjects)
	assert.Equal(t, before.InUseBytes+20, after.InUseBytes)

	cmem.Free(p2)
	cmem.ReadStats(&after)
	assert.Equal(t, before.InUseBytes, after.InUseBytes)
	assert.Equal(t, before.InUseObjects, after.InUseObjects)
}

func TestConcurrentAllocFree(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				p := cmem.Dup([]byte("payload"))
				assert.Equal(t, 7, cmem.Strlen(p))
				cmem.Free(p)
			}
		}()
	}
	wg.Wait()
}
