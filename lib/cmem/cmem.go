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

// Package cmem hands out memory that lives outside the Go object graph,
// the way a foreign allocator would. Every allocation is tracked in a
// registry keyed by its base address, which makes double frees and frees
// of unknown addresses detectable instead of undefined behavior.
package cmem

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/openGemini/cstr/lib/errno"
	"github.com/openGemini/cstr/lib/logger"
	"github.com/openGemini/cstr/lib/memory"
	"go.uber.org/zap"
)

const term byte = 0x00

var (
	mu      sync.Mutex
	regions = make(map[unsafe.Pointer][]byte)
	limit   int64
)

// abort handles unrecoverable allocator failures. It must not return.
var abort = func(err *errno.Error, fields ...zap.Field) {
	logger.NewLogger(errno.ModuleCMem).Fatal("foreign memory exhausted",
		append(fields, zap.Error(err))...)
}

// Alloc returns a pointer to size bytes of zeroed memory outside the Go
// heap. The pointer stays valid until Free. Alloc never returns nil:
// exhaustion ends the process.
func Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		panic(errno.NewError(errno.InvalidAllocSize, size))
	}

	mu.Lock()
	defer mu.Unlock()

	inUse := atomic.LoadInt64(&stats.InUseBytes)
	lim := atomic.LoadInt64(&limit)
	if lim > 0 && inUse+int64(size) > lim {
		abort(errno.NewError(errno.MemoryLimitExceeded, size, lim, inUse))
	}

	b, err := sysAlloc(size)
	if err != nil {
		_, free := memory.SysMem()
		abort(errno.NewError(errno.AllocFailed, size, err), zap.Int64("sys_free", free))
	}

	p := unsafe.Pointer(&b[0])
	regions[p] = b

	atomic.AddInt64(&stats.AllocCalls, 1)
	atomic.AddInt64(&stats.InUseBytes, int64(size))
	atomic.AddInt64(&stats.InUseObjects, 1)
	return p
}

// Free releases an allocation returned by Alloc. Freeing nil is a no-op.
// Freeing any other address twice, or an address this package never
// produced, panics.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}

	mu.Lock()
	b, ok := regions[p]
	if !ok {
		mu.Unlock()
		panic(errno.NewError(errno.InvalidFree, p))
	}
	delete(regions, p)
	mu.Unlock()

	if err := sysFree(b); err != nil {
		logger.NewLogger(errno.ModuleCMem).Warn("failed to release region",
			zap.Int("size", len(b)), zap.Error(err))
	}

	atomic.AddInt64(&stats.FreeCalls, 1)
	atomic.AddInt64(&stats.InUseBytes, -int64(len(b)))
	atomic.AddInt64(&stats.InUseObjects, -1)
}

// Owns reports whether p is the base address of a live allocation.
func Owns(p unsafe.Pointer) bool {
	mu.Lock()
	_, ok := regions[p]
	mu.Unlock()
	return ok
}

// SetLimit caps the total bytes of live allocations. Zero or a negative
// value removes the cap.
func SetLimit(n int64) {
	atomic.StoreInt64(&limit, n)
}

func Limit() int64 {
	return atomic.LoadInt64(&limit)
}

// Dup copies v into a fresh allocation followed by a terminator byte.
func Dup(v []byte) unsafe.Pointer {
	p := Alloc(len(v) + 1)
	b := Slice(p, len(v)+1)
	copy(b, v)
	b[len(v)] = term
	return p
}

// Strlen counts the bytes before the terminator. p must point to a
// terminated sequence.
func Strlen(p unsafe.Pointer) int {
	if p == nil {
		panic(errno.NewError(errno.NilPointer, "Strlen"))
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != term {
		n++
	}
	return n
}

// Strcmp compares two terminated sequences byte-wise as unsigned values.
func Strcmp(a, b unsafe.Pointer) int {
	if a == nil || b == nil {
		panic(errno.NewError(errno.NilPointer, "Strcmp"))
	}
	for i := 0; ; i++ {
		ca := *(*byte)(unsafe.Add(a, i))
		cb := *(*byte)(unsafe.Add(b, i))
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		if ca == term {
			return 0
		}
	}
}

// Slice aliases n bytes at p as a Go slice. The result shares memory with
// the allocation and must not outlive it.
func Slice(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

// String aliases n bytes at p as a Go string without copying. The result
// must not outlive the allocation.
func String(p unsafe.Pointer, n int) string {
	return unsafe.String((*byte)(p), n)
}

// GoBytes copies n bytes at p into a fresh Go slice.
func GoBytes(p unsafe.Pointer, n int) []byte {
	b := make([]byte, n)
	copy(b, Slice(p, n))
	return b
}

// ByteAt reads the byte at offset off from p.
func ByteAt(p unsafe.Pointer, off int) byte {
	return *(*byte)(unsafe.Add(p, off))
}

// Offset advances p by off bytes.
func Offset(p unsafe.Pointer, off int) unsafe.Pointer {
	return unsafe.Add(p, off)
}
