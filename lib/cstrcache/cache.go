// Copyright 2025 Huawei Cloud Computing Technologies Co., Ltd.
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

// Package cstrcache interns Go strings as terminated sequences, so the
// strings crossing the boundary over and over reuse one foreign
// allocation instead of being copied on every call.
package cstrcache

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/openGemini/cstr/lib/cstr"
	"github.com/openGemini/cstr/lib/errno"
)

// Cache keeps the most recently interned strings, bounded by capacity.
// Evicted entries release their foreign memory.
type Cache struct {
	// mu serializes get-or-create, so two goroutines interning the same
	// string never allocate twice. Replacing a live entry through
	// lru.Add would leak it: the eviction callback does not run for
	// overwrites.
	mu     sync.Mutex
	lru    *lru.Cache[string, *cstr.CString]
	hits   int64
	misses int64
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits   int64
	Misses int64
	Len    int
}

// NewCache builds a cache holding at most capacity interned strings.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, errno.NewError(errno.InvalidCacheCapacity, capacity)
	}

	c, err := lru.NewWithEvict[string, *cstr.CString](capacity, onEvict)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build lru with capacity %d", capacity)
	}
	return &Cache{lru: c}, nil
}

func onEvict(_ string, v *cstr.CString) {
	v.Free()
}

// Get returns a view of the interned sequence for s, creating it on
// first use. The view shares memory with the cache entry; it dangles
// once the entry is evicted or the cache purged. Like cstr.New, Get
// panics if s contains a terminator byte.
func (c *Cache) Get(s string) cstr.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(s); ok {
		atomic.AddInt64(&c.hits, 1)
		return v.Borrow()
	}

	atomic.AddInt64(&c.misses, 1)
	v := cstr.New(s)
	c.lru.Add(s, v)
	return v.Borrow()
}

// Contains reports whether s is interned, without refreshing its
// recency.
func (c *Cache) Contains(s string) bool {
	return c.lru.Contains(s)
}

// Len returns the number of interned strings.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Remove drops s from the cache and releases its foreign memory.
func (c *Cache) Remove(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Remove(s)
}

// Purge releases every interned sequence. Outstanding views into the
// cache dangle after this call.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Close purges the cache. It satisfies io.Closer so a cache can sit
// behind util.MustClose.
func (c *Cache) Close() error {
	c.Purge()
	return nil
}

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Len:    c.lru.Len(),
	}
}
