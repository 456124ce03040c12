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

package cstr_test

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/openGemini/cstr/lib/cstr"
)

var (
	benchShort = "tsdb/data/db0/rp0/1_1567123200000000000"
	benchLong  = strings.Repeat("segment/", 64)
)

// go test -bench=BenchmarkNew -benchtime=5s
func BenchmarkNewShort(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := cstr.New(benchShort)
		s.Free()
	}
}

func BenchmarkNewLong(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := cstr.New(benchLong)
		s.Free()
	}
}

func BenchmarkNewUncheckedShort(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := cstr.NewUnchecked(benchShort)
		s.Free()
	}
}

// go test -bench=BenchmarkWith -benchtime=5s
func BenchmarkWithShort(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cstr.With(benchShort, func(unsafe.Pointer) {})
	}
}

func BenchmarkWithLong(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cstr.With(benchLong, func(unsafe.Pointer) {})
	}
}

func BenchmarkWithUncheckedShort(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cstr.WithUnchecked(benchShort, func(unsafe.Pointer) {})
	}
}

func BenchmarkWithLenLong(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cstr.WithLen(benchLong, func(unsafe.Pointer, int) {})
	}
}

func BenchmarkIter(b *testing.B) {
	s := cstr.New(benchLong)
	defer s.Free()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := s.Iter()
		for {
			if _, ok := it.Next(); !ok {
				break
			}
		}
	}
}

func BenchmarkWalkMultiString(b *testing.B) {
	packed := cstr.NewUnchecked("env=prod\x00region=cn-north\x00zone=az1\x00")
	defer packed.Free()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cstr.WalkMultiString(packed.Ptr(), -1, func(cstr.View) {})
	}
}
