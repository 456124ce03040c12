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

package memory_test

import (
	"testing"

	"github.com/openGemini/cstr/lib/memory"
)

// go test -bench=BenchmarkSysMem -benchtime=5s
func BenchmarkSysMem(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		memory.SysMem()
	}
}
