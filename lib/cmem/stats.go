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

package cmem

import "sync/atomic"

// Stats counts allocator activity. InUseBytes and InUseObjects describe
// live allocations, the call counters only grow.
type Stats struct {
	AllocCalls   int64
	FreeCalls    int64
	InUseBytes   int64
	InUseObjects int64
}

var stats Stats

// ReadStats fills dst with a consistent-enough snapshot of the counters.
func ReadStats(dst *Stats) {
	dst.AllocCalls = atomic.LoadInt64(&stats.AllocCalls)
	dst.FreeCalls = atomic.LoadInt64(&stats.FreeCalls)
	dst.InUseBytes = atomic.LoadInt64(&stats.InUseBytes)
	dst.InUseObjects = atomic.LoadInt64(&stats.InUseObjects)
}
