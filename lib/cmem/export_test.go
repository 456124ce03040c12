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

import (
	"github.com/openGemini/cstr/lib/errno"
	"go.uber.org/zap"
)

// SetAbortHook replaces the process-fatal handler during tests.
// The hook must not return normally.
func SetAbortHook(fn func(*errno.Error, ...zap.Field)) (restore func()) {
	old := abort
	abort = fn
	return func() {
		abort = old
	}
}
