//go:build windows
// +build windows

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

// sysAlloc falls back to Go heap memory. The registry keeps the slice
// reachable and the Go runtime does not move heap objects, so the base
// address is stable until Free drops the reference.
func sysAlloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func sysFree(b []byte) error {
	return nil
}
