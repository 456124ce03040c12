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

package memory

import (
	"bytes"
	"os"
	"sync"
	"time"
)

// fallback when /proc/meminfo is unavailable
const maxMemUse = 64 * 1024 * 1024 * 1024

const memInfoPath = "/proc/meminfo"

var lastGetTime time.Time
var sysMemTotal, sysMemFree int64
var readMemMu sync.Mutex

func init() {
	sysMemTotal, sysMemFree = ReadSysMemory()
	lastGetTime = time.Now()
}

// ReadSysMemory returns the total and available system memory in bytes.
// Both values fall back to maxMemUse on hosts without /proc/meminfo.
func ReadSysMemory() (int64, int64) {
	buf := readSysMemInfo()
	if len(buf) == 0 {
		return maxMemUse, maxMemUse
	}
	/*
		output like:
		MemTotal:       32505856 kB
		MemFree:        28917428 kB
		MemAvailable:   29288348 kB
	*/

	total := memInfoField(buf, []byte("MemTotal:"))
	free := memInfoField(buf, []byte("MemAvailable:"))
	if total <= 0 || free <= 0 {
		return maxMemUse, maxMemUse
	}

	return total * 1024, free * 1024
}

// SysMem caches the last probe for 100ms to keep hot paths cheap.
func SysMem() (total, free int64) {
	t := time.Now()
	readMemMu.Lock()
	defer readMemMu.Unlock()
	if t.Sub(lastGetTime) < 100*time.Millisecond {
		total, free = sysMemTotal, sysMemFree
		return
	}
	total, free = ReadSysMemory()
	if total <= 0 || free <= 0 {
		total, free = sysMemTotal, sysMemFree
		return
	}
	lastGetTime = t
	sysMemTotal = total
	sysMemFree = free
	return
}

func readSysMemInfo() []byte {
	buf, err := os.ReadFile(memInfoPath)
	if err != nil {
		return nil
	}
	return buf
}

func memInfoField(buf []byte, key []byte) int64 {
	start := bytes.Index(buf, key)
	if start < 0 {
		return 0
	}
	v := buf[start+len(key):]
	end := bytes.Index(v, []byte("kB"))
	if end < 0 {
		return 0
	}
	return bytes2Int(bytes.TrimSpace(v[:end]))
}

func bytes2Int(b []byte) int64 {
	var v int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + int64(c-'0')
	}
	return v
}
