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

package config

import (
	"errors"

	itoml "github.com/influxdata/influxdb/toml"
	"github.com/openGemini/cstr/lib/memory"
	"github.com/openGemini/cstr/lib/util"
)

const (
	AppName = "cstr"

	// DefaultCacheCapacity is the number of interned strings kept
	// before the least recently used one is released
	DefaultCacheCapacity = 256

	MB = 1024 * 1024
	GB = 1024 * MB

	minMemoryLimit = 16 * MB
	maxMemoryLimit = 16 * GB
)

// Tuning is the top level configuration of the library.
type Tuning struct {
	Memory  Memory `toml:"memory"`
	Cache   Cache  `toml:"cache"`
	Logging Logger `toml:"logging"`
}

func NewTuning() *Tuning {
	return &Tuning{
		Memory:  NewMemory(),
		Cache:   NewCache(),
		Logging: NewLogger(AppName),
	}
}

// ApplyEnvOverrides apply the environment configuration on top of the config.
func (c *Tuning) ApplyEnvOverrides(fn func(string) string) error {
	return itoml.ApplyEnvOverrides(fn, EnvPrefix, c)
}

// Validate returns an error if the config is invalid.
func (c *Tuning) Validate() error {
	items := []Validator{
		c.Memory,
		c.Cache,
		c.Logging,
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Tuning) Corrector() {
	corrector := util.NewCorrector(0)
	corrector.Int(&c.Cache.Capacity, DefaultCacheCapacity)

	if c.Memory.Limit == 0 && c.Memory.LimitPct > 0 {
		total, _ := memory.SysMem()
		share := uint64(total) * uint64(c.Memory.LimitPct) / 100
		c.Memory.Limit = itoml.Size(uint64Limit(minMemoryLimit, maxMemoryLimit, share))
	}
}

func uint64Limit(min, max, v uint64) uint64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (c *Tuning) GetLogging() *Logger {
	return &c.Logging
}

// Memory bounds how much foreign memory the allocator may hand out.
type Memory struct {
	// Limit is the upper bound of live foreign allocations in bytes.
	// Zero means unlimited, unless LimitPct derives a bound.
	Limit itoml.Size `toml:"limit"`

	// LimitPct is the share of system memory the corrector assigns to
	// Limit when Limit is zero. Zero disables the derivation.
	LimitPct int `toml:"limit-pct"`
}

func NewMemory() Memory {
	return Memory{}
}

func (c Memory) Validate() error {
	if c.LimitPct < 0 || c.LimitPct > 100 {
		return errors.New("memory limit-pct must be between 0 and 100")
	}
	return nil
}

// Cache configures the interning cache for converted strings.
type Cache struct {
	Enabled  bool `toml:"enabled"`
	Capacity int  `toml:"capacity"`
}

func NewCache() Cache {
	return Cache{
		Enabled:  false,
		Capacity: DefaultCacheCapacity,
	}
}

func (c Cache) Validate() error {
	if c.Enabled && c.Capacity <= 0 {
		return errors.New("cache capacity must be positive")
	}
	return nil
}
