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

package config_test

import (
	"os"
	"testing"

	itoml "github.com/influxdata/influxdb/toml"
	"github.com/openGemini/cstr/lib/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestTuning_Parse(t *testing.T) {
	txt := `
[memory]
  limit = "64m"
[cache]
  enabled = true
  capacity = 128
[logging]
  level = "debug"
`
	configFile := t.TempDir() + "/cstr.conf"
	_ = os.WriteFile(configFile, []byte(txt), 0600)

	conf := config.NewTuning()

	err := config.Parse(conf, configFile)
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, itoml.Size(64*1024*1024), conf.Memory.Limit)
	assert.Equal(t, true, conf.Cache.Enabled)
	assert.Equal(t, 128, conf.Cache.Capacity)
	assert.Equal(t, zapcore.DebugLevel, conf.Logging.Level)
	assert.NoError(t, conf.Validate())
}

func TestTuning_ParseBOM(t *testing.T) {
	txt := "\xef\xbb\xbf[cache]\n  capacity = 64\n"
	configFile := t.TempDir() + "/cstr.conf"
	_ = os.WriteFile(configFile, []byte(txt), 0600)

	conf := config.NewTuning()
	assert.NoError(t, config.Parse(conf, configFile))
	assert.Equal(t, 64, conf.Cache.Capacity)
}

func TestTuning_ParseMissingFile(t *testing.T) {
	conf := config.NewTuning()
	assert.NoError(t, config.Parse(conf, ""))
	assert.Error(t, config.Parse(conf, "/not/exist/cstr.conf"))
}

func TestTuning_Validate(t *testing.T) {
	conf := config.NewTuning()
	assert.NoError(t, conf.Validate())

	conf.Cache.Enabled = true
	conf.Cache.Capacity = 0
	assert.EqualError(t, conf.Validate(), "cache capacity must be positive")

	conf = config.NewTuning()
	conf.Logging.Path = t.TempDir()
	conf.Logging.MaxNum = 0
	assert.EqualError(t, conf.Validate(), "logger max-num must be positive")
}

func TestTuning_Corrector(t *testing.T) {
	conf := config.NewTuning()
	conf.Cache.Capacity = 0
	conf.Corrector()
	assert.Equal(t, config.DefaultCacheCapacity, conf.Cache.Capacity)
}

func TestTuning_CorrectorMemoryShare(t *testing.T) {
	conf := config.NewTuning()
	conf.Memory.LimitPct = 200
	assert.EqualError(t, conf.Validate(), "memory limit-pct must be between 0 and 100")

	conf.Memory.LimitPct = 25
	assert.NoError(t, conf.Validate())
	conf.Corrector()
	assert.GreaterOrEqual(t, int64(conf.Memory.Limit), int64(16*config.MB))
	assert.LessOrEqual(t, int64(conf.Memory.Limit), int64(16*config.GB))

	// an explicit limit is never overridden
	conf = config.NewTuning()
	conf.Memory.Limit = 1024
	conf.Memory.LimitPct = 25
	conf.Corrector()
	assert.Equal(t, itoml.Size(1024), conf.Memory.Limit)
}

func TestTuning_ApplyEnvOverrides(t *testing.T) {
	conf := config.NewTuning()

	env := map[string]string{
		"CSTR_CACHE_CAPACITY": "512",
		"CSTR_MEMORY_LIMIT":   "1024",
	}
	err := conf.ApplyEnvOverrides(func(key string) string {
		return env[key]
	})
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, 512, conf.Cache.Capacity)
	assert.Equal(t, itoml.Size(1024), conf.Memory.Limit)
}

func TestLogger(t *testing.T) {
	lg := config.NewLogger(config.AppName)
	assert.NoError(t, lg.Validate())
	assert.Equal(t, config.AppName, lg.GetApp())

	lg.SetApp("cstr-cli")
	assert.Equal(t, "cstr-cli", lg.GetApp())

	lg.Path = t.TempDir()
	jack := lg.NewLumberjackLogger(lg.GetApp())
	assert.Equal(t, lg.MaxAge, jack.MaxAge)
	assert.Equal(t, 64, jack.MaxSize)
}
