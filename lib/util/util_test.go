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

package util_test

import (
	"fmt"
	"testing"

	"github.com/influxdata/influxdb/toml"
	"github.com/openGemini/cstr/lib/util"
	"github.com/stretchr/testify/assert"
)

type closeObject struct {
	err error
}

func (o *closeObject) Close() error {
	return o.err
}

type String string

func (s String) Close() error {
	return fmt.Errorf("%s", s)
}

func TestMustClose(t *testing.T) {
	var o *closeObject
	util.MustClose(o)

	o = &closeObject{err: fmt.Errorf("some error")}
	util.MustClose(o)

	var s String
	util.MustClose(s)
}

func TestIsObjectNil(t *testing.T) {
	var o *closeObject
	assert.True(t, util.IsObjectNil(o))
	assert.False(t, util.IsObjectNil(&closeObject{}))

	var m map[string]int
	assert.True(t, util.IsObjectNil(m))
	assert.False(t, util.IsObjectNil(String("s")))
}

func TestCorrector(t *testing.T) {
	c := util.NewCorrector(0)

	n := 0
	c.Int(&n, 32)
	assert.Equal(t, 32, n)
	c.Int(&n, 64)
	assert.Equal(t, 32, n)

	s := ""
	c.String(&s, "info")
	assert.Equal(t, "info", s)

	var size toml.Size
	c.TomlSize(&size, 64*1024*1024)
	assert.Equal(t, toml.Size(64*1024*1024), size)
}
