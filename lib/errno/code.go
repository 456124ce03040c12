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

package errno

// string buffer error codes
const (
	NilPointer         = 1101
	MissingTerminator  = 1102
	EmbeddedTerminator = 1103
	BufferReleased     = 1104
	InvalidLength      = 1105
)

// foreign memory error codes
const (
	InvalidAllocSize    = 1201
	InvalidFree         = 1202
	AllocFailed         = 1203
	MemoryLimitExceeded = 1204
)

// cache error codes
const (
	InvalidCacheCapacity = 1301
)

// common error codes
const (
	InternalError = 9001
	RecoverPanic  = 9003

	// BuiltInError errors returned by built-in functions
	BuiltInError = 9007

	// ThirdPartyError errors returned by third-party packages
	ThirdPartyError = 9008
)
