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

type Message struct {
	format string
	level  Level
	module Module
}

func newMessage(format string, module Module, level Level) *Message {
	return &Message{
		format: format,
		level:  level,
		module: module,
	}
}

func newNoticeMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelNotice)
}

func newWarnMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelWarn)
}

func newFatalMessage(format string, module Module) *Message {
	return newMessage(format, module, LevelFatal)
}

var unknownMessage = newNoticeMessage("unknown error", ModuleUnknown)

// When an error message is initialized, the level and module corresponding to the error code are bound
// If the module to which the error code belongs cannot be determined during initialization, set to ModuleUnknown
// Can set module when recording logs
var messageMap = map[Errno]*Message{
	// common error codes
	InternalError: newWarnMessage("%v", ModuleUnknown),
	RecoverPanic:  newFatalMessage("runtime panic: %v", ModuleUnknown),

	// string buffer error codes
	NilPointer:         newFatalMessage("nil pointer passed to %s", ModuleCStr),
	MissingTerminator:  newFatalMessage("declared length %d does not index a terminator", ModuleCStr),
	EmbeddedTerminator: newFatalMessage("interior terminator byte at offset %d", ModuleCStr),
	BufferReleased:     newFatalMessage("use of released buffer", ModuleCStr),
	InvalidLength:      newFatalMessage("negative length %d", ModuleCStr),

	// foreign memory error codes
	InvalidAllocSize:    newFatalMessage("allocation size must be positive, got %d", ModuleCMem),
	InvalidFree:         newFatalMessage("free of unknown or already freed address %v", ModuleCMem),
	AllocFailed:         newFatalMessage("failed to allocate %d bytes: %v", ModuleCMem),
	MemoryLimitExceeded: newFatalMessage("allocating %d bytes exceeds the limit of %d, %d in use", ModuleCMem),

	// cache error codes
	InvalidCacheCapacity: newWarnMessage("cache capacity must be positive, got %d", ModuleCache),
}
