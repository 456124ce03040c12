/*
Copyright 2024 Huawei Cloud Computing Technologies Co., Ltd.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logger

import (
	"fmt"
	"sync"

	"github.com/openGemini/cstr/lib/errno"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger attaches an errno module to a zap logger. Errors carrying an
// *errno.Error in the "error" field are rewritten with an "errno" field
// and, for fatal level errors, the captured stack.
type Logger struct {
	logger *zap.Logger
	module errno.Module
}

var loggerPool sync.Map

func NewLogger(module errno.Module) *Logger {
	l, ok := loggerPool.Load(module)
	if ok {
		log, _ := l.(*Logger)
		return log
	}
	// ignore concurrent situation, repeat store same module logger
	log := &Logger{
		logger: GetLogger().WithOptions(zap.AddCallerSkip(1)),
		module: module,
	}
	loggerPool.Store(module, log)
	return log
}

// refreshLoggers rebinds pooled loggers after the global zap logger changes.
func refreshLoggers() {
	loggerPool.Range(func(_, v interface{}) bool {
		if lg, ok := v.(*Logger); ok {
			lg.logger = logger.WithOptions(zap.AddCallerSkip(1))
		}
		return true
	})
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		logger: l.logger.With(fields...),
		module: l.module,
	}
}

func (l *Logger) SetModule(m errno.Module) {
	l.module = m
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if !Alevel.Enabled(zapcore.DebugLevel) {
		return
	}
	l.logger.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, l.rewriteFields(fields)...)
}

func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, l.rewriteFields(fields)...)
}

func (l *Logger) GetZapLogger() *zap.Logger {
	return l.logger.WithOptions(zap.WithCaller(true))
}

func (l *Logger) SetZapLogger(lg *zap.Logger) *Logger {
	l.logger = lg.WithOptions(zap.WithCaller(false))
	return l
}

func (l *Logger) IsDebugLevel() bool {
	return Alevel.Enabled(zapcore.DebugLevel)
}

func (l *Logger) rewriteFields(fields []zap.Field) []zap.Field {
	size := len(fields)
	for i := 0; i < size; i++ {
		if fields[i].Key != "error" {
			continue
		}

		tmp, ok := fields[i].Interface.(*errno.Error)
		if !ok || tmp == nil {
			continue
		}

		fields = append(fields, zap.String("errno", l.makeErrno(tmp)))
		if tmp.Level().LogStack() {
			fields = append(fields, zap.String("stack", string(tmp.Stack())))
		}
		return fields
	}

	return fields
}

func (l *Logger) makeErrno(err *errno.Error) string {
	level := err.Level() % (errno.LevelFatal + 1)
	module := err.Module()
	if module == errno.ModuleUnknown {
		module = l.module
	}

	return fmt.Sprintf("%02d%d%04d", module, level, err.Errno())
}
