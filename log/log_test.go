//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package log

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingLogger captures formatted log lines per level.
type recordingLogger struct {
	lines map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{lines: make(map[string][]string)}
}

func (l *recordingLogger) record(level string, args ...any) {
	l.lines[level] = append(l.lines[level], fmt.Sprint(args...))
}

func (l *recordingLogger) Debug(args ...any) { l.record(LevelDebug, args...) }
func (l *recordingLogger) Debugf(format string, args ...any) {
	l.record(LevelDebug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(args ...any) { l.record(LevelInfo, args...) }
func (l *recordingLogger) Infof(format string, args ...any) {
	l.record(LevelInfo, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warn(args ...any) { l.record(LevelWarn, args...) }
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.record(LevelWarn, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Error(args ...any) { l.record(LevelError, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.record(LevelError, fmt.Sprintf(format, args...))
}

func TestPackageHelpersDelegateToDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	rec := newRecordingLogger()
	Default = rec

	Debug("d")
	Debugf("d%d", 1)
	Info("i")
	Infof("i%d", 2)
	Warn("w")
	Warnf("w%d", 3)
	Error("e")
	Errorf("e%d", 4)

	assert.Equal(t, []string{"d", "d1"}, rec.lines[LevelDebug])
	assert.Equal(t, []string{"i", "i2"}, rec.lines[LevelInfo])
	assert.Equal(t, []string{"w", "w3"}, rec.lines[LevelWarn])
	assert.Equal(t, []string{"e", "e4"}, rec.lines[LevelError])
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	assert.NotPanics(t, func() {
		SetLevel(LevelDebug)
		SetLevel(LevelWarn)
		SetLevel(LevelError)
		SetLevel("bogus")
	})
}
