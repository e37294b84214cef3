//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package runner

import "fmt"

// ValidationError reports a payload that failed its schema before dispatch.
// The task service is never contacted; this is a structured precondition
// failure, not a network error.
type ValidationError struct {
	Task   string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for task %s: %s %s", e.Task, e.Field, e.Reason)
}

// ReferenceError reports a node whose required input handle has no usable
// producer wired to it. The run is refused before any submission call.
type ReferenceError struct {
	NodeID  string
	Handle  string
	Message string
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("no producer wired to handle %q of node %q", e.Handle, e.NodeID)
}
