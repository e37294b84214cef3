//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package task

import "fmt"

// TransportError reports a failure to reach the compute service, as opposed
// to the service itself reporting a failed run. The wrapped message is
// surfaced verbatim to the user.
type TransportError struct {
	Op  string // "submit" or "poll"
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}
