//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

import "fmt"

// CorruptDocumentError reports a persisted or imported workflow that failed
// schema re-validation. The load is rejected wholesale rather than partially
// applied, protecting the in-memory graph from a half-valid state.
type CorruptDocumentError struct {
	Err error
}

// Error implements the error interface.
func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("corrupt workflow document: %v", e.Err)
}

// Unwrap returns the underlying validation error.
func (e *CorruptDocumentError) Unwrap() error {
	return e.Err
}
