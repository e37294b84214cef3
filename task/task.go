//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package task defines the contract with the external long-running compute
// service: submit a named task with a validated payload, then poll the run
// by its opaque id until a terminal status. Implementations live in the
// remote and inmemory subpackages.
package task

import "context"

// Task names understood by the compute service.
const (
	NameCropImage       = "crop-image"
	NameExtractFrame    = "extract-frame"
	NameGenerateContent = "generate-content"
)

// Status is the lifecycle status of a submitted run as reported by the
// service. Completion is non-atomic: it is observed only via Poll.
type Status string

// Run status constants. Completed, Failed and Canceled are terminal.
const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCanceled  Status = "CANCELED"
)

// Terminal reports whether polling should stop at this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// Handle identifies a submitted run.
type Handle struct {
	RunID string `json:"runId"`
}

// RunStatus is one poll observation. Output is only meaningful when Status
// is Completed; Error carries the service-side failure text when present.
type RunStatus struct {
	Status Status         `json:"status"`
	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Service is the external compute collaborator. Payloads are validated
// before submission; everything coming back is treated as untrusted.
type Service interface {
	// Submit triggers the named task and returns an opaque run handle.
	Submit(ctx context.Context, name string, payload any) (*Handle, error)
	// Poll reports the current status of a run.
	Poll(ctx context.Context, runID string) (*RunStatus, error)
}
