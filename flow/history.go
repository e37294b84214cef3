//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HistoryStatus is the lifecycle status of one run attempt.
type HistoryStatus string

// History status constants. Pending is the only non-terminal status.
const (
	StatusPending HistoryStatus = "pending"
	StatusSuccess HistoryStatus = "success"
	StatusFailed  HistoryStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s HistoryStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// HistoryEntry is one record in the run ledger. It is created pending on
// dispatch, resolved exactly once to a terminal status, and never deleted by
// the engine. This is observability state, distinct from undo history.
type HistoryEntry struct {
	ID        string        `json:"id"`
	NodeType  string        `json:"nodeType"`
	Status    HistoryStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Details   string        `json:"details,omitempty"`
}

// NewHistoryEntry creates a pending entry stamped with the current time.
func NewHistoryEntry(nodeType, details string) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.New().String(),
		NodeType:  nodeType,
		Status:    StatusPending,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
}

// MarshalJSON pins the timestamp to RFC 3339 UTC so entries written by
// different hosts compare as equal instants after a round trip.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	type alias HistoryEntry
	a := alias(e)
	a.Timestamp = e.Timestamp.UTC().Truncate(time.Millisecond)
	return json.Marshal(a)
}
