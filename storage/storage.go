//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package storage defines workflow persistence. Implementations live in the
// inmemory and file subpackages. Anything read back from a backend is
// untrusted and must pass the same schema validation as a file import
// before it reaches a store.
package storage

import (
	"context"
	"errors"
	"time"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
)

// ErrNotFound is returned when no workflow matches the requested id.
var ErrNotFound = errors.New("workflow not found")

// Info is a listing entry for a saved workflow.
type Info struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Workflow is a persisted workflow document with its storage identity.
type Workflow struct {
	ID        string
	Name      string
	Document  *flow.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service persists workflow documents.
type Service interface {
	// Save validates and stores the document. An empty workflowID creates a
	// new workflow and returns its generated id; a known id updates in
	// place.
	Save(ctx context.Context, name string, doc *flow.Document, workflowID string) (string, error)
	// Load returns the workflow with the given id, or the most recently
	// saved one when id is empty. The document is re-validated on the way
	// out; a corrupt record fails with *flow.CorruptDocumentError instead
	// of being half-applied.
	Load(ctx context.Context, workflowID string) (*Workflow, error)
	// List returns saved workflows, newest first.
	List(ctx context.Context) ([]Info, error)
	// Delete removes a workflow.
	Delete(ctx context.Context, workflowID string) error
}

// Revalidate round-trips a document through its serialized form and the
// workflow schema. Shared by backends on both the save and load paths.
func Revalidate(doc *flow.Document) (*flow.Document, error) {
	data, err := doc.Encode()
	if err != nil {
		return nil, &flow.CorruptDocumentError{Err: err}
	}
	return flow.ParseDocument(data)
}
