//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package file provides workflow export and import as JSON files. Imports
// are schema-validated before the bytes get anywhere near a store; a
// document whose nodes or edges are not sequences is rejected outright.
package file

import (
	"fmt"
	"io"
	"os"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
)

// Export writes the document as indented JSON.
func Export(w io.Writer, doc *flow.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode workflow: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}
	return nil
}

// Import reads and validates a workflow document.
func Import(r io.Reader) (*flow.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workflow: %w", err)
	}
	return flow.ParseDocument(data)
}

// ExportFile writes the document to the given path.
func ExportFile(path string, doc *flow.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Export(f, doc)
}

// ImportFile reads and validates a workflow document from the given path.
func ImportFile(path string) (*flow.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f)
}
