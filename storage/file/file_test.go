//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package file

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
)

func TestExportImportRoundTrip(t *testing.T) {
	doc := &flow.Document{
		Name: "roundtrip",
		Nodes: []flow.Node{
			{ID: "img1", Type: flow.NodeTypeImage, Position: flow.Position{X: 5, Y: 5},
				Data: flow.ImageData{ImageURL: "u1"}},
		},
		Edges: []flow.Edge{},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, doc))

	back, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, back.Name)
	assert.Equal(t, doc.Nodes, back.Nodes)
}

func TestImportRejectsCorruptFile(t *testing.T) {
	_, err := Import(strings.NewReader(`{"nodes": "nope", "edges": []}`))
	var corrupt *flow.CorruptDocumentError
	require.ErrorAs(t, err, &corrupt)
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wf.json")
	doc := &flow.Document{
		Nodes: []flow.Node{
			{ID: "t1", Type: flow.NodeTypeText, Data: flow.TextData{Text: "hi"}},
		},
		Edges: []flow.Edge{},
	}

	require.NoError(t, ExportFile(path, doc))

	back, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, back.Nodes, 1)
	assert.Equal(t, "t1", back.Nodes[0].ID)
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
