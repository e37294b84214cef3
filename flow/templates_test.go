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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreWellFormed(t *testing.T) {
	for _, tmpl := range Templates() {
		t.Run(tmpl.ID, func(t *testing.T) {
			require.NotEmpty(t, tmpl.ID)
			require.NotEmpty(t, tmpl.Name)

			ids := make(map[string]bool, len(tmpl.Nodes))
			for _, n := range tmpl.Nodes {
				assert.False(t, ids[n.ID], "duplicate node id %q", n.ID)
				ids[n.ID] = true
			}
			// Every edge endpoint must exist within the template.
			for _, e := range tmpl.Edges {
				assert.True(t, ids[e.Source], "edge %q has unknown source %q", e.ID, e.Source)
				assert.True(t, ids[e.Target], "edge %q has unknown target %q", e.ID, e.Target)
			}
		})
	}
}

func TestTemplateByID(t *testing.T) {
	tmpl, ok := TemplateByID("visual-analyzer")
	require.True(t, ok)
	assert.Equal(t, "Visual Analyzer", tmpl.Name)
	assert.Len(t, tmpl.Nodes, 4)

	_, ok = TemplateByID("does-not-exist")
	assert.False(t, ok)
}

func TestTemplateInstantiateIsUndoable(t *testing.T) {
	s := NewStore()
	s.SetNodes([]Node{textNode("previous")})

	tmpl, ok := TemplateByID("simple-chatbot")
	require.True(t, ok)
	tmpl.Instantiate(s)

	require.Len(t, s.Nodes(), 2)
	assert.Len(t, s.Edges(), 1)

	// Undo twice: edges first, then nodes, back to the prior canvas.
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	require.Len(t, s.Nodes(), 1)
	assert.Equal(t, "previous", s.Nodes()[0].ID)
}

func TestBlankCanvasTemplateIsEmpty(t *testing.T) {
	tmpl, ok := TemplateByID("blank-canvas")
	require.True(t, ok)
	assert.Empty(t, tmpl.Nodes)
	assert.Empty(t, tmpl.Edges)
}
