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
)

func TestResolveImageURLHandle(t *testing.T) {
	// An image node wired into a cropper's image_url handle.
	nodes := []Node{
		{ID: "img1", Type: NodeTypeImage, Data: ImageData{ImageURL: "u1"}},
		{ID: "crop1", Type: NodeTypeCrop, Data: CropData{X: 10, Y: 10, Width: 50, Height: 50}},
	}
	edges := []Edge{
		{ID: "e1", Source: "img1", Target: "crop1", TargetHandle: HandleImageURL},
	}

	got := ResolveHandle(nodes, edges, "crop1", HandleImageURL)
	assert.Equal(t, []string{"u1"}, got)
}

func TestResolveZeroProducers(t *testing.T) {
	nodes := []Node{{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}}}

	assert.Empty(t, ResolveHandle(nodes, nil, "ai1", HandleUserMessage))
	assert.Empty(t, ResolveHandle(nodes, nil, "ai1", HandleImages))
}

func TestResolveImagesFieldPriority(t *testing.T) {
	tests := []struct {
		name     string
		producer Node
		want     string
	}{
		{
			name:     "cropped image wins",
			producer: Node{ID: "p", Type: NodeTypeCrop, Data: CropData{CroppedImage: "cropped"}},
			want:     "cropped",
		},
		{
			name:     "extracted frame next",
			producer: Node{ID: "p", Type: NodeTypeExtract, Data: ExtractData{ExtractedImageURL: "frame"}},
			want:     "frame",
		},
		{
			name:     "plain image url last",
			producer: Node{ID: "p", Type: NodeTypeImage, Data: ImageData{ImageURL: "plain"}},
			want:     "plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []Node{tt.producer, {ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}}}
			edges := []Edge{{ID: "e1", Source: "p", Target: "ai1", TargetHandle: HandleImages}}
			assert.Equal(t, []string{tt.want}, ResolveHandle(nodes, edges, "ai1", HandleImages))
		})
	}
}

func TestResolveImagesMultipleProducersInEdgeOrder(t *testing.T) {
	nodes := []Node{
		{ID: "crop1", Type: NodeTypeCrop, Data: CropData{CroppedImage: "one"}},
		{ID: "img1", Type: NodeTypeImage, Data: ImageData{ImageURL: "two"}},
		{ID: "empty", Type: NodeTypeImage, Data: ImageData{}},
		{ID: "ext1", Type: NodeTypeExtract, Data: ExtractData{ExtractedImageURL: "three"}},
		{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}},
	}
	edges := []Edge{
		{ID: "e1", Source: "crop1", Target: "ai1", TargetHandle: HandleImages},
		{ID: "e2", Source: "img1", Target: "ai1", TargetHandle: HandleImages},
		// A producer with no usable field is skipped, not an error.
		{ID: "e3", Source: "empty", Target: "ai1", TargetHandle: HandleImages},
		{ID: "e4", Source: "ext1", Target: "ai1", TargetHandle: HandleImages},
	}

	got := ResolveHandle(nodes, edges, "ai1", HandleImages)
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestResolveUserMessageFallback(t *testing.T) {
	// A prior generation node's response outranks a text node's text.
	nodes := []Node{
		{ID: "ai0", Type: NodeTypeLLM, Data: LLMData{Response: "earlier answer"}},
		{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}},
	}
	edges := []Edge{{ID: "e1", Source: "ai0", Target: "ai1", TargetHandle: HandleUserMessage}}

	assert.Equal(t, []string{"earlier answer"}, ResolveHandle(nodes, edges, "ai1", HandleUserMessage))

	nodes[0] = Node{ID: "ai0", Type: NodeTypeText, Data: TextData{Text: "a question"}}
	assert.Equal(t, []string{"a question"}, ResolveHandle(nodes, edges, "ai1", HandleUserMessage))
}

func TestResolveSingleHandleBindsFirstEdgeOnly(t *testing.T) {
	nodes := []Node{
		{ID: "empty", Type: NodeTypeText, Data: TextData{}},
		{ID: "full", Type: NodeTypeText, Data: TextData{Text: "later"}},
		{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}},
	}
	edges := []Edge{
		{ID: "e1", Source: "empty", Target: "ai1", TargetHandle: HandleUserMessage},
		{ID: "e2", Source: "full", Target: "ai1", TargetHandle: HandleUserMessage},
	}

	// The first wire wins even when its producer is empty; later wires are
	// not fallbacks.
	assert.Empty(t, ResolveHandle(nodes, edges, "ai1", HandleUserMessage))
}

func TestResolveUnknownProducerSkipped(t *testing.T) {
	nodes := []Node{{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}}}
	edges := []Edge{{ID: "e1", Source: "ghost", Target: "ai1", TargetHandle: HandleImages}}

	assert.Empty(t, ResolveHandle(nodes, edges, "ai1", HandleImages))
}

func TestResolveUnknownHandle(t *testing.T) {
	nodes := []Node{{ID: "a", Type: NodeTypeText, Data: TextData{Text: "x"}}}
	edges := []Edge{{ID: "e1", Source: "a", Target: "b", TargetHandle: "mystery"}}

	assert.Empty(t, ResolveHandle(nodes, edges, "b", "mystery"))
}

func TestResolveGenericProducer(t *testing.T) {
	// A node type this engine does not know can still feed a handle
	// through its generic payload.
	nodes := []Node{
		{ID: "x", Type: "hologram", Data: GenericData{FieldImageURL: "g1"}},
		{ID: "ai1", Type: NodeTypeLLM, Data: LLMData{}},
	}
	edges := []Edge{{ID: "e1", Source: "x", Target: "ai1", TargetHandle: HandleImages}}

	assert.Equal(t, []string{"g1"}, ResolveHandle(nodes, edges, "ai1", HandleImages))
}
