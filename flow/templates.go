//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

// Template is a ready-made starter workflow.
type Template struct {
	ID          string
	Name        string
	Description string
	Nodes       []Node
	Edges       []Edge
}

// Instantiate loads the template graph into the store, replacing nodes and
// edges through the snapshotting channels so the previous canvas stays
// reachable via undo.
func (t *Template) Instantiate(s *Store) {
	s.SetNodes(t.Nodes)
	s.SetEdges(t.Edges)
}

// Templates returns the built-in starter workflows.
func Templates() []Template {
	return []Template{
		{
			ID:          "blank-canvas",
			Name:        "Blank Canvas",
			Description: "Start fresh with an empty workflow.",
		},
		{
			ID:          "simple-chatbot",
			Name:        "Simple Chatbot",
			Description: "A basic text-to-text conversation setup.",
			Nodes: []Node{
				{ID: "t1", Type: NodeTypeText, Position: Position{X: 100, Y: 100},
					Data: TextData{Text: "Tell me a joke about programming."}},
				{ID: "ai1", Type: NodeTypeLLM, Position: Position{X: 500, Y: 100},
					Data: LLMData{Model: "gemini-1.5-flash"}},
			},
			Edges: []Edge{
				{ID: "e1", Source: "t1", Target: "ai1", TargetHandle: HandleUserMessage},
			},
		},
		{
			ID:          "visual-analyzer",
			Name:        "Visual Analyzer",
			Description: "Upload an image, crop a section, and ask the model to analyze it.",
			Nodes: []Node{
				{ID: "img1", Type: NodeTypeImage, Position: Position{X: 50, Y: 50},
					Data: ImageData{Label: "Upload Here"}},
				{ID: "crop1", Type: NodeTypeCrop, Position: Position{X: 400, Y: 50},
					Data: CropData{Width: 50, Height: 50}},
				{ID: "txt1", Type: NodeTypeText, Position: Position{X: 400, Y: 400},
					Data: TextData{Text: "What detail do you see in this cropped section?"}},
				{ID: "ai1", Type: NodeTypeLLM, Position: Position{X: 800, Y: 200},
					Data: LLMData{Model: "gemini-1.5-pro"}},
			},
			Edges: []Edge{
				{ID: "e1", Source: "img1", Target: "crop1", TargetHandle: HandleImageURL},
				{ID: "e2", Source: "crop1", Target: "ai1", TargetHandle: HandleImages},
				{ID: "e3", Source: "txt1", Target: "ai1", TargetHandle: HandleUserMessage},
			},
		},
		{
			ID:          "video-inspector",
			Name:        "Video Frame Inspector",
			Description: "Extract a specific frame from a video and analyze it.",
			Nodes: []Node{
				{ID: "vid1", Type: NodeTypeVideo, Position: Position{X: 50, Y: 50},
					Data: VideoData{Label: "Upload Video"}},
				{ID: "ext1", Type: NodeTypeExtract, Position: Position{X: 400, Y: 50},
					Data: ExtractData{Timestamp: "5"}},
				{ID: "txt1", Type: NodeTypeText, Position: Position{X: 400, Y: 400},
					Data: TextData{Text: "Describe the action happening in this frame."}},
				{ID: "ai1", Type: NodeTypeLLM, Position: Position{X: 800, Y: 200},
					Data: LLMData{Model: "gemini-1.5-pro"}},
			},
			Edges: []Edge{
				{ID: "e1", Source: "vid1", Target: "ext1", TargetHandle: HandleVideoURL},
				{ID: "e2", Source: "ext1", Target: "ai1", TargetHandle: HandleImages},
				{ID: "e3", Source: "txt1", Target: "ai1", TargetHandle: HandleUserMessage},
			},
		},
	}
}

// TemplateByID looks up a built-in template.
func TemplateByID(id string) (*Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return &t, true
		}
	}
	return nil, false
}
