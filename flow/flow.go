//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package flow provides the canonical in-memory graph model for a canvas
// workflow: typed nodes connected by handle-addressed edges, a bounded
// undo/redo snapshot stream, a prepend-ordered run history and pull-based
// dependency resolution over the wires feeding a node.
package flow

import "encoding/json"

// NodeType identifies the kind of a canvas node.
type NodeType string

// Node type constants.
const (
	NodeTypeText    NodeType = "text"
	NodeTypeImage   NodeType = "image"
	NodeTypeVideo   NodeType = "video"
	NodeTypeCrop    NodeType = "crop"
	NodeTypeExtract NodeType = "extract"
	NodeTypeLLM     NodeType = "llm"
)

// String returns the string representation of the node type.
func (nt NodeType) String() string {
	return string(nt)
}

// Runnable reports whether nodes of this type dispatch work to an external
// task when executed. Text, image and video nodes are pure data sources.
func (nt NodeType) Runnable() bool {
	switch nt {
	case NodeTypeCrop, NodeTypeExtract, NodeTypeLLM:
		return true
	default:
		return false
	}
}

// Handle names for the input ports understood by the resolver.
const (
	HandleImageURL     = "image_url"
	HandleVideoURL     = "video_url"
	HandleUserMessage  = "user_message"
	HandleSystemPrompt = "system_prompt"
	HandleImages       = "images"
)

// Position is the canvas placement of a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single typed processing node on the canvas.
//
// Data holds the type-specific payload as a tagged union. It is owned
// exclusively by the Store: UI events and task completions mutate it through
// Store.UpdateNodeData only.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data,omitempty"`
}

// nodeJSON is the wire shape of a node. Data crosses the serialization
// boundary as a generic mapping so unknown node types survive a round trip.
type nodeJSON struct {
	ID       string         `json:"id"`
	Type     NodeType       `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	j := nodeJSON{ID: n.ID, Type: n.Type, Position: n.Position}
	if n.Data != nil {
		j.Data = n.Data.Map()
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var j nodeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	n.ID = j.ID
	n.Type = j.Type
	n.Position = j.Position
	n.Data = DataForType(j.Type, j.Data)
	return nil
}

// Edge is a wire between a source node's output handle and a target node's
// input handle. Handles may be empty when a node exposes a single anonymous
// port.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}
