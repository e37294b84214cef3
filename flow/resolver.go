//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

// handleSpec describes how a named input handle gathers values from its
// producers. The field list is a priority order: the first field a producer
// actually carries wins. Wires carry no static types, any node can be
// plugged into any handle, so resolution degrades gracefully instead of
// failing on an unexpected producer.
type handleSpec struct {
	// multi marks a list handle that accepts every wired producer.
	// Single-valued handles use the first matching edge only.
	multi  bool
	fields []string
}

var handleSpecs = map[string]handleSpec{
	HandleImages: {
		multi:  true,
		fields: []string{FieldCroppedImage, FieldExtractedImageURL, FieldImageURL},
	},
	// Same priority as images so a cropper or frame extractor can chain
	// into another cropper.
	HandleImageURL: {
		fields: []string{FieldCroppedImage, FieldExtractedImageURL, FieldImageURL},
	},
	HandleVideoURL: {
		fields: []string{FieldVideoURL},
	},
	HandleUserMessage: {
		fields: []string{FieldResponse, FieldText},
	},
	HandleSystemPrompt: {
		fields: []string{FieldText},
	},
}

// ResolveHandle walks the edges feeding the given handle of a target node
// and extracts one output value per producer. Producers yielding no usable
// field are skipped. Zero wired producers yield an empty result; the caller
// decides whether that is fatal for its node type.
//
// Values come back in edge order. For single-valued handles at most one
// value is returned.
func ResolveHandle(nodes []Node, edges []Edge, targetID, handle string) []string {
	spec, ok := handleSpecs[handle]
	if !ok {
		return nil
	}
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var values []string
	for _, e := range edges {
		if e.Target != targetID || e.TargetHandle != handle {
			continue
		}
		producer, found := byID[e.Source]
		if found && producer.Data != nil {
			if v, usable := firstField(producer.Data, spec.fields); usable {
				values = append(values, v)
			}
		}
		// A single-valued handle binds to its first wire; later wires do
		// not act as fallbacks even when the first producer is empty.
		if !spec.multi {
			break
		}
	}
	return values
}

// firstField returns the first non-empty string field from the priority
// list that the producer carries.
func firstField(data NodeData, fields []string) (string, bool) {
	for _, f := range fields {
		v, ok := data.Field(f)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && s != "" {
			return s, true
		}
	}
	return "", false
}
