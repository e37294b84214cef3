//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package runner

import "trpc.group/trpc-go/trpc-canvas-go/task"

// CropPayload is the validated input of the crop-image task. The box is in
// percent of the source image.
type CropPayload struct {
	ImageURL string  `json:"imageUrl"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Validate checks the payload before dispatch. The image reference only has
// to be non-empty: upstream producers hand over data URIs as well as plain
// URLs, so a strict URL parse would reject legal chains.
func (p *CropPayload) Validate() error {
	if p.ImageURL == "" {
		return &ValidationError{Task: task.NameCropImage, Field: "imageUrl", Reason: "must not be empty"}
	}
	if p.X < 0 || p.Y < 0 {
		return &ValidationError{Task: task.NameCropImage, Field: "x/y", Reason: "must not be negative"}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return &ValidationError{Task: task.NameCropImage, Field: "width/height", Reason: "must be positive"}
	}
	return nil
}

// ExtractPayload is the validated input of the extract-frame task.
// Timestamp is a seek expression such as "5" or "00:00:05".
type ExtractPayload struct {
	VideoURL  string `json:"videoUrl"`
	Timestamp string `json:"timestamp"`
}

// Validate checks the payload before dispatch.
func (p *ExtractPayload) Validate() error {
	if p.VideoURL == "" {
		return &ValidationError{Task: task.NameExtractFrame, Field: "videoUrl", Reason: "must not be empty"}
	}
	if p.Timestamp == "" {
		return &ValidationError{Task: task.NameExtractFrame, Field: "timestamp", Reason: "must not be empty"}
	}
	return nil
}

// GeneratePayload is the validated input of the generate-content task.
type GeneratePayload struct {
	Prompt       string   `json:"prompt"`
	Model        string   `json:"model"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	ImageURLs    []string `json:"imageUrls,omitempty"`
}

// Validate checks the payload before dispatch. Generation needs a prompt or
// at least one image.
func (p *GeneratePayload) Validate() error {
	if p.Prompt == "" && len(p.ImageURLs) == 0 {
		return &ValidationError{Task: task.NameGenerateContent, Field: "prompt", Reason: "needs a prompt or at least one image"}
	}
	if p.Model == "" {
		return &ValidationError{Task: task.NameGenerateContent, Field: "model", Reason: "must not be empty"}
	}
	return nil
}
