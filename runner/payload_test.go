//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCropPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload CropPayload
		wantErr bool
	}{
		{"valid", CropPayload{ImageURL: "u1", X: 10, Y: 10, Width: 50, Height: 50}, false},
		{"data uri accepted", CropPayload{ImageURL: "data:image/png;base64,AAAA", Width: 1, Height: 1}, false},
		{"empty image", CropPayload{Width: 50, Height: 50}, true},
		{"negative x", CropPayload{ImageURL: "u1", X: -1, Width: 50, Height: 50}, true},
		{"zero width", CropPayload{ImageURL: "u1", Height: 50}, true},
		{"negative height", CropPayload{ImageURL: "u1", Width: 50, Height: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				var valErr *ValidationError
				assert.ErrorAs(t, err, &valErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractPayloadValidate(t *testing.T) {
	assert.NoError(t, (&ExtractPayload{VideoURL: "v1", Timestamp: "5"}).Validate())
	assert.Error(t, (&ExtractPayload{Timestamp: "5"}).Validate())
	assert.Error(t, (&ExtractPayload{VideoURL: "v1"}).Validate())
}

func TestGeneratePayloadValidate(t *testing.T) {
	assert.NoError(t, (&GeneratePayload{Prompt: "hi", Model: "m"}).Validate())
	assert.NoError(t, (&GeneratePayload{ImageURLs: []string{"u"}, Model: "m"}).Validate())
	assert.Error(t, (&GeneratePayload{Model: "m"}).Validate(), "needs a prompt or an image")
	assert.Error(t, (&GeneratePayload{Prompt: "hi"}).Validate(), "model is required")
}
