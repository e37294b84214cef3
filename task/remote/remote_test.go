//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-canvas-go/task"
)

func TestSubmit(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(task.Handle{RunID: "run_123"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithAPIKey("secret"))
	handle, err := c.Submit(context.Background(), task.NameCropImage, map[string]any{
		"imageUrl": "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "run_123", handle.RunID)
	assert.Equal(t, "/api/tasks/crop-image/trigger", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"imageUrl": "u1"}, gotBody)
}

func TestSubmitMissingRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), task.NameCropImage, nil)
	var transport *task.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "submit", transport.Op)
}

func TestSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), task.NameCropImage, nil)
	var transport *task.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Contains(t, transport.Error(), "502")
}

func TestPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/runs/run_123", r.URL.Path)
		json.NewEncoder(w).Encode(task.RunStatus{
			Status: task.StatusCompleted,
			Output: map[string]any{"imageUrl": "cropped"},
		})
	}))
	defer srv.Close()

	status, err := New(srv.URL).Poll(context.Background(), "run_123")
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, status.Status)
	assert.Equal(t, "cropped", status.Output["imageUrl"])
}

func TestPollMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Poll(context.Background(), "run_123")
	var transport *task.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "poll", transport.Op)
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := New(srv.URL).Poll(context.Background(), "run_123")
	var transport *task.TransportError
	require.ErrorAs(t, err, &transport)
}
