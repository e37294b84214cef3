//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package remote implements task.Service over the compute service's HTTP
// API: POST /api/tasks/{name}/trigger to submit, GET /api/runs/{id} to poll.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"trpc.group/trpc-go/trpc-canvas-go/task"
)

const defaultTimeout = 30 * time.Second

var _ task.Service = (*Client)(nil)

// Client talks to a remote compute service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token attached to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the compute service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit implements task.Service.
func (c *Client) Submit(ctx context.Context, name string, payload any) (*task.Handle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &task.TransportError{Op: "submit", Err: fmt.Errorf("encode payload: %w", err)}
	}
	reqURL := fmt.Sprintf("%s/api/tasks/%s/trigger", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, &task.TransportError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var handle task.Handle
	if err := c.do(req, "submit", &handle); err != nil {
		return nil, err
	}
	if handle.RunID == "" {
		return nil, &task.TransportError{Op: "submit", Err: fmt.Errorf("service returned no run id")}
	}
	return &handle, nil
}

// Poll implements task.Service.
func (c *Client) Poll(ctx context.Context, runID string) (*task.RunStatus, error) {
	reqURL := fmt.Sprintf("%s/api/runs/%s", c.baseURL, url.PathEscape(runID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &task.TransportError{Op: "poll", Err: err}
	}

	var status task.RunStatus
	if err := c.do(req, "poll", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do performs the request and decodes the JSON response into out.
func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &task.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &task.TransportError{Op: op, Err: fmt.Errorf("service returned status %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &task.TransportError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &task.TransportError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}
