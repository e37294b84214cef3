//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides a local task.Service backed by a goroutine
// pool. It simulates the crop, frame-extract and generation workers so the
// engine can run without a remote compute service; results become visible
// only through Poll, matching the non-atomic completion model of the real
// thing.
package inmemory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-canvas-go/task"
)

const (
	defaultPoolSize = 8
	defaultLatency  = 50 * time.Millisecond
)

var _ task.Service = (*Service)(nil)

// runRecord is the observable state of one submitted run.
type runRecord struct {
	status task.Status
	output map[string]any
	errMsg string
}

// serviceOpts holds the configurable knobs of the in-memory service.
type serviceOpts struct {
	poolSize int
	latency  time.Duration
	failures map[string]string
}

// ServiceOpt configures the in-memory service.
type ServiceOpt func(*serviceOpts)

// WithPoolSize sets the number of concurrent workers.
func WithPoolSize(n int) ServiceOpt {
	return func(o *serviceOpts) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithLatency sets the simulated execution time of every task.
func WithLatency(d time.Duration) ServiceOpt {
	return func(o *serviceOpts) { o.latency = d }
}

// WithFailure makes every run of the named task fail with the given
// message. Useful in tests.
func WithFailure(taskName, message string) ServiceOpt {
	return func(o *serviceOpts) { o.failures[taskName] = message }
}

// Service is an in-memory task.Service.
type Service struct {
	mu   sync.RWMutex
	runs map[string]*runRecord
	pool *ants.Pool
	opts serviceOpts
}

// New creates an in-memory task service.
func New(opts ...ServiceOpt) (*Service, error) {
	o := serviceOpts{
		poolSize: defaultPoolSize,
		latency:  defaultLatency,
		failures: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}
	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Service{
		runs: make(map[string]*runRecord),
		pool: pool,
		opts: o,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Submit implements task.Service.
func (s *Service) Submit(ctx context.Context, name string, payload any) (*task.Handle, error) {
	worker, ok := workers[name]
	if !ok {
		return nil, &task.TransportError{Op: "submit", Err: fmt.Errorf("unknown task %q", name)}
	}
	fields, err := payloadFields(payload)
	if err != nil {
		return nil, &task.TransportError{Op: "submit", Err: err}
	}

	runID := "run_" + uuid.New().String()
	s.mu.Lock()
	s.runs[runID] = &runRecord{status: task.StatusPending}
	s.mu.Unlock()

	err = s.pool.Submit(func() {
		time.Sleep(s.opts.latency)
		rec := &runRecord{}
		if msg, failed := s.opts.failures[name]; failed {
			rec.status = task.StatusFailed
			rec.errMsg = msg
		} else {
			rec.status = task.StatusCompleted
			rec.output = worker(fields)
		}
		s.mu.Lock()
		s.runs[runID] = rec
		s.mu.Unlock()
	})
	if err != nil {
		s.mu.Lock()
		delete(s.runs, runID)
		s.mu.Unlock()
		return nil, &task.TransportError{Op: "submit", Err: fmt.Errorf("enqueue run: %w", err)}
	}
	return &task.Handle{RunID: runID}, nil
}

// Poll implements task.Service.
func (s *Service) Poll(ctx context.Context, runID string) (*task.RunStatus, error) {
	s.mu.RLock()
	rec, ok := s.runs[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, &task.TransportError{Op: "poll", Err: fmt.Errorf("unknown run %q", runID)}
	}
	return &task.RunStatus{Status: rec.status, Output: rec.output, Error: rec.errMsg}, nil
}

// workers map task names to their simulated implementations.
var workers = map[string]func(fields map[string]any) map[string]any{
	task.NameCropImage:       cropImage,
	task.NameExtractFrame:    extractFrame,
	task.NameGenerateContent: generateContent,
}

func cropImage(fields map[string]any) map[string]any {
	return map[string]any{
		"imageUrl": fmt.Sprintf("%v#crop=%v,%v,%vx%v",
			fields["imageUrl"], fields["x"], fields["y"], fields["width"], fields["height"]),
	}
}

func extractFrame(fields map[string]any) map[string]any {
	return map[string]any{
		"imageUrl": fmt.Sprintf("%v#frame=%v", fields["videoUrl"], fields["timestamp"]),
	}
}

func generateContent(fields map[string]any) map[string]any {
	prompt, _ := fields["prompt"].(string)
	var images int
	if urls, ok := fields["imageUrls"].([]any); ok {
		images = len(urls)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Simulated response for prompt %q", prompt)
	if images > 0 {
		fmt.Fprintf(&b, " with %d image(s)", images)
	}
	return map[string]any{"text": b.String()}
}

// payloadFields renders a typed payload as a generic mapping, the same shape
// the remote service would receive on the wire.
func payloadFields(payload any) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return fields, nil
}
