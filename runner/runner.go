//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package runner drives a canvas node from idle through validation,
// submission and polling to a terminal state. Each dispatch gathers the
// node's inputs by walking its incoming wires, submits the validated
// payload to the named external task, polls the run on a fixed interval and
// surfaces the asynchronous result back onto the graph.
package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
	"trpc.group/trpc-go/trpc-canvas-go/log"
	"trpc.group/trpc-go/trpc-canvas-go/task"
	"trpc.group/trpc-go/trpc-canvas-go/telemetry"
)

const (
	defaultPollInterval = time.Second

	defaultModel     = "gemini-2.5-pro"
	defaultTimestamp = "1"
	defaultCropSpan  = 50
)

// taskBinding ties a node type to its external task: the task name, how the
// run is labeled in the ledger, and which output field lands in which node
// data field on completion.
type taskBinding struct {
	name          string
	label         string
	outputKey     string
	dataField     string
	successDetail func(output map[string]any) string
}

var (
	cropBinding = taskBinding{
		name:      task.NameCropImage,
		label:     "Smart Crop",
		outputKey: "imageUrl",
		dataField: flow.FieldCroppedImage,
		successDetail: func(map[string]any) string {
			return "Image cropped successfully"
		},
	}
	extractBinding = taskBinding{
		name:      task.NameExtractFrame,
		label:     "Video Extract",
		outputKey: "imageUrl",
		dataField: flow.FieldExtractedImageURL,
		successDetail: func(map[string]any) string {
			return "Frame extracted"
		},
	}
	generateBinding = taskBinding{
		name:      task.NameGenerateContent,
		label:     "Gemini Processor",
		outputKey: "text",
		dataField: flow.FieldResponse,
		successDetail: func(output map[string]any) string {
			text, _ := output["text"].(string)
			return fmt.Sprintf("Generated %d words", len(strings.Fields(text)))
		},
	}
)

// options holds the configurable knobs of a Runner.
type options struct {
	pollInterval time.Duration
	maxAttempts  int
}

// Option configures a Runner.
type Option func(*options)

// WithPollInterval overrides the fixed 1s poll interval. Mostly useful in
// tests.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithMaxAttempts sets a ceiling on poll attempts per run. Zero, the
// default, polls until a terminal status.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// Runner dispatches node runs against a task service and coordinates their
// results back into the store. Multiple nodes may be polling at once; each
// run owns an independent timer and there is no admission control, since
// submission volume is bounded by user interaction.
type Runner struct {
	store   *flow.Store
	service task.Service
	opts    options

	mu     sync.Mutex
	active map[*Run]struct{}
}

// New creates a runner over the given store and task service.
func New(store *flow.Store, service task.Service, opts ...Option) *Runner {
	o := options{pollInterval: defaultPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner{
		store:   store,
		service: service,
		opts:    o,
		active:  make(map[*Run]struct{}),
	}
}

// RunNode executes the given node: resolves its inputs, validates the
// payload, submits it to the external task and starts polling. It returns
// as soon as the run is polling; completion is observed through the store,
// the ledger, or Run.Done.
//
// Failure modes before any polling starts: a *ReferenceError when a
// required input handle has no producer (nothing is logged to the ledger),
// a *ValidationError when the gathered payload fails its schema, and a
// *task.TransportError when submission itself fails; the latter two resolve
// the already-pending ledger entry to failed.
func (r *Runner) RunNode(ctx context.Context, nodeID string) (*Run, error) {
	node, ok := r.store.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("node %q not found", nodeID)
	}
	switch node.Type {
	case flow.NodeTypeCrop:
		return r.dispatchCrop(ctx, node)
	case flow.NodeTypeExtract:
		return r.dispatchExtract(ctx, node)
	case flow.NodeTypeLLM:
		return r.dispatchGenerate(ctx, node)
	default:
		return nil, fmt.Errorf("node type %q is not runnable", node.Type)
	}
}

// Cancel requests cooperative cancellation of the run with the given
// service run id. It reports whether an active run was found.
func (r *Runner) Cancel(runID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for run := range r.active {
		if run.RunID() == runID {
			run.Cancel()
			return true
		}
	}
	return false
}

// Run returns the active run with the given service run id.
func (r *Runner) Run(runID string) (*Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for run := range r.active {
		if run.RunID() == runID {
			return run, true
		}
	}
	return nil, false
}

func (r *Runner) dispatchCrop(ctx context.Context, node flow.Node) (*Run, error) {
	inputs := r.store.Resolve(node.ID, flow.HandleImageURL)
	if len(inputs) == 0 {
		return nil, &ReferenceError{NodeID: node.ID, Handle: flow.HandleImageURL,
			Message: "connect an image node first"}
	}
	data, _ := node.Data.(flow.CropData)
	payload := &CropPayload{
		ImageURL: inputs[0],
		X:        data.X,
		Y:        data.Y,
		Width:    data.Width,
		Height:   data.Height,
	}
	if payload.Width == 0 {
		payload.Width = defaultCropSpan
	}
	if payload.Height == 0 {
		payload.Height = defaultCropSpan
	}
	return r.dispatch(ctx, node.ID, cropBinding, payload, "Cropping image...")
}

func (r *Runner) dispatchExtract(ctx context.Context, node flow.Node) (*Run, error) {
	inputs := r.store.Resolve(node.ID, flow.HandleVideoURL)
	if len(inputs) == 0 {
		return nil, &ReferenceError{NodeID: node.ID, Handle: flow.HandleVideoURL,
			Message: "connect a video node first"}
	}
	data, _ := node.Data.(flow.ExtractData)
	payload := &ExtractPayload{
		VideoURL:  inputs[0],
		Timestamp: data.Timestamp,
	}
	if payload.Timestamp == "" {
		payload.Timestamp = defaultTimestamp
	}
	pending := fmt.Sprintf("Extracting frame at %ss", payload.Timestamp)
	return r.dispatch(ctx, node.ID, extractBinding, payload, pending)
}

func (r *Runner) dispatchGenerate(ctx context.Context, node flow.Node) (*Run, error) {
	prompt := first(r.store.Resolve(node.ID, flow.HandleUserMessage))
	images := r.store.Resolve(node.ID, flow.HandleImages)
	if prompt == "" && len(images) == 0 {
		return nil, &ReferenceError{NodeID: node.ID, Handle: flow.HandleUserMessage,
			Message: "connect at least a text node or an image node"}
	}
	data, _ := node.Data.(flow.LLMData)
	payload := &GeneratePayload{
		Prompt:       prompt,
		Model:        data.Model,
		SystemPrompt: first(r.store.Resolve(node.ID, flow.HandleSystemPrompt)),
		ImageURLs:    images,
	}
	if payload.Model == "" {
		payload.Model = defaultModel
	}
	// A fresh generation invalidates the previous response.
	r.store.UpdateNodeData(node.ID, map[string]any{flow.FieldResponse: ""})
	return r.dispatch(ctx, node.ID, generateBinding, payload, "Generating content...")
}

// validatable is implemented by every task payload.
type validatable interface {
	Validate() error
}

// dispatch runs the synchronous head of the state machine, idle through
// submitting, and hands the rest to the run's poll loop. The pending ledger
// entry is created before validation so failed validations are visible in
// the run history, matching the ledger's role as a record of attempts.
func (r *Runner) dispatch(ctx context.Context, nodeID string, binding taskBinding,
	payload validatable, pendingDetail string) (*Run, error) {
	entry := flow.NewHistoryEntry(binding.label, pendingDetail)
	r.store.AddToHistory(entry)
	r.store.UpdateNodeData(nodeID, map[string]any{flow.FieldIsLoading: true})

	run := newRun(r, binding, nodeID, entry.ID)

	run.setState(StateValidating)
	if err := payload.Validate(); err != nil {
		run.fail(err.Error())
		return nil, err
	}

	run.setState(StateSubmitting)
	ctx, span := telemetry.Tracer.Start(ctx, "canvas.task.submit",
		trace.WithAttributes(
			attribute.String("task.name", binding.name),
			attribute.String("node.id", nodeID),
		))
	handle, err := r.service.Submit(ctx, binding.name, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		span.End()
		run.fail(err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("task.run_id", handle.RunID))
	span.End()

	run.setRunID(handle.RunID)
	run.setState(StatePolling)
	r.remember(run)
	log.Infof("runner: node %s submitted to %s as run %s", nodeID, binding.name, handle.RunID)
	go run.poll()
	return run, nil
}

func (r *Runner) remember(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[run] = struct{}{}
}

func (r *Runner) forget(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, run)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
