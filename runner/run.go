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
	"context"
	"sync"
	"sync/atomic"
	"time"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
	"trpc.group/trpc-go/trpc-canvas-go/log"
	"trpc.group/trpc-go/trpc-canvas-go/task"
)

// State is the lifecycle state of one run.
type State string

// Run state constants. Completed and Failed are terminal.
const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StatePolling    State = "polling"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Terminal reports whether the run can make no further progress.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Run is the explicit per-dispatch state machine: it owns the opaque service
// run id, the node it mutates on completion, its attempt count and a
// cooperative cancel flag checked before every poll tick and store write.
// Each run polls on its own timer; runs for different nodes progress
// independently with no shared queue.
type Run struct {
	runner    *Runner
	binding   taskBinding
	nodeID    string
	historyID string

	mu       sync.Mutex
	state    State
	runID    string
	attempts int

	canceled   atomic.Bool
	cancelOnce sync.Once
	cancelCh   chan struct{}
	done       chan struct{}
}

func newRun(r *Runner, b taskBinding, nodeID, historyID string) *Run {
	return &Run{
		runner:    r,
		binding:   b,
		nodeID:    nodeID,
		historyID: historyID,
		state:     StateIdle,
		cancelCh:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// RunID returns the opaque id assigned by the task service. Empty until the
// run reaches polling.
func (r *Run) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// NodeID returns the id of the node this run mutates on completion.
func (r *Run) NodeID() string { return r.nodeID }

// Attempts returns the number of poll ticks fired so far.
func (r *Run) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

// Done is closed once the run reaches a terminal state and its timer is
// released.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel requests cooperative cancellation. The next poll tick observes the
// flag, marks the run failed and stops; an already-terminal run is
// unaffected.
func (r *Run) Cancel() {
	r.canceled.Store(true)
	r.cancelOnce.Do(func() { close(r.cancelCh) })
}

func (r *Run) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Run) setRunID(id string) {
	r.mu.Lock()
	r.runID = id
	r.mu.Unlock()
}

// poll drives the run from polling to a terminal state. It runs on its own
// goroutine with its own ticker, so per-run polls are strictly sequential
// while independent runs interleave freely. The loop deliberately does not
// hang off the dispatching context: a run outlives the UI event that
// started it, and is stopped only by a terminal status, the attempt ceiling
// or Cancel.
func (r *Run) poll() {
	defer close(r.done)
	defer r.runner.forget(r)

	ticker := time.NewTicker(r.runner.opts.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.cancelCh:
			r.fail("Run canceled")
			return
		case <-ticker.C:
			if r.canceled.Load() {
				r.fail("Run canceled")
				return
			}
			r.mu.Lock()
			r.attempts++
			attempts := r.attempts
			r.mu.Unlock()

			status, err := r.runner.service.Poll(context.Background(), r.RunID())
			if err != nil {
				// Poll transport failures are terminal, the same as
				// submission failures.
				r.fail(err.Error())
				return
			}
			switch status.Status {
			case task.StatusCompleted:
				r.complete(status.Output)
				return
			case task.StatusFailed, task.StatusCanceled:
				msg := status.Error
				if msg == "" {
					msg = "Task execution failed"
				}
				r.fail(msg)
				return
			default:
				if limit := r.runner.opts.maxAttempts; limit > 0 && attempts >= limit {
					r.fail("Polling attempt limit reached")
					return
				}
			}
		}
	}
}

// complete writes the task output into the owning node and resolves the
// history entry. If the node was deleted mid-poll the data write is a
// silent no-op in the store; the ledger entry still resolves.
func (r *Run) complete(output map[string]any) {
	r.setState(StateCompleted)
	value, _ := output[r.binding.outputKey].(string)
	if !r.canceled.Load() {
		r.runner.store.UpdateNodeData(r.nodeID, map[string]any{
			r.binding.dataField: value,
			flow.FieldIsLoading: false,
		})
	}
	r.runner.store.UpdateHistoryStatus(r.historyID, flow.StatusSuccess, r.binding.successDetail(output))
	log.Debugf("runner: run %s for node %s completed", r.RunID(), r.nodeID)
}

// fail marks the run failed, clears the loading flag and resolves the
// history entry with the failure detail.
func (r *Run) fail(detail string) {
	r.setState(StateFailed)
	r.runner.store.UpdateNodeData(r.nodeID, map[string]any{flow.FieldIsLoading: false})
	r.runner.store.UpdateHistoryStatus(r.historyID, flow.StatusFailed, detail)
	log.Debugf("runner: run %s for node %s failed: %s", r.RunID(), r.nodeID, detail)
}
