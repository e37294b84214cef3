//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

import (
	"sync"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-canvas-go/log"
)

const defaultSnapshotLimit = 100

// snapshot is one immutable undo/redo unit: node and edge topology only.
// Run history and transient loading flags never enter the undo stream, so
// undoing a canvas edit cannot resurrect a stale in-flight spinner.
type snapshot struct {
	nodes []Node
	edges []Edge
}

// storeOpts holds the configurable knobs of a Store.
type storeOpts struct {
	snapshotLimit int
}

// StoreOpt configures a Store.
type StoreOpt func(*storeOpts)

// WithSnapshotLimit bounds the undo ring. Values below 1 keep the default
// of 100 snapshots.
func WithSnapshotLimit(limit int) StoreOpt {
	return func(o *storeOpts) {
		if limit > 0 {
			o.snapshotLimit = limit
		}
	}
}

// Store owns the canvas graph: nodes, edges and the run history, guarded by
// a single mutex so every mutation is atomic and last-writer-wins. It is
// constructed once per session and passed by reference to consumers; there
// is no ambient global.
type Store struct {
	mu      sync.RWMutex
	nodes   []Node
	edges   []Edge
	history []HistoryEntry

	// Linear undo/redo over topology snapshots. Pushing after an undo
	// discards the future, standard linear history rather than a tree.
	past   []snapshot
	future []snapshot
	opts   storeOpts
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOpt) *Store {
	o := storeOpts{snapshotLimit: defaultSnapshotLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{opts: o}
}

// Nodes returns a copy of the current node set.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyNodes(s.nodes)
}

// Edges returns a copy of the current edge set.
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEdges(s.edges)
}

// Node looks up a node by id.
func (s *Store) Node(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// SetNodes replaces the node set. Snapshotted.
func (s *Store) SetNodes(nodes []Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.push()
	s.nodes = copyNodes(nodes)
}

// SetEdges replaces the edge set. Snapshotted.
func (s *Store) SetEdges(edges []Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.push()
	s.edges = copyEdges(edges)
}

// AddNode appends a node to the canvas. Snapshotted.
func (s *Store) AddNode(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.push()
	s.nodes = append(s.nodes, n)
}

// Connect adds the candidate edge. Self-loops are accepted: resolution is
// pull-based per run, not a live dataflow graph, so a loop is inert rather
// than harmful. An empty id is filled in. Snapshotted.
func (s *Store) Connect(e Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = "e-" + uuid.New().String()
	}
	s.push()
	s.edges = append(s.edges, e)
}

// ApplyNodeChanges merges incremental node deltas. Removing a node cascades
// to removal of every edge referencing it. Snapshotted once for the whole
// batch.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	if len(changes) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.push()
	for _, c := range changes {
		switch c.Type {
		case NodeChangeAdd:
			s.nodes = append(s.nodes, c.Node)
		case NodeChangePosition:
			for i := range s.nodes {
				if s.nodes[i].ID == c.ID {
					s.nodes[i].Position = c.Position
					break
				}
			}
		case NodeChangeRemove:
			s.removeNode(c.ID)
		}
	}
}

// ApplyEdgeChanges merges incremental edge deltas. Snapshotted once for the
// whole batch.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	if len(changes) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.push()
	for _, c := range changes {
		switch c.Type {
		case EdgeChangeAdd:
			s.edges = append(s.edges, c.Edge)
		case EdgeChangeRemove:
			for i, e := range s.edges {
				if e.ID == c.ID {
					s.edges = append(s.edges[:i], s.edges[i+1:]...)
					break
				}
			}
		}
	}
}

// UpdateNodeData merges a patch into the data of the given node. A missing
// node is a silent no-op: a background task may complete after its owning
// node was deleted. Never snapshotted, so undo cannot time-travel an
// in-flight run's flags.
func (s *Store) UpdateNodeData(id string, patch map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		if s.nodes[i].ID != id {
			continue
		}
		data := s.nodes[i].Data
		if data == nil {
			data = DataForType(s.nodes[i].Type, nil)
		}
		s.nodes[i].Data = data.Merge(patch)
		return
	}
	log.Debugf("flow: update for missing node %s dropped", id)
}

// Undo steps back one snapshot. Returns false when there is nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.past) == 0 {
		return false
	}
	s.future = append(s.future, s.capture())
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.restore(prev)
	return true
}

// Redo steps forward one snapshot. Returns false when there is no future.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.future) == 0 {
		return false
	}
	s.past = append(s.past, s.capture())
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.restore(next)
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.past) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.future) > 0
}

// History returns a copy of the run ledger, newest first.
func (s *Store) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// AddToHistory prepends a run entry to the ledger. Not snapshotted.
func (s *Store) AddToHistory(e HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]HistoryEntry{e}, s.history...)
}

// UpdateHistoryStatus resolves a pending entry to a terminal status. Unknown
// ids and already-terminal entries are no-ops, not errors.
func (s *Store) UpdateHistoryStatus(id string, status HistoryStatus, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID != id {
			continue
		}
		if s.history[i].Status.Terminal() {
			return
		}
		s.history[i].Status = status
		if details != "" {
			s.history[i].Details = details
		}
		return
	}
}

// SetHistory replaces the ledger, used when loading a persisted workflow.
// Not snapshotted.
func (s *Store) SetHistory(entries []HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make([]HistoryEntry, len(entries))
	copy(s.history, entries)
}

// Resolve runs dependency resolution for a handle of the given node against
// the current graph.
func (s *Store) Resolve(targetID, handle string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ResolveHandle(s.nodes, s.edges, targetID, handle)
}

// ApplyDocument replaces the whole store content with a validated document.
// This is the full-reset path: it clears the undo stream and is the only
// way run-history entries ever disappear.
func (s *Store) ApplyDocument(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = copyNodes(doc.Nodes)
	s.edges = pruneDangling(copyEdges(doc.Edges), s.nodes)
	s.history = make([]HistoryEntry, len(doc.History))
	copy(s.history, doc.History)
	s.past = nil
	s.future = nil
}

// ExportDocument renders the current store content as a serializable
// document.
func (s *Store) ExportDocument(name string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := &Document{
		Name:    name,
		Nodes:   copyNodes(s.nodes),
		Edges:   copyEdges(s.edges),
		History: make([]HistoryEntry, len(s.history)),
	}
	copy(doc.History, s.history)
	return doc
}

// push records the current topology on the undo stack and discards any
// redo-able future. Callers hold the write lock.
func (s *Store) push() {
	s.past = append(s.past, s.capture())
	if len(s.past) > s.opts.snapshotLimit {
		s.past = s.past[len(s.past)-s.opts.snapshotLimit:]
	}
	s.future = nil
}

func (s *Store) capture() snapshot {
	return snapshot{nodes: copyNodes(s.nodes), edges: copyEdges(s.edges)}
}

func (s *Store) restore(snap snapshot) {
	s.nodes = copyNodes(snap.nodes)
	s.edges = copyEdges(snap.edges)
}

// removeNode deletes a node and prunes every edge referencing it. Callers
// hold the write lock.
func (s *Store) removeNode(id string) {
	for i, n := range s.nodes {
		if n.ID == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	s.edges = kept
}

func copyNodes(nodes []Node) []Node {
	// Node data values are immutable, a value copy is a deep enough copy.
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func copyEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// pruneDangling drops edges whose endpoints do not exist in the node set.
func pruneDangling(edges []Edge, nodes []Node) []Edge {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = struct{}{}
	}
	kept := edges[:0]
	for _, e := range edges {
		if _, ok := ids[e.Source]; !ok {
			continue
		}
		if _, ok := ids[e.Target]; !ok {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
