//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

package flow

// NodeChangeType identifies an incremental node delta.
type NodeChangeType string

// Node change type constants.
const (
	NodeChangeAdd      NodeChangeType = "add"
	NodeChangePosition NodeChangeType = "position"
	NodeChangeRemove   NodeChangeType = "remove"
)

// NodeChange is one incremental delta against the node set. Add carries the
// full node, Position carries the new placement, Remove carries only the id.
type NodeChange struct {
	Type     NodeChangeType `json:"type"`
	ID       string         `json:"id"`
	Node     Node           `json:"node,omitempty"`
	Position Position       `json:"position,omitempty"`
}

// EdgeChangeType identifies an incremental edge delta.
type EdgeChangeType string

// Edge change type constants.
const (
	EdgeChangeAdd    EdgeChangeType = "add"
	EdgeChangeRemove EdgeChangeType = "remove"
)

// EdgeChange is one incremental delta against the edge set.
type EdgeChange struct {
	Type EdgeChangeType `json:"type"`
	ID   string         `json:"id"`
	Edge Edge           `json:"edge,omitempty"`
}

// RemoveNode builds a removal delta for the given node id.
func RemoveNode(id string) NodeChange {
	return NodeChange{Type: NodeChangeRemove, ID: id}
}

// AddNodeChange builds an add delta carrying the full node.
func AddNodeChange(n Node) NodeChange {
	return NodeChange{Type: NodeChangeAdd, ID: n.ID, Node: n}
}

// MoveNode builds a position delta for the given node id.
func MoveNode(id string, pos Position) NodeChange {
	return NodeChange{Type: NodeChangePosition, ID: id, Position: pos}
}

// RemoveEdge builds a removal delta for the given edge id.
func RemoveEdge(id string) EdgeChange {
	return EdgeChange{Type: EdgeChangeRemove, ID: id}
}

// AddEdgeChange builds an add delta carrying the full edge.
func AddEdgeChange(e Edge) EdgeChange {
	return EdgeChange{Type: EdgeChangeAdd, ID: e.ID, Edge: e}
}
