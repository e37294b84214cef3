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
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Document is the serialization unit of a workflow: the shape written to
// persistence and to exported files, and the shape re-validated whenever it
// comes back from either. History is optional on the wire.
type Document struct {
	Name    string         `json:"name,omitempty"`
	Nodes   []Node         `json:"nodes"`
	Edges   []Edge         `json:"edges"`
	History []HistoryEntry `json:"history,omitempty"`
}

// documentSchema is the contract persisted and imported workflows must
// satisfy before they are allowed anywhere near a Store. Nodes and edges are
// mandatory sequences; node data stays an open object so unknown node types
// survive.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nodes", "edges"],
  "properties": {
    "name": {"type": "string"},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "position"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "position": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": {"type": "number"},
              "y": {"type": "number"}
            }
          },
          "data": {"type": "object"}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "target"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "sourceHandle": {"type": ["string", "null"]},
          "targetHandle": {"type": ["string", "null"]}
        }
      }
    },
    "history": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "nodeType", "status", "timestamp"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "nodeType": {"type": "string"},
          "status": {"enum": ["pending", "success", "failed"]},
          "timestamp": {"type": "string"},
          "details": {"type": "string"}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("workflow.schema.json", documentSchema)

// ValidateDocument checks an untrusted generic document against the workflow
// schema. A violation means the document is rejected wholesale; the engine
// never half-applies a corrupt workflow.
func ValidateDocument(doc any) error {
	if err := compiledSchema.Validate(doc); err != nil {
		return &CorruptDocumentError{Err: err}
	}
	return nil
}

// ParseDocument decodes and validates raw workflow bytes. The data is
// treated as adversarial: it is schema-checked in generic form before being
// decoded into typed structures, and node-id uniqueness is enforced on top
// of the schema.
func ParseDocument(data []byte) (*Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, &CorruptDocumentError{Err: err}
	}
	if err := ValidateDocument(generic); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptDocumentError{Err: err}
	}
	seen := make(map[string]struct{}, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if _, dup := seen[n.ID]; dup {
			return nil, &CorruptDocumentError{Err: fmt.Errorf("duplicate node id %q", n.ID)}
		}
		seen[n.ID] = struct{}{}
	}
	return &doc, nil
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
