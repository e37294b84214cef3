//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides a session-scoped, mutex-guarded workflow store.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
	"trpc.group/trpc-go/trpc-canvas-go/storage"
)

var _ storage.Service = (*Service)(nil)

// Service is an in-memory storage.Service.
type Service struct {
	mu        sync.RWMutex
	workflows map[string]*storage.Workflow
}

// New creates an empty in-memory workflow store.
func New() *Service {
	return &Service{workflows: make(map[string]*storage.Workflow)}
}

// Save implements storage.Service.
func (s *Service) Save(ctx context.Context, name string, doc *flow.Document, workflowID string) (string, error) {
	clean, err := storage.Revalidate(doc)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "Untitled Workflow"
	}
	clean.Name = name

	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if workflowID != "" {
		if existing, ok := s.workflows[workflowID]; ok {
			existing.Name = name
			existing.Document = clean
			existing.UpdatedAt = now
			return workflowID, nil
		}
	}
	id := uuid.New().String()
	s.workflows[id] = &storage.Workflow{
		ID:        id,
		Name:      name,
		Document:  clean,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

// Load implements storage.Service.
func (s *Service) Load(ctx context.Context, workflowID string) (*storage.Workflow, error) {
	s.mu.RLock()
	var found *storage.Workflow
	if workflowID != "" {
		found = s.workflows[workflowID]
	} else {
		for _, w := range s.workflows {
			if found == nil || w.UpdatedAt.After(found.UpdatedAt) {
				found = w
			}
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return nil, storage.ErrNotFound
	}
	clean, err := storage.Revalidate(found.Document)
	if err != nil {
		return nil, err
	}
	return &storage.Workflow{
		ID:        found.ID,
		Name:      found.Name,
		Document:  clean,
		CreatedAt: found.CreatedAt,
		UpdatedAt: found.UpdatedAt,
	}, nil
}

// List implements storage.Service.
func (s *Service) List(ctx context.Context) ([]storage.Info, error) {
	s.mu.RLock()
	infos := make([]storage.Info, 0, len(s.workflows))
	for _, w := range s.workflows {
		infos = append(infos, storage.Info{ID: w.ID, Name: w.Name, UpdatedAt: w.UpdatedAt})
	}
	s.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// Delete implements storage.Service.
func (s *Service) Delete(ctx context.Context, workflowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workflows[workflowID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.workflows, workflowID)
	return nil
}
