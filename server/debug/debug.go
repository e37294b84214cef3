//
// Tencent is pleased to support the open source community by making trpc-canvas-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-canvas-go is licensed under the Apache License Version 2.0.
//
//

// Package debug exposes the engine over HTTP for the observability panel:
// the current graph, the run ledger, node dispatch and run cancellation.
package debug

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"trpc.group/trpc-go/trpc-canvas-go/flow"
	"trpc.group/trpc-go/trpc-canvas-go/log"
	"trpc.group/trpc-go/trpc-canvas-go/runner"
	"trpc.group/trpc-go/trpc-canvas-go/task"
)

// Server serves the observability endpoints.
type Server struct {
	store  *flow.Store
	runner *runner.Runner
	router *mux.Router
}

// New creates the server over a store and its runner.
func New(store *flow.Store, r *runner.Runner) *Server {
	s := &Server{
		store:  store,
		runner: r,
		router: mux.NewRouter(),
	}
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/workflow", s.handleWorkflow).Methods(http.MethodGet)
	s.router.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	s.router.HandleFunc("/templates", s.handleTemplates).Methods(http.MethodGet)
	s.router.HandleFunc("/nodes/{nodeId}/run", s.handleRunNode).Methods(http.MethodPost)
	s.router.HandleFunc("/runs/{runId}", s.handleGetRun).Methods(http.MethodGet)
	s.router.HandleFunc("/runs/{runId}/cancel", s.handleCancelRun).Methods(http.MethodPost)
}

func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ExportDocument(""))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.History())
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	type info struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var out []info
	for _, t := range flow.Templates() {
		out = append(out, info{ID: t.ID, Name: t.Name, Description: t.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRunNode(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["nodeId"]
	run, err := s.runner.RunNode(r.Context(), nodeID)
	if err != nil {
		status := http.StatusBadRequest
		var transportErr *task.TransportError
		if errors.As(err, &transportErr) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"runId":  run.RunID(),
		"nodeId": run.NodeID(),
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	run, ok := s.runner.Run(runID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runId":    run.RunID(),
		"nodeId":   run.NodeID(),
		"state":    run.State(),
		"attempts": run.Attempts(),
	})
}

func (s *Server) handleCancelRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !s.runner.Cancel(runID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"runId": runID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("debug: encode response: %v", err)
	}
}
