// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes the read-only info routes of the multi-replace nodes.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/multireplace/pkg/node"
)

// Name is reported by the info route.
const Name = "multi-replace"

// Info is the info route's body.
type Info struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// Service serves the info routes.
type Service struct {
	addr     string
	router   *mux.Router
	registry *node.Registry
}

// New builds a service on addr. A nil registry uses node.DefaultRegistry.
func New(addr string, registry *node.Registry) *Service {
	if registry == nil {
		registry = node.DefaultRegistry()
	}
	s := &Service{
		addr:     addr,
		router:   mux.NewRouter(),
		registry: registry,
	}
	s.routes()
	return s
}

func (s *Service) routes() {
	sub := s.router.PathPrefix("/multi_replace").Subrouter()
	sub.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	sub.HandleFunc("/nodes", s.handleNodes).Methods(http.MethodGet)
	sub.HandleFunc("/nodes/{name}", s.handleNode).Methods(http.MethodGet)
}

// Handler returns the router.
func (s *Service) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down.
func (s *Service) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.addr).Msg("serving info routes")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Errorf("serving %s: %w", s.addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Info{Status: "ok", Name: Name})
}

func (s *Service) handleNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Descriptors())
}

func (s *Service) handleNode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	d, ok := s.registry.Get(name)
	if !ok {
		http.Error(w, "unknown node: "+name, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
