/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rpncalc/rpncalc/core/config"
	"github.com/rpncalc/rpncalc/core/expr"
	"github.com/rpncalc/rpncalc/core/query"
	"github.com/rpncalc/rpncalc/core/rendering"
	"github.com/rpncalc/rpncalc/core/views"
)

// Server represents the web calculator with all its dependencies
type Server struct {
	renderer     *rendering.CalcRenderer
	historyLimit int
	cacheSize    int

	// Cache of parsed expressions, evicted oldest first
	mu         sync.RWMutex
	exprCache  map[string]*expr.Expression // expression string -> parsed expression
	cacheOrder []string
}

// NewServer creates a new server
func NewServer(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	renderer, err := rendering.NewCalcRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Server{
		renderer:     renderer,
		historyLimit: cfg.HistoryLimit,
		cacheSize:    cfg.CacheSize,
		exprCache:    make(map[string]*expr.Expression),
	}, nil
}

// HandlerResult represents the result of handling a request
type HandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []views.TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, views.TimingEntry{
		Operation:  operation,
		DurationMs: fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

// GetEntries returns all timing entries
func (tc *TimingCollector) GetEntries() []views.TimingEntry {
	return tc.entries
}

// TotalMs returns total elapsed time in milliseconds as formatted string
func (tc *TimingCollector) TotalMs() string {
	return fmt.Sprintf("%.2f", float64(time.Since(tc.start).Microseconds())/1000.0)
}

// parse returns the parsed expression for source, using the cache.
// Parse failures are not cached.
func (s *Server) parse(source string) (*expr.Expression, error) {
	s.mu.RLock()
	e, ok := s.exprCache[source]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}

	e, err := expr.Parse(source)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.exprCache[source]; ok {
		return cached, nil
	}
	if len(s.cacheOrder) >= s.cacheSize {
		oldest := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.exprCache, oldest)
	}
	s.exprCache[source] = e
	s.cacheOrder = append(s.cacheOrder, source)
	return e, nil
}

// CacheLen returns the number of cached expressions
func (s *Server) CacheLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exprCache)
}

// evaluate parses and evaluates source, recording each step
func (s *Server) evaluate(source string, timing *TimingCollector) views.Evaluation {
	start := time.Now()
	e, err := s.parse(source)
	timing.Record("Parse", time.Since(start))
	if err != nil {
		return views.Evaluation{Err: err}
	}

	start = time.Now()
	rpn, err := e.RPN()
	timing.Record("Convert to RPN", time.Since(start))
	if err != nil {
		return views.Evaluation{Err: err}
	}

	start = time.Now()
	result, err := expr.EvaluateRPN(rpn)
	timing.Record("Reduce RPN", time.Since(start))
	return views.Evaluation{Result: result, RPN: rpn, Err: err}
}

// HandleCalcRequest evaluates the expression in the URL and writes the HTML page.
// Evaluation errors are part of the page; only rendering failures return a result.
func (s *Server) HandleCalcRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *HandlerResult {
	timing := NewTimingCollector()

	q := query.NewQueryWithLimit(requestURL, s.historyLimit)

	var eval views.Evaluation
	if q.Expression != "" {
		eval = s.evaluate(q.Expression, timing)
	}

	vm := views.BuildViewModel(q, eval, timing.GetEntries(), timing.TotalMs())

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		return &HandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Failed to render page"}
	}
	return nil
}

// APIResponse is the JSON body of /api/eval.
// Result is always a string so that inf and NaN survive encoding; Value is
// set only for finite results.
type APIResponse struct {
	Expression string   `json:"expression"`
	Result     string   `json:"result,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	RPN        string   `json:"rpn,omitempty"`
	Error      string   `json:"error,omitempty"`
	Kind       string   `json:"kind,omitempty"`
}

// HandleAPIRequest evaluates the expression in the URL and returns the HTTP
// status with the response body
func (s *Server) HandleAPIRequest(requestURL *url.URL) (int, APIResponse) {
	q := requestURL.Query()
	if !q.Has("expr") {
		return http.StatusBadRequest, APIResponse{Error: "expr parameter is required"}
	}

	source := q.Get("expr")
	eval := s.evaluate(source, NewTimingCollector())

	resp := APIResponse{Expression: source}
	if eval.RPN != nil {
		resp.RPN = expr.JoinComponents(eval.RPN)
	}
	if eval.Err != nil {
		resp.Error = eval.Err.Error()
		resp.Kind = expr.ErrorKind(eval.Err)
		return http.StatusUnprocessableEntity, resp
	}

	resp.Result = expr.FormatResult(eval.Result)
	if !math.IsInf(eval.Result, 0) && !math.IsNaN(eval.Result) {
		v := eval.Result
		resp.Value = &v
	}
	return http.StatusOK, resp
}

// Handler returns the HTTP handler serving the calculator page and the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if result := s.HandleCalcRequest(w, r.URL, w.Header().Set); result != nil {
			// The renderer may have already written to the response
			log.Printf("Template rendering error: %v", result.Error)
		}
	})

	mux.HandleFunc("/api/eval", func(w http.ResponseWriter, r *http.Request) {
		status, resp := s.HandleAPIRequest(r.URL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("Failed to encode API response: %v", err)
		}
	})

	return mux
}

// Serve serves the calculator on addr until ctx is cancelled or the
// listener fails
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
