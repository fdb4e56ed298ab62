// Package server exposes the faceted navigation engine over a small JSON
// HTTP API, one named session per navigator, in the handler/metrics style
// this codebase already uses for its other HTTP servers.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/drwadu/minifasb/pkg/asp"
	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/store"
)

// Server is the HTTP front end over a Sessions registry.
type Server struct {
	sessions *store.Sessions
	mux      *http.ServeMux

	mu         sync.RWMutex
	counters   map[string]int64
	timeSeries []TimePoint
}

// TimePoint is one sample of a named counter at a point in time.
type TimePoint struct {
	Time    time.Time `json:"time"`
	Counter string    `json:"counter"`
	Value   int64     `json:"value"`
}

func (s *Server) incCounter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	s.timeSeries = append(s.timeSeries, TimePoint{Time: time.Now(), Counter: name, Value: s.counters[name]})
	if len(s.timeSeries) > 1000 {
		s.timeSeries = s.timeSeries[len(s.timeSeries)-1000:]
	}
}

func (s *Server) getCounters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

func (s *Server) getTimeSeries() []TimePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TimePoint, len(s.timeSeries))
	copy(out, s.timeSeries)
	return out
}

// New returns a ready Server with an empty session registry.
func New() *Server {
	return &Server{
		sessions: store.NewSessions(),
		counters: make(map[string]int64),
	}
}

// ListenAndServe registers every handler and starts serving addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/delta", s.handleDelta)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/facets", s.handleFacets)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/step", s.handleStep)
	mux.HandleFunc("/api/enumerate", s.handleEnumerate)
	mux.HandleFunc("/api/incidences", s.handleIncidences)
	mux.HandleFunc("/api/count", s.handleCount)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	s.mux = mux
	return http.ListenAndServe(addr, mux)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, map[string]interface{}{"success": false, "error": err.Error()})
}

func readBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

func (s *Server) session(w http.ResponseWriter, id string) (*store.Session, bool) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown session %q", id), http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func parseKind(s string) nav.NavigationKind {
	if s == "AndOr" {
		return nav.KindAndOr
	}
	return nav.KindAnd
}

// handleSessions handles GET (list) and POST (create) of navigation
// sessions.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]interface{}{"success": true, "sessions": s.sessions.List()})

	case http.MethodPost:
		var req struct {
			ID      string   `json:"id"`
			Program string   `json:"program"`
			Args    []string `json:"args"`
			Kind    string   `json:"kind"`
		}
		if err := readBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sess, err := s.sessions.Create(req.ID, req.Program, req.Args, parseKind(req.Kind))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "id": sess.ID})
		s.incCounter("sessions_created")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDelta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID     string   `json:"id"`
		Tokens []string `json:"tokens"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	sess.Engine().Delta(req.Tokens)
	writeJSON(w, map[string]interface{}{
		"success": true,
		"route":   sess.Engine().RouteRepr(),
	})
	s.incCounter("delta_calls")
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	if err := sess.Engine().Clear(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true})
	s.incCounter("clear_calls")
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID   string   `json:"id"`
		Peek []string `json:"peek"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	facets, err := sess.Engine().Facets(req.Peek)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true, "facets": symbolStrings(facets)})
	s.incCounter("facets_calls")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID   string   `json:"id"`
		Peek []string `json:"peek"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	brave, cautious, facets, err := sess.Engine().Stats(req.Peek)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success":  true,
		"brave":    brave,
		"cautious": cautious,
		"facets":   facets,
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID   string `json:"id"`
		Mode struct {
			Kind   string `json:"kind"`
			Weight string `json:"weight"`
		} `json:"mode"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	mode, err := parseMode(req.Mode.Kind, req.Mode.Weight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	repr, found, err := sess.Engine().Step(mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true, "found": found, "facet": string(repr)})
	s.incCounter("step_calls")
}

func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID    string   `json:"id"`
		Peek  []string `json:"peek"`
		Limit int      `json:"limit"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	models, err := sess.Engine().Enumerate(req.Peek)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Limit > 0 && len(models) > req.Limit {
		models = models[:req.Limit]
	}
	out := make([][]string, len(models))
	for i, m := range models {
		out[i] = symbolStrings(m)
	}
	writeJSON(w, map[string]interface{}{"success": true, "models": out, "found": len(models)})
	s.incCounter("enumerate_calls")
}

func (s *Server) handleIncidences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	rows, err := sess.Engine().Incidences()
	if err != nil {
		writeError(w, err)
		return
	}
	type row struct {
		At         string   `json:"at"`
		Columns    []string `json:"columns"`
		Membership []bool   `json:"membership"`
	}
	out := make([]row, len(rows))
	for i, r := range rows {
		out[i] = row{At: r.At.String(), Columns: symbolStrings(r.Columns), Membership: r.Membership}
	}
	writeJSON(w, map[string]interface{}{"success": true, "rows": out})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID         string   `json:"id"`
		Weight     string   `json:"weight"`
		Peek       []string `json:"peek"`
		UpperBound int      `json:"upper_bound"`
	}
	if err := readBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, req.ID)
	if !ok {
		return
	}
	weight, err := parseWeight(req.Weight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	count, err := sess.Engine().Eval(weight, req.Peek, req.UpperBound)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true, "count": count})
	s.incCounter("count_calls")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"counters":   s.getCounters(),
		"timeSeries": s.getTimeSeries(),
	})
}

func symbolStrings(atoms []asp.Symbol) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.String()
	}
	return out
}

func parseMode(kind, weight string) (nav.Mode, error) {
	var m nav.Mode
	switch kind {
	case "GoalOriented":
		m.Kind = nav.GoalOriented
		return m, nil
	case "MinWeighted":
		m.Kind = nav.MinWeighted
	case "MaxWeighted":
		m.Kind = nav.MaxWeighted
	default:
		return m, fmt.Errorf("unknown mode kind %q", kind)
	}
	w, err := parseWeight(weight)
	if err != nil {
		return m, err
	}
	m.Weight = w
	return m, nil
}

func parseWeight(weight string) (nav.Weight, error) {
	switch weight {
	case "FacetCounting":
		return nav.FacetCounting, nil
	case "AnswerSetCounting":
		return nav.AnswerSetCounting, nil
	case "BcCounting":
		return nav.BcCounting, nil
	case "CcCounting":
		return nav.CcCounting, nil
	default:
		return 0, fmt.Errorf("unknown weight %q", weight)
	}
}
