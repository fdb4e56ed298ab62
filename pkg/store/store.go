// Package store holds a concurrency-safe registry of named navigation
// engines, one per session, adapted from the request-store pattern used
// elsewhere in this codebase for documents.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/term"
)

// Session pairs a navigation engine with the program text it was created
// from, so it can be reported back to a caller without re-reading the
// engine's internals.
type Session struct {
	ID      string `json:"id"`
	Program string `json:"program"`
	Kind    string `json:"kind"`

	engine *nav.Engine
}

// Engine returns the session's navigation engine. Every method on
// *nav.Engine is itself non-reentrant (spec.md §5); callers sharing a
// Session across goroutines must serialize access themselves, same as
// Sessions does for creation/lookup/deletion.
func (s *Session) Engine() *nav.Engine { return s.engine }

// Sessions is a registry of named navigation engines, safe for concurrent
// use across HTTP handlers.
type Sessions struct {
	mu   sync.RWMutex
	byID map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*Session{}}
}

// Create grounds a new engine over program under args and registers it
// under id, replacing any existing session with that id.
func (s *Sessions) Create(id, program string, args []string, kind nav.NavigationKind) (*Session, error) {
	engine, err := nav.New(kind, program, args, term.New())
	if err != nil {
		return nil, fmt.Errorf("store: creating session %q: %w", id, err)
	}
	sess := &Session{ID: id, Program: program, Kind: kind.String(), engine: engine}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = sess
	return sess, nil
}

// Get returns the session registered under id, if any.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byID[id]
	return sess, ok
}

// Delete removes the session registered under id, if any.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

// List returns every registered session's metadata, sorted by id.
func (s *Sessions) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.byID))
	for _, sess := range s.byID {
		out = append(out, Session{ID: sess.ID, Program: sess.Program, Kind: sess.Kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
