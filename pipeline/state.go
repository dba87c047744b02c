// SPDX-License-Identifier: MIT
//
// File: state.go
// Role: Completed-run bookkeeping keyed by caller-chosen run keys.

package pipeline

import (
	"sync"
)

// State remembers which run keys have completed and their results. The
// caller owns it and hands it to Run with WithState; a nil State keeps no
// bookkeeping. The zero value is ready to use. Safe for concurrent use.
type State struct {
	mu   sync.Mutex
	done map[string]*Result
}

// NewState returns an empty State.
func NewState() *State {
	return &State{done: make(map[string]*Result)}
}

// Completed returns the result recorded for key, if any.
func (s *State) Completed(key string) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.done[key]

	return r, ok
}

// Reset forgets key so the next run with it executes again.
func (s *State) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.done, key)
}

// Len returns the number of completed keys.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.done)
}

func (s *State) record(key string, r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		s.done = make(map[string]*Result)
	}
	s.done[key] = r
}
