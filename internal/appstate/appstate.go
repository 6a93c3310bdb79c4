// Package appstate holds the explicit application-state object that replaces
// the original UI's provider-scoped globals: the selected country and the
// search history. State is in-memory only and lives for the process lifetime.
package appstate

import (
	"sync"
	"time"
)

// historyCap bounds the retained search history.
const historyCap = 50

// SearchEntry is one remembered search.
type SearchEntry struct {
	Query     string    `json:"query"`
	Country   string    `json:"country"`
	Timestamp time.Time `json:"timestamp"`
}

// State is safe for concurrent use by handlers.
type State struct {
	mu              sync.RWMutex
	selectedCountry string
	history         []SearchEntry
}

func New() *State {
	return &State{}
}

// SelectCountry records the most recently viewed country.
func (s *State) SelectCountry(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCountry = code
}

// SelectedCountry returns the most recently viewed country, or "".
func (s *State) SelectedCountry() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCountry
}

// AddSearch prepends a search to the history, newest first.
func (s *State) AddSearch(query, country string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]SearchEntry{{
		Query:     query,
		Country:   country,
		Timestamp: time.Now(),
	}}, s.history...)
	if len(s.history) > historyCap {
		s.history = s.history[:historyCap]
	}
}

// SearchHistory returns a copy of the history, newest first.
func (s *State) SearchHistory() []SearchEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SearchEntry(nil), s.history...)
}
