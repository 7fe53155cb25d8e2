// Package draft holds in-progress answer text per request id. Entries are
// ephemeral: nothing is persisted, and the store is rebuilt empty on restart.
package draft

import "sync"

// Store is an ephemeral per-request text buffer. A draft whose id no longer
// appears in the pending list is inert; it stays orphaned until overwritten
// or pruned by Retain.
type Store struct {
	mu     sync.Mutex
	drafts map[string]string
}

// NewStore creates an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[string]string)}
}

// Get returns the current draft for id, or the empty string when none exists.
func (s *Store) Get(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[id]
}

// Set overwrites the draft for id unconditionally. Any string is accepted,
// including the empty string.
func (s *Store) Set(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[id] = text
}

// Clear removes the draft for id. Clearing an absent id is a no-op.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Retain drops every draft whose id is not in keep. Invoked after each
// successful pending load so the store stays bounded by the queue size.
func (s *Store) Retain(keep []string) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.drafts {
		if _, ok := keepSet[id]; !ok {
			delete(s.drafts, id)
		}
	}
}

// Reset discards every draft.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make(map[string]string)
}

// Len returns the number of drafts currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
