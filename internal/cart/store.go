package cart

import "sync"

// Store maps cart session IDs to ledgers. It is constructed once in main
// and injected into the handlers; carts are deliberately transient and do
// not survive a restart.
type Store struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewStore returns an empty cart store
func NewStore() *Store {
	return &Store{ledgers: make(map[string]*Ledger)}
}

// Ledger returns the ledger for a session, creating it on first use
func (s *Store) Ledger(sessionID string) *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[sessionID]
	if !ok {
		ledger = NewLedger()
		s.ledgers[sessionID] = ledger
	}
	return ledger
}

// Drop removes a session's ledger entirely
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, sessionID)
}
