package session

import "sync"

// sessions is the table of pending interactions, keyed by user identity.
// Entries are ephemeral: created on first use, replaced on every transition
// and dropped when a flow completes. Nothing here survives a restart, which
// is exactly the intended lifecycle for half-entered flows.
type sessions struct {
	mu     sync.Mutex
	states map[int64]State
}

func newSessions() *sessions {
	return &sessions{states: make(map[int64]State)}
}

func (s *sessions) get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[userID]; ok {
		return st
	}
	return Idle{}
}

func (s *sessions) set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = st
}

func (s *sessions) reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
