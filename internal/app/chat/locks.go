package chat

import (
	"sync"

	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

// sessionLocks hands out one mutex per session id, so all operations that
// touch the same session's log run one at a time while different sessions
// stay fully concurrent.
//
// Locks are never released back; a session's lock lives as long as the
// process, matching the indefinite lifetime of the session itself.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[domain.SessionID]*sync.Mutex),
	}
}

// acquire locks the mutex for sessionID, creating it on first use.
// The caller must Unlock the returned mutex.
func (l *sessionLocks) acquire(sessionID domain.SessionID) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
