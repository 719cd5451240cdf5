package service

import "sync"

// appLocks serializes read-validate-write sequences per application.
// Mutations for one application take its lock for the whole
// load-validate-write span; different applications proceed in parallel.
// Locks are never released from the map: the set of live applications in a
// single process is small.
type appLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAppLocks() *appLocks {
	return &appLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for applicationID and returns its unlock func.
func (l *appLocks) acquire(applicationID string) func() {
	l.mu.Lock()
	m, ok := l.locks[applicationID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[applicationID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
