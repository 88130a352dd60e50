package utils

import "sync" // Mutexes for per-user serialization

// UserLocks hands out one mutex per user ID. The view handler holds the
// caller's mutex across the cooldown check and the credit transaction, so two
// concurrent views by the same user can never both pass the check. Locks for
// different users are independent.
type UserLocks struct {
	mu    sync.Mutex           // Guards the map
	locks map[uint]*sync.Mutex // One mutex per user ID
}

// NewUserLocks creates an empty lock registry
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uint]*sync.Mutex)}
}

// Get returns the mutex for a user, creating it on first use
func (l *UserLocks) Get(userID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID] // Look up existing mutex
	if !ok {
		m = &sync.Mutex{}   // First request for this user
		l.locks[userID] = m // Remember it for subsequent requests
	}
	return m
}
