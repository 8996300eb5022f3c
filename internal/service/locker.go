package service

import (
	"sync"

	"github.com/google/uuid"
)

// ContractLocker serializes mutating operations per rental contract.
// Every lifecycle, accessory, payment and rating mutation locks the
// contract id first, so invariants hold even when two callers race on
// the same rental. Operations on different rentals proceed in parallel.
type ContractLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewContractLocker() *ContractLocker {
	return &ContractLocker{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given contract id and returns the
// matching unlock function.
func (l *ContractLocker) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
