package service

import "sync"

// slotLocker hands out one mutex per doctor. Booking and cancellation
// hold it across their read-check-write sequence so two requests for
// the same doctor can never both pass the availability check before
// either writes the slot map back.
type slotLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newSlotLocker() *slotLocker {
	return &slotLocker{locks: make(map[uint]*sync.Mutex)}
}

// acquire locks the doctor's mutex and returns it for unlocking.
func (l *slotLocker) acquire(docID uint) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[docID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[docID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
