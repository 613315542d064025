package session

import (
	"context"
	"sync"

	"contactpsi/internal/domain"
)

// keyedLock serialises operations per session id. Entries are dropped once
// nobody holds or waits for them.
type keyedLock struct {
	mu      sync.Mutex
	entries map[domain.SessionID]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{entries: make(map[domain.SessionID]*lockEntry)}
}

// Lock blocks until id is free or ctx is done.
func (k *keyedLock) Lock(ctx context.Context, id domain.SessionID) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		k.entries[id] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				k.release(id, e)
			})
		}, nil
	case <-ctx.Done():
		k.release(id, e)
		return nil, ctx.Err()
	}
}

func (k *keyedLock) release(id domain.SessionID, e *lockEntry) {
	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, id)
	}
	k.mu.Unlock()
}
