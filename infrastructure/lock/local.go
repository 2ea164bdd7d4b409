package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker serve para um único processo, quando não há Redis configurado
type LocalLocker struct {
	mu      sync.Mutex
	holders map[string]localHolder
	seq     uint64
	now     func() time.Time
}

type localHolder struct {
	id        uint64
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		holders: make(map[string]localHolder),
		now:     time.Now,
	}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if holder, ok := l.holders[key]; ok && now.Before(holder.expiresAt) {
		return nil, ErrNotAcquired
	}

	l.seq++
	l.holders[key] = localHolder{id: l.seq, expiresAt: now.Add(ttl)}

	return &localLease{locker: l, key: key, id: l.seq}, nil
}

type localLease struct {
	locker *LocalLocker
	key    string
	id     uint64
}

func (l *localLease) Release(context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()

	if holder, ok := l.locker.holders[l.key]; ok && holder.id == l.id {
		delete(l.locker.holders, l.key)
	}
	return nil
}
