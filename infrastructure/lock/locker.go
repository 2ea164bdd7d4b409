package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired indica que outro processo detém a chave
var ErrNotAcquired = errors.New("lock not acquired")

// Locker concede leases exclusivos com expiração
type Locker interface {
	// TryLock retorna ErrNotAcquired quando a chave já está com outro dono
	TryLock(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

type Lease interface {
	// Release libera a chave apenas se o lease ainda for o dono
	Release(ctx context.Context) error
}
