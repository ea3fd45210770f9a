// Package locking adapts the in-process key lock to the core's LoadLocker port.
package locking

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/keylock"
)

type LoadLocker struct {
	locks *keylock.Locker
}

func NewLoadLocker(locks *keylock.Locker) *LoadLocker {
	return &LoadLocker{locks: locks}
}

func (l *LoadLocker) Lock(ctx context.Context, loadID kernel.UUID) (func(), error) {
	return l.locks.Lock(ctx, "load:"+loadID.String())
}
