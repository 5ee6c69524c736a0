package core

import (
	"context"
	"sync"
)

// Pending is one half of a caller-visible asynchronous result: the
// coordinator keeps the resolver side, the caller keeps Wait. Resolve and
// Reject settle it at most once total; later settlements are dropped, which
// makes double-resolution structurally impossible for callers.
type Pending[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	value   T
	err     error
}

func NewPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func (p *Pending[T]) Resolve(value T) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settled {
		return false
	}
	p.settled = true
	p.value = value
	close(p.done)
	return true
}

func (p *Pending[T]) Reject(err error) bool {
	if p == nil {
		return false
	}
	if err == nil {
		err = internalError("core: pending rejected without a cause")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settled {
		return false
	}
	p.settled = true
	p.err = err
	close(p.done)
	return true
}

// Wait blocks until the pending settles or ctx is done.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if p == nil {
		return zero, internalError("core: pending result is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Settled reports whether the pending has already resolved or rejected.
func (p *Pending[T]) Settled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}
