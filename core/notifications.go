package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ObserverRegistry fans sheet notifications out to registered observers in
// registration order. Notification delivery is fire-and-forget from the
// session's perspective; aggregated observer errors are returned for
// logging only and never fail the triggering event.
type ObserverRegistry struct {
	mu        sync.RWMutex
	observers []SheetObserver
}

func NewObserverRegistry() *ObserverRegistry {
	return &ObserverRegistry{observers: make([]SheetObserver, 0)}
}

func (r *ObserverRegistry) Register(observer SheetObserver) {
	if r == nil || observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, observer)
}

func (r *ObserverRegistry) NotifyShippingMethodSelected(ctx context.Context, method ShippingMethod) error {
	var notifyErr error
	for _, observer := range r.snapshot() {
		if observer == nil {
			continue
		}
		if err := observer.ShippingMethodSelected(ctx, method); err != nil {
			notifyErr = errors.Join(notifyErr, fmt.Errorf("observer %q shipping method notification failed: %w", observerName(observer), err))
		}
	}
	return notifyErr
}

func (r *ObserverRegistry) NotifyShippingContactSelected(ctx context.Context, contact PostalAddress) error {
	var notifyErr error
	for _, observer := range r.snapshot() {
		if observer == nil {
			continue
		}
		if err := observer.ShippingContactSelected(ctx, contact); err != nil {
			notifyErr = errors.Join(notifyErr, fmt.Errorf("observer %q shipping contact notification failed: %w", observerName(observer), err))
		}
	}
	return notifyErr
}

func (r *ObserverRegistry) snapshot() []SheetObserver {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SheetObserver, len(r.observers))
	copy(out, r.observers)
	return out
}

func observerName(observer SheetObserver) string {
	if observer == nil {
		return "unknown"
	}
	name := strings.TrimSpace(observer.Name())
	if name == "" {
		return "unnamed"
	}
	return name
}
