package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryAttemptLedger is the default, process-local audit ledger. It keeps
// attempts only for the life of the process; durable deployments swap in the
// SQL-backed store.
type MemoryAttemptLedger struct {
	mu      sync.Mutex
	entries map[string]AuthorizationAttempt
	order   []string
}

func NewMemoryAttemptLedger() *MemoryAttemptLedger {
	return &MemoryAttemptLedger{entries: map[string]AuthorizationAttempt{}}
}

func (l *MemoryAttemptLedger) Record(_ context.Context, attempt AuthorizationAttempt) error {
	if l == nil {
		return fmt.Errorf("core: attempt ledger is not configured")
	}
	id := strings.TrimSpace(attempt.ID)
	if id == "" {
		return fmt.Errorf("core: attempt id is required")
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	if attempt.Status == "" {
		attempt.Status = AttemptStatusStarted
	}

	l.mu.Lock()
	if _, exists := l.entries[id]; !exists {
		l.order = append(l.order, id)
	}
	l.entries[id] = cloneAttempt(attempt)
	l.mu.Unlock()
	return nil
}

func (l *MemoryAttemptLedger) Complete(
	_ context.Context,
	id string,
	status AttemptStatus,
	outcome string,
	reason string,
	completedAt time.Time,
) error {
	if l == nil {
		return fmt.Errorf("core: attempt ledger is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("core: attempt id is required")
	}
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return fmt.Errorf("core: attempt %q not found", id)
	}
	entry.Status = status
	entry.Outcome = strings.TrimSpace(outcome)
	entry.Reason = strings.TrimSpace(reason)
	completed := completedAt.UTC()
	entry.CompletedAt = &completed
	l.entries[id] = entry
	return nil
}

func (l *MemoryAttemptLedger) Get(_ context.Context, id string) (AuthorizationAttempt, error) {
	if l == nil {
		return AuthorizationAttempt{}, fmt.Errorf("core: attempt ledger is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return AuthorizationAttempt{}, fmt.Errorf("core: attempt id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return AuthorizationAttempt{}, fmt.Errorf("core: attempt %q not found", id)
	}
	return cloneAttempt(entry), nil
}

func (l *MemoryAttemptLedger) List(_ context.Context, filter AttemptFilter) (AttemptPage, error) {
	if l == nil {
		return AttemptPage{}, fmt.Errorf("core: attempt ledger is not configured")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 25
	}

	l.mu.Lock()
	matched := make([]AuthorizationAttempt, 0, len(l.order))
	for _, id := range l.order {
		entry := l.entries[id]
		if filter.MerchantID != "" && entry.MerchantID != filter.MerchantID {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneAttempt(entry))
	}
	l.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return AttemptPage{
		Items:   matched[start:end],
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func cloneAttempt(attempt AuthorizationAttempt) AuthorizationAttempt {
	cloned := attempt
	cloned.LineItems = cloneLineItems(attempt.LineItems)
	if attempt.CompletedAt != nil {
		completed := attempt.CompletedAt.UTC()
		cloned.CompletedAt = &completed
	}
	return cloned
}

var _ AttemptLedger = (*MemoryAttemptLedger)(nil)
