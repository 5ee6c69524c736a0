package sqlstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-walletpay/core"
)

type stubAttemptLedger struct {
	mu            sync.Mutex
	attempts      map[string]core.AuthorizationAttempt
	getCalls      int
	recordCalls   int
	completeCalls int
}

func newStubAttemptLedger() *stubAttemptLedger {
	return &stubAttemptLedger{attempts: map[string]core.AuthorizationAttempt{}}
}

func (s *stubAttemptLedger) Record(_ context.Context, attempt core.AuthorizationAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordCalls++
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *stubAttemptLedger) Complete(
	_ context.Context,
	id string,
	status core.AttemptStatus,
	outcome string,
	reason string,
	completedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeCalls++
	attempt, ok := s.attempts[id]
	if !ok {
		return fmt.Errorf("attempt %q not found", id)
	}
	attempt.Status = status
	attempt.Outcome = outcome
	attempt.Reason = reason
	completed := completedAt.UTC()
	attempt.CompletedAt = &completed
	s.attempts[id] = attempt
	return nil
}

func (s *stubAttemptLedger) Get(_ context.Context, id string) (core.AuthorizationAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	attempt, ok := s.attempts[id]
	if !ok {
		return core.AuthorizationAttempt{}, fmt.Errorf("attempt %q not found", id)
	}
	return attempt, nil
}

func (s *stubAttemptLedger) List(_ context.Context, _ core.AttemptFilter) (core.AttemptPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]core.AuthorizationAttempt, 0, len(s.attempts))
	for _, attempt := range s.attempts {
		items = append(items, attempt)
	}
	return core.AttemptPage{Items: items, Total: len(items), Page: 1, PerPage: 25}, nil
}

func newTestAttemptCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

func TestCachedAttemptStore_Get_MissFetchThenHit(t *testing.T) {
	base := newStubAttemptLedger()
	if err := base.Record(context.Background(), core.AuthorizationAttempt{
		ID:         "att_cache_1",
		MerchantID: "merchant.test",
		Status:     core.AttemptStatusStarted,
	}); err != nil {
		t.Fatalf("seed base ledger: %v", err)
	}

	store, err := NewCachedAttemptStore(base, newTestAttemptCacheService(t))
	if err != nil {
		t.Fatalf("new cached attempt store: %v", err)
	}

	if _, err := store.Get(context.Background(), "att_cache_1"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected first get to fetch base store once, got %d", base.getCalls)
	}

	if _, err := store.Get(context.Background(), "att_cache_1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected second get to be cache hit, base get calls=%d", base.getCalls)
	}
}

func TestCachedAttemptStore_Complete_InvalidatesCachedKey(t *testing.T) {
	base := newStubAttemptLedger()
	if err := base.Record(context.Background(), core.AuthorizationAttempt{
		ID:         "att_cache_2",
		MerchantID: "merchant.test",
		Status:     core.AttemptStatusStarted,
	}); err != nil {
		t.Fatalf("seed base ledger: %v", err)
	}

	store, err := NewCachedAttemptStore(base, newTestAttemptCacheService(t))
	if err != nil {
		t.Fatalf("new cached attempt store: %v", err)
	}

	if _, err := store.Get(context.Background(), "att_cache_2"); err != nil {
		t.Fatalf("prime cache with get: %v", err)
	}
	if base.getCalls != 1 {
		t.Fatalf("expected one base read after cache prime, got %d", base.getCalls)
	}

	if err := store.Complete(
		context.Background(),
		"att_cache_2",
		core.AttemptStatusSucceeded,
		string(core.OutcomeSuccess),
		"",
		time.Now().UTC(),
	); err != nil {
		t.Fatalf("complete through cached store: %v", err)
	}

	attempt, err := store.Get(context.Background(), "att_cache_2")
	if err != nil {
		t.Fatalf("get after completion: %v", err)
	}
	if base.getCalls != 2 {
		t.Fatalf("expected invalidation to force a fresh base read, got %d", base.getCalls)
	}
	if attempt.Status != core.AttemptStatusSucceeded {
		t.Fatalf("expected the completed status after invalidation, got %q", attempt.Status)
	}
}

func TestAttemptCacheKey_RequiresID(t *testing.T) {
	if _, err := AttemptCacheKey("   "); err == nil {
		t.Fatalf("expected blank id to fail")
	}
	key, err := AttemptCacheKey("att 1")
	if err != nil {
		t.Fatalf("attempt cache key: %v", err)
	}
	if key != attemptCacheKeyPrefix+"::att%201" {
		t.Fatalf("expected escaped key, got %q", key)
	}
}
