package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-walletpay/core"
)

const attemptCacheKeyPrefix = "go-walletpay::attempt::v1"

// CachedAttemptStore layers a read-through cache over the durable ledger.
// Single-attempt reads are cached; writes invalidate their key. List stays
// uncached, its filters are too variable to key usefully.
type CachedAttemptStore struct {
	base  core.AttemptLedger
	cache repositorycache.CacheService
}

func NewCachedAttemptStore(
	base core.AttemptLedger,
	cacheService repositorycache.CacheService,
) (*CachedAttemptStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base attempt ledger is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: attempt cache service is required")
	}
	return &CachedAttemptStore{base: base, cache: cacheService}, nil
}

// AttemptCacheKey returns the deterministic cache key contract for attempt
// reads: go-walletpay::attempt::v1::<attempt_id> with the id URL-path
// escaped.
func AttemptCacheKey(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: attempt id is required")
	}
	return attemptCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedAttemptStore) Record(ctx context.Context, attempt core.AuthorizationAttempt) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached attempt store is not configured")
	}
	if err := s.base.Record(ctx, attempt); err != nil {
		return err
	}
	return s.invalidate(ctx, attempt.ID)
}

func (s *CachedAttemptStore) Complete(
	ctx context.Context,
	id string,
	status core.AttemptStatus,
	outcome string,
	reason string,
	completedAt time.Time,
) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached attempt store is not configured")
	}
	if err := s.base.Complete(ctx, id, status, outcome, reason, completedAt); err != nil {
		return err
	}
	return s.invalidate(ctx, id)
}

func (s *CachedAttemptStore) Get(ctx context.Context, id string) (core.AuthorizationAttempt, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.AuthorizationAttempt{}, fmt.Errorf("sqlstore: cached attempt store is not configured")
	}
	cacheKey, err := AttemptCacheKey(id)
	if err != nil {
		return core.AuthorizationAttempt{}, err
	}
	attempt, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.AuthorizationAttempt, error) {
		return s.base.Get(ctx, id)
	})
	if err != nil {
		return core.AuthorizationAttempt{}, err
	}
	return attempt, nil
}

func (s *CachedAttemptStore) List(ctx context.Context, filter core.AttemptFilter) (core.AttemptPage, error) {
	if s == nil || s.base == nil {
		return core.AttemptPage{}, fmt.Errorf("sqlstore: cached attempt store is not configured")
	}
	return s.base.List(ctx, filter)
}

func (s *CachedAttemptStore) invalidate(ctx context.Context, id string) error {
	cacheKey, err := AttemptCacheKey(id)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}
