package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-walletpay/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AttemptStore is the durable attempt ledger. It is append-then-complete
// only; session state never rehydrates from these rows.
type AttemptStore struct {
	db   *bun.DB
	repo repository.Repository[*attemptRecord]
}

func NewAttemptStore(db *bun.DB) (*AttemptStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*attemptRecord](db, attemptHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid attempt repository wiring: %w", err)
		}
	}
	return &AttemptStore{db: db, repo: repo}, nil
}

func (s *AttemptStore) Record(ctx context.Context, attempt core.AuthorizationAttempt) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: attempt store is not configured")
	}
	attempt.ID = strings.TrimSpace(attempt.ID)
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	if attempt.Status == "" {
		attempt.Status = core.AttemptStatusStarted
	}

	_, err := s.repo.Create(ctx, attemptRecordFromDomain(attempt))
	return err
}

func (s *AttemptStore) Complete(
	ctx context.Context,
	id string,
	status core.AttemptStatus,
	outcome string,
	reason string,
	completedAt time.Time,
) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: attempt store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return fmt.Errorf("sqlstore: attempt id is required")
	}
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	current, err := s.repo.GetByID(ctx, trimmedID)
	if err != nil {
		return err
	}
	current.Status = string(status)
	current.Outcome = strings.TrimSpace(outcome)
	current.Reason = strings.TrimSpace(reason)
	completed := completedAt.UTC()
	current.CompletedAt = &completed

	_, err = s.repo.Update(ctx, current, repository.UpdateByID(trimmedID))
	return err
}

func (s *AttemptStore) Get(ctx context.Context, id string) (core.AuthorizationAttempt, error) {
	if s == nil || s.repo == nil {
		return core.AuthorizationAttempt{}, fmt.Errorf("sqlstore: attempt store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.AuthorizationAttempt{}, fmt.Errorf("sqlstore: attempt id is required")
	}
	record, err := s.repo.GetByID(ctx, trimmedID)
	if err != nil {
		return core.AuthorizationAttempt{}, err
	}
	return record.toDomain(), nil
}

func (s *AttemptStore) List(ctx context.Context, filter core.AttemptFilter) (core.AttemptPage, error) {
	if s == nil || s.repo == nil {
		return core.AttemptPage{}, fmt.Errorf("sqlstore: attempt store is not configured")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	offset := (page - 1) * perPage

	selectors := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(perPage, offset),
	}
	if merchantID := strings.TrimSpace(filter.MerchantID); merchantID != "" {
		selectors = append(selectors, repository.SelectBy("merchant_id", "=", merchantID))
	}
	if status := strings.TrimSpace(string(filter.Status)); status != "" {
		selectors = append(selectors, repository.SelectBy("status", "=", status))
	}

	records, total, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return core.AttemptPage{}, err
	}
	items := make([]core.AuthorizationAttempt, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDomain())
	}
	return core.AttemptPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}
