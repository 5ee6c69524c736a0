package sqlstore

import (
	"time"

	"github.com/goliatone/go-walletpay/core"
	"github.com/uptrace/bun"
)

type attemptRecord struct {
	bun.BaseModel `bun:"table:wallet_authorization_attempts,alias:waa"`

	ID          string          `bun:"id,pk"`
	MerchantID  string          `bun:"merchant_id,notnull"`
	Country     string          `bun:"country,notnull"`
	Currency    string          `bun:"currency,notnull"`
	LineItems   []core.LineItem `bun:"line_items,type:jsonb,notnull"`
	Status      string          `bun:"status,notnull"`
	Outcome     string          `bun:"outcome"`
	Reason      string          `bun:"reason"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	CompletedAt *time.Time      `bun:"completed_at,nullzero"`
}

func (r *attemptRecord) toDomain() core.AuthorizationAttempt {
	if r == nil {
		return core.AuthorizationAttempt{}
	}
	attempt := core.AuthorizationAttempt{
		ID:         r.ID,
		MerchantID: r.MerchantID,
		Country:    r.Country,
		Currency:   r.Currency,
		LineItems:  append([]core.LineItem(nil), r.LineItems...),
		Status:     core.AttemptStatus(r.Status),
		Outcome:    r.Outcome,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
	if r.CompletedAt != nil {
		completed := r.CompletedAt.UTC()
		attempt.CompletedAt = &completed
	}
	return attempt
}

func attemptRecordFromDomain(attempt core.AuthorizationAttempt) *attemptRecord {
	record := &attemptRecord{
		ID:         attempt.ID,
		MerchantID: attempt.MerchantID,
		Country:    attempt.Country,
		Currency:   attempt.Currency,
		LineItems:  append([]core.LineItem(nil), attempt.LineItems...),
		Status:     string(attempt.Status),
		Outcome:    attempt.Outcome,
		Reason:     attempt.Reason,
		CreatedAt:  attempt.CreatedAt,
	}
	if attempt.CompletedAt != nil {
		completed := attempt.CompletedAt.UTC()
		record.CompletedAt = &completed
	}
	return record
}
