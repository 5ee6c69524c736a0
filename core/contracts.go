package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger aliases keep adapter code off a hard glog import where possible.
type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// MetricsRecorder receives coordinator counters and timing histograms.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// Presenter drives the platform payment sheet. Present returns once the
// sheet is on screen; everything afterward arrives as SheetEvents through
// the coordinator's HandleSheetEvent entry point. Implementations report
// availability through Supported without touching session state.
type Presenter interface {
	Supported(ctx context.Context) bool
	Present(ctx context.Context, req SheetRequest) error
}

// SheetObserver receives fire-and-forget notifications emitted while the
// sheet is suspended waiting for the caller's summary update. Observer
// errors are logged, never propagated into the session.
type SheetObserver interface {
	Name() string
	ShippingMethodSelected(ctx context.Context, method ShippingMethod) error
	ShippingContactSelected(ctx context.Context, contact PostalAddress) error
}

// SheetEvent is the closed set of delegate events the presenter can emit.
// Delivering them through one entry point keeps the transition table in a
// single place and testable without a real sheet.
type SheetEvent interface {
	sheetEvent()
}

// ShippingMethodSelectedEvent fires when the user picks a delivery option.
// Continue must eventually receive the caller's updated summary.
type ShippingMethodSelectedEvent struct {
	Method   ShippingMethod
	Continue *SummaryContinuation
}

func (ShippingMethodSelectedEvent) sheetEvent() {}

// ShippingContactSelectedEvent fires when the user picks a candidate
// shipping contact. Continue must eventually receive the caller's updated
// summary plus any contact validation errors.
type ShippingContactSelectedEvent struct {
	Contact  PostalAddress
	Continue *SummaryContinuation
}

func (ShippingContactSelectedEvent) sheetEvent() {}

// PaymentMethodCreatedEvent fires exactly once per session when the sheet
// has authorized a payment method. Complete stays buffered until the caller
// confirms with its backend-issued secret.
type PaymentMethodCreatedEvent struct {
	Method   NativePaymentMethod
	Complete *CompletionContinuation
}

func (PaymentMethodCreatedEvent) sheetEvent() {}

// SheetFinishedEvent is the terminal event; Outcome routes to whichever
// pending result is still outstanding.
type SheetFinishedEvent struct {
	Outcome Outcome
}

func (SheetFinishedEvent) sheetEvent() {}

// AttemptStatus tracks one authorization attempt in the audit ledger.
type AttemptStatus string

const (
	AttemptStatusStarted   AttemptStatus = "started"
	AttemptStatusSucceeded AttemptStatus = "succeeded"
	AttemptStatusFailed    AttemptStatus = "failed"
	AttemptStatusCanceled  AttemptStatus = "canceled"
	AttemptStatusAbandoned AttemptStatus = "abandoned"
)

// AuthorizationAttempt is the append-only audit record of one sheet
// presentation. It is never used to rehydrate a live session.
type AuthorizationAttempt struct {
	ID          string
	MerchantID  string
	Country     string
	Currency    string
	LineItems   []LineItem
	Status      AttemptStatus
	Outcome     string
	Reason      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// AttemptFilter narrows ledger reads.
type AttemptFilter struct {
	MerchantID string
	Status     AttemptStatus
	Page       int
	PerPage    int
}

// AttemptPage is one page of ledger history.
type AttemptPage struct {
	Items   []AuthorizationAttempt
	Total   int
	Page    int
	PerPage int
}

// AttemptLedger records authorization attempts and their terminal
// classification. Writes are best effort from the coordinator's point of
// view; a ledger failure never disturbs the session.
type AttemptLedger interface {
	Record(ctx context.Context, attempt AuthorizationAttempt) error
	Complete(ctx context.Context, id string, status AttemptStatus, outcome string, reason string, completedAt time.Time) error
	Get(ctx context.Context, id string) (AuthorizationAttempt, error)
	List(ctx context.Context, filter AttemptFilter) (AttemptPage, error)
}
